// Package commands implements the forte command line.
package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/forte-go/cli/internal/config"
	"github.com/satishbabariya/forte-go/cli/internal/ui"
	"github.com/satishbabariya/forte-go/cli/internal/version"
	"github.com/satishbabariya/forte-go/internal/debug"
	"github.com/satishbabariya/forte-go/query/diagnostics"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	debugMode bool

	// appConfig is loaded before any subcommand runs.
	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "forte",
	Short: "Query the catalog of pitch-class set classes",
	Long: `forte searches the catalog of set classes by Forte number, prime form,
interval vector and their Z, complement and inversion relations.

Run "forte syntax" for the query language reference.`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default .forte.yaml in ., $HOME or $HOME/.config/forte)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error or off")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Shorthand for --log-level=debug")
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if debugMode {
		cfg.Log.Level = "debug"
	}
	if err := debug.Init(debug.Options{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		return err
	}
	if cfg.File != "" {
		debug.Debug("config loaded", "file", cfg.File)
	}
	appConfig = cfg
	return nil
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		reportError(err)
	}
	return err
}

func reportError(err error) {
	var qerr *diagnostics.Error
	if errors.As(err, &qerr) {
		_ = diagnostics.PrettyPrint(os.Stderr, err)
		return
	}
	ui.PrintError("%v", err)
}
