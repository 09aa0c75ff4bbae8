package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/forte-go/cli/internal/ui"
	"github.com/satishbabariya/forte-go/cli/internal/update"
	"github.com/satishbabariya/forte-go/cli/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

var versionCheck bool

func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check for a newer release")

	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.Get()
	fmt.Fprintln(ui.Out, info.FullString())

	if !versionCheck {
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	res, err := update.NewChecker().Check(ctx, info.Version)
	if err != nil {
		return err
	}
	if !res.Available {
		ui.PrintSuccess("forte %s is the latest version", res.Current)
		return nil
	}
	ui.PrintWarning("A new version is available: %s (current %s)", res.Latest, res.Current)
	ui.PrintInfo("Update with: go install github.com/satishbabariya/forte-go/cli@latest")
	ui.PrintInfo("Or download: %s", update.GetDownloadURL(res.Latest))
	return nil
}
