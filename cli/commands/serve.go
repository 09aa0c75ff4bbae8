package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/forte-go/catalog"
	"github.com/satishbabariya/forte-go/cli/internal/config"
	"github.com/satishbabariya/forte-go/cli/internal/ui"
	"github.com/satishbabariya/forte-go/graph"
	"github.com/satishbabariya/forte-go/internal/debug"
	"github.com/satishbabariya/forte-go/query"
	"github.com/satishbabariya/forte-go/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP query API",
	Long: `Start the HTTP query API.

The server starts listening immediately and loads the catalog in the
background; until loading finishes every query answers DatasetNotReady
with status 503.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveAddr      string
	serveGraphsDir string
)

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (overrides server.addr)")
	serveCmd.Flags().StringVar(&serveGraphsDir, "graphs", "", "Graph artifact directory (overrides graphs.dir)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveGraphsDir != "" {
		cfg.Graphs.Dir = serveGraphsDir
	}

	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	graphs := graph.Empty()
	if cfg.Graphs.Dir != "" {
		g, err := graph.Load(config.AppFs, cfg.Graphs.Dir, cfg.Graphs.Patterns)
		if err != nil {
			return err
		}
		graphs = g
	}

	state := &catalog.State{}
	engine := query.NewEngine(state, cfg.EngineOptions())
	srv := server.New(cfg.ServerSettings(), engine, graphs)

	ui.PrintInfo("Loading %s", catalogSource(cfg))
	loaded := server.LoadCatalog(state, func() (*catalog.Table, error) {
		return loadCatalog(ctx, cfg)
	})
	loadFailed := make(chan error, 1)
	go func() {
		if err := <-loaded; err != nil {
			loadFailed <- err
			stop()
		}
	}()

	ui.PrintSuccess("Listening on %s (%d graph artifacts)", cfg.Server.Addr, graphs.Len())
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	select {
	case err := <-loadFailed:
		return fmt.Errorf("catalog failed to load: %w", err)
	default:
	}
	debug.Info("server stopped")
	return nil
}
