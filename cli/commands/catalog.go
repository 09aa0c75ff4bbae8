package commands

import (
	"context"
	"fmt"

	"github.com/satishbabariya/forte-go/catalog"
	"github.com/satishbabariya/forte-go/catalog/sqlstore"
	"github.com/satishbabariya/forte-go/cli/internal/config"
	"github.com/satishbabariya/forte-go/query"
)

// catalogSource describes where loadCatalog reads from.
func catalogSource(cfg *config.Config) string {
	switch {
	case cfg.Catalog.Driver != "":
		return cfg.Catalog.Driver + " database"
	case cfg.Catalog.Path != "":
		return cfg.Catalog.Path
	default:
		return "embedded catalog"
	}
}

// loadCatalog reads the catalog from SQL when a driver is configured, else from
// the configured file, else the embedded copy.
func loadCatalog(ctx context.Context, cfg *config.Config) (*catalog.Table, error) {
	if cfg.Catalog.Driver == "" {
		return catalog.Load(config.AppFs, cfg.Catalog.Path)
	}

	store, err := sqlstore.Open(cfg.Catalog.Driver, cfg.Catalog.DSN)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	table, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", cfg.Catalog.Driver, err)
	}
	return table, nil
}

// newEngine loads the catalog synchronously and wraps it in an engine.
func newEngine(ctx context.Context, cfg *config.Config) (*query.Engine, error) {
	table, err := loadCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return query.NewEngine(catalog.NewReadyState(table), cfg.EngineOptions()), nil
}
