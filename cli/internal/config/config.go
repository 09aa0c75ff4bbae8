// Package config loads CLI and server settings from .forte.yaml, FORTE_*
// environment variables and .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/satishbabariya/forte-go/catalog"
	"github.com/satishbabariya/forte-go/graph"
	"github.com/satishbabariya/forte-go/query"
	"github.com/satishbabariya/forte-go/query/validation"
	"github.com/satishbabariya/forte-go/server"
)

// AppFs is the filesystem used for config, .env and catalog files.
var AppFs = afero.NewOsFs()

// EnvPrefix prefixes every environment override, e.g. FORTE_SERVER_ADDR.
const EnvPrefix = "FORTE"

// Config holds the application configuration
type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Graphs  GraphsConfig
	Limits  validation.Limits
	Cache   CacheConfig
	Log     LogConfig
	// File is the config file that was read, if any.
	File string
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr       string
	CORSOrigin string
	RateLimit  int
	RateBurst  int
	Metrics    bool
}

// CatalogConfig selects the catalog source. With a driver set the catalog is
// read from SQL; otherwise from Path, or the embedded catalog when Path is empty.
type CatalogConfig struct {
	Path   string
	Driver string
	DSN    string
}

// GraphsConfig locates graph artifacts.
type GraphsConfig struct {
	Dir      string
	Patterns []string
}

// CacheConfig sizes the plan cache.
type CacheConfig struct {
	Size int
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string
	Format string
}

// setDefaults registers every key; AutomaticEnv only overrides known keys.
func setDefaults(v *viper.Viper) {
	srv := server.DefaultConfig()
	v.SetDefault("server.addr", srv.Addr)
	v.SetDefault("server.cors_origin", srv.CORSOrigin)
	v.SetDefault("server.rate_limit", srv.RateLimit)
	v.SetDefault("server.rate_burst", srv.RateBurst)
	v.SetDefault("server.metrics", srv.Metrics)

	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.driver", "")
	v.SetDefault("catalog.dsn", "")

	v.SetDefault("graphs.dir", "")
	v.SetDefault("graphs.patterns", graph.DefaultPatterns)

	limits := validation.DefaultLimits()
	for endpoint, limit := range limits.Queries {
		v.SetDefault("limits."+endpoint, limit)
	}
	v.SetDefault("limits.props", limits.Props)

	v.SetDefault("cache.size", query.DefaultCacheSize)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads configuration. An explicit configFile must exist; otherwise
// .forte.yaml is searched in the working directory, $HOME and
// $HOME/.config/forte, and its absence is not an error.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetFs(AppFs)
	setDefaults(v)

	// Load .env file if it exists
	if _, err := AppFs.Stat(".env"); err == nil {
		if err := loadEnvFile(".env", false); err != nil {
			return nil, err
		}
	}

	// Load .env.local if it exists (higher priority)
	if _, err := AppFs.Stat(".env.local"); err == nil {
		if err := loadEnvFile(".env.local", true); err != nil {
			return nil, err
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName(".forte")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(home)
		v.AddConfigPath(filepath.Join(home, ".config", "forte"))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:       v.GetString("server.addr"),
			CORSOrigin: v.GetString("server.cors_origin"),
			RateLimit:  v.GetInt("server.rate_limit"),
			RateBurst:  v.GetInt("server.rate_burst"),
			Metrics:    v.GetBool("server.metrics"),
		},
		Catalog: CatalogConfig{
			Path:   v.GetString("catalog.path"),
			Driver: v.GetString("catalog.driver"),
			DSN:    v.GetString("catalog.dsn"),
		},
		Graphs: GraphsConfig{
			Dir:      v.GetString("graphs.dir"),
			Patterns: v.GetStringSlice("graphs.patterns"),
		},
		Limits: validation.Limits{
			Queries: map[string]int{},
			Props:   v.GetInt("limits.props"),
		},
		Cache: CacheConfig{Size: v.GetInt("cache.size")},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		File: v.ConfigFileUsed(),
	}
	for _, f := range catalog.Fields {
		cfg.Limits.Queries[f.String()] = v.GetInt("limits." + f.String())
	}
	cfg.Limits.Queries[validation.EndpointAll] = v.GetInt("limits." + validation.EndpointAll)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFile reads a dotenv file through AppFs.
func loadEnvFile(name string, override bool) error {
	f, err := AppFs.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	env, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	for key, value := range env {
		if _, exists := os.LookupEnv(key); exists && !override {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	var errs []error
	for endpoint, limit := range c.Limits.Queries {
		if limit < 1 {
			errs = append(errs, fmt.Errorf("limits.%s must be positive, got %d", endpoint, limit))
		}
	}
	if c.Limits.Props < 1 {
		errs = append(errs, fmt.Errorf("limits.props must be positive, got %d", c.Limits.Props))
	}
	if c.Catalog.Driver != "" && c.Catalog.DSN == "" {
		errs = append(errs, errors.New("catalog.dsn is required when catalog.driver is set"))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("server.rate_limit must not be negative, got %d", c.Server.RateLimit))
	}
	return errors.Join(errs...)
}

// ServerSettings converts the settings for server.New.
func (c *Config) ServerSettings() server.Config {
	cfg := server.DefaultConfig()
	cfg.Addr = c.Server.Addr
	cfg.CORSOrigin = c.Server.CORSOrigin
	cfg.RateLimit = c.Server.RateLimit
	cfg.RateBurst = c.Server.RateBurst
	cfg.Metrics = c.Server.Metrics
	return cfg
}

// EngineOptions converts the settings for query.NewEngine.
func (c *Config) EngineOptions() query.Options {
	return query.Options{Limits: c.Limits, CacheSize: c.Cache.Size}
}

// Save writes cfg as YAML to path.
func Save(cfg *Config, path string) error {
	v := viper.New()
	v.SetFs(AppFs)
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("server.cors_origin", cfg.Server.CORSOrigin)
	v.Set("server.rate_limit", cfg.Server.RateLimit)
	v.Set("server.rate_burst", cfg.Server.RateBurst)
	v.Set("server.metrics", cfg.Server.Metrics)
	v.Set("catalog.path", cfg.Catalog.Path)
	v.Set("catalog.driver", cfg.Catalog.Driver)
	v.Set("catalog.dsn", cfg.Catalog.DSN)
	v.Set("graphs.dir", cfg.Graphs.Dir)
	v.Set("graphs.patterns", cfg.Graphs.Patterns)
	for endpoint, limit := range cfg.Limits.Queries {
		v.Set("limits."+endpoint, limit)
	}
	v.Set("limits.props", cfg.Limits.Props)
	v.Set("cache.size", cfg.Cache.Size)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)

	if err := AppFs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return v.WriteConfigAs(path)
}
