package config

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/forte-go/query"
)

func useMemFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	prev := AppFs
	AppFs = fs
	t.Cleanup(func() { AppFs = prev })
	return fs
}

func TestLoadDefaults(t *testing.T) {
	useMemFs(t)
	t.Setenv("HOME", "/home/test")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 50, cfg.Limits.Queries["primeForm"])
	assert.Equal(t, 30, cfg.Limits.Queries["vec"])
	assert.Equal(t, 100, cfg.Limits.Queries["all"])
	assert.Equal(t, 60, cfg.Limits.Props)
	assert.Equal(t, query.DefaultCacheSize, cfg.Cache.Size)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.File)
}

func TestLoadFileAndEnv(t *testing.T) {
	fs := useMemFs(t)
	t.Setenv("HOME", "/home/test")
	t.Setenv("FORTE_SERVER_ADDR", ":9999")

	content := `
server:
  addr: ":7000"
  rate_limit: 10
catalog:
  path: /data/catalog.yaml
limits:
  vec: 12
cache:
  size: 8
log:
  level: debug
`
	require.NoError(t, afero.WriteFile(fs, "/etc/forte.yaml", []byte(content), 0o644))

	cfg, err := Load("/etc/forte.yaml")
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr, "environment wins over file")
	assert.Equal(t, 10, cfg.Server.RateLimit)
	assert.Equal(t, "/data/catalog.yaml", cfg.Catalog.Path)
	assert.Equal(t, 12, cfg.Limits.Queries["vec"])
	assert.Equal(t, 50, cfg.Limits.Queries["primeForm"])
	assert.Equal(t, 8, cfg.EngineOptions().CacheSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 10, cfg.ServerSettings().RateLimit)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	useMemFs(t)
	_, err := Load("/nope.yaml")
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	fs := useMemFs(t)
	t.Setenv("HOME", "/home/test")
	require.NoError(t, afero.WriteFile(fs, ".env", []byte("FORTE_LOG_FORMAT=json\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("FORTE_LOG_FORMAT") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.Limits.Queries = map[string]int{"vec": 0}
	cfg.Limits.Props = 0
	cfg.Catalog.Driver = "postgres"
	cfg.Server.RateLimit = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limits.vec")
	assert.Contains(t, err.Error(), "limits.props")
	assert.Contains(t, err.Error(), "catalog.dsn")
	assert.Contains(t, err.Error(), "rate_limit")
}

func TestSaveRoundTrip(t *testing.T) {
	useMemFs(t)
	t.Setenv("HOME", "/home/test")

	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Server.Addr = ":6060"
	cfg.Limits.Queries["number"] = 42

	require.NoError(t, Save(cfg, "/home/test/.forte.yaml"))

	back, err := Load("/home/test/.forte.yaml")
	require.NoError(t, err)
	assert.Equal(t, ":6060", back.Server.Addr)
	assert.Equal(t, 42, back.Limits.Queries["number"])
}
