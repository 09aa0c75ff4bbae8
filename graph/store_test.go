package graph

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

func TestLoad(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/graphs/zrelations.svg":      "<svg/>",
		"/graphs/hexachords/6-z29.dot": "graph {}",
		"/graphs/complements.json":    "{}",
		"/graphs/README.md":           "ignored",
	})

	store, err := Load(fs, "/graphs", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"complements.json", "hexachords/6-z29.dot", "zrelations.svg"}, store.Names())

	a, err := store.Get("/zrelations.svg")
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", a.ContentType)
	assert.Equal(t, "<svg/>", string(a.Data))

	dot, err := store.Get("hexachords/6-z29.dot")
	require.NoError(t, err)
	assert.Equal(t, "text/vnd.graphviz", dot.ContentType)

	_, err = store.Get("README.md")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadCustomPatterns(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/g/a.svg":     "a",
		"/g/sub/b.svg": "b",
	})
	store, err := Load(fs, "/g", []string{"*.svg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.svg"}, store.Names())

	_, err = Load(fs, "/g", []string{"[unclosed"})
	assert.Error(t, err)
}

func TestLoadMissingDirectory(t *testing.T) {
	store, err := Load(afero.NewMemMapFs(), "/nope", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())

	store, err = Load(afero.NewMemMapFs(), "", nil)
	require.NoError(t, err)
	assert.Empty(t, store.Names())
}

func TestGlob(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/g/hexachords/6-z29.svg": "",
		"/g/hexachords/6-z50.svg": "",
		"/g/trichords/3-1.svg":    "",
	})
	store, err := Load(fs, "/g", nil)
	require.NoError(t, err)

	names, err := store.Glob("hexachords/*")
	require.NoError(t, err)
	assert.Equal(t, []string{"hexachords/6-z29.svg", "hexachords/6-z50.svg"}, names)

	_, err = store.Glob("{a")
	assert.Error(t, err)
}
