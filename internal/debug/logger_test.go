package debug

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"":      slog.LevelInfo,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"off":   slog.LevelError + 1,
	}
	for name, want := range tests {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Options{Level: "debug", Format: "json", Writer: &buf}))
	t.Cleanup(func() { _ = Init(Options{Level: "off"}) })

	assert.True(t, Enabled())
	With("component", "test").Debug("hello", "n", 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "test", entry["component"])
	assert.EqualValues(t, 1, entry["n"])
}

func TestInitLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Options{Level: "warn", Writer: &buf}))
	t.Cleanup(func() { _ = Init(Options{Level: "off"}) })

	assert.False(t, Enabled())
	Info("dropped")
	assert.Empty(t, buf.String())
	Warn("kept")
	assert.Contains(t, buf.String(), "kept")

	assert.Error(t, Init(Options{Format: "xml"}))
}
