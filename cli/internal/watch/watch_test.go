package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWatcherRequiresFiles(t *testing.T) {
	_, err := NewWatcher(nil, 0, func(string) error { return nil })
	assert.Error(t, err)
}

func TestWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "catalog.json")
	other := filepath.Join(dir, "other.json")
	require.NoError(t, os.WriteFile(file, []byte("[]"), 0o644))

	var mu sync.Mutex
	var calls []string
	w, err := NewWatcher([]string{file}, 50*time.Millisecond, func(path string) error {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, path)
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(file, []byte("[1]"), 0o644))
	}
	require.NoError(t, os.WriteFile(other, []byte("[]"), 0o644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(calls) >= 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	abs, _ := filepath.Abs(file)
	for _, c := range calls {
		assert.Equal(t, abs, c)
	}
}
