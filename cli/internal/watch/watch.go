// Package watch reruns a callback when any of a set of files changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/satishbabariya/forte-go/internal/debug"
)

// DefaultDebounce coalesces editor save bursts into one callback.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches files for changes
type Watcher struct {
	files    map[string]bool
	callback func(path string) error
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// NewWatcher watches the directories holding files. Directories are watched
// instead of the files so atomic rename-on-save is seen as a Create.
func NewWatcher(files []string, debounce time.Duration, callback func(path string) error) (*Watcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		files:    make(map[string]bool, len(files)),
		callback: callback,
		debounce: debounce,
		watcher:  watcher,
	}
	dirs := map[string]bool{}
	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to get absolute path: %w", err)
		}
		w.files[absPath] = true
		dir := filepath.Dir(absPath)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch directory: %w", err)
		}
		dirs[dir] = true
	}
	return w, nil
}

// Run blocks until ctx is done, invoking the callback once per debounced
// change of a watched file. Callback errors are logged, not returned.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	var debounceCh <-chan time.Time
	pending := map[string]bool{}

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			eventPath, err := filepath.Abs(event.Name)
			if err != nil || !w.files[eventPath] {
				continue
			}
			pending[eventPath] = true
			timer.Reset(w.debounce)
			debounceCh = timer.C

		case <-debounceCh:
			debounceCh = nil
			for path := range pending {
				delete(pending, path)
				if err := w.callback(path); err != nil {
					debug.Warn("watch callback failed", "file", path, "error", err)
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			debug.Warn("watch error", "error", err)

		case <-ctx.Done():
			timer.Stop()
			return nil
		}
	}
}
