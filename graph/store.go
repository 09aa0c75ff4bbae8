// Package graph serves pre-rendered graph artifacts (SVG drawings, JSON and DOT
// descriptions of set-class relations) from a directory.
package graph

import (
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/satishbabariya/forte-go/internal/debug"
)

// DefaultPatterns are the artifact globs used when none are configured.
var DefaultPatterns = []string{"**/*.svg", "**/*.json", "**/*.dot"}

// ErrNotFound is returned for unknown artifact names.
var ErrNotFound = errors.New("graph artifact not found")

// Artifact is one loaded file.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// Store is an immutable set of artifacts keyed by slash-separated path relative
// to the artifact directory.
type Store struct {
	artifacts map[string]Artifact
	names     []string
}

// Empty returns a store with no artifacts.
func Empty() *Store {
	return &Store{artifacts: map[string]Artifact{}}
}

// Load reads every file under dir whose relative path matches one of patterns.
// A missing directory yields an empty store.
func Load(fsys afero.Fs, dir string, patterns []string) (*Store, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid graph pattern %q", p)
		}
	}

	store := Empty()
	if dir == "" {
		return store, nil
	}
	if ok, err := afero.DirExists(fsys, dir); err != nil {
		return nil, fmt.Errorf("failed to stat graph directory: %w", err)
	} else if !ok {
		debug.Warn("graph directory does not exist", "dir", dir)
		return store, nil
	}

	err := afero.Walk(fsys, dir, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if !matchAny(patterns, name) {
			return nil
		}
		data, err := afero.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		store.artifacts[name] = Artifact{
			Name:        name,
			ContentType: contentType(name),
			Data:        data,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for name := range store.artifacts {
		store.names = append(store.names, name)
	}
	sort.Strings(store.names)
	debug.Info("loaded graph artifacts", "dir", dir, "count", len(store.names))
	return store, nil
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if doublestar.MatchUnvalidated(p, name) {
			return true
		}
	}
	return false
}

func contentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".svg":
		return "image/svg+xml"
	case ".json":
		return "application/json"
	case ".dot", ".gv":
		return "text/vnd.graphviz"
	}
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Names returns the artifact names in sorted order.
func (s *Store) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of artifacts.
func (s *Store) Len() int {
	return len(s.names)
}

// Get returns an artifact by name. A leading slash is ignored.
func (s *Store) Get(name string) (Artifact, error) {
	a, ok := s.artifacts[strings.TrimPrefix(name, "/")]
	if !ok {
		return Artifact{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return a, nil
}

// Glob returns the names matching pattern.
func (s *Store) Glob(pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid graph pattern %q", pattern)
	}
	out := []string{}
	for _, name := range s.names {
		if doublestar.MatchUnvalidated(pattern, name) {
			out = append(out, name)
		}
	}
	return out, nil
}
