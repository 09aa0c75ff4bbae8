package catalog

import (
	"errors"
	"sync/atomic"

	"github.com/satishbabariya/forte-go/query/diagnostics"
)

// ErrAlreadyLoaded is returned when a table is published twice.
var ErrAlreadyLoaded = errors.New("catalog already loaded")

// State is the load lifecycle of the catalog: Unloaded until Publish succeeds,
// Ready(table) afterwards. The zero value is Unloaded and safe for concurrent use.
type State struct {
	table atomic.Pointer[Table]
}

// NewReadyState returns a State that is already Ready.
func NewReadyState(t *Table) *State {
	s := &State{}
	s.table.Store(t)
	return s
}

// Publish moves the state to Ready. It succeeds once.
func (s *State) Publish(t *Table) error {
	if t == nil {
		return errors.New("catalog: cannot publish a nil table")
	}
	if !s.table.CompareAndSwap(nil, t) {
		return ErrAlreadyLoaded
	}
	return nil
}

// Ready reports whether a table has been published.
func (s *State) Ready() bool {
	return s.table.Load() != nil
}

// Table returns the published table, or a DatasetNotReady error.
func (s *State) Table() (*Table, error) {
	t := s.table.Load()
	if t == nil {
		return nil, diagnostics.New(diagnostics.DatasetNotReady, "catalog is still loading")
	}
	return t, nil
}
