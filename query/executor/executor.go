// Package executor evaluates compiled plans against a catalog table.
//
// Clauses are folded left to right over a working set. A union clause appends
// the catalog records it matches that are not already present, in canonical
// order; an exclusion clause removes the records it matches. The fold starts
// from the whole catalog when the first clause is an exclusion, and from the
// empty set otherwise.
package executor

import (
	"context"

	"github.com/satishbabariya/forte-go/catalog"
	"github.com/satishbabariya/forte-go/internal/debug"
	"github.com/satishbabariya/forte-go/query/ast"
	"github.com/satishbabariya/forte-go/query/compiler"
	"github.com/satishbabariya/forte-go/query/diagnostics"
)

// Executor evaluates plans. It holds no state; the zero value is ready to use.
type Executor struct{}

// NewExecutor creates an executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// workingSet is an ordered set of table positions.
type workingSet struct {
	order  []int
	member map[int]bool
}

func newWorkingSet(capacity int) *workingSet {
	return &workingSet{
		order:  make([]int, 0, capacity),
		member: make(map[int]bool, capacity),
	}
}

func (w *workingSet) add(pos int) {
	if w.member[pos] {
		return
	}
	w.member[pos] = true
	w.order = append(w.order, pos)
}

// retain keeps the positions for which keep returns true.
func (w *workingSet) retain(keep func(pos int) bool) {
	kept := w.order[:0]
	for _, pos := range w.order {
		if keep(pos) {
			kept = append(kept, pos)
		} else {
			delete(w.member, pos)
		}
	}
	w.order = kept
}

// Execute folds the plan's clauses over table. An empty result is NoMatch, or
// InvalidRangeQuery when a range clause failed to resolve along the way.
func (e *Executor) Execute(ctx context.Context, table *catalog.Table, plan *compiler.Plan) ([]*catalog.Record, error) {
	set := newWorkingSet(table.Len())
	if plan.StartsWithExclusion() {
		for i := 0; i < table.Len(); i++ {
			set.add(i)
		}
	}

	var rangeErr error
	for _, clause := range plan.Clauses {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		matched, err := e.matchClause(table, clause)
		if err != nil {
			// a failed range contributes nothing
			debug.Debug("range did not resolve", "clause", clause.Source, "error", err)
			rangeErr = err
			continue
		}

		switch clause.Mode {
		case ast.Exclude:
			set.retain(func(pos int) bool { return !matched[pos] })
		default:
			for i := 0; i < table.Len(); i++ {
				if matched[i] {
					set.add(i)
				}
			}
		}
	}

	if len(set.order) == 0 {
		if rangeErr != nil {
			return nil, rangeErr
		}
		return nil, diagnostics.New(diagnostics.NoMatch, "no set classes match %q", plan.Query)
	}

	records := make([]*catalog.Record, len(set.order))
	for i, pos := range set.order {
		records[i] = table.At(pos)
	}
	return records, nil
}

// matchClause returns the matched table positions as a bitmap.
func (e *Executor) matchClause(table *catalog.Table, clause compiler.Clause) ([]bool, error) {
	matched := make([]bool, table.Len())
	if clause.Kind == ast.KindRange {
		positions, err := ResolveRange(table, clause.Lower, clause.Upper)
		if err != nil {
			return nil, err
		}
		for _, pos := range positions {
			matched[pos] = true
		}
		return matched, nil
	}
	for i := 0; i < table.Len(); i++ {
		matched[i] = clause.Match(table.At(i))
	}
	return matched, nil
}
