// Package query is the entry point of the catalog query engine. An Engine ties
// together input validation, parsing, compilation, evaluation and projection
// over a catalog.State.
package query

import (
	"context"

	"github.com/satishbabariya/forte-go/catalog"
	"github.com/satishbabariya/forte-go/query/cache"
	"github.com/satishbabariya/forte-go/query/columns"
	"github.com/satishbabariya/forte-go/query/compiler"
	"github.com/satishbabariya/forte-go/query/diagnostics"
	"github.com/satishbabariya/forte-go/query/executor"
	"github.com/satishbabariya/forte-go/query/validation"
)

// DefaultCacheSize is the number of compiled plans kept by default.
const DefaultCacheSize = 256

// Options configures an Engine.
type Options struct {
	Limits    validation.Limits
	CacheSize int
}

// Engine answers queries against the catalog held by a State.
type Engine struct {
	state *catalog.State
	guard *validation.Guard
	plans *cache.LRU[*compiler.Plan]
	exec  *executor.Executor
}

// NewEngine creates an engine. The state may still be unloaded; queries fail
// with DatasetNotReady until it is published.
func NewEngine(state *catalog.State, opts Options) *Engine {
	size := opts.CacheSize
	if size == 0 {
		size = DefaultCacheSize
	}
	return &Engine{
		state: state,
		guard: validation.NewGuard(opts.Limits),
		plans: cache.New[*compiler.Plan](size),
		exec:  executor.NewExecutor(),
	}
}

// Request is a single-field query.
type Request struct {
	Field string
	Query string
	Props string
}

// FieldQuery is one field's part of a multi-field query.
type FieldQuery struct {
	Field string
	Query string
}

// Ready reports whether the catalog has been loaded.
func (e *Engine) Ready() bool {
	return e.state.Ready()
}

// Table returns the loaded catalog.
func (e *Engine) Table() (*catalog.Table, error) {
	return e.state.Table()
}

// CacheStats returns plan cache statistics.
func (e *Engine) CacheStats() cache.Stats {
	return e.plans.GetStats()
}

// Search evaluates a query against one field.
func (e *Engine) Search(ctx context.Context, req Request) ([]columns.Row, error) {
	table, err := e.state.Table()
	if err != nil {
		return nil, err
	}
	sel, err := e.selection(req.Props)
	if err != nil {
		return nil, err
	}
	records, err := e.searchField(ctx, table, req.Field, req.Query)
	if err != nil {
		return nil, err
	}
	return columns.Project(records, sel), nil
}

// SearchAll evaluates a query where each term matches a record if it matches
// any field.
func (e *Engine) SearchAll(ctx context.Context, query, props string) ([]columns.Row, error) {
	table, err := e.state.Table()
	if err != nil {
		return nil, err
	}
	sel, err := e.selection(props)
	if err != nil {
		return nil, err
	}
	if err := e.guard.CheckQuery(validation.EndpointAll, query); err != nil {
		return nil, err
	}
	plan, err := e.plans.GetOrCompute(cache.Key(validation.EndpointAll, query), func() (*compiler.Plan, error) {
		return compiler.CompileAny(query)
	})
	if err != nil {
		return nil, err
	}
	records, err := e.exec.Execute(ctx, table, plan)
	if err != nil {
		return nil, err
	}
	return columns.Project(records, sel), nil
}

// SearchMulti evaluates one query per field and intersects the results. The
// order of the first field query is kept. With no field queries the whole
// catalog is returned.
func (e *Engine) SearchMulti(ctx context.Context, queries []FieldQuery, props string) ([]columns.Row, error) {
	if len(queries) == 0 {
		return e.Dataset(ctx, props)
	}
	table, err := e.state.Table()
	if err != nil {
		return nil, err
	}
	sel, err := e.selection(props)
	if err != nil {
		return nil, err
	}

	var result []*catalog.Record
	for i, fq := range queries {
		records, err := e.searchField(ctx, table, fq.Field, fq.Query)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			result = records
			continue
		}
		keep := make(map[*catalog.Record]bool, len(records))
		for _, r := range records {
			keep[r] = true
		}
		filtered := result[:0:0]
		for _, r := range result {
			if keep[r] {
				filtered = append(filtered, r)
			}
		}
		result = filtered
	}
	if len(result) == 0 {
		return nil, diagnostics.New(diagnostics.NoMatch, "no set classes match every field query")
	}
	return columns.Project(result, sel), nil
}

// Dataset returns the whole catalog in canonical order.
func (e *Engine) Dataset(ctx context.Context, props string) ([]columns.Row, error) {
	table, err := e.state.Table()
	if err != nil {
		return nil, err
	}
	sel, err := e.selection(props)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return columns.Project(allRecords(table), sel), nil
}

// Values returns the value of one field for every record in canonical order.
// Null values are nil.
func (e *Engine) Values(ctx context.Context, field string) ([]*string, error) {
	table, err := e.state.Table()
	if err != nil {
		return nil, err
	}
	f, err := parseField(field)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return columns.Values(allRecords(table), f), nil
}

func (e *Engine) selection(props string) (columns.Selection, error) {
	if err := e.guard.CheckProps(props); err != nil {
		return columns.Selection{}, err
	}
	return columns.ParseSelection(props)
}

func (e *Engine) searchField(ctx context.Context, table *catalog.Table, field, query string) ([]*catalog.Record, error) {
	f, err := parseField(field)
	if err != nil {
		return nil, err
	}
	if err := e.guard.CheckQuery(f.String(), query); err != nil {
		return nil, err
	}
	plan, err := e.plans.GetOrCompute(cache.Key(f.String(), query), func() (*compiler.Plan, error) {
		return compiler.Compile(query, f)
	})
	if err != nil {
		return nil, err
	}
	return e.exec.Execute(ctx, table, plan)
}

func parseField(name string) (catalog.Field, error) {
	f, ok := catalog.ParseField(name)
	if !ok {
		return 0, diagnostics.New(diagnostics.InvalidProperty, "unknown field %q", name)
	}
	return f, nil
}

func allRecords(table *catalog.Table) []*catalog.Record {
	records := make([]*catalog.Record, table.Len())
	for i := range records {
		records[i] = table.At(i)
	}
	return records
}
