package query

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/forte-go/catalog"
	"github.com/satishbabariya/forte-go/query/columns"
	"github.com/satishbabariya/forte-go/query/diagnostics"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	table, err := catalog.Default()
	require.NoError(t, err)
	return NewEngine(catalog.NewReadyState(table), Options{})
}

func rowNumbers(rows []columns.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Record.Number
	}
	return out
}

func TestSearch(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	rows, err := e.Search(ctx, Request{Field: "number", Query: "2-1,2-1~2-2,^3-3,-z50$"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2-1", "2-2", "3-3A", "3-3B", "6-z50"}, rowNumbers(rows))

	rows, err = e.Search(ctx, Request{Field: "primeForm", Query: "[0,1,4]", Props: "vec,number"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	data, err := rows[0].MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"number":"3-3A","vec":"<1,0,1,1,0,0>"}`, string(data))
}

func TestSearchErrors(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  Request
		want diagnostics.Kind
	}{
		{"unknown field", Request{Field: "name", Query: "x"}, diagnostics.InvalidProperty},
		{"bad props", Request{Field: "number", Query: "3-1", Props: "number,name"}, diagnostics.InvalidProperty},
		{"too long", Request{Field: "vec", Query: strings.Repeat("X", 30)}, diagnostics.QueryTooLong},
		{"bad pattern", Request{Field: "vec", Query: "10110"}, diagnostics.InvalidPattern},
		{"multi-character prime form entry", Request{Field: "primeForm", Query: "[01,4]"}, diagnostics.InvalidPattern},
		{"self range", Request{Field: "number", Query: "3-1~3-1"}, diagnostics.InvalidRangeQuery},
		{"no match", Request{Field: "number", Query: "3-99"}, diagnostics.NoMatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Search(ctx, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.want, diagnostics.KindOf(err))
		})
	}
}

func TestLengthCapBoundary(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	// 29 characters passes the guard and fails on its own merits
	_, err := e.Search(ctx, Request{Field: "vec", Query: strings.Repeat("X", 29)})
	assert.Equal(t, diagnostics.InvalidPattern, diagnostics.KindOf(err))

	_, err = e.Search(ctx, Request{Field: "vec", Query: strings.Repeat("X", 30)})
	assert.Equal(t, diagnostics.QueryTooLong, diagnostics.KindOf(err))
}

func TestDatasetNotReady(t *testing.T) {
	state := &catalog.State{}
	e := NewEngine(state, Options{})
	ctx := context.Background()
	assert.False(t, e.Ready())

	_, err := e.Search(ctx, Request{Field: "number", Query: "3-1"})
	assert.ErrorIs(t, err, diagnostics.ErrDatasetNotReady)
	_, err = e.SearchAll(ctx, "3-1", "")
	assert.ErrorIs(t, err, diagnostics.ErrDatasetNotReady)
	_, err = e.Dataset(ctx, "")
	assert.ErrorIs(t, err, diagnostics.ErrDatasetNotReady)
	_, err = e.Values(ctx, "vec")
	assert.ErrorIs(t, err, diagnostics.ErrDatasetNotReady)

	table, err := catalog.Default()
	require.NoError(t, err)
	require.NoError(t, state.Publish(table))

	rows, err := e.Search(ctx, Request{Field: "number", Query: "3-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"3-1"}, rowNumbers(rows))
}

func TestSearchAll(t *testing.T) {
	e := newEngine(t)
	rows, err := e.SearchAll(context.Background(), "6-z50,[0,1,4]", "number")
	require.NoError(t, err)
	// 6-z50 by number, 6-z29 by its z and complement, then the prime form
	assert.Equal(t, []string{"6-z29", "6-z50", "3-3A"}, rowNumbers(rows))
}

func TestSearchMulti(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	rows, err := e.SearchMulti(ctx, []FieldQuery{
		{Field: "number", Query: "^3"},
		{Field: "vec", Query: "101100"},
	}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"3-3A", "3-3B"}, rowNumbers(rows))

	_, err = e.SearchMulti(ctx, []FieldQuery{
		{Field: "number", Query: "^3"},
		{Field: "number", Query: "^4"},
	}, "")
	assert.ErrorIs(t, err, diagnostics.ErrNoMatch)

	rows, err = e.SearchMulti(ctx, nil, "number")
	require.NoError(t, err)
	assert.Len(t, rows, 352)
}

func TestDatasetMatchesFullProjection(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	all, err := e.Dataset(ctx, "")
	require.NoError(t, err)
	explicit, err := e.Dataset(ctx, "inversion,complement,z,vec,primeForm,number")
	require.NoError(t, err)

	a, err := json.Marshal(all)
	require.NoError(t, err)
	b, err := json.Marshal(explicit)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))

	table, err := e.Table()
	require.NoError(t, err)
	raw, err := json.Marshal(table.Records())
	require.NoError(t, err)
	assert.Equal(t, string(raw), string(a))
}

func TestValues(t *testing.T) {
	e := newEngine(t)
	values, err := e.Values(context.Background(), "complement")
	require.NoError(t, err)
	require.Len(t, values, 352)
	require.NotNil(t, values[0])
	assert.Equal(t, "12-1", *values[0])

	_, err = e.Values(context.Background(), "colour")
	assert.ErrorIs(t, err, diagnostics.ErrInvalidProperty)
}

func TestPlanCacheIsUsed(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := e.Search(ctx, Request{Field: "number", Query: "^4"})
		require.NoError(t, err)
	}
	stats := e.CacheStats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, 1, stats.Size)
}
