package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/forte-go/catalog"
	"github.com/satishbabariya/forte-go/query/ast"
	"github.com/satishbabariya/forte-go/query/diagnostics"
)

func defaultTable(t *testing.T) *catalog.Table {
	t.Helper()
	table, err := catalog.Default()
	require.NoError(t, err)
	return table
}

// matching returns the numbers of every record the single clause of query matches.
func matching(t *testing.T, table *catalog.Table, field catalog.Field, query string) []string {
	t.Helper()
	plan, err := Compile(query, field)
	require.NoError(t, err)
	require.Len(t, plan.Clauses, 1)
	c := plan.Clauses[0]
	require.NotNil(t, c.Match)

	var out []string
	for i := 0; i < table.Len(); i++ {
		if r := table.At(i); c.Match(r) {
			out = append(out, r.Number)
		}
	}
	return out
}

func TestCompileKinds(t *testing.T) {
	tests := []struct {
		field catalog.Field
		query string
		want  ast.Kind
	}{
		{catalog.FieldNumber, "3-1", ast.KindExact},
		{catalog.FieldNumber, "^3-1$", ast.KindExact},
		{catalog.FieldNumber, "^3", ast.KindPrefix},
		{catalog.FieldNumber, "1$", ast.KindSuffix},
		{catalog.FieldNumber, "@z", ast.KindContains},
		{catalog.FieldNumber, "2-1~2-2", ast.KindRange},
		{catalog.FieldZ, "null", ast.KindNull},
		{catalog.FieldPrimeForm, "[0,1,4]", ast.KindBracketLiteral},
		{catalog.FieldPrimeForm, "^[0,1,4]$", ast.KindBracketLiteral},
		{catalog.FieldPrimeForm, "^014$", ast.KindExact},
		{catalog.FieldPrimeForm, "014", ast.KindContains},
		{catalog.FieldPrimeForm, "^01", ast.KindPrefix},
		{catalog.FieldPrimeForm, "null", ast.KindNull},
		{catalog.FieldVec, "<1,0,1,1,0,0>", ast.KindExact},
		{catalog.FieldVec, "1X11X0", ast.KindPositionalPattern},
		{catalog.FieldVec, "^44", ast.KindPrefix},
		{catalog.FieldVec, "@CCC", ast.KindContains},
	}
	for _, tt := range tests {
		t.Run(tt.field.String()+"/"+tt.query, func(t *testing.T) {
			plan, err := Compile(tt.query, tt.field)
			require.NoError(t, err)
			require.Len(t, plan.Clauses, 1)
			assert.Equal(t, tt.want, plan.Clauses[0].Kind)
			assert.Equal(t, tt.field, plan.Clauses[0].Field)
		})
	}
}

func TestCompileInvalidPatterns(t *testing.T) {
	tests := []struct {
		field catalog.Field
		query string
	}{
		{catalog.FieldComplement, "3-1~3-2"},
		{catalog.FieldNumber, "[0,1]"},
		{catalog.FieldZ, "<1,0,1,1,0,0>"},
		{catalog.FieldPrimeForm, "0~1"},
		{catalog.FieldPrimeForm, "<1,0,1,1,0,0>"},
		{catalog.FieldPrimeForm, "01C"},
		{catalog.FieldPrimeForm, "[0,x]"},
		{catalog.FieldPrimeForm, "[01,4]"},
		{catalog.FieldPrimeForm, "[0,14]"},
		{catalog.FieldPrimeForm, "^[0,14]$"},
		{catalog.FieldVec, "10110"},
		{catalog.FieldVec, "1011000"},
		{catalog.FieldVec, "<1,0,1>"},
		{catalog.FieldVec, "<1,0,X,1,0,0>"},
		{catalog.FieldVec, "<10,0,1,1,0>"},
		{catalog.FieldVec, "[1,0]"},
		{catalog.FieldVec, "^1011001"},
		{catalog.FieldVec, "10x100"},
		{catalog.FieldVec, "1D1100"},
	}
	for _, tt := range tests {
		t.Run(tt.field.String()+"/"+tt.query, func(t *testing.T) {
			_, err := Compile(tt.query, tt.field)
			require.Error(t, err)
			assert.Equal(t, diagnostics.InvalidPattern, diagnostics.KindOf(err))
		})
	}
}

func TestStringPredicates(t *testing.T) {
	table := defaultTable(t)

	assert.Equal(t, []string{"4-z15A", "4-z15B", "4-z29A", "4-z29B"},
		matching(t, table, catalog.FieldNumber, "^4-z"))
	assert.Equal(t, []string{"3-3A"}, matching(t, table, catalog.FieldNumber, "3-3A"))
	assert.Empty(t, matching(t, table, catalog.FieldNumber, "3-3"))
	assert.Equal(t, []string{"4-z15A", "8-z15A"}, matching(t, table, catalog.FieldComplement, "z15B$"))

	nullComplements := matching(t, table, catalog.FieldComplement, "null")
	assert.Len(t, nullComplements, 8)
	for _, n := range nullComplements {
		assert.Regexp(t, `^6-`, n)
	}

	withZ := matching(t, table, catalog.FieldZ, "@z")
	assert.Len(t, withZ, 72)
}

func TestPrimeFormPredicates(t *testing.T) {
	table := defaultTable(t)

	assert.Equal(t, []string{"3-3A"}, matching(t, table, catalog.FieldPrimeForm, "[0,1,4]"))
	assert.Equal(t, []string{"3-3A"}, matching(t, table, catalog.FieldPrimeForm, "^014$"))
	assert.Equal(t, []string{"0-1"}, matching(t, table, catalog.FieldPrimeForm, "[]"))
	assert.Equal(t, []string{"4-19A"}, matching(t, table, catalog.FieldPrimeForm, "^0148"))
	assert.Empty(t, matching(t, table, catalog.FieldPrimeForm, "null"))

	fuzzy := matching(t, table, catalog.FieldPrimeForm, "0135")
	assert.Len(t, fuzzy, 76)
	assert.Equal(t, fuzzy, matching(t, table, catalog.FieldPrimeForm, "@5310"))
	assert.Equal(t, fuzzy, matching(t, table, catalog.FieldPrimeForm, "@0135531"))

	assert.Equal(t,
		matching(t, table, catalog.FieldPrimeForm, "021354679"),
		matching(t, table, catalog.FieldPrimeForm, "012345679"))
	assert.Len(t, matching(t, table, catalog.FieldPrimeForm, "012345679"), 5)
}

func TestVecPredicates(t *testing.T) {
	table := defaultTable(t)

	assert.Equal(t, []string{"3-3A", "3-3B"}, matching(t, table, catalog.FieldVec, "<1,0,1,1,0,0>"))
	assert.Equal(t, []string{"3-3A", "3-3B"}, matching(t, table, catalog.FieldVec, "101100"))
	assert.Equal(t, []string{"3-3A", "3-3B"}, matching(t, table, catalog.FieldVec, "^101100$"))
	assert.Equal(t, []string{"12-1"}, matching(t, table, catalog.FieldVec, "@CCC"))
	assert.Equal(t, []string{"12-1"}, matching(t, table, catalog.FieldVec, "C6$"))
	assert.Contains(t, matching(t, table, catalog.FieldVec, "^44"), "8-28")

	all := matching(t, table, catalog.FieldVec, "XXXXXX")
	assert.Len(t, all, table.Len())

	wild := matching(t, table, catalog.FieldVec, "1X11X0")
	assert.Contains(t, wild, "3-3A")
}

func TestCompileQueryPreservesModes(t *testing.T) {
	plan, err := Compile("!null,`@A,3-1", catalog.FieldComplement)
	require.NoError(t, err)
	require.Len(t, plan.Clauses, 3)
	assert.True(t, plan.StartsWithExclusion())
	assert.Equal(t, ast.Exclude, plan.Clauses[0].Mode)
	assert.Equal(t, ast.Union, plan.Clauses[1].Mode)
	assert.True(t, plan.Clauses[1].Explicit)
	assert.Equal(t, "`@A", plan.Clauses[1].Source)
}

func TestCompileAny(t *testing.T) {
	table := defaultTable(t)

	plan, err := CompileAny("3-3A,2-1~2-2,[0,1,4]")
	require.NoError(t, err)
	assert.True(t, plan.AnyField)
	require.Len(t, plan.Clauses, 3)
	assert.Equal(t, ast.KindRange, plan.Clauses[1].Kind)
	assert.Equal(t, "2-1", plan.Clauses[1].Lower)

	// 3-3A is a number, and the inversion of 3-3B
	r33b, _ := table.Lookup("3-3B")
	assert.True(t, plan.Clauses[0].Match(r33b))
	// [0,1,4] is only valid on primeForm
	r33a, _ := table.Lookup("3-3A")
	assert.True(t, plan.Clauses[2].Match(r33a))
	assert.False(t, plan.Clauses[2].Match(r33b))

	_, err = CompileAny("<1,0,1>")
	assert.Equal(t, diagnostics.InvalidPattern, diagnostics.KindOf(err))
}
