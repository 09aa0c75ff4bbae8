// Package compiler lowers parsed query terms into predicates over catalog
// records. Each term is compiled for one target field; the same syntactic shape
// can mean different things on different fields (a bare run is equality on a
// string field, fuzzy containment on primeForm and a positional pattern on vec).
package compiler

import (
	"errors"
	"strings"

	"github.com/satishbabariya/forte-go/catalog"
	"github.com/satishbabariya/forte-go/query/ast"
	"github.com/satishbabariya/forte-go/query/diagnostics"
	"github.com/satishbabariya/forte-go/query/parser"
)

// Predicate reports whether a record satisfies a clause.
type Predicate func(r *catalog.Record) bool

// Clause is a compiled term.
type Clause struct {
	Mode     ast.Mode
	Explicit bool
	Kind     ast.Kind
	Field    catalog.Field
	// Match is nil for range clauses, which the executor resolves against the
	// table's canonical order.
	Match Predicate
	// Lower and Upper are the endpoints of a range clause.
	Lower, Upper string
	Span         diagnostics.Span
	Source       string
}

// Plan is a compiled query.
type Plan struct {
	Query   string
	Field   catalog.Field
	// AnyField is set when each clause matches a record if any field matches.
	AnyField bool
	Clauses  []Clause
}

// StartsWithExclusion reports whether evaluation starts from the whole catalog.
func (p *Plan) StartsWithExclusion() bool {
	return len(p.Clauses) > 0 && p.Clauses[0].Mode == ast.Exclude
}

// Compile parses and compiles a query for one field.
func Compile(query string, field catalog.Field) (*Plan, error) {
	q, err := parser.Parse(query)
	if err != nil {
		return nil, err
	}
	return CompileQuery(q, field)
}

// CompileQuery compiles a parsed query for one field.
func CompileQuery(q *ast.Query, field catalog.Field) (*Plan, error) {
	plan := &Plan{
		Query:   q.Source,
		Field:   field,
		Clauses: make([]Clause, 0, len(q.Terms)),
	}
	for _, term := range q.Terms {
		clause, err := CompileTerm(q.Source, term, field)
		if err != nil {
			return nil, err
		}
		plan.Clauses = append(plan.Clauses, clause)
	}
	return plan, nil
}

// CompileAny parses and compiles a query that matches against every field.
func CompileAny(query string) (*Plan, error) {
	q, err := parser.Parse(query)
	if err != nil {
		return nil, err
	}
	return CompileAnyQuery(q)
}

// CompileAnyQuery compiles each term for every field it is valid on and ORs the
// results. A term that is valid on no field is an InvalidPattern.
func CompileAnyQuery(q *ast.Query) (*Plan, error) {
	plan := &Plan{
		Query:    q.Source,
		AnyField: true,
		Clauses:  make([]Clause, 0, len(q.Terms)),
	}
	for _, term := range q.Terms {
		var (
			alts     []Clause
			firstErr error
		)
		for _, f := range catalog.Fields {
			c, err := CompileTerm(q.Source, term, f)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			alts = append(alts, c)
		}
		switch {
		case len(alts) == 0:
			return nil, diagnostics.At(diagnostics.InvalidPattern, q.Source, term.Span,
				"term %q is not valid for any field: %s", term.String(), messageOf(firstErr))
		case alts[0].Kind == ast.KindRange:
			// only the number field accepts ranges
			plan.Clauses = append(plan.Clauses, alts[0])
		default:
			clause := alts[0]
			clause.Match = anyOf(alts)
			plan.Clauses = append(plan.Clauses, clause)
		}
	}
	return plan, nil
}

func anyOf(alts []Clause) Predicate {
	preds := make([]Predicate, len(alts))
	for i, c := range alts {
		preds[i] = c.Match
	}
	return func(r *catalog.Record) bool {
		for _, p := range preds {
			if p(r) {
				return true
			}
		}
		return false
	}
}

func messageOf(err error) string {
	var de *diagnostics.Error
	if errors.As(err, &de) {
		return de.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// CompileTerm lowers a single term for field.
func CompileTerm(query string, term ast.Term, field catalog.Field) (Clause, error) {
	c := Clause{
		Mode:     term.Mode,
		Explicit: term.Explicit,
		Field:    field,
		Span:     term.Span,
		Source:   term.String(),
	}
	var err error
	switch {
	case field.IsStringValued():
		err = compileString(&c, query, term)
	case field == catalog.FieldPrimeForm:
		err = compilePrimeForm(&c, query, term)
	case field == catalog.FieldVec:
		err = compileVec(&c, query, term)
	default:
		err = diagnostics.New(diagnostics.InvalidProperty, "unknown field %d", int(field))
	}
	if err != nil {
		return Clause{}, err
	}
	return c, nil
}

func invalid(query string, span diagnostics.Span, format string, args ...any) error {
	return diagnostics.At(diagnostics.InvalidPattern, query, span, format, args...)
}

func compileString(c *Clause, query string, term ast.Term) error {
	f := c.Field
	if term.Shape == ast.Null {
		c.Kind = ast.KindNull
		c.Match = func(r *catalog.Record) bool {
			_, ok := r.Text(f)
			return !ok
		}
		return nil
	}
	if term.Operand.Kind != ast.Word {
		return invalid(query, term.Operand.Span, "%s does not accept %s", f, term.Operand.String())
	}
	x := term.Operand.Text

	switch term.Shape {
	case ast.Range:
		if f != catalog.FieldNumber {
			return invalid(query, term.Span, "ranges are only supported on %s", catalog.FieldNumber)
		}
		if term.Upper.Kind != ast.Word {
			return invalid(query, term.Upper.Span, "range endpoint must be a set-class number")
		}
		c.Kind = ast.KindRange
		c.Lower = x
		c.Upper = term.Upper.Text
		return nil
	case ast.Prefix:
		c.Kind = ast.KindPrefix
		c.Match = stringMatch(f, func(v string) bool { return strings.HasPrefix(v, x) })
	case ast.Suffix:
		c.Kind = ast.KindSuffix
		c.Match = stringMatch(f, func(v string) bool { return strings.HasSuffix(v, x) })
	case ast.Contains:
		c.Kind = ast.KindContains
		c.Match = stringMatch(f, func(v string) bool { return strings.Contains(v, x) })
	default:
		c.Kind = ast.KindExact
		c.Match = stringMatch(f, func(v string) bool { return v == x })
	}
	return nil
}

func stringMatch(f catalog.Field, test func(string) bool) Predicate {
	return func(r *catalog.Record) bool {
		v, ok := r.Text(f)
		return ok && test(v)
	}
}

func never(*catalog.Record) bool { return false }

// tokenRun decodes an operand into pitch-class tokens.
func tokenRun(query string, op ast.Operand) (catalog.PrimeForm, error) {
	if op.Kind == ast.List {
		for _, item := range op.Items {
			if len(item) != 1 {
				return nil, invalid(query, op.Span, "prime form entry %q must be a single character", item)
			}
		}
	}
	run := op.Run()
	tokens := make(catalog.PrimeForm, 0, len(run))
	for i := 0; i < len(run); i++ {
		v, ok := catalog.TokenValue(run[i])
		if !ok || v > 11 {
			return nil, invalid(query, op.Span, "invalid prime form token %q", run[i])
		}
		tokens = append(tokens, v)
	}
	return tokens, nil
}

func compilePrimeForm(c *Clause, query string, term ast.Term) error {
	if term.Shape == ast.Null {
		c.Kind = ast.KindNull
		c.Match = never
		return nil
	}
	if term.Shape == ast.Range {
		return invalid(query, term.Span, "ranges are only supported on %s", catalog.FieldNumber)
	}
	if term.Operand.Kind == ast.Vector {
		return invalid(query, term.Operand.Span, "%s does not accept interval vectors", catalog.FieldPrimeForm)
	}
	tokens, err := tokenRun(query, term.Operand)
	if err != nil {
		return err
	}

	switch {
	case term.Operand.Kind == ast.List && (term.Shape == ast.Bare || term.Shape == ast.Anchored):
		c.Kind = ast.KindBracketLiteral
		c.Match = func(r *catalog.Record) bool { return r.PrimeForm.Equal(tokens) }
	case term.Shape == ast.Anchored:
		c.Kind = ast.KindExact
		c.Match = func(r *catalog.Record) bool { return r.PrimeForm.Equal(tokens) }
	case term.Shape == ast.Prefix:
		c.Kind = ast.KindPrefix
		c.Match = func(r *catalog.Record) bool {
			n := len(tokens)
			return len(r.PrimeForm) >= n && r.PrimeForm[:n].Equal(tokens)
		}
	case term.Shape == ast.Suffix:
		c.Kind = ast.KindSuffix
		c.Match = func(r *catalog.Record) bool {
			n, m := len(tokens), len(r.PrimeForm)
			return m >= n && r.PrimeForm[m-n:].Equal(tokens)
		}
	default:
		// bare runs and @X are fuzzy containment
		c.Kind = ast.KindContains
		var want [12]bool
		for _, v := range tokens {
			want[v] = true
		}
		c.Match = func(r *catalog.Record) bool {
			for v, needed := range want {
				if needed && !r.PrimeForm.Has(v) {
					return false
				}
			}
			return true
		}
	}
	return nil
}

// wildcard marks a position that matches any interval count.
const wildcard = -1

// vecPattern decodes an operand into positions. Vector literals take one value
// per entry, words one per character.
func vecPattern(query string, op ast.Operand) ([]int, error) {
	var cells []string
	if op.Kind == ast.Vector {
		cells = op.Items
	} else {
		cells = strings.Split(op.Text, "")
	}
	pattern := make([]int, len(cells))
	for i, cell := range cells {
		if len(cell) != 1 {
			return nil, invalid(query, op.Span, "vector entry %q must be a single character", cell)
		}
		if cell[0] == 'X' {
			pattern[i] = wildcard
			continue
		}
		v, ok := catalog.TokenValue(cell[0])
		if !ok {
			return nil, invalid(query, op.Span, "invalid vector entry %q", cell)
		}
		pattern[i] = v
	}
	return pattern, nil
}

func compileVec(c *Clause, query string, term ast.Term) error {
	if term.Shape == ast.Null {
		c.Kind = ast.KindNull
		c.Match = never
		return nil
	}
	if term.Shape == ast.Range {
		return invalid(query, term.Span, "ranges are only supported on %s", catalog.FieldNumber)
	}
	if term.Operand.Kind == ast.List {
		return invalid(query, term.Operand.Span, "%s does not accept bracket lists", catalog.FieldVec)
	}
	pattern, err := vecPattern(query, term.Operand)
	if err != nil {
		return err
	}
	n := len(pattern)
	if n == 0 || n > catalog.VectorWidth {
		return invalid(query, term.Operand.Span, "vector pattern must have 1 to %d positions, got %d", catalog.VectorWidth, n)
	}

	switch term.Shape {
	case ast.Bare, ast.Anchored:
		if n != catalog.VectorWidth {
			return invalid(query, term.Operand.Span, "vector pattern must have exactly %d positions, got %d", catalog.VectorWidth, n)
		}
		if term.Operand.Kind == ast.Vector {
			for _, v := range pattern {
				if v == wildcard {
					return invalid(query, term.Operand.Span, "vector literals cannot contain wildcards")
				}
			}
		}
		if term.Shape == ast.Bare && term.Operand.Kind == ast.Word {
			c.Kind = ast.KindPositionalPattern
		} else {
			c.Kind = ast.KindExact
		}
		c.Match = func(r *catalog.Record) bool { return matchAt(r.Vec, pattern, 0) }
	case ast.Prefix:
		c.Kind = ast.KindPrefix
		c.Match = func(r *catalog.Record) bool { return matchAt(r.Vec, pattern, 0) }
	case ast.Suffix:
		c.Kind = ast.KindSuffix
		off := catalog.VectorWidth - n
		c.Match = func(r *catalog.Record) bool { return matchAt(r.Vec, pattern, off) }
	case ast.Contains:
		c.Kind = ast.KindContains
		c.Match = func(r *catalog.Record) bool {
			for off := 0; off+n <= catalog.VectorWidth; off++ {
				if matchAt(r.Vec, pattern, off) {
					return true
				}
			}
			return false
		}
	}
	return nil
}

func matchAt(vec catalog.IntervalVector, pattern []int, off int) bool {
	for i, want := range pattern {
		if want != wildcard && vec[off+i] != want {
			return false
		}
	}
	return true
}
