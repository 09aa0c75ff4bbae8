// Package parser turns a raw query string into an ast.Query using Participle.
package parser

import (
	"errors"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/satishbabariya/forte-go/query/ast"
	"github.com/satishbabariya/forte-go/query/diagnostics"
)

// rawQuery is the parse tree of a whole query. Commas inside brackets belong to
// the operand, so only top-level commas separate terms.
type rawQuery struct {
	Terms []*rawTerm `@@ ( Comma @@ )*`
}

// rawTerm is one term: an optional combination operator followed by either a
// contains test or an optionally anchored value / range.
type rawTerm struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Op       string      `@( Bang | Tick )?`
	Contains *rawOperand `(   At @@`
	Caret    bool        `  | @Caret?`
	Value    *rawOperand `    @@`
	Upper    *rawOperand `    ( Tilde @@`
	Dollar   bool        `    | @Dollar )? )`
}

type rawOperand struct {
	Pos    lexer.Position
	EndPos lexer.Position

	List   *rawList `  LBracket @@ RBracket`
	Vector *rawList `| LAngle @@ RAngle`
	Word   string   `| @Word`
}

type rawList struct {
	Items []string `( @Word ( Comma @Word )* )?`
}

var parser = participle.MustBuild[rawQuery](
	participle.Lexer(QueryLexer),
	participle.Elide("Whitespace"),
)

// Parse parses a query. Syntax errors are reported as InvalidPattern with the
// position of the offending token.
func Parse(query string) (*ast.Query, error) {
	raw, err := parser.ParseString("", query)
	if err != nil {
		return nil, syntaxError(query, err)
	}

	q := &ast.Query{
		Source: query,
		Terms:  make([]ast.Term, 0, len(raw.Terms)),
	}
	for _, rt := range raw.Terms {
		term, err := convertTerm(query, rt)
		if err != nil {
			return nil, err
		}
		q.Terms = append(q.Terms, term)
	}
	return q, nil
}

// MustParse parses a query, panicking on error.
func MustParse(query string) *ast.Query {
	q, err := Parse(query)
	if err != nil {
		panic(err)
	}
	return q
}

func convertTerm(query string, rt *rawTerm) (ast.Term, error) {
	term := ast.Term{
		Span: diagnostics.NewSpan(rt.Pos.Offset, rt.EndPos.Offset),
	}
	switch rt.Op {
	case "!":
		term.Mode = ast.Exclude
	case "`":
		term.Mode = ast.Union
		term.Explicit = true
	}

	if rt.Contains != nil {
		term.Shape = ast.Contains
		term.Operand = convertOperand(rt.Contains)
		return term, nil
	}

	term.Operand = convertOperand(rt.Value)
	switch {
	case rt.Upper != nil:
		if rt.Caret {
			return term, diagnostics.At(diagnostics.InvalidPattern, query, term.Span,
				"range endpoints cannot be anchored")
		}
		upper := convertOperand(rt.Upper)
		term.Shape = ast.Range
		term.Upper = &upper
	case rt.Caret && rt.Dollar:
		term.Shape = ast.Anchored
	case rt.Caret:
		term.Shape = ast.Prefix
	case rt.Dollar:
		term.Shape = ast.Suffix
	case term.Operand.Kind == ast.Word && term.Operand.Text == "null":
		term.Shape = ast.Null
	default:
		term.Shape = ast.Bare
	}
	return term, nil
}

func convertOperand(ro *rawOperand) ast.Operand {
	op := ast.Operand{
		Span: diagnostics.NewSpan(ro.Pos.Offset, ro.EndPos.Offset),
	}
	switch {
	case ro.List != nil:
		op.Kind = ast.List
		op.Items = ro.List.Items
	case ro.Vector != nil:
		op.Kind = ast.Vector
		op.Items = ro.Vector.Items
	default:
		op.Kind = ast.Word
		op.Text = ro.Word
	}
	return op
}

func syntaxError(query string, err error) error {
	var perr participle.Error
	if !errors.As(err, &perr) {
		return diagnostics.New(diagnostics.InvalidPattern, "%v", err)
	}
	offset := perr.Position().Offset
	span := diagnostics.NewSpan(offset, offset+1).Clamp(len(query))
	return diagnostics.At(diagnostics.InvalidPattern, query, span, "%s", perr.Message())
}
