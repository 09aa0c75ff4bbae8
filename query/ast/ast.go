// Package ast defines the parsed form of a catalog query.
//
// A query is a comma-separated list of terms. Each term carries the way it is
// combined with the working set (Mode), its syntactic shape and its operand. The
// shape is field-independent; the compiler lowers it to a field-specific Kind.
package ast

import (
	"strings"

	"github.com/satishbabariya/forte-go/query/diagnostics"
)

// Mode is how a term's matches combine with the working set.
type Mode int

const (
	// Union adds matches from the whole catalog.
	Union Mode = iota
	// Exclude removes matches from the working set.
	Exclude
)

// String returns the mode name.
func (m Mode) String() string {
	if m == Exclude {
		return "exclude"
	}
	return "union"
}

// Shape is the anchoring form of a term.
type Shape int

const (
	// Bare is an operand without operators: X.
	Bare Shape = iota
	// Prefix is ^X.
	Prefix
	// Suffix is X$.
	Suffix
	// Anchored is ^X$.
	Anchored
	// Contains is @X.
	Contains
	// Range is A~B.
	Range
	// Null is the bare word null.
	Null
)

var shapeNames = [...]string{"bare", "prefix", "suffix", "anchored", "contains", "range", "null"}

// String returns the shape name.
func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "unknown"
}

// OperandKind is the lexical form of an operand.
type OperandKind int

const (
	// Word is a run of letters, digits and dashes.
	Word OperandKind = iota
	// List is a bracketed list: [a,b,c].
	List
	// Vector is an angle-bracketed list: <a,b,c,d,e,f>.
	Vector
)

// Operand is the value part of a term.
type Operand struct {
	Kind OperandKind
	// Text is the word for Word operands.
	Text string
	// Items are the entries of List and Vector operands.
	Items []string
	Span  diagnostics.Span
}

// Run returns the operand's characters with list separators removed.
func (o Operand) Run() string {
	if o.Kind == Word {
		return o.Text
	}
	return strings.Join(o.Items, "")
}

// String renders the operand as written (without whitespace).
func (o Operand) String() string {
	switch o.Kind {
	case List:
		return "[" + strings.Join(o.Items, ",") + "]"
	case Vector:
		return "<" + strings.Join(o.Items, ",") + ">"
	default:
		return o.Text
	}
}

// Term is one comma-separated element of a query.
type Term struct {
	Mode Mode
	// Explicit is set when a union term was written with a leading backtick.
	Explicit bool
	Shape    Shape
	Operand  Operand
	// Upper is the second endpoint of a Range term.
	Upper *Operand
	Span  diagnostics.Span
}

// String renders the term in query syntax.
func (t Term) String() string {
	var b strings.Builder
	switch {
	case t.Mode == Exclude:
		b.WriteByte('!')
	case t.Explicit:
		b.WriteByte('`')
	}
	switch t.Shape {
	case Null:
		b.WriteString("null")
	case Contains:
		b.WriteString("@" + t.Operand.String())
	case Prefix:
		b.WriteString("^" + t.Operand.String())
	case Suffix:
		b.WriteString(t.Operand.String() + "$")
	case Anchored:
		b.WriteString("^" + t.Operand.String() + "$")
	case Range:
		b.WriteString(t.Operand.String() + "~")
		if t.Upper != nil {
			b.WriteString(t.Upper.String())
		}
	default:
		b.WriteString(t.Operand.String())
	}
	return b.String()
}

// Query is a parsed query string.
type Query struct {
	Source string
	Terms  []Term
}

// String renders the query in normalized form.
func (q *Query) String() string {
	parts := make([]string, len(q.Terms))
	for i, t := range q.Terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, ",")
}

// StartsWithExclusion reports whether the first term is an exclusion term.
func (q *Query) StartsWithExclusion() bool {
	return len(q.Terms) > 0 && q.Terms[0].Mode == Exclude
}

// Kind is the field-specific meaning a term compiles to.
type Kind int

const (
	KindExact Kind = iota
	KindPrefix
	KindSuffix
	KindContains
	KindNull
	KindRange
	KindBracketLiteral
	KindPositionalPattern
)

var kindNames = [...]string{
	"Exact", "Prefix", "Suffix", "Contains", "Null", "Range", "BracketLiteral", "PositionalPattern",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}
