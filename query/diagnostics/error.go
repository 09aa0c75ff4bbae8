// Package diagnostics defines the error kinds reported by the query engine.
package diagnostics

import (
	"errors"
	"fmt"
)

// Kind classifies an engine error.
type Kind int

const (
	// KindUnknown is any error the engine did not produce.
	KindUnknown Kind = iota
	// DatasetNotReady means a query arrived before the catalog was loaded.
	DatasetNotReady
	// QueryTooLong means a query or field list reached its length cap.
	QueryTooLong
	// InvalidProperty means an unknown field name was requested.
	InvalidProperty
	// InvalidPattern means a term is malformed for its field's grammar.
	InvalidPattern
	// InvalidRangeQuery means range endpoints could not be resolved uniquely.
	InvalidRangeQuery
	// NoMatch means a well-formed query selected nothing.
	NoMatch
)

// Sentinel errors, one per kind. Use errors.Is to test for them.
var (
	ErrDatasetNotReady   = errors.New("dataset not ready")
	ErrQueryTooLong      = errors.New("query too long")
	ErrInvalidProperty   = errors.New("invalid property")
	ErrInvalidPattern    = errors.New("invalid pattern")
	ErrInvalidRangeQuery = errors.New("invalid range query")
	ErrNoMatch           = errors.New("no match")
)

var kindNames = map[Kind]string{
	KindUnknown:       "Unknown",
	DatasetNotReady:   "DatasetNotReady",
	QueryTooLong:      "QueryTooLong",
	InvalidProperty:   "InvalidProperty",
	InvalidPattern:    "InvalidPattern",
	InvalidRangeQuery: "InvalidRangeQuery",
	NoMatch:           "NoMatch",
}

// String returns the kind name used on the wire.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// Sentinel returns the sentinel error for the kind, or nil for KindUnknown.
func (k Kind) Sentinel() error {
	switch k {
	case DatasetNotReady:
		return ErrDatasetNotReady
	case QueryTooLong:
		return ErrQueryTooLong
	case InvalidProperty:
		return ErrInvalidProperty
	case InvalidPattern:
		return ErrInvalidPattern
	case InvalidRangeQuery:
		return ErrInvalidRangeQuery
	case NoMatch:
		return ErrNoMatch
	}
	return nil
}

// Error is an engine error with the query text and the span it refers to.
type Error struct {
	Kind    Kind
	Message string
	// Query is the raw text the span indexes into. Empty when not applicable.
	Query string
	Span  Span
}

// Error implements the error interface.
func (e *Error) Error() string {
	base := e.Kind.String()
	if s := e.Kind.Sentinel(); s != nil {
		base = s.Error()
	}
	if e.Message == "" {
		return base
	}
	return fmt.Sprintf("%s: %s", base, e.Message)
}

// Unwrap returns the kind's sentinel so errors.Is works.
func (e *Error) Unwrap() error {
	return e.Kind.Sentinel()
}

// New creates an Error without position information.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// At creates an Error pointing at span within query.
func At(kind Kind, query string, span Span, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Query:   query,
		Span:    span,
	}
}

// KindOf classifies err. Sentinels and wrapped Errors are both recognised.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	for k := DatasetNotReady; k <= NoMatch; k++ {
		if errors.Is(err, k.Sentinel()) {
			return k
		}
	}
	return KindUnknown
}

// Is reports whether err is of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
