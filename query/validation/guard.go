// Package validation checks raw request input before any parsing happens.
package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/satishbabariya/forte-go/catalog"
	"github.com/satishbabariya/forte-go/query/diagnostics"
)

// EndpointAll is the endpoint name of all-fields queries.
const EndpointAll = "all"

// Limits are the maximum query lengths, in characters, per endpoint. A query
// whose length reaches its limit is rejected.
type Limits struct {
	Queries map[string]int
	Props   int
}

// DefaultLimits returns the stock limits.
func DefaultLimits() Limits {
	return Limits{
		Queries: map[string]int{
			catalog.FieldNumber.String():     100,
			catalog.FieldPrimeForm.String():  50,
			catalog.FieldVec.String():        30,
			catalog.FieldZ.String():          100,
			catalog.FieldComplement.String(): 100,
			catalog.FieldInversion.String():  100,
			EndpointAll:                      100,
		},
		Props: 60,
	}
}

// Guard enforces Limits. It is safe for concurrent use once built.
type Guard struct {
	limits Limits
}

// NewGuard creates a guard. Endpoints missing from limits fall back to the
// defaults.
func NewGuard(limits Limits) *Guard {
	merged := DefaultLimits()
	for endpoint, limit := range limits.Queries {
		merged.Queries[endpoint] = limit
	}
	if limits.Props > 0 {
		merged.Props = limits.Props
	}
	return &Guard{limits: merged}
}

// Limit returns the query limit of an endpoint.
func (g *Guard) Limit(endpoint string) (int, bool) {
	limit, ok := g.limits.Queries[endpoint]
	return limit, ok
}

// CheckQuery validates the length of a query for endpoint.
func (g *Guard) CheckQuery(endpoint, query string) error {
	limit, ok := g.limits.Queries[endpoint]
	if !ok {
		return diagnostics.New(diagnostics.InvalidProperty, "unknown field %q", endpoint)
	}
	if n := utf8.RuneCountInString(query); n >= limit {
		return diagnostics.New(diagnostics.QueryTooLong,
			"%s query is %d characters, limit is %d", endpoint, n, limit-1)
	}
	return nil
}

// CheckProps validates a comma-separated projection list. An empty list means
// every field.
func (g *Guard) CheckProps(props string) error {
	if props == "" {
		return nil
	}
	if n := utf8.RuneCountInString(props); n >= g.limits.Props {
		return diagnostics.New(diagnostics.QueryTooLong,
			"props is %d characters, limit is %d", n, g.limits.Props-1)
	}
	for _, name := range strings.Split(props, ",") {
		if _, ok := catalog.ParseField(name); !ok {
			return diagnostics.New(diagnostics.InvalidProperty, "unknown property %q", name)
		}
	}
	return nil
}
