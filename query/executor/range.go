package executor

import (
	"github.com/satishbabariya/forte-go/catalog"
	"github.com/satishbabariya/forte-go/query/diagnostics"
)

// ResolveRange returns the canonical positions from lower through upper,
// inclusive. Endpoints may be given in either order. The scan must find exactly
// two positions, so a self-range or an unknown endpoint is an InvalidRangeQuery.
func ResolveRange(table *catalog.Table, lower, upper string) ([]int, error) {
	found := make([]int, 0, 2)
	for i := 0; i < table.Len(); i++ {
		n := table.At(i).Number
		if n == lower || n == upper {
			found = append(found, i)
		}
	}
	if len(found) != 2 {
		return nil, diagnostics.New(diagnostics.InvalidRangeQuery,
			"range %s~%s must name two distinct set classes", lower, upper)
	}

	from, to := found[0], found[1]
	positions := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		positions = append(positions, i)
	}
	return positions, nil
}
