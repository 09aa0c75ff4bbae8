package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/satishbabariya/forte-go/query/diagnostics"
)

func TestCheckQueryLengthBoundary(t *testing.T) {
	g := NewGuard(Limits{})
	for endpoint, max := range DefaultLimits().Queries {
		t.Run(endpoint, func(t *testing.T) {
			assert.NoError(t, g.CheckQuery(endpoint, strings.Repeat("a", max-1)))

			err := g.CheckQuery(endpoint, strings.Repeat("a", max))
			assert.ErrorIs(t, err, diagnostics.ErrQueryTooLong)

			err = g.CheckQuery(endpoint, strings.Repeat("!", max+5))
			assert.Equal(t, diagnostics.QueryTooLong, diagnostics.KindOf(err))
		})
	}
}

func TestCheckQueryCountsRunes(t *testing.T) {
	g := NewGuard(Limits{Queries: map[string]int{"vec": 3}})
	assert.NoError(t, g.CheckQuery("vec", "éé"))
	assert.ErrorIs(t, g.CheckQuery("vec", "ééé"), diagnostics.ErrQueryTooLong)
}

func TestCheckQueryUnknownEndpoint(t *testing.T) {
	g := NewGuard(DefaultLimits())
	assert.ErrorIs(t, g.CheckQuery("name", "x"), diagnostics.ErrInvalidProperty)
}

func TestNewGuardOverrides(t *testing.T) {
	g := NewGuard(Limits{Queries: map[string]int{"number": 10}, Props: 5})

	max, ok := g.Limit("number")
	assert.True(t, ok)
	assert.Equal(t, 10, max)

	max, _ = g.Limit("primeForm")
	assert.Equal(t, 50, max)

	assert.ErrorIs(t, g.CheckProps("number"), diagnostics.ErrQueryTooLong)
	assert.NoError(t, g.CheckProps("vec"))
}

func TestCheckProps(t *testing.T) {
	g := NewGuard(DefaultLimits())
	tests := []struct {
		props string
		want  error
	}{
		{"", nil},
		{"number", nil},
		{"inversion,number,vec", nil},
		{"number,primeForm,vec,z,complement,inversion", nil},
		{"name", diagnostics.ErrInvalidProperty},
		{"number,", diagnostics.ErrInvalidProperty},
		{"number,,vec", diagnostics.ErrInvalidProperty},
		{"number, vec", diagnostics.ErrInvalidProperty},
		{strings.Repeat("z,", 30), diagnostics.ErrQueryTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.props, func(t *testing.T) {
			err := g.CheckProps(tt.props)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
