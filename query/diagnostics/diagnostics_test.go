package diagnostics

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := At(InvalidPattern, "3-1,%", NewSpan(4, 5), "unexpected %q", "%")
	assert.Equal(t, InvalidPattern, KindOf(err))
	assert.ErrorIs(t, err, ErrInvalidPattern)
	assert.Equal(t, `invalid pattern: unexpected "%"`, err.Error())

	wrapped := fmt.Errorf("search: %w", New(NoMatch, ""))
	assert.Equal(t, NoMatch, KindOf(wrapped))
	assert.True(t, Is(wrapped, NoMatch))
	assert.Equal(t, "no match", New(NoMatch, "").Error())

	assert.Equal(t, DatasetNotReady, KindOf(fmt.Errorf("x: %w", ErrDatasetNotReady)))
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.False(t, Is(nil, NoMatch))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "InvalidRangeQuery", InvalidRangeQuery.String())
	assert.Equal(t, "Unknown", Kind(99).String())
	assert.Nil(t, KindUnknown.Sentinel())
}

func TestSpanClamp(t *testing.T) {
	assert.Equal(t, Span{Start: 3, End: 3}, NewSpan(5, 9).Clamp(3))
	assert.Equal(t, Span{Start: 0, End: 2}, NewSpan(-1, 2).Clamp(10))
	assert.Equal(t, 2, NewSpan(1, 3).Len())
}

func TestPrettyPrint(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	err := At(InvalidPattern, "2-1,!@A,%x", NewSpan(8, 9), "unexpected token")
	assert.NoError(t, PrettyPrint(&buf, err))
	assert.Equal(t, "error[InvalidPattern]: unexpected token\n"+
		"  --> column 9\n"+
		"   | 2-1,!@A,%x\n"+
		"   |         ^\n", buf.String())

	buf.Reset()
	assert.NoError(t, PrettyPrint(&buf, New(NoMatch, "nothing matched")))
	assert.Equal(t, "error[NoMatch]: nothing matched\n", buf.String())

	buf.Reset()
	assert.NoError(t, PrettyPrint(&buf, errors.New("disk on fire")))
	assert.Equal(t, "error: disk on fire\n", buf.String())
}
