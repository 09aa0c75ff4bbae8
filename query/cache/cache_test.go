package cache

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUEviction(t *testing.T) {
	c := New[int](2)
	c.Set("a", 1)
	c.Set("b", 2)

	// touch a so b is the eviction candidate
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	c.Set("c", 3)
	_, ok = c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)

	stats := c.GetStats()
	assert.Equal(t, 2, stats.Size)
	assert.Equal(t, int64(1), stats.Evictions)
	assert.Equal(t, int64(3), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 75.0, stats.HitRate, 0.001)
}

func TestLRUUpdateExisting(t *testing.T) {
	c := New[string](2)
	c.Set("a", "x")
	c.Set("a", "y")
	assert.Equal(t, 1, c.Len())
	v, _ := c.Get("a")
	assert.Equal(t, "y", v)
}

func TestLRUDisabled(t *testing.T) {
	c := New[int](0)
	c.Set("a", 1)
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestGetOrCompute(t *testing.T) {
	c := New[int](4)
	calls := 0
	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrCompute("k", compute)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	}
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	_, err := c.GetOrCompute("bad", func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	_, ok := c.Get("bad")
	assert.False(t, ok)
}

func TestKey(t *testing.T) {
	k := Key("primeForm", "[0,1,4]")
	assert.True(t, strings.HasPrefix(k, "primeForm:"))
	assert.Equal(t, k, Key("primeForm", "[0,1,4]"))
	assert.NotEqual(t, k, Key("vec", "[0,1,4]"))
	assert.NotEqual(t, k, Key("primeForm", "[0,1,5]"))
	assert.Equal(t, "primeForm:[0,1,4]", k)
}
