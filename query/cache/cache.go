// Package cache provides an LRU cache for compiled query plans.
package cache

import (
	"sync"
)

// Stats represents cache statistics
type Stats struct {
	Hits      int64
	Misses    int64
	Size      int
	MaxSize   int
	Evictions int64
	HitRate   float64
}

// LRU is a fixed-size least-recently-used cache. It is safe for concurrent use.
type LRU[V any] struct {
	mu      sync.Mutex
	data    map[string]*node[V]
	maxSize int
	head    *node[V]
	tail    *node[V]
	stats   Stats
}

// node represents an entry in the doubly-linked recency list
type node[V any] struct {
	key   string
	value V
	prev  *node[V]
	next  *node[V]
}

// New creates an LRU holding at most maxSize entries. A maxSize below one
// disables caching.
func New[V any](maxSize int) *LRU[V] {
	return &LRU[V]{
		data:    make(map[string]*node[V]),
		maxSize: maxSize,
		stats:   Stats{MaxSize: maxSize},
	}
}

// Get retrieves a value from the cache
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.data[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}

	c.moveToFront(n)
	c.stats.Hits++
	return n.value, true
}

// Set stores a value, evicting the least recently used entry when full.
func (c *LRU[V]) Set(key string, value V) {
	if c.maxSize < 1 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, exists := c.data[key]; exists {
		n.value = value
		c.moveToFront(n)
		return
	}

	if len(c.data) >= c.maxSize {
		c.evictLRU()
		c.stats.Evictions++
	}

	n := &node[V]{key: key, value: value}
	c.addToFront(n)
	c.data[key] = n
}

// GetOrCompute returns the cached value for key, or computes, stores and returns
// it. Errors are not cached.
func (c *LRU[V]) GetOrCompute(key string, compute func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		return v, err
	}
	c.Set(key, v)
	return v, nil
}

// Len returns the number of cached entries.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// GetStats returns cache statistics
func (c *LRU[V]) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats
	stats.Size = len(c.data)
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total) * 100
	}
	return stats
}

// addToFront adds a node to the front of the list
func (c *LRU[V]) addToFront(n *node[V]) {
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

// moveToFront moves a node to the front of the list
func (c *LRU[V]) moveToFront(n *node[V]) {
	if n == c.head {
		return
	}
	c.unlink(n)
	c.addToFront(n)
}

// unlink detaches a node from the list without touching the index.
func (c *LRU[V]) unlink(n *node[V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev, n.next = nil, nil
}

// removeNode removes a node from the list and the index
func (c *LRU[V]) removeNode(n *node[V]) {
	c.unlink(n)
	delete(c.data, n.key)
}

// evictLRU evicts the least recently used node
func (c *LRU[V]) evictLRU() {
	if c.tail == nil {
		return
	}
	c.removeNode(c.tail)
}

// Key builds a cache key from an endpoint and a raw query. Queries are length
// capped, so the raw text is kept and distinct queries never share a key.
func Key(endpoint, query string) string {
	return endpoint + ":" + query
}
