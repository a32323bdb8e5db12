// Package lru provides a bounded least-recently-used cache for
// sentence-level correction results.
package lru

import (
	"container/list"

	"github.com/akarpinski/prosecheck"
)

// Ensure Cache implements prosecheck.ResultCache at compile time.
var _ prosecheck.ResultCache = (*Cache)(nil)

// entry is one cached sentence result, stored in recency order.
type entry struct {
	sentence string
	result   prosecheck.SentenceResult
}

// Cache is a bounded LRU cache keyed by sentence text. Get refreshes an
// entry's recency; Set evicts the least-recently-used entry when the
// cache is at capacity. Not safe for concurrent use: the pipeline
// accesses it from a single goroutine.
type Cache struct {
	capacity int
	order    *list.List // front = most recently used
	index    map[string]*list.Element
}

// New creates a Cache with the given capacity. A capacity <= 0 falls back
// to prosecheck.DefaultCacheCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = prosecheck.DefaultCacheCapacity
	}
	return &Cache{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[string]*list.Element, capacity),
	}
}

// Get returns the cached result for the exact sentence text and marks it
// most recently used.
func (c *Cache) Get(sentence string) (prosecheck.SentenceResult, bool) {
	el, ok := c.index[sentence]
	if !ok {
		return prosecheck.SentenceResult{}, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry).result, true
}

// Set stores the result for the exact sentence text. An existing entry is
// replaced and re-marked as most recently used; a new entry evicts the
// least-recently-used one first if the cache is full.
func (c *Cache) Set(sentence string, result prosecheck.SentenceResult) {
	if el, ok := c.index[sentence]; ok {
		el.Value.(*entry).result = result
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.index, oldest.Value.(*entry).sentence)
		}
	}

	c.index[sentence] = c.order.PushFront(&entry{sentence: sentence, result: result})
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.order.Len()
}
