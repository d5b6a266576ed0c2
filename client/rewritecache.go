package client

import (
	"sync"

	"github.com/cespare/xxhash"
)

// rewriteCache memoizes dialect-rewritten statements keyed by a hash of
// the original text. Rewriting is pure, so a hit is always valid; eviction
// drops the oldest insertion when the cache is full.
type rewriteCache struct {
	mu      sync.Mutex
	entries map[uint64]string
	order   []uint64
	maxSize int
}

// newRewriteCache creates a cache holding at most maxSize entries.
// A non-positive size disables caching.
func newRewriteCache(maxSize int) *rewriteCache {
	return &rewriteCache{
		entries: make(map[uint64]string, maxSize),
		maxSize: maxSize,
	}
}

// get returns the cached rewrite for sql, if present.
func (c *rewriteCache) get(sql string) (string, bool) {
	if c.maxSize <= 0 {
		return "", false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	rewritten, ok := c.entries[xxhash.Sum64String(sql)]
	return rewritten, ok
}

// put stores the rewrite for sql, evicting the oldest entry when full.
func (c *rewriteCache) put(sql, rewritten string) {
	if c.maxSize <= 0 {
		return
	}

	key := xxhash.Sum64String(sql)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		return
	}

	if len(c.order) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = rewritten
	c.order = append(c.order, key)
}
