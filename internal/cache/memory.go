package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is a bounded in-memory cache. Entries never expire by default
// (the corpus is static for the process lifetime); memory is capped instead
// by evicting the oldest-inserted key once maxEntries is exceeded.
type MemoryCache struct {
	cache      *gocache.Cache
	mu         sync.Mutex
	order      []string
	maxEntries int
}

// NewMemoryCache creates a memory cache bounded to maxEntries entries.
// maxEntries <= 0 means unbounded.
func NewMemoryCache(maxEntries int) *MemoryCache {
	return &MemoryCache{
		cache:      gocache.New(gocache.NoExpiration, 0),
		maxEntries: maxEntries,
	}
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores a value. A zero TTL means no expiry. Overwriting an existing
// key keeps its original insertion rank, preserving at most one entry per
// key.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, existed := c.cache.Get(key)
	if ttl == 0 {
		ttl = gocache.NoExpiration
	}
	c.cache.Set(key, value, ttl)

	if !existed {
		c.order = append(c.order, key)
	}

	for c.maxEntries > 0 && len(c.order) > c.maxEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		c.cache.Delete(oldest)
	}

	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Delete(key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Clear removes all values from the cache.
func (c *MemoryCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Flush()
	c.order = nil
	return nil
}
