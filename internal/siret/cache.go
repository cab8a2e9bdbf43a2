package siret

import (
	"sync"
	"time"
)

// resultCache is a simple in-memory TTL cache for validated SIRETs.
// Registry data moves slowly, so successful validations are kept for a
// long window to avoid re-hitting the rate-limited API.
type resultCache struct {
	mu      sync.RWMutex
	data    map[string]*cacheEntry
	ttl     time.Duration
	cleanup *time.Ticker
}

type cacheEntry struct {
	result    Result
	expiresAt time.Time
}

func newResultCache(ttl time.Duration) *resultCache {
	cache := &resultCache{
		data:    make(map[string]*cacheEntry),
		ttl:     ttl,
		cleanup: time.NewTicker(time.Hour),
	}

	go cache.cleanupExpired()

	return cache
}

func (c *resultCache) Get(siret string) (Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.data[siret]
	if !exists {
		return Result{}, false
	}

	if time.Now().After(entry.expiresAt) {
		return Result{}, false
	}

	return entry.result, true
}

func (c *resultCache) Set(siret string, result Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[siret] = &cacheEntry{
		result:    result,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// cleanupExpired runs for process life; the cache is owned by the
// long-lived Validator and has no shutdown path.
func (c *resultCache) cleanupExpired() {
	for range c.cleanup.C {
		c.mu.Lock()
		now := time.Now()
		for id, entry := range c.data {
			if now.After(entry.expiresAt) {
				delete(c.data, id)
			}
		}
		c.mu.Unlock()
	}
}
