package cache

import (
	"sync"
	"time"

	"bus-track/internal/journey-service/core/ports/driven"
)

type entry struct {
	value     []byte
	createdAt time.Time
	expiresAt time.Time
}

// Cache is a thread-safe in-memory TTL store for serialized journey results.
// Concurrent identical searches may race on Set; last-write-wins is fine
// since values are idempotent per key.
type Cache struct {
	entries map[string]*entry
	mu      sync.RWMutex
	now     func() time.Time
}

var _ driven.IJourneyCache = (*Cache)(nil)

func New() *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) SetWithTTL(key string, value []byte, ttl time.Duration) {
	now := c.now()
	c.mu.Lock()
	c.entries[key] = &entry{
		value:     value,
		createdAt: now,
		expiresAt: now.Add(ttl),
	}
	c.mu.Unlock()
}

func (c *Cache) Stats() driven.CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	stats := driven.CacheStats{Entries: len(c.entries)}
	for _, e := range c.entries {
		if now.After(e.expiresAt) {
			stats.Stale++
		} else {
			stats.Fresh++
		}
	}
	return stats
}

// CleanupStale removes expired entries; call periodically to bound memory.
func (c *Cache) CleanupStale() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// StartCleanup runs CleanupStale on an interval until stop is closed.
func (c *Cache) StartCleanup(interval time.Duration, stop <-chan struct{}) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				c.CleanupStale()
			case <-stop:
				return
			}
		}
	}()
}
