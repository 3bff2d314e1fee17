package cache

import (
	"context"
	"strconv"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryCache is the single-process Store used when Redis is not configured.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Set(_ context.Context, namespace, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.entries[namespace+":"+key] = entry
	return nil
}

func (c *MemoryCache) Get(_ context.Context, namespace, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.lookup(namespace + ":" + key)
	if !ok {
		return "", ErrMiss
	}
	return entry.value, nil
}

func (c *MemoryCache) Delete(_ context.Context, namespace, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, namespace+":"+key)
	return nil
}

// GetTTL mirrors Redis: -2s for a missing key, -1s for a key without expiry.
func (c *MemoryCache) GetTTL(_ context.Context, namespace, key string) (time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.lookup(namespace + ":" + key)
	if !ok {
		return -2 * time.Second, nil
	}
	if entry.expiresAt.IsZero() {
		return -1 * time.Second, nil
	}
	return entry.expiresAt.Sub(c.now()), nil
}

func (c *MemoryCache) IncrWithExpire(_ context.Context, namespace, key string, window time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := namespace + ":" + key
	entry, ok := c.lookup(k)
	var cnt int64
	if ok {
		n, err := strconv.ParseInt(entry.value, 10, 64)
		if err != nil {
			return 0, err
		}
		cnt = n
	}
	cnt++

	entry.value = strconv.FormatInt(cnt, 10)
	if cnt == 1 && window > 0 {
		entry.expiresAt = c.now().Add(window)
	}
	c.entries[k] = entry
	return cnt, nil
}

// lookup drops expired entries; callers hold mu.
func (c *MemoryCache) lookup(k string) (memoryEntry, bool) {
	entry, ok := c.entries[k]
	if !ok {
		return memoryEntry{}, false
	}
	if entry.expired(c.now()) {
		delete(c.entries, k)
		return memoryEntry{}, false
	}
	return entry, true
}
