package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	v   []byte
	exp time.Time
}

// TTLCache is an in-process BytesCache. When full, Set evicts expired entries
// first and then the entry closest to expiry.
type TTLCache struct {
	mu  sync.RWMutex
	m   map[string]entry
	max int
	now func() time.Time
}

func NewTTLCache(maxEntries int) *TTLCache {
	return &TTLCache{m: make(map[string]entry), max: maxEntries, now: time.Now}
}

func (c *TTLCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.exp.IsZero() && c.now().After(e.exp) {
		c.dropExpired(key, e.exp)
		return nil, false
	}
	return e.v, true
}

// dropExpired deletes key only while it still holds the entry that expired at
// exp; a Set racing in between the read and write locks wins.
func (c *TTLCache) dropExpired(key string, exp time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.m[key]; ok && cur.exp.Equal(exp) {
		delete(c.m, key)
	}
}

func (c *TTLCache) Set(key string, v []byte, ttl time.Duration) {
	now := c.now()
	var exp time.Time
	if ttl > 0 {
		exp = now.Add(ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.m[key]; !exists && c.max > 0 && len(c.m) >= c.max {
		c.evictLocked(now)
	}
	c.m[key] = entry{v: v, exp: exp}
}

// Len counts stored entries, expired ones included.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

func (c *TTLCache) evictLocked(now time.Time) {
	for k, e := range c.m {
		if !e.exp.IsZero() && now.After(e.exp) {
			delete(c.m, k)
		}
	}
	if len(c.m) < c.max {
		return
	}
	var (
		victim string
		first  = true
		oldest time.Time
	)
	for k, e := range c.m {
		if e.exp.IsZero() {
			continue
		}
		if first || e.exp.Before(oldest) {
			victim, oldest, first = k, e.exp, false
		}
	}
	if first {
		// only non-expiring entries; drop an arbitrary one
		for k := range c.m {
			victim = k
			break
		}
	}
	delete(c.m, victim)
}

func (c *TTLCache) GetBytes(_ context.Context, key string) ([]byte, bool, error) {
	b, ok := c.Get(key)
	return b, ok, nil
}

func (c *TTLCache) SetBytes(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.Set(key, value, ttl)
	return nil
}

var _ BytesCache = (*TTLCache)(nil)
