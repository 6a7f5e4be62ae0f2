package cache

import (
	"context"
	"time"
)

// LayeredCache implements a two-level cache: an in-process L1 in front of a
// shared L2 such as Redis.
type LayeredCache struct {
	l1    *TTLCache
	l2    BytesCache
	l1TTL time.Duration
}

// NewLayeredCache fronts l2 with a bounded memory cache. Entries promoted
// from L2 live in L1 for at most l1TTL.
func NewLayeredCache(l2 BytesCache, l1MaxEntries int, l1TTL time.Duration) *LayeredCache {
	return &LayeredCache{l1: NewTTLCache(l1MaxEntries), l2: l2, l1TTL: l1TTL}
}

func (lc *LayeredCache) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	if b, ok := lc.l1.Get(key); ok {
		return b, true, nil
	}
	b, ok, err := lc.l2.GetBytes(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	lc.l1.Set(key, b, lc.l1TTL)
	return b, true, nil
}

// SetBytes writes through: L2 first, then memory.
func (lc *LayeredCache) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := lc.l2.SetBytes(ctx, key, value, ttl); err != nil {
		return err
	}
	l1 := lc.l1TTL
	if ttl > 0 && (l1 <= 0 || ttl < l1) {
		l1 = ttl
	}
	lc.l1.Set(key, value, l1)
	return nil
}

// Close closes L2 when it holds a connection.
func (lc *LayeredCache) Close() error {
	if c, ok := lc.l2.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

var _ BytesCache = (*LayeredCache)(nil)

// Ping checks L2 when it supports it.
func (lc *LayeredCache) Ping(ctx context.Context) error {
	if p, ok := lc.l2.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}
