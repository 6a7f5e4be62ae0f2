package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type client struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per key (client address plus route).
type Limiter struct {
	mu    sync.Mutex
	m     map[string]*client
	rps   rate.Limit
	burst int
	idle  time.Duration
	now   func() time.Time
}

// New builds a limiter refilling rps tokens per second up to burst.
// Buckets idle for longer than idleTTL are dropped by Sweep.
func New(rps float64, burst int, idleTTL time.Duration) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		m:     make(map[string]*client),
		rps:   rate.Limit(rps),
		burst: burst,
		idle:  idleTTL,
		now:   time.Now,
	}
}

// Allow returns true if one token can be consumed for key.
func (l *Limiter) Allow(key string) bool {
	now := l.now()
	l.mu.Lock()
	c, ok := l.m[key]
	if !ok {
		c = &client{lim: rate.NewLimiter(l.rps, l.burst)}
		l.m[key] = c
	}
	c.lastSeen = now
	l.mu.Unlock()
	return c.lim.AllowN(now, 1)
}

// Sweep drops idle buckets and returns how many were removed.
func (l *Limiter) Sweep() int {
	if l.idle <= 0 {
		return 0
	}
	cutoff := l.now().Add(-l.idle)
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for k, c := range l.m {
		if c.lastSeen.Before(cutoff) {
			delete(l.m, k)
			n++
		}
	}
	return n
}

// Size returns the number of tracked keys.
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}
