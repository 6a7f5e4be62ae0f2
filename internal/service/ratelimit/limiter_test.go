package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_BurstThenRefill(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	l := New(2, 3, time.Minute)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("1.2.3.4:report"), "burst token %d", i)
	}
	assert.False(t, l.Allow("1.2.3.4:report"))
	assert.True(t, l.Allow("5.6.7.8:report"), "buckets are per key")

	now = now.Add(500 * time.Millisecond)
	assert.True(t, l.Allow("1.2.3.4:report"))
	assert.False(t, l.Allow("1.2.3.4:report"))
}

func TestLimiter_Sweep(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	l := New(1, 1, time.Minute)
	l.now = func() time.Time { return now }

	l.Allow("a")
	now = now.Add(30 * time.Second)
	l.Allow("b")
	now = now.Add(45 * time.Second)

	assert.Equal(t, 1, l.Sweep())
	assert.Equal(t, 1, l.Size())
}
