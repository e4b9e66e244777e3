package price

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Cache tests run in-package to drive the clock directly.

func TestCacheHitWithinTTL(t *testing.T) {
	c := NewCache(time.Minute)
	c.Put("eth", 2500)

	p, ok := c.Get("eth")
	assert.True(t, ok)
	assert.InDelta(t, 2500, p, 0.001)
}

func TestCacheMiss(t *testing.T) {
	c := NewCache(time.Minute)
	_, ok := c.Get("eth")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	now := time.Now()
	c := NewCache(time.Minute)
	c.now = func() time.Time { return now }

	c.Put("eth", 2500)
	now = now.Add(61 * time.Second)

	_, ok := c.Get("eth")
	assert.False(t, ok)
	assert.Zero(t, c.Len(), "expired entries are evicted on read")
}

func TestCacheZeroTTLDisabled(t *testing.T) {
	c := NewCache(0)
	c.Put("eth", 2500)
	_, ok := c.Get("eth")
	assert.False(t, ok)
}

func TestCachePutAll(t *testing.T) {
	c := NewCache(time.Minute)
	c.PutAll(map[string]float64{"eth": 2500, "sol": 140})

	assert.Equal(t, 2, c.Len())
	p, ok := c.Get("sol")
	assert.True(t, ok)
	assert.InDelta(t, 140, p, 0.001)
}

func TestCacheOverwrite(t *testing.T) {
	c := NewCache(time.Minute)
	c.Put("eth", 2500)
	c.Put("eth", 2600)

	p, _ := c.Get("eth")
	assert.InDelta(t, 2600, p, 0.001)
}
