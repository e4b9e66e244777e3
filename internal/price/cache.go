package price

import (
	"sync"
	"time"
)

// Cache is a TTL cache for quoted prices, keyed by token symbol.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	price    float64
	storedAt time.Time
}

// NewCache creates a cache with the given TTL. A non-positive TTL disables
// caching entirely.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns a cached price if it is still fresh.
func (c *Cache) Get(symbol string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[symbol]
	if !ok || c.ttl <= 0 {
		return 0, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, symbol)
		return 0, false
	}
	return e.price, true
}

// Put stores a price.
func (c *Cache) Put(symbol string, price float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[symbol] = cacheEntry{price: price, storedAt: c.now()}
}

// PutAll stores a batch of prices.
func (c *Cache) PutAll(prices map[string]float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now()
	for sym, p := range prices {
		c.entries[sym] = cacheEntry{price: p, storedAt: t}
	}
}

// Len returns the number of entries, fresh or stale.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
