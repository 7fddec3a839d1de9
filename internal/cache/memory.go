package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"freshcart/internal/models"
)

const janitorInterval = 5 * time.Minute

type item struct {
	value      []byte
	expiration int64
}

// MemoryCache is a TTL map. Values are stored as JSON so callers never share
// memory with the cache.
type MemoryCache struct {
	items map[string]item
	mu    sync.RWMutex
	ttl   time.Duration
	stop  chan struct{}
	once  sync.Once
}

// NewMemoryCache starts a cache whose expired entries are purged periodically.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	c := &MemoryCache{
		items: make(map[string]item),
		ttl:   ttl,
		stop:  make(chan struct{}),
	}
	go c.cleanupExpired()
	return c
}

func (c *MemoryCache) Get(_ context.Context, id string) (*models.Product, bool) {
	c.mu.RLock()
	it, found := c.items[productKey(id)]
	c.mu.RUnlock()

	if !found || time.Now().UnixNano() > it.expiration {
		return nil, false
	}
	var product models.Product
	if err := json.Unmarshal(it.value, &product); err != nil {
		return nil, false
	}
	return &product, true
}

func (c *MemoryCache) Set(_ context.Context, product *models.Product) {
	data, err := json.Marshal(product)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[productKey(product.ID)] = item{
		value:      data,
		expiration: time.Now().Add(c.ttl).UnixNano(),
	}
}

func (c *MemoryCache) Invalidate(_ context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, productKey(id))
}

// Size returns the number of entries, expired or not.
func (c *MemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close stops the janitor.
func (c *MemoryCache) Close() error {
	c.once.Do(func() { close(c.stop) })
	return nil
}

func (c *MemoryCache) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now().UnixNano()
	for key, it := range c.items {
		if now > it.expiration {
			delete(c.items, key)
		}
	}
}

func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.purge()
		case <-c.stop:
			return
		}
	}
}
