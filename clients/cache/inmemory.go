package cache

import (
	"context"
	"sync"
	"time"
)

// InMemoryCache is an implementation of Cache that keeps values in a map.
// Expired values are dropped lazily when read.
type InMemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

var _ Cache = (*InMemoryCache)(nil)

type cacheItem struct {
	data []byte
	// zero expiration means the item never expires
	expiration time.Time
}

func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{
		data: make(map[string]cacheItem),
	}
}

func (c *InMemoryCache) Set(ctx context.Context, key string, data []byte, expiration time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var expiry time.Time
	// -1 means cache indefinitely.
	if expiration != -1 {
		expiry = time.Now().Add(expiration)
	}

	c.data[key] = cacheItem{
		data:       data,
		expiration: expiry,
	}

	return nil
}

func (c *InMemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mutex.RLock()
	item, ok := c.data[key]
	c.mutex.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	if !item.expiration.IsZero() && time.Now().After(item.expiration) {
		c.mutex.Lock()
		// only drop the item if it wasn't replaced in the meantime
		if current, ok := c.data[key]; ok && current.expiration.Equal(item.expiration) {
			delete(c.data, key)
		}
		c.mutex.Unlock()

		return nil, ErrNotFound
	}

	return item.data, nil
}

func (c *InMemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

func (c *InMemoryCache) Healthcheck(ctx context.Context) error {
	return nil
}
