// Package memory is an in-process port.Cache used by tests and by single-node
// development runs without Redis.
package memory

import (
	"context"
	"sync"
	"time"

	"go-wedding/internal/infrastructure/cache/port"
)

type entry struct {
	value   string
	counter int64
	expires time.Time
}

// Cache is a mutex-guarded map with lazy expiry.
type Cache struct {
	mu   sync.Mutex
	data map[string]entry
	now  func() time.Time
}

func New() *Cache {
	return &Cache{data: make(map[string]entry), now: time.Now}
}

// WithClock swaps the time source, for window tests.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

var _ port.Cache = (*Cache)(nil)

func (c *Cache) lookup(key string) (entry, bool) {
	e, ok := c.data[key]
	if !ok {
		return entry{}, false
	}
	if !e.expires.IsZero() && !c.now().Before(e.expires) {
		delete(c.data, key)
		return entry{}, false
	}
	return e, true
}

func (c *Cache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.lookup(key)
	if !ok {
		return "", port.ErrMiss
	}
	return e.value, nil
}

func (c *Cache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := entry{value: value}
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	c.data[key] = e
	return nil
}

func (c *Cache) Del(_ context.Context, keys ...string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := c.lookup(k); ok {
			delete(c.data, k)
			n++
		}
	}
	return n, nil
}

func (c *Cache) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.lookup(key)
	if !ok && ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	e.counter++
	c.data[key] = e
	return e.counter, nil
}

func (c *Cache) Ping(context.Context) error { return nil }

func (c *Cache) Close() error { return nil }
