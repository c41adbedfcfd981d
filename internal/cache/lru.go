// Package cache provides small thread-safe LRU caches.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a string-keyed LRU cache.
type Cache[V any] struct {
	cache *lru.Cache[string, V]
}

// New creates a cache holding at most maxItems values.
func New[V any](maxItems int) (*Cache[V], error) {
	c, err := lru.New[string, V](maxItems)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{cache: c}, nil
}

// Get returns the value for key and marks it recently used.
func (c *Cache[V]) Get(key string) (V, bool) {
	return c.cache.Get(key)
}

// Put adds or replaces the value for key.
func (c *Cache[V]) Put(key string, v V) {
	c.cache.Add(key, v)
}

// GetOrCreate returns the cached value for key, or calls create and caches
// its result. Errors are not cached.
func (c *Cache[V]) GetOrCreate(key string, create func() (V, error)) (V, error) {
	if v, ok := c.cache.Get(key); ok {
		return v, nil
	}
	v, err := create()
	if err != nil {
		return v, err
	}
	c.cache.Add(key, v)
	return v, nil
}

// Len returns the number of cached values.
func (c *Cache[V]) Len() int {
	return c.cache.Len()
}
