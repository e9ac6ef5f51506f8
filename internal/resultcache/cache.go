package resultcache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cacher is the interface for caching validation results.
type Cacher[K comparable, V any] interface {
	Get(K) (V, bool)
	Add(K, V)
	Len() int
	Purge()
}

var _ Cacher[string, int] = (*LRUCache[string, int])(nil)

// LRUCache implements Cacher interface.
type LRUCache[K comparable, V any] struct {
	cacher *lru.ARCCache[K, V]
}

// Get looks up key's value from cache.
func (l *LRUCache[K, V]) Get(key K) (V, bool) {
	return l.cacher.Get(key)
}

// Add adds a value to cache.
func (l *LRUCache[K, V]) Add(key K, value V) {
	l.cacher.Add(key, value)
}

// Len returns the number of cached entries.
func (l *LRUCache[K, V]) Len() int {
	return l.cacher.Len()
}

// Purge clears the cache.
func (l *LRUCache[K, V]) Purge() {
	l.cacher.Purge()
}

// NewLRUCache creates a new LRUCache instance with given size.
func NewLRUCache[K comparable, V any](size int) (*LRUCache[K, V], error) {
	cacher, err := lru.NewARC[K, V](size)
	if err != nil {
		return nil, err
	}
	return &LRUCache[K, V]{cacher: cacher}, nil
}
