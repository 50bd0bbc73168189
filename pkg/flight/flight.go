// Package flight runs work once per key, sharing the result with callers
// that ask for the same key while it is in progress or after it succeeded.
package flight

import (
	"sync"
)

type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	finished map[K]V
	pending  map[K]*call[V]
	work     func(K) (V, error)
}

type call[V any] struct {
	val  V
	err  error
	done chan struct{}
}

func NewCache[K comparable, V any](work func(K) (V, error)) *Cache[K, V] {
	return &Cache[K, V]{
		finished: make(map[K]V),
		pending:  make(map[K]*call[V]),
		work:     work,
	}
}

// Get returns the cached value for k, computing it if needed. Failed calls
// are not cached.
func (c *Cache[K, V]) Get(k K) (V, error) {
	c.mu.Lock()
	if v, ok := c.finished[k]; ok {
		c.mu.Unlock()
		return v, nil
	}
	if p, ok := c.pending[k]; ok {
		c.mu.Unlock()
		<-p.done
		return p.val, p.err
	}

	p := &call[V]{done: make(chan struct{})}
	c.pending[k] = p
	c.mu.Unlock()

	p.val, p.err = c.work(k)

	c.mu.Lock()
	if p.err == nil {
		c.finished[k] = p.val
	}
	delete(c.pending, k)
	c.mu.Unlock()
	close(p.done)

	return p.val, p.err
}

func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.finished)
}
