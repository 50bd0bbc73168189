// Package once remembers which keys have already been seen.
package once

import (
	"sync"
)

type Once[K comparable] struct {
	store map[K]struct{}
	mu    sync.Mutex
}

func New[K comparable]() *Once[K] {
	return &Once[K]{store: make(map[K]struct{})}
}

// Stored records key and reports whether it was recorded before.
func (o *Once[K]) Stored(key K) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.store[key]; ok {
		return true
	}
	o.store[key] = struct{}{}
	return false
}

// Forget drops key so the next Stored reports it as new.
func (o *Once[K]) Forget(key K) {
	o.mu.Lock()
	delete(o.store, key)
	o.mu.Unlock()
}
