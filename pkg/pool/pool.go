// Package pool recycles scratch values that are reset between uses.
package pool

import (
	"sync"
)

type Resetter interface{ Reset() }

type Pool[T Resetter] struct {
	pool sync.Pool
}

func New[T Resetter](fresh func() T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{New: func() any { return fresh() }},
	}
}

// Get returns a reset value, recycled when one is available.
func (p *Pool[T]) Get() T {
	t := p.pool.Get().(T)
	t.Reset()
	return t
}

// Put hands x back. x must not be used afterwards.
func (p *Pool[T]) Put(x T) {
	p.pool.Put(x)
}
