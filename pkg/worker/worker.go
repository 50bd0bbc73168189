package worker

import (
	"iter"
	"sync"
)

// Result pairs a job's output with the position the job was added at.
type Result[R any] struct {
	Index int
	Value R
}

type Pool[J any, R any] struct {
	workers int

	working sync.Once
	work    func(J) R

	jobs      chan job[J]
	responses chan Result[R]
	added     int
}

type job[J any] struct {
	index int
	value J
}

// NewPool creates a worker pool running work on the given number of
// goroutines. The job channel is buffered to the number of workers.
func NewPool[J any, R any](workers int, work func(J) R) *Pool[J, R] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[J, R]{
		workers:   workers,
		work:      work,
		jobs:      make(chan job[J], workers),
		responses: make(chan Result[R]),
	}
}

// Cap returns the capacity of the worker pool.
func (p *Pool[_, _]) Cap() int { return p.workers }

// Work starts the workers and returns the channel results arrive on, in
// completion order. The channel closes once Close was called and every
// job finished.
func (p *Pool[_, R]) Work() <-chan Result[R] {
	p.working.Do(p.do)
	return p.responses
}

func (p *Pool[J, R]) do() {
	var wg sync.WaitGroup
	wg.Add(p.workers)
	for range p.workers {
		go func() {
			defer wg.Done()
			for j := range p.jobs {
				p.responses <- Result[R]{Index: j.index, Value: p.work(j.value)}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(p.responses)
	}()
}

// Add adds jobs to the worker pool. It blocks if the pool is full. Add must
// not be called concurrently or after Close.
func (p *Pool[J, R]) Add(j ...J) {
	for _, value := range j {
		p.jobs <- job[J]{index: p.added, value: value}
		p.added++
	}
}

// AddIter adds jobs from an iterator.
func (p *Pool[J, R]) AddIter(j iter.Seq[J]) {
	for value := range j {
		p.Add(value)
	}
}

// Close marks the end of the jobs.
func (p *Pool[_, _]) Close() {
	close(p.jobs)
}

// AddAndClose adds jobs and then calls Close.
func (p *Pool[J, R]) AddAndClose(j ...J) {
	p.Add(j...)
	p.Close()
}

// Iter yields results in completion order. Make sure to call Work first.
func (p *Pool[_, R]) Iter() iter.Seq[Result[R]] {
	return func(yield func(Result[R]) bool) {
		for r := range p.responses {
			if !yield(r) {
				return
			}
		}
	}
}

// Map runs work over jobs on the given number of workers and returns the
// results in the order of jobs.
func Map[J any, R any](workers int, jobs []J, work func(J) R) []R {
	p := NewPool(workers, work)
	results := make([]R, len(jobs))
	p.Work()
	go p.AddAndClose(jobs...)
	for r := range p.Iter() {
		results[r.Index] = r.Value
	}
	return results
}
