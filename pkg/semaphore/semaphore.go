package semaphore

import "context"

// Semaphore bounds how many callers hold it at once.
type Semaphore struct {
	c chan struct{}
}

func New(size int) *Semaphore {
	return &Semaphore{make(chan struct{}, max(size, 1))}
}

// Acquire blocks until a slot is free or ctx is done.
func (s *Semaphore) Acquire(ctx context.Context) error {
	select {
	case s.c <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Semaphore) TryAcquire() bool {
	select {
	case s.c <- struct{}{}:
		return true
	default:
		return false
	}
}

func (s *Semaphore) Release() {
	<-s.c
}
