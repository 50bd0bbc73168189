package semaphore

import (
	"context"
	"errors"
	"testing"
)

func TestSemaphore(t *testing.T) {
	s := New(2)
	ctx := context.Background()

	if err := s.Acquire(ctx); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if !s.TryAcquire() {
		t.Fatalf("second slot unavailable")
	}
	if s.TryAcquire() {
		t.Fatalf("acquired past capacity")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := s.Acquire(cancelled); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v want context.Canceled", err)
	}

	s.Release()
	if !s.TryAcquire() {
		t.Fatalf("released slot unavailable")
	}
}

func TestMinimumSize(t *testing.T) {
	if s := New(0); !s.TryAcquire() {
		t.Fatalf("zero-size semaphore never admits")
	}
}
