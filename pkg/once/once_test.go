package once

import (
	"sync"
	"testing"
)

func TestStored(t *testing.T) {
	o := New[string]()
	if o.Stored("a") {
		t.Fatalf("first call reported a as stored")
	}
	if !o.Stored("a") {
		t.Fatalf("second call reported a as new")
	}
	o.Forget("a")
	if o.Stored("a") {
		t.Fatalf("forgotten key reported as stored")
	}
}

func TestStoredConcurrent(t *testing.T) {
	o := New[int]()
	var wg sync.WaitGroup
	var mu sync.Mutex
	fresh := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !o.Stored(7) {
				mu.Lock()
				fresh++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if fresh != 1 {
		t.Fatalf("key reported new %d times", fresh)
	}
}
