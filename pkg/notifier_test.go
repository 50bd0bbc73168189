package lib

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	seen := make(chan string, 16)

	w := NewWatcher(dir, 50*time.Millisecond, func(path string) { seen <- path })
	if err := w.Watch(); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Stop()

	target := filepath.Join(dir, "image.png")
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(target, []byte{byte(i)}, 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	select {
	case got := <-seen:
		if got != target {
			t.Fatalf("got %q want %q", got, target)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no event for %s", target)
	}

	// the burst of writes collapses into one call
	select {
	case got := <-seen:
		t.Fatalf("unexpected second call for %q", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherErrors(t *testing.T) {
	if err := NewWatcher("", 0, func(string) {}).Watch(); err == nil {
		t.Fatalf("empty path accepted")
	}
	if err := NewWatcher(t.TempDir(), 0, nil).Watch(); err == nil {
		t.Fatalf("nil work accepted")
	}
	if err := NewWatcher(filepath.Join(t.TempDir(), "missing"), 0, func(string) {}).Watch(); err == nil {
		t.Fatalf("missing directory accepted")
	}
	if err := NewWatcher(t.TempDir(), 0, func(string) {}).Stop(); err == nil {
		t.Fatalf("Stop before Watch succeeded")
	}
}

func TestWatcherStaleTimer(t *testing.T) {
	calls := make(chan string, 4)
	w := NewWatcher(t.TempDir(), time.Hour, func(path string) { calls <- path })

	w.schedule("a.png")
	stale := w.debounce["a.png"]
	w.schedule("a.png")
	current := w.debounce["a.png"]
	defer current.Stop()

	// a timer that went off before being replaced must not run work
	w.fire("a.png", stale)
	if w.debounce["a.png"] != current {
		t.Fatalf("stale timer dropped the current entry")
	}
	select {
	case got := <-calls:
		t.Fatalf("stale timer ran work for %q", got)
	default:
	}

	w.fire("a.png", current)
	if _, ok := w.debounce["a.png"]; ok {
		t.Fatalf("entry kept after firing")
	}
	if got := <-calls; got != "a.png" {
		t.Fatalf("got %q", got)
	}
}
