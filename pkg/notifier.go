package lib

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher calls work for each file written or created in a directory,
// once the file has been quiet for the cooldown.
type Watcher struct {
	path     string
	work     func(path string)
	cooldown time.Duration

	cancel   context.CancelFunc
	mu       sync.Mutex
	debounce map[string]*time.Timer
	watcher  *fsnotify.Watcher
}

func NewWatcher(path string, cooldown time.Duration, work func(path string)) *Watcher {
	return &Watcher{path: path, cooldown: cooldown, work: work, debounce: make(map[string]*time.Timer)}
}

func (w *Watcher) Watch() error {
	if w.work == nil {
		return errors.New("watcher: no work function")
	}
	if w.path == "" {
		return errors.New("watcher: no path")
	}
	if w.cancel != nil {
		return errors.New("watcher: already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(w.path); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to add watcher: %w", err)
	}
	w.watcher = watcher

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				w.schedule(event.Name)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Println("Error:", err)
			}
		}
	}()

	return nil
}

func (w *Watcher) Stop() error {
	if w.cancel == nil {
		return errors.New("watcher is not running")
	}
	w.cancel()
	w.cancel = nil

	w.mu.Lock()
	for path, timer := range w.debounce {
		timer.Stop()
		delete(w.debounce, path)
	}
	w.mu.Unlock()

	return w.watcher.Close()
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cooldown <= 0 {
		go w.work(path)
		return
	}

	// restart the timer of a file still being written
	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(w.cooldown, func() { w.fire(path, timer) })
	w.debounce[path] = timer
}

// fire runs work for path unless timer was replaced after it went off.
func (w *Watcher) fire(path string, timer *time.Timer) {
	w.mu.Lock()
	if w.debounce[path] != timer {
		w.mu.Unlock()
		return
	}
	delete(w.debounce, path)
	w.mu.Unlock()
	w.work(path)
}
