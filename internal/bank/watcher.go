package bank

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a YAML bank file when it changes on disk and publishes
// the current snapshot. Reload failures keep the last good bank.
type Watcher struct {
	path         string
	watcher      *fsnotify.Watcher
	debounceTime time.Duration

	mu      sync.RWMutex
	current *Bank
	pending bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher loads the bank file once and prepares a watcher on its
// directory. Watching the directory instead of the file survives
// editors that replace the file on save.
func NewWatcher(path string) (*Watcher, error) {
	initial, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:         path,
		watcher:      fsw,
		debounceTime: 500 * time.Millisecond,
		current:      initial,
		ctx:          ctx,
		cancel:       cancel,
	}
	return w, nil
}

// Bank returns the current snapshot.
func (w *Watcher) Bank() *Bank {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Start begins watching for changes.
func (w *Watcher) Start() {
	w.wg.Add(2)
	go w.eventLoop()
	go w.debounceLoop()
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.cancel()
	w.wg.Wait()
	return w.watcher.Close()
}

func (w *Watcher) eventLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.mu.Lock()
				w.pending = true
				w.mu.Unlock()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("bank watcher error: %v", err)
		}
	}
}

func (w *Watcher) debounceLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.debounceTime)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			w.mu.Lock()
			dirty := w.pending
			w.pending = false
			w.mu.Unlock()
			if dirty {
				w.reload()
			}
		}
	}
}

func (w *Watcher) reload() {
	b, err := LoadFile(w.path)
	if err != nil {
		log.Printf("bank reload failed, keeping previous bank: %v", err)
		return
	}
	w.mu.Lock()
	w.current = b
	w.mu.Unlock()
	log.Printf("bank reloaded from %s (%d questions)", w.path, len(b.questions))
}
