package filesystem

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/invoicename/internal/core/domain"
	"github.com/custodia-labs/invoicename/internal/core/ports/driven"
	"github.com/custodia-labs/invoicename/internal/logger"
)

// DefaultDebounce is how long a file must stay quiet before it is reported.
const DefaultDebounce = 500 * time.Millisecond

// Ensure Watcher implements the interface.
var _ driven.DocumentWatcher = (*Watcher)(nil)

// Watcher reports PDFs that appear in or are rewritten in a directory.
type Watcher struct {
	debounce time.Duration
}

// NewWatcher creates a watcher. A non-positive debounce uses DefaultDebounce.
func NewWatcher(debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{debounce: debounce}
}

// Watch blocks until ctx is cancelled, calling found once per PDF after its
// events have settled. Calls to found are serialized.
func (w *Watcher) Watch(ctx context.Context, dir string, found func(path string)) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInputDirectory, dir, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: create watcher: %w", domain.ErrFilesystem, err)
	}
	defer fsw.Close()

	if err := fsw.Add(abs); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInputDirectory, dir, err)
	}
	logger.Debug("watching %s", abs)

	var (
		mu      sync.Mutex
		pending = make(map[string]*time.Timer)
		ready   = make(chan string, 16)
		done    = make(chan struct{})
	)
	defer func() {
		close(done)
		mu.Lock()
		for _, t := range pending {
			t.Stop()
		}
		mu.Unlock()
	}()

	schedule := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		if t, ok := pending[path]; ok {
			t.Reset(w.debounce)
			return
		}
		pending[path] = time.AfterFunc(w.debounce, func() {
			mu.Lock()
			delete(pending, path)
			mu.Unlock()
			select {
			case ready <- path:
			case <-done:
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if path, ok := handleEvent(event); ok {
				schedule(path)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch %s: %v", abs, err)

		case path := <-ready:
			if isRegularFile(path) {
				found(path)
			}
		}
	}
}

// handleEvent returns the path of a PDF that was created, written or moved
// into the directory.
func handleEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if !IsPDF(event.Name) {
		return "", false
	}
	if !isRegularFile(event.Name) {
		return "", false
	}
	return event.Name, true
}
