// Package watch reports changes to the session database made by other
// bizpilot processes, so an open TUI can offer to restore them.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bizpilot/bizpilot-cli/internal/core/ports/driven"
	"github.com/bizpilot/bizpilot-cli/internal/logger"
)

// Ensure FileWatcher implements the interface.
var _ driven.ChangeWatcher = (*FileWatcher)(nil)

// DefaultDebounce batches the several writes of a single commit into one signal.
const DefaultDebounce = 250 * time.Millisecond

// ErrAlreadyWatching is returned when Watch is called twice.
var ErrAlreadyWatching = errors.New("watcher already started")

// FileWatcher watches a SQLite database file and its write-ahead log.
// The containing directory is watched, since SQLite replaces and
// truncates files in ways that drop per-file watches.
type FileWatcher struct {
	dir      string
	names    map[string]bool
	debounce time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewFileWatcher creates a watcher for the database at dbPath.
func NewFileWatcher(dbPath string, debounce time.Duration) *FileWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	base := filepath.Base(dbPath)
	return &FileWatcher{
		dir:      filepath.Dir(dbPath),
		names:    map[string]bool{base: true, base + "-wal": true},
		debounce: debounce,
	}
}

// Watch starts watching. The returned channel receives at most one pending
// value per burst of changes and is closed when ctx is cancelled or Close is called.
func (w *FileWatcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return nil, ErrAlreadyWatching
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(w.dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})

	out := make(chan struct{}, 1)
	go w.run(ctx, fw, out)

	logger.Debug("watching %s for session changes", w.dir)
	return out, nil
}

// Close stops watching and waits for the event loop to exit.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return nil
}

func (w *FileWatcher) run(ctx context.Context, fw *fsnotify.Watcher, out chan<- struct{}) {
	defer close(w.done)
	defer close(out)
	defer fw.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("session watcher: %v", err)

		case <-fire:
			fire = nil
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}
}

func (w *FileWatcher) relevant(event fsnotify.Event) bool {
	if !w.names[filepath.Base(event.Name)] {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
