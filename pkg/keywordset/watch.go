package keywordset

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/eventkit/pkg/logger"
)

// Watcher reloads a taxonomy file into a Store whenever it changes.
// The file's directory is watched rather than the file itself so that
// editors and config managers that replace the file atomically are seen.
type Watcher struct {
	path     string
	store    *Store
	log      *slog.Logger
	debounce time.Duration
	hook     func(error)

	mu      sync.Mutex
	running bool
	timer   *time.Timer
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long to wait after the last change before reloading.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the watcher's logger.
func WithLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// WithReloadHook is called after every reload triggered by a file change.
func WithReloadHook(fn func(error)) WatcherOption {
	return func(w *Watcher) {
		w.hook = fn
	}
}

// NewWatcher creates a watcher for path that writes into store.
func NewWatcher(path string, store *Store, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		path:     path,
		store:    store,
		log:      slog.Default(),
		debounce: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Reload reads the file once and swaps it into the store. A file that
// fails to parse leaves the previous taxonomy in place.
func (w *Watcher) Reload() error {
	t, err := LoadFile(w.path)
	if err != nil {
		return err
	}
	w.store.Set(t)
	w.log.Info("keyword taxonomy loaded",
		logger.Component("keywordset"),
		slog.String("path", w.path),
		slog.Int("sets", len(t)),
	)
	return nil
}

// Watch blocks until ctx is cancelled, reloading on every write, create or
// rename of the watched file.
func (w *Watcher) Watch(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrWatcherAlreadyActive
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
	}()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	target := filepath.Clean(w.path)
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return errors.New("taxonomy watcher events channel closed")
			}
			if filepath.Clean(ev.Name) != target || ev.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}
			w.schedule()

		case err, ok := <-fsw.Errors:
			if !ok {
				return errors.New("taxonomy watcher errors channel closed")
			}
			w.log.Error("taxonomy watcher error", logger.Component("keywordset"), logger.Error(err))
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		err := w.Reload()
		if w.hook != nil {
			w.hook(err)
		}
		if err != nil {
			w.log.Error("keyword taxonomy reload failed",
				logger.Component("keywordset"),
				slog.String("path", w.path),
				logger.Error(err),
			)
		}
	})
}
