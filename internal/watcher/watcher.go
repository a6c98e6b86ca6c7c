// Package watcher reports changes to files on disk.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"venuestore/internal/logger"
)

// DefaultDebounce collapses the burst of events editors produce on save.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a set of files for changes
type Watcher struct {
	paths    []string
	onChange func(path string)
	debounce time.Duration
	log      *logger.Logger
}

// New creates a watcher that calls onChange with the absolute path of a file
// after it has settled.
func New(log *logger.Logger, onChange func(path string), paths ...string) *Watcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Watcher{
		paths:    paths,
		onChange: onChange,
		debounce: DefaultDebounce,
		log:      log.With("component", "watcher"),
	}
}

// WithDebounce sets the debounce duration
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Watch blocks until ctx is cancelled, returning nil in that case.
//
// Directories are watched rather than files so that editors which replace
// the file on save are still seen.
func (w *Watcher) Watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	files := make(map[string]bool, len(w.paths))
	dirs := make(map[string]bool)
	for _, path := range w.paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", path, err)
		}
		files[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
		w.log.Info("watching for changes", "path", abs)
	}

	var (
		mu     sync.Mutex
		timers = make(map[string]*time.Timer)
	)
	defer func() {
		mu.Lock()
		for _, t := range timers {
			t.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !files[abs] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			mu.Lock()
			if t, ok := timers[abs]; ok {
				t.Stop()
			}
			timers[abs] = time.AfterFunc(w.debounce, func() {
				if ctx.Err() != nil {
					return
				}
				w.log.Info("file changed", "path", abs)
				w.onChange(abs)
			})
			mu.Unlock()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}
