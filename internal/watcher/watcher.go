// Package watcher reloads views when task files or the board config change.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of file events (an editor save, a batch
// move) into a single callback.
const DefaultDebounce = 100 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Debounce is the quiet period before the callback fires. Zero selects
	// DefaultDebounce.
	Debounce time.Duration
	// Exts limits events to files with these extensions (".md", ".yml").
	// Empty means every file.
	Exts []string
}

// Watcher watches directories and invokes a callback, debounced, when a
// relevant file is created, written, removed or renamed.
type Watcher struct {
	fsw      *fsnotify.Watcher
	opts     Options
	callback func()

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a Watcher over dirs.
func New(dirs []string, opts Options, callback func()) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, d := range dirs {
		if err := fsw.Add(d); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	return &Watcher{fsw: fsw, opts: opts, callback: callback}, nil
}

// Run processes events until ctx is canceled or the watcher is closed.
// Errors from fsnotify go to errFn when it is non-nil.
func (w *Watcher) Run(ctx context.Context, errFn func(error)) {
	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				w.stopTimer()
				return
			}
			if w.relevant(event) {
				w.debounce()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if errFn != nil {
				errFn(err)
			}
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if len(w.opts.Exts) == 0 {
		return true
	}
	ext := filepath.Ext(event.Name)
	for _, e := range w.opts.Exts {
		if ext == e {
			return true
		}
	}
	return false
}

func (w *Watcher) debounce() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.opts.Debounce, w.callback)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
