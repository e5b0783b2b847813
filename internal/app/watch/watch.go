// Package watch reruns a text operation whenever its input file changes.
package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/opentext/internal/app"
)

// DefaultDelay is how long a file must stay quiet before a change is handled.
const DefaultDelay = 100 * time.Millisecond

var (
	// ErrPathNotExist indicates the watched file does not exist.
	ErrPathNotExist = errors.New("path does not exist")

	// ErrIsDirectory indicates a directory was given where a file is expected.
	ErrIsDirectory = errors.New("path is a directory")
)

// Watcher observes one file. Editors often replace a file instead of writing
// it, so the parent directory is watched and events are filtered by name.
type Watcher struct {
	path   string
	delay  time.Duration
	logger *app.Logger

	runs atomic.Int64
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDelay sets the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *app.Logger) Option {
	return func(w *Watcher) {
		w.logger = l
	}
}

// New creates a Watcher for the file at path.
func New(path string, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPathNotExist
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, ErrIsDirectory
	}

	w := &Watcher{
		path:   absPath,
		delay:  DefaultDelay,
		logger: app.NullLogger,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.WithComponent("watch")
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Runs returns how many times onChange has been called.
func (w *Watcher) Runs() int64 {
	return w.runs.Load()
}

// Run calls onChange once immediately and again after every burst of changes
// to the file. Errors from onChange are logged and watching continues.
// Run blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	w.fire(ctx, onChange)

	timer := time.NewTimer(w.delay)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("%s %s", ev.Op, ev.Name)
			timer.Reset(w.delay)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error: %v", err)

		case <-timer.C:
			if _, err := os.Stat(w.path); err != nil {
				w.logger.Debug("%s is gone, waiting for it to return", w.path)
				continue
			}
			w.fire(ctx, onChange)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

func (w *Watcher) fire(ctx context.Context, onChange func(context.Context) error) {
	w.runs.Add(1)
	if err := onChange(ctx); err != nil {
		w.logger.Error("%v", err)
	}
}
