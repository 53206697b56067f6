// Package dirwatch reports files in a directory tree once writes to them
// have settled.
//
// ArcDPS writes a log in one go when an encounter ends, so a file is
// considered finished when no create or write event has been seen for it
// for the debounce interval.
package dirwatch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// errBuffer is the buffer size for the error channel.
// A small buffer prevents error loss during brief moments when the consumer
// is busy processing files.
const errBuffer = 16

// minTick bounds how often pending files are checked.
const minTick = 10 * time.Millisecond

// Config holds configuration for watching.
type Config struct {
	// Debounce is how long a file must be quiet before it is reported.
	Debounce time.Duration

	// Filter selects the files to report. Nil reports every file.
	Filter func(path string) bool

	// Logger receives debug output. Nil disables logging.
	Logger *slog.Logger
}

// DefaultConfig returns the default configuration for ArcDPS logs.
func DefaultConfig() Config {
	return Config{
		Debounce: 2 * time.Second,
	}
}

// Watcher wraps fsnotify for a directory tree.
type Watcher struct {
	fw      *fsnotify.Watcher
	cfg     Config
	logger  *slog.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	ready   chan string
	errors  chan error
	doneCh  chan struct{}
	pending map[string]time.Time // owned by run

	mu      sync.Mutex
	stopped bool
}

// New starts watching root and every directory below it.
// The provided context controls the watcher's lifecycle.
func New(ctx context.Context, root string, cfg Config) (*Watcher, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultConfig().Debounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		fw:      fw,
		cfg:     cfg,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		ready:   make(chan string),
		errors:  make(chan error, errBuffer),
		doneCh:  make(chan struct{}),
		pending: make(map[string]time.Time),
	}

	if err := w.addTree(root, false); err != nil {
		cancel()
		_ = fw.Close()
		return nil, err
	}

	go w.run()

	return w, nil
}

// Ready returns a channel that receives paths of finished files.
func (w *Watcher) Ready() <-chan string {
	return w.ready
}

// Errors returns a channel that receives errors from watching.
// Errors are sent non-blocking; if the channel is not read, errors are dropped.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Stop stops watching and closes all channels.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	w.mu.Unlock()

	w.cancel()
	<-w.doneCh // Wait for run() to finish
	return w.fw.Close()
}

// addTree watches dir and all of its subdirectories. With existing set,
// files already present in the tree are treated as new, since they may
// have been written before the watch was registered.
func (w *Watcher) addTree(dir string, existing bool) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("watching %s: %w", dir, err)
			}
			return nil
		}
		if !d.IsDir() {
			if existing {
				w.touch(path)
			}
			return nil
		}
		if err := w.fw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

func (w *Watcher) run() {
	defer close(w.doneCh)
	defer close(w.ready)
	defer close(w.errors)

	tick := w.cfg.Debounce / 4
	if tick < minTick {
		tick = minTick
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.sendError(fmt.Errorf("fsnotify: %w", err))
		case now := <-ticker.C:
			if !w.flush(now) {
				return
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	switch {
	case ev.Has(fsnotify.Create):
		if isDir(ev.Name) {
			// Subdirectories are created per boss on first kill.
			if err := w.addTree(ev.Name, true); err != nil {
				w.sendError(err)
			}
			return
		}
		w.touch(ev.Name)
	case ev.Has(fsnotify.Write):
		w.touch(ev.Name)
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		delete(w.pending, ev.Name)
	}
}

func (w *Watcher) touch(path string) {
	if w.cfg.Filter != nil && !w.cfg.Filter(path) {
		return
	}
	w.pending[path] = time.Now()
}

// flush reports pending files that have been quiet for the debounce
// interval. It returns false if the watcher was cancelled.
func (w *Watcher) flush(now time.Time) bool {
	for path, last := range w.pending {
		if now.Sub(last) < w.cfg.Debounce {
			continue
		}
		delete(w.pending, path)
		w.logger.Debug("file settled", "path", path)
		select {
		case w.ready <- path:
		case <-w.ctx.Done():
			return false
		}
	}
	return true
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
		// Drop error only if buffer is full
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
