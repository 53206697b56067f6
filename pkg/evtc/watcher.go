package evtc

import (
	"context"
	"fmt"
	"sync"

	"github.com/evtclog/evtc-go/internal/dirwatch"
	"github.com/evtclog/evtc-go/internal/logfinder"
)

// ReplayMode specifies which existing logs are delivered on start.
type ReplayMode int

const (
	// ReplayNone only delivers logs written after Watch is called (default).
	ReplayNone ReplayMode = iota
	// ReplayLatest delivers the most recent existing log first.
	ReplayLatest
	// ReplayAll delivers every existing log, oldest first.
	ReplayAll
)

func (m ReplayMode) String() string {
	switch m {
	case ReplayNone:
		return "none"
	case ReplayLatest:
		return "latest"
	case ReplayAll:
		return "all"
	}
	return fmt.Sprintf("ReplayMode(%d)", int(m))
}

// errBuffer is the buffer size of the watcher's error channel.
const errBuffer = 16

// Update is a log file that ArcDPS finished writing.
type Update struct {
	Path string          `json:"path"`
	Log  *LogTransformed `json:"log"`
}

// Watcher monitors the ArcDPS log directory for new logs.
type Watcher struct {
	cfg    *watchConfig
	logDir string

	mu       sync.Mutex
	closed   bool
	cancel   context.CancelFunc // cancel func to stop the goroutine
	doneCh   chan struct{}      // signals when goroutine has exited
	watching bool               // true if Watch() has been called
}

// validate checks for invalid option combinations.
func (c *watchConfig) validate() error {
	if c.debounce < 0 {
		return fmt.Errorf("debounce must be non-negative, got %v", c.debounce)
	}
	if c.replay < ReplayNone || c.replay > ReplayAll {
		return fmt.Errorf("unknown replay mode %v", c.replay)
	}
	return nil
}

// NewWatcher creates a watcher.
// Validates options and checks log directory existence.
// Does NOT start goroutines (cheap to call).
// Returns error for invalid options or missing log directory.
func NewWatcher(opts ...WatchOption) (*Watcher, error) {
	cfg := applyWatchOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	logDir, err := logfinder.FindLogDir(cfg.logDir)
	if err != nil {
		return nil, err
	}

	return &Watcher{
		cfg:    cfg,
		logDir: logDir,
	}, nil
}

// LogDir returns the resolved directory being watched.
func (w *Watcher) LogDir() string {
	return w.logDir
}

// Watch starts watching and returns channels.
// Starts internal goroutines here.
// When ctx is cancelled, channels are closed automatically.
// Both channels close on ctx.Done() or fatal error.
// Watch can only be called once per Watcher instance.
func (w *Watcher) Watch(ctx context.Context) (<-chan Update, <-chan error) {
	w.mu.Lock()
	if w.closed || w.watching {
		w.mu.Unlock()
		// Return closed channels if already closed or watching
		updateCh := make(chan Update)
		errCh := make(chan error)
		close(updateCh)
		close(errCh)
		return updateCh, errCh
	}
	w.watching = true

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	updateCh := make(chan Update)
	errCh := make(chan error, errBuffer)

	go w.run(ctx, updateCh, errCh)

	return updateCh, errCh
}

// Close stops the watcher and releases resources.
// Safe to call multiple times.
// Blocks until the goroutine has exited.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true

	if w.cancel != nil {
		w.cancel()
	}
	doneCh := w.doneCh
	w.mu.Unlock()

	if doneCh != nil {
		<-doneCh
	}
	return nil
}

func (w *Watcher) run(ctx context.Context, updateCh chan<- Update, errCh chan<- error) {
	defer close(w.doneCh) // Signal that goroutine has exited
	defer close(updateCh)
	defer close(errCh)

	logger := w.cfg.logger

	// Start watching before replaying so logs finished during replay are not missed.
	dwCfg := dirwatch.DefaultConfig()
	dwCfg.Debounce = w.cfg.debounce
	dwCfg.Filter = logfinder.IsLogFile
	dwCfg.Logger = logger
	dw, err := dirwatch.New(ctx, w.logDir, dwCfg)
	if err != nil {
		sendError(errCh, fmt.Errorf("starting directory watch: %w", err))
		return
	}
	defer func() { _ = dw.Stop() }()

	if err := w.replay(ctx, updateCh, errCh); err != nil {
		sendError(errCh, fmt.Errorf("replaying logs: %w", err))
	}

	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-dw.Ready():
			if !ok {
				return
			}
			w.processFile(ctx, path, updateCh, errCh)
		case err, ok := <-dw.Errors():
			if !ok {
				return
			}
			sendError(errCh, err)
		}
	}
}

// replay delivers existing logs according to the replay mode.
func (w *Watcher) replay(ctx context.Context, updateCh chan<- Update, errCh chan<- error) error {
	var files []string
	switch w.cfg.replay {
	case ReplayNone:
		return nil
	case ReplayLatest:
		latest, err := logfinder.FindLatestLogFile(w.logDir)
		if err != nil {
			return err
		}
		files = []string{latest}
	case ReplayAll:
		all, err := logfinder.ListLogFiles(w.logDir)
		if err != nil {
			return err
		}
		files = all
	}

	w.cfg.logger.Debug("replaying logs", "mode", w.cfg.replay, "count", len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.processFile(ctx, path, updateCh, errCh)
	}
	return nil
}

func (w *Watcher) processFile(ctx context.Context, path string, updateCh chan<- Update, errCh chan<- error) {
	log, err := ParseFileTransformed(path)
	if err != nil {
		sendError(errCh, &FileError{Path: path, Err: err})
		return
	}
	log.filterEvents(w.cfg.filter)

	w.cfg.logger.Debug("parsed log",
		"path", path,
		"boss_id", log.Header.BossID,
		"events", len(log.Events))

	select {
	case updateCh <- Update{Path: path, Log: log}:
	case <-ctx.Done():
	}
}

// sendError sends an error non-blocking.
func sendError(errCh chan<- error, err error) {
	select {
	case errCh <- err:
	default:
		// Drop error if channel is full
	}
}

// Watch is a convenience function that creates a watcher and starts watching.
// Returns error immediately for initialization failures.
func Watch(ctx context.Context, opts ...WatchOption) (<-chan Update, <-chan error, error) {
	w, err := NewWatcher(opts...)
	if err != nil {
		return nil, nil, err
	}
	updates, errs := w.Watch(ctx)
	return updates, errs, nil
}
