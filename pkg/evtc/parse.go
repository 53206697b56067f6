package evtc

import (
	"context"
	"errors"
	"io"
	"iter"

	"github.com/evtclog/evtc-go/internal/logfinder"
	"github.com/evtclog/evtc-go/pkg/evtc/event"
	"github.com/evtclog/evtc-go/pkg/evtc/kind"
)

// Events parses the log at path and returns an iterator over its decoded
// events. The file is opened lazily on first iteration, so the returned
// iterator is cheap to create but must be consumed to release resources.
//
// The iterator yields (Event, error) pairs. When an error occurs:
//   - File open and table errors: yields (Event{}, error) once and stops
//   - Context cancellation: yields (Event{}, ctx.Err()) and stops
//
// Example:
//
//	for ev, err := range evtc.Events(ctx, "20240101-201500.zevtc") {
//	    if err != nil {
//	        log.Printf("error: %v", err)
//	        break
//	    }
//	    if t, ok := ev.Timestamp(); ok {
//	        fmt.Printf("%s at %d\n", ev.Type, t)
//	    }
//	}
func Events(ctx context.Context, path string, opts ...ParseOption) iter.Seq2[Event, error] {
	if path == "" {
		return func(yield func(Event, error) bool) {
			yield(Event{}, errors.New("evtc: path required"))
		}
	}

	cfg := applyParseOptions(opts)

	return func(yield func(Event, error) bool) {
		rc, err := openLog(path)
		if err != nil {
			yield(Event{}, err)
			return
		}
		defer rc.Close()

		l, err := readPreamble(rc)
		if err != nil {
			yield(Event{}, err)
			return
		}
		cfg.logger.Debug("parsed log tables",
			"path", path,
			"date", l.Header.Date,
			"boss_id", l.Header.BossID,
			"agents", len(l.Agents),
			"skills", len(l.Skills))

		_, err = streamRecords(ctx, rc, cfg, func(ev Event) bool {
			return yield(ev, nil)
		})
		if err != nil {
			yield(Event{}, err)
		}
	}
}

// EventsAll is a convenience function that parses a log file and collects
// all events into a slice. Stops on first error and returns events collected so far.
//
// For large files, consider using Events directly to avoid loading all events
// into memory at once.
func EventsAll(ctx context.Context, path string, opts ...ParseOption) ([]Event, error) {
	events := make([]Event, 0, 1024)

	for ev, err := range Events(ctx, path, opts...) {
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// streamRecords decodes records from r until the end of the stream.
// It returns false if yield asked to stop.
func streamRecords(ctx context.Context, r io.Reader, cfg *parseConfig, yield func(Event) bool) (bool, error) {
	var index, emitted int
	defer func() {
		cfg.logger.Debug("finished event stream", "records", index, "emitted", emitted)
	}()

	for ; ; index++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		raw, err := event.Read(r)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return true, nil
		}
		if err != nil {
			return false, err
		}

		ev, ok := cfg.decode(index, raw)
		if !ok {
			continue
		}

		emitted++
		if !yield(ev) {
			return false, nil
		}
	}
}

// decode turns the record at index into an Event. It reports false when
// the record is filtered out.
func (c *parseConfig) decode(index int, raw event.Event) (Event, bool) {
	k := kind.Decode(&raw)
	if !c.filter.Allows(k.Type()) {
		return Event{}, false
	}
	hasTime := raw.HasTime()
	if !c.allowsTime(hasTime, raw.Time) {
		return Event{}, false
	}

	ev := Event{Index: index, Type: k.Type(), Kind: k}
	if hasTime {
		t := raw.Time
		ev.Time = &t
	}
	if c.includeRaw {
		ev.Raw = &raw
	}
	return ev, true
}

// DecodeEvents decodes the event stream of a log that is already in
// memory, applying the same filters Events applies to a file.
func DecodeEvents(l *Log, opts ...ParseOption) []Event {
	cfg := applyParseOptions(opts)
	events := make([]Event, 0, len(l.Events))
	for i, raw := range l.Events {
		if ev, ok := cfg.decode(i, raw); ok {
			events = append(events, ev)
		}
	}
	return events
}

// ParseDir parses all ArcDPS logs in a directory tree, yielding events
// file by file in chronological order (by file modification time, oldest first).
//
// The iterator yields (FileEvent, error) pairs. When an error occurs:
//   - Directory access errors: yields (FileEvent{}, error) once and stops
//   - File errors: skips to next file by default, or yields a *FileError
//     and stops if WithDirStopOnError is set
//
// Example:
//
//	for ev, err := range evtc.ParseDir(ctx,
//	    evtc.WithDirIncludeTypes(evtc.EventSquadCombatStart),
//	) {
//	    if err != nil {
//	        log.Printf("error: %v", err)
//	        break
//	    }
//	    fmt.Printf("%s: combat started\n", ev.Path)
//	}
func ParseDir(ctx context.Context, opts ...ParseDirOption) iter.Seq2[FileEvent, error] {
	cfg := applyParseDirOptions(opts)

	return func(yield func(FileEvent, error) bool) {
		var files []string
		var err error

		if len(cfg.paths) > 0 {
			// Use explicit paths
			files = cfg.paths
		} else {
			var logDir string
			logDir, err = logfinder.FindLogDir(cfg.logDir)
			if err != nil {
				yield(FileEvent{}, err)
				return
			}

			files, err = logfinder.ListLogFiles(logDir)
			if err != nil {
				yield(FileEvent{}, err)
				return
			}
		}

		if len(files) == 0 {
			yield(FileEvent{}, ErrNoLogFiles)
			return
		}

		for _, path := range files {
			if err := ctx.Err(); err != nil {
				yield(FileEvent{}, err)
				return
			}

			more, err := cfg.parseFile(ctx, path, yield)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					yield(FileEvent{}, err)
					return
				}
				if cfg.stopOnError {
					yield(FileEvent{}, &FileError{Path: path, Err: err})
					return
				}
				cfg.logger.Debug("skipping log", "path", path, "error", err)
				continue
			}
			if !more {
				return // Consumer requested stop
			}
		}
	}
}

// parseFile streams one file of a directory parse.
// It returns false if yield asked to stop.
func (c *parseDirConfig) parseFile(ctx context.Context, path string, yield func(FileEvent, error) bool) (bool, error) {
	rc, err := openLog(path)
	if err != nil {
		return true, err
	}
	defer rc.Close()

	l, err := readPreamble(rc)
	if err != nil {
		return true, err
	}

	if c.hasDateRange() {
		recorded, err := l.Header.RecordedAt()
		if err != nil {
			return true, err
		}
		if !c.allowsDate(recorded) {
			c.logger.Debug("log outside date range", "path", path, "date", l.Header.Date)
			return true, nil
		}
	}

	return streamRecords(ctx, rc, &c.parseConfig, func(ev Event) bool {
		return yield(FileEvent{Path: path, Event: ev}, nil)
	})
}
