package evtc_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/evtclog/evtc-go/pkg/evtc"
	"github.com/evtclog/evtc-go/pkg/evtc/kind"
)

func eventTypes(events []evtc.Event) []evtc.EventType {
	types := make([]evtc.EventType, len(events))
	for i, ev := range events {
		types[i] = ev.Type
	}
	return types
}

func TestEvents(t *testing.T) {
	path := writeLogFile(t, t.TempDir(), "sample.zevtc", sampleLog())

	events, err := evtc.EventsAll(context.Background(), path)
	if err != nil {
		t.Fatalf("EventsAll() error = %v", err)
	}

	want := []struct {
		typ  evtc.EventType
		time uint64
	}{
		{kind.TypeEnterCombat, 1000},
		{kind.TypeStrike, 1100},
		{kind.TypeBuffApply, 1200},
		{kind.TypeHealthUpdate, 1300},
		{kind.TypeBuffFormula, 0},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, ev := range events {
		if ev.Index != i {
			t.Errorf("events[%d].Index = %d", i, ev.Index)
		}
		got, hasTime := ev.Timestamp()
		if ev.Type != want[i].typ || got != want[i].time {
			t.Errorf("events[%d] = %s@%d, want %s@%d", i, ev.Type, got, want[i].typ, want[i].time)
		}
		if wantTime := want[i].typ != kind.TypeBuffFormula; hasTime != wantTime {
			t.Errorf("events[%d] has time = %v, want %v", i, hasTime, wantTime)
		}
		if ev.Kind.Type() != ev.Type {
			t.Errorf("events[%d].Kind.Type() = %s, want %s", i, ev.Kind.Type(), ev.Type)
		}
		if ev.Raw != nil {
			t.Errorf("events[%d].Raw set without WithParseIncludeRaw", i)
		}
	}

	hu, ok := events[3].Kind.(kind.HealthUpdate)
	if !ok {
		t.Fatalf("events[3].Kind = %T, want kind.HealthUpdate", events[3].Kind)
	}
	if hu.Health != 0.995 {
		t.Errorf("Health = %v, want 0.995", hu.Health)
	}
}

func TestEvents_Options(t *testing.T) {
	path := writeLogFile(t, t.TempDir(), "sample.evtc", sampleLog())

	tests := []struct {
		name  string
		opts  []evtc.ParseOption
		want  []evtc.EventType
		index []int
	}{
		{
			name:  "include",
			opts:  []evtc.ParseOption{evtc.WithParseIncludeTypes(evtc.EventStrike, evtc.EventHealthUpdate)},
			want:  []evtc.EventType{kind.TypeStrike, kind.TypeHealthUpdate},
			index: []int{1, 3},
		},
		{
			name:  "exclude",
			opts:  []evtc.ParseOption{evtc.WithParseExcludeTypes(evtc.EventStrike, kind.TypeBuffFormula)},
			want:  []evtc.EventType{kind.TypeEnterCombat, kind.TypeBuffApply, kind.TypeHealthUpdate},
			index: []int{0, 2, 3},
		},
		{
			name: "exclude wins",
			opts: []evtc.ParseOption{evtc.WithParseFilter(
				[]evtc.EventType{evtc.EventStrike, evtc.EventBuffApply},
				[]evtc.EventType{evtc.EventStrike},
			)},
			want:  []evtc.EventType{kind.TypeBuffApply},
			index: []int{2},
		},
		{
			name:  "time range",
			opts:  []evtc.ParseOption{evtc.WithParseTimeRange(1100, 1300)},
			want:  []evtc.EventType{kind.TypeStrike, kind.TypeBuffApply},
			index: []int{1, 2},
		},
		{
			name:  "open-ended time range",
			opts:  []evtc.ParseOption{evtc.WithParseTimeRange(1200, 0)},
			want:  []evtc.EventType{kind.TypeBuffApply, kind.TypeHealthUpdate},
			index: []int{2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := evtc.EventsAll(context.Background(), path, tt.opts...)
			if err != nil {
				t.Fatalf("EventsAll() error = %v", err)
			}
			if got := eventTypes(events); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("types = %v, want %v", got, tt.want)
			}
			for i, ev := range events {
				if i < len(tt.index) && ev.Index != tt.index[i] {
					t.Errorf("events[%d].Index = %d, want %d", i, ev.Index, tt.index[i])
				}
			}
		})
	}
}

func TestEvents_IncludeRaw(t *testing.T) {
	l := sampleLog()
	path := writeLogFile(t, t.TempDir(), "sample.evtc", l)

	events, err := evtc.EventsAll(context.Background(), path, evtc.WithParseIncludeRaw(true))
	if err != nil {
		t.Fatalf("EventsAll() error = %v", err)
	}
	for i, ev := range events {
		if ev.Raw == nil {
			t.Fatalf("events[%d].Raw = nil", i)
		}
		if *ev.Raw != l.Events[i] {
			t.Errorf("events[%d].Raw = %+v, want %+v", i, *ev.Raw, l.Events[i])
		}
	}
}

func TestEvents_StopEarly(t *testing.T) {
	path := writeLogFile(t, t.TempDir(), "sample.evtc", sampleLog())

	count := 0
	for _, err := range evtc.Events(context.Background(), path) {
		if err != nil {
			t.Fatalf("Events() error = %v", err)
		}
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestEvents_Errors(t *testing.T) {
	dir := t.TempDir()
	path := writeLogFile(t, dir, "sample.evtc", sampleLog())
	notLog := filepath.Join(dir, "notes.evtc")
	if err := os.WriteFile(notLog, []byte("EVTX............"), 0o644); err != nil {
		t.Fatal(err)
	}

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		path string
		want error
	}{
		{"canceled", canceled, path, context.Canceled},
		{"missing file", context.Background(), filepath.Join(dir, "missing.evtc"), os.ErrNotExist},
		{"not evtc", context.Background(), notLog, evtc.ErrNotEVTC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := evtc.EventsAll(tt.ctx, tt.path)
			if !errors.Is(err, tt.want) {
				t.Errorf("EventsAll() error = %v, want %v", err, tt.want)
			}
			if len(events) != 0 {
				t.Errorf("got %d events, want none", len(events))
			}
		})
	}

	t.Run("empty path", func(t *testing.T) {
		if _, err := evtc.EventsAll(context.Background(), ""); err == nil {
			t.Error("EventsAll(\"\") error = nil")
		}
	})
}

// setupLogDir writes an old log, a recent log and a broken file, with
// ascending modification times.
func setupLogDir(t *testing.T) (dir, oldPath, newPath, brokenPath string) {
	t.Helper()
	dir = t.TempDir()

	old := sampleLog()
	old.Header.Date = "20230101"
	oldPath = writeLogFile(t, dir, "Vale Guardian/20230101-190000.zevtc", old)
	newPath = writeLogFile(t, dir, "Vale Guardian/20240115-201500.zevtc", sampleLog())
	brokenPath = filepath.Join(dir, "broken.evtc")
	if err := os.WriteFile(brokenPath, []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	base := time.Now().Add(-time.Hour)
	for i, p := range []string{oldPath, brokenPath, newPath} {
		mt := base.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(p, mt, mt); err != nil {
			t.Fatal(err)
		}
	}
	return dir, oldPath, newPath, brokenPath
}

func collectDir(t *testing.T, opts ...evtc.ParseDirOption) ([]evtc.FileEvent, error) {
	t.Helper()
	var events []evtc.FileEvent
	for ev, err := range evtc.ParseDir(context.Background(), opts...) {
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func TestParseDir(t *testing.T) {
	dir, oldPath, newPath, _ := setupLogDir(t)

	events, err := collectDir(t,
		evtc.WithDirLogDir(dir),
		evtc.WithDirIncludeTypes(evtc.EventStrike),
	)
	if err != nil {
		t.Fatalf("ParseDir() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2 (one strike per valid log)", len(events))
	}
	// Oldest first; the broken file in between is skipped.
	if filepath.Base(events[0].Path) != filepath.Base(oldPath) {
		t.Errorf("events[0].Path = %s, want %s", events[0].Path, oldPath)
	}
	if filepath.Base(events[1].Path) != filepath.Base(newPath) {
		t.Errorf("events[1].Path = %s, want %s", events[1].Path, newPath)
	}
	for _, ev := range events {
		if ev.Type != evtc.EventStrike || ev.Index != 1 {
			t.Errorf("event = %s#%d, want strike#1", ev.Type, ev.Index)
		}
	}
}

func TestParseDir_DateRange(t *testing.T) {
	dir, _, newPath, _ := setupLogDir(t)

	events, err := collectDir(t,
		evtc.WithDirLogDir(dir),
		evtc.WithDirDateRange(
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		),
	)
	if err != nil {
		t.Fatalf("ParseDir() error = %v", err)
	}
	if len(events) != len(sampleLog().Events) {
		t.Fatalf("got %d events, want %d", len(events), len(sampleLog().Events))
	}
	for _, ev := range events {
		if filepath.Base(ev.Path) != filepath.Base(newPath) {
			t.Errorf("event from %s, want only %s", ev.Path, newPath)
		}
	}
}

func TestParseDir_StopOnError(t *testing.T) {
	dir, _, _, brokenPath := setupLogDir(t)

	events, err := collectDir(t,
		evtc.WithDirLogDir(dir),
		evtc.WithDirStopOnError(true),
	)
	var fileErr *evtc.FileError
	if !errors.As(err, &fileErr) {
		t.Fatalf("ParseDir() error = %v, want FileError", err)
	}
	if filepath.Base(fileErr.Path) != filepath.Base(brokenPath) {
		t.Errorf("FileError.Path = %s, want %s", fileErr.Path, brokenPath)
	}
	// Only the oldest log precedes the broken file.
	if len(events) != len(sampleLog().Events) {
		t.Errorf("got %d events before the error, want %d", len(events), len(sampleLog().Events))
	}
}

func TestParseDir_Paths(t *testing.T) {
	_, oldPath, newPath, _ := setupLogDir(t)

	events, err := collectDir(t,
		evtc.WithDirPaths(newPath, oldPath),
		evtc.WithDirIncludeTypes(evtc.EventEnterCombat),
		evtc.WithDirIncludeRaw(true),
	)
	if err != nil {
		t.Fatalf("ParseDir() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	// Explicit paths keep their given order.
	if events[0].Path != newPath || events[1].Path != oldPath {
		t.Errorf("paths = %s, %s", events[0].Path, events[1].Path)
	}
	if events[0].Raw == nil {
		t.Error("Raw = nil with WithDirIncludeRaw")
	}
}

func TestParseDir_LogDirErrors(t *testing.T) {
	t.Run("empty dir", func(t *testing.T) {
		_, err := collectDir(t, evtc.WithDirLogDir(t.TempDir()))
		if !errors.Is(err, evtc.ErrLogDirNotFound) {
			t.Errorf("ParseDir() error = %v, want ErrLogDirNotFound", err)
		}
	})
	t.Run("missing dir", func(t *testing.T) {
		_, err := collectDir(t, evtc.WithDirLogDir(filepath.Join(t.TempDir(), "missing")))
		if !errors.Is(err, evtc.ErrLogDirNotFound) {
			t.Errorf("ParseDir() error = %v, want ErrLogDirNotFound", err)
		}
	})
}

func TestDecodeEvents(t *testing.T) {
	events := evtc.DecodeEvents(sampleLog(),
		evtc.WithParseIncludeTypes(evtc.EventStrike, evtc.EventHealthUpdate),
		evtc.WithParseExcludeTypes(evtc.EventHealthUpdate),
	)

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1: %v", len(events), eventTypes(events))
	}
	if events[0].Type != evtc.EventStrike || events[0].Index != 1 {
		t.Errorf("events[0] = %s at index %d, want strike at index 1", events[0].Type, events[0].Index)
	}

	all := evtc.DecodeEvents(sampleLog())
	if len(all) != len(sampleLog().Events) {
		t.Errorf("unfiltered DecodeEvents() = %d events, want %d", len(all), len(sampleLog().Events))
	}
}

func TestEvent_ZeroTimestamp(t *testing.T) {
	l := sampleLog()
	l.Events[0].Time = 0

	events := evtc.DecodeEvents(l)
	if ts, ok := events[0].Timestamp(); !ok || ts != 0 {
		t.Errorf("Timestamp() = %d, %v, want 0, true", ts, ok)
	}

	tests := []struct {
		name string
		ev   evtc.Event
		want string
	}{
		{"time zero is kept", events[0], `"type":"enter_combat","time":0,"kind"`},
		{"untimed record omits time", events[4], `"type":"buff_formula","kind"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.ev)
			if err != nil {
				t.Fatalf("json.Marshal() error = %v", err)
			}
			if !strings.Contains(string(b), tt.want) {
				t.Errorf("json.Marshal() = %s, want to contain %s", b, tt.want)
			}
		})
	}
}
