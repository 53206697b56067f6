package evtc_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/evtclog/evtc-go/pkg/evtc"
)

func waitUpdate(t *testing.T, updates <-chan evtc.Update, errs <-chan error) evtc.Update {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case u, ok := <-updates:
			if !ok {
				t.Fatal("updates channel closed")
			}
			return u
		case err, ok := <-errs:
			if ok {
				t.Fatalf("unexpected error: %v", err)
			}
		case <-timeout:
			t.Fatal("timeout waiting for update")
		}
	}
}

func TestNewWatcher_InvalidLogDir(t *testing.T) {
	_, err := evtc.NewWatcher(evtc.WithLogDir("/nonexistent/path"))
	if !errors.Is(err, evtc.ErrLogDirNotFound) {
		t.Errorf("NewWatcher() error = %v, want %v", err, evtc.ErrLogDirNotFound)
	}
}

func TestNewWatcher_InvalidOptions(t *testing.T) {
	dir := t.TempDir()
	writeLogFile(t, dir, "a.evtc", sampleLog())

	_, err := evtc.NewWatcher(evtc.WithLogDir(dir), evtc.WithDebounce(-time.Second))
	if err == nil {
		t.Error("NewWatcher() error = nil for negative debounce")
	}
}

func TestWatcher_ReplayLatest(t *testing.T) {
	dir := t.TempDir()
	writeLogFile(t, dir, "old.zevtc", sampleLog())
	latest := writeLogFile(t, dir, "new.zevtc", sampleLog())
	later := time.Now().Add(time.Minute)
	if err := chtimes(latest, later); err != nil {
		t.Fatal(err)
	}

	w, err := evtc.NewWatcher(
		evtc.WithLogDir(dir),
		evtc.WithReplay(evtc.ReplayLatest),
		evtc.WithIncludeTypes(evtc.EventStrike),
	)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates, errs := w.Watch(ctx)

	u := waitUpdate(t, updates, errs)
	if filepath.Base(u.Path) != "new.zevtc" {
		t.Errorf("Path = %s, want new.zevtc", u.Path)
	}
	if u.Log.Header.BossID != 15438 {
		t.Errorf("BossID = %d, want 15438", u.Log.Header.BossID)
	}
	if len(u.Log.Events) != 1 || u.Log.Events[0].Type() != evtc.EventStrike {
		t.Errorf("Events = %v, want a single strike", u.Log.Events)
	}
	if got := u.Log.AgentName(0x2000); got != "Vale Guardian" {
		t.Errorf("AgentName() = %q", got)
	}
}

func TestWatcher_NewLog(t *testing.T) {
	dir := t.TempDir()
	writeLogFile(t, dir, "existing.evtc", sampleLog())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, errs, err := evtc.Watch(ctx,
		evtc.WithLogDir(dir),
		evtc.WithDebounce(50*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	writeLogFile(t, dir, "Sabetha/20240115-203000.zevtc", sampleLog())

	u := waitUpdate(t, updates, errs)
	if filepath.Base(u.Path) != "20240115-203000.zevtc" {
		t.Errorf("Path = %s, want the new log", u.Path)
	}
	if len(u.Log.Events) != len(sampleLog().Events) {
		t.Errorf("got %d events, want %d", len(u.Log.Events), len(sampleLog().Events))
	}
}

func TestWatcher_ContextCancel(t *testing.T) {
	dir := t.TempDir()
	writeLogFile(t, dir, "a.evtc", sampleLog())

	w, err := evtc.NewWatcher(evtc.WithLogDir(dir))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	updates, errs := w.Watch(ctx)
	cancel()

	select {
	case _, ok := <-updates:
		if ok {
			t.Error("received update after cancel")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("updates channel not closed after cancel")
	}
	for range errs {
	}
}

func TestWatcher_CloseIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeLogFile(t, dir, "a.evtc", sampleLog())

	w, err := evtc.NewWatcher(evtc.WithLogDir(dir))
	if err != nil {
		t.Fatal(err)
	}
	updates, _ := w.Watch(context.Background())

	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if _, ok := <-updates; ok {
		t.Error("updates channel open after Close")
	}

	// A closed watcher hands out closed channels.
	again, errs := w.Watch(context.Background())
	if _, ok := <-again; ok {
		t.Error("Watch() after Close returned an open channel")
	}
	if _, ok := <-errs; ok {
		t.Error("Watch() after Close returned an open error channel")
	}
}

func TestReplayMode_String(t *testing.T) {
	tests := []struct {
		mode evtc.ReplayMode
		want string
	}{
		{evtc.ReplayNone, "none"},
		{evtc.ReplayLatest, "latest"},
		{evtc.ReplayAll, "all"},
		{evtc.ReplayMode(9), "ReplayMode(9)"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
