package dirwatch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Debounce = 100 * time.Millisecond
	return cfg
}

func waitReady(t *testing.T, w *Watcher) string {
	t.Helper()
	select {
	case path, ok := <-w.Ready():
		if !ok {
			t.Fatal("Ready() closed")
		}
		return path
	case err := <-w.Errors():
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for settled file")
	}
	return ""
}

func TestWatcher_ReportsSettledFile(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := New(ctx, dir, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	path := filepath.Join(dir, "20240101-120000.zevtc")
	if err := os.WriteFile(path, []byte("EVTC"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := waitReady(t, w); got != path {
		t.Errorf("Ready() = %q, want %q", got, path)
	}
}

func TestWatcher_NewSubdirectory(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := New(ctx, dir, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	sub := filepath.Join(dir, "Vale Guardian")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	// Give the watcher a moment to pick up the new directory
	time.Sleep(200 * time.Millisecond)

	path := filepath.Join(sub, "20240101-120000.zevtc")
	if err := os.WriteFile(path, []byte("EVTC"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := waitReady(t, w); got != path {
		t.Errorf("Ready() = %q, want %q", got, path)
	}
}

func TestWatcher_Filter(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testConfig()
	cfg.Filter = func(path string) bool { return strings.HasSuffix(path, ".zevtc") }
	w, err := New(ctx, dir, cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "b.zevtc")
	if err := os.WriteFile(want, []byte("EVTC"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := waitReady(t, w); got != want {
		t.Errorf("Ready() = %q, want %q", got, want)
	}
}

func TestWatcher_MissingRoot(t *testing.T) {
	_, err := New(context.Background(), filepath.Join(t.TempDir(), "missing"), testConfig())
	if err == nil {
		t.Error("New() expected error for missing root")
	}
}

func TestWatcher_StopIdempotent(t *testing.T) {
	w, err := New(context.Background(), t.TempDir(), testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("first Stop() error = %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}
	if _, ok := <-w.Ready(); ok {
		t.Error("Ready() still open after Stop()")
	}
}

func TestWatcher_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w, err := New(ctx, t.TempDir(), testConfig())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	cancel()

	select {
	case _, ok := <-w.Ready():
		if ok {
			t.Error("Ready() delivered a path after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Error("Ready() not closed after context cancel")
	}
}
