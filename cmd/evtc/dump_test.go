package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evtclog/evtc-go/pkg/evtc"
	"github.com/evtclog/evtc-go/pkg/evtc/kind"
)

func TestDumpPath(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		outDir string
		want   string
	}{
		{
			name:  "next to input",
			input: filepath.Join("logs", "boss.zevtc"),
			want:  filepath.Join("logs", "boss.zevtc.json"),
		},
		{
			name:   "into out dir",
			input:  filepath.Join("logs", "boss.zevtc"),
			outDir: "json",
			want:   filepath.Join("json", "boss.json"),
		},
		{
			name:   "no extension",
			input:  "boss",
			outDir: "json",
			want:   filepath.Join("json", "boss.json"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dumpPath(tt.input, tt.outDir); got != tt.want {
				t.Errorf("dumpPath(%q, %q) = %q, want %q", tt.input, tt.outDir, got, tt.want)
			}
		})
	}
}

type dumpedDoc struct {
	Header struct {
		Date   string `json:"date"`
		BossID uint16 `json:"boss_id"`
	} `json:"header"`
	Agents []json.RawMessage `json:"agents"`
	Skills []json.RawMessage `json:"skills"`
	Events []struct {
		Index int    `json:"index"`
		Type  string `json:"type"`
		Time  uint64 `json:"time"`
	} `json:"events"`
}

func readDump(t *testing.T, path string) dumpedDoc {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading dump: %v", err)
	}
	var doc dumpedDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("dump is not JSON: %v", err)
	}
	return doc
}

func TestDumpFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeSampleLog(t, filepath.Join(dir, "a.evtc"))
	b := writeSampleLog(t, filepath.Join(dir, "b.evtc"))

	sel := dumpSelection{Agents: true, Skills: true, Events: true}
	if err := dumpFiles(context.Background(), []string{a, b}, "", sel, 2, nil); err != nil {
		t.Fatalf("dumpFiles() error = %v", err)
	}

	for _, input := range []string{a, b} {
		doc := readDump(t, input+".json")
		if doc.Header.Date != "20240115" || doc.Header.BossID != 15438 {
			t.Errorf("%s: header = %+v", input, doc.Header)
		}
		if len(doc.Agents) != 2 || len(doc.Skills) != 1 {
			t.Errorf("%s: agents = %d, skills = %d", input, len(doc.Agents), len(doc.Skills))
		}
		if len(doc.Events) != 4 {
			t.Fatalf("%s: events = %d, want 4", input, len(doc.Events))
		}
		if doc.Events[1].Type != "strike" || doc.Events[1].Time != 1100 || doc.Events[1].Index != 1 {
			t.Errorf("%s: events[1] = %+v", input, doc.Events[1])
		}
	}
}

func TestDumpFiles_Selection(t *testing.T) {
	dir := t.TempDir()
	in := writeSampleLog(t, filepath.Join(dir, "logs", "boss.evtc"))
	outDir := filepath.Join(dir, "json")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}

	sel := dumpSelection{
		Events:  true,
		Include: []evtc.EventType{kind.TypeStrike, kind.TypeHealthUpdate},
		Exclude: []evtc.EventType{kind.TypeHealthUpdate},
	}
	if err := dumpFiles(context.Background(), []string{in}, outDir, sel, 1, nil); err != nil {
		t.Fatalf("dumpFiles() error = %v", err)
	}

	doc := readDump(t, filepath.Join(outDir, "boss.json"))
	if doc.Agents != nil || doc.Skills != nil {
		t.Errorf("agents/skills should be omitted, got %d/%d", len(doc.Agents), len(doc.Skills))
	}
	if len(doc.Events) != 1 || doc.Events[0].Type != "strike" || doc.Events[0].Index != 1 {
		t.Errorf("events = %+v, want only the strike at index 1", doc.Events)
	}
}

func TestDumpFiles_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeSampleLog(t, filepath.Join(dir, "good.evtc"))
	bad := filepath.Join(dir, "bad.evtc")
	if err := os.WriteFile(bad, []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	sel := dumpSelection{Agents: true, Skills: true, Events: true}
	err := dumpFiles(context.Background(), []string{bad, good}, "", sel, 2, nil)
	if err == nil {
		t.Fatal("expected error for broken file, got nil")
	}
	if !strings.Contains(err.Error(), "1 of 2 files failed") {
		t.Errorf("error = %v, want to contain %q", err, "1 of 2 files failed")
	}

	var fe *evtc.FileError
	if !errors.As(err, &fe) || fe.Path != bad {
		t.Errorf("errors.As FileError = %v, path %v", fe, bad)
	}

	if _, err := os.Stat(good + ".json"); err != nil {
		t.Errorf("good file was not dumped: %v", err)
	}
	if _, err := os.Stat(bad + ".json"); !os.IsNotExist(err) {
		t.Errorf("bad file should not be dumped, stat error = %v", err)
	}
}

func TestDumpFiles_Canceled(t *testing.T) {
	in := writeSampleLog(t, filepath.Join(t.TempDir(), "boss.evtc"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := dumpFiles(ctx, []string{in}, "", dumpSelection{Events: true}, 1, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("dumpFiles() error = %v, want context.Canceled", err)
	}
}

func TestRunDump_InvalidWorkers(t *testing.T) {
	orig := dumpWorkers
	t.Cleanup(func() { dumpWorkers = orig })

	dumpWorkers = -1
	err := runDump(dumpCmd, []string{"boss.zevtc"})
	if err == nil || !strings.Contains(err.Error(), "--workers must be at least 1") {
		t.Errorf("runDump() error = %v, want workers error", err)
	}
}

func TestDumpFiles_RemovedSquadMarker(t *testing.T) {
	in := writeLog(t, filepath.Join(t.TempDir(), "markers.evtc"), markerLog())

	sel := dumpSelection{Events: true, Include: []evtc.EventType{kind.TypeSquadMarker}}
	if err := dumpFiles(context.Background(), []string{in}, "", sel, 1, nil); err != nil {
		t.Fatalf("dumpFiles() error = %v", err)
	}

	data, err := os.ReadFile(in + ".json")
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Events []struct {
			Kind struct {
				Position map[string]*float64 `json:"position"`
			} `json:"kind"`
		} `json:"events"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("dump is not JSON: %v", err)
	}
	if len(doc.Events) != 2 {
		t.Fatalf("events = %d, want 2", len(doc.Events))
	}
	placed, removed := doc.Events[0].Kind.Position, doc.Events[1].Kind.Position
	if placed["x"] == nil || *placed["x"] != 100 {
		t.Errorf("placed marker position = %v", placed)
	}
	for _, axis := range []string{"x", "y", "z"} {
		if v, ok := removed[axis]; !ok || v != nil {
			t.Errorf("removed marker %s = %v, want null", axis, v)
		}
	}
}
