package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		name      string
		since     string
		until     string
		wantSince time.Time
		wantUntil time.Time
		wantErr   bool
	}{
		{
			name: "empty strings",
		},
		{
			name:      "valid since only",
			since:     "2024-01-15T12:00:00Z",
			wantSince: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
		},
		{
			name:      "valid until only",
			until:     "2024-01-16T00:00:00Z",
			wantUntil: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "valid range",
			since:     "2024-01-15T12:00:00Z",
			until:     "2024-01-16T00:00:00Z",
			wantSince: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			wantUntil: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "invalid since format",
			since:   "2024-01-15",
			wantErr: true,
		},
		{
			name:    "invalid until format",
			until:   "not-a-date",
			wantErr: true,
		},
		{
			name:    "since after until",
			since:   "2024-01-16T00:00:00Z",
			until:   "2024-01-15T00:00:00Z",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSince, gotUntil, err := parseTimeRange(tt.since, tt.until)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseTimeRange() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if !gotSince.Equal(tt.wantSince) {
					t.Errorf("parseTimeRange() since = %v, want %v", gotSince, tt.wantSince)
				}
				if !gotUntil.Equal(tt.wantUntil) {
					t.Errorf("parseTimeRange() until = %v, want %v", gotUntil, tt.wantUntil)
				}
			}
		})
	}
}

// resetParseFlags restores the parse flag variables after a test.
func resetParseFlags(t *testing.T) {
	t.Helper()
	origLogDir := parseLogDir
	origInclude := parseIncludeTypes
	origExclude := parseExcludeTypes
	origFormat := parseFormat
	origFrom, origTo := parseFromMs, parseToMs
	origRaw := parseRaw
	t.Cleanup(func() {
		parseLogDir = origLogDir
		parseIncludeTypes = origInclude
		parseExcludeTypes = origExclude
		parseFormat = origFormat
		parseFromMs, parseToMs = origFrom, origTo
		parseRaw = origRaw
		parseCmd.SetOut(nil)
	})
}

func TestRunParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func()
		wantErr string
	}{
		{
			name:    "invalid event type",
			setup:   func() { parseIncludeTypes = []string{"invalid_type"} },
			wantErr: "unknown event type",
		},
		{
			name: "overlapping event types",
			setup: func() {
				parseIncludeTypes = []string{"strike"}
				parseExcludeTypes = []string{"strike"}
			},
			wantErr: "cannot be both included and excluded",
		},
		{
			name:    "invalid format",
			setup:   func() { parseFormat = "xml" },
			wantErr: "invalid format",
		},
		{
			name:    "empty time window",
			setup:   func() { parseFromMs, parseToMs = 5000, 1000 },
			wantErr: "--from-ms must be before --to-ms",
		},
		{
			name:    "missing log directory",
			setup:   func() { parseLogDir = filepath.Join(t.TempDir(), "missing") },
			wantErr: "parse error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetParseFlags(t)
			parseFormat = "jsonl"
			parseIncludeTypes, parseExcludeTypes = nil, nil
			tt.setup()

			err := runParse(parseCmd, nil)
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestRunParse_Files(t *testing.T) {
	resetParseFlags(t)
	path := writeSampleLog(t, filepath.Join(t.TempDir(), "20240115-201500.evtc"))

	parseFormat = "jsonl"
	parseIncludeTypes = []string{"strike", "health_update"}
	parseExcludeTypes = nil
	parseFromMs, parseToMs = 0, 0
	parseRaw = false

	var buf bytes.Buffer
	parseCmd.SetOut(&buf)
	if err := runParse(parseCmd, []string{path}); err != nil {
		t.Fatalf("runParse() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}

	wantTypes := []string{"strike", "health_update"}
	for i, line := range lines {
		var ev struct {
			Path  string `json:"path"`
			Index int    `json:"index"`
			Type  string `json:"type"`
			Time  uint64 `json:"time"`
		}
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("line %d is not JSON: %v", i, err)
		}
		if ev.Type != wantTypes[i] {
			t.Errorf("line %d type = %q, want %q", i, ev.Type, wantTypes[i])
		}
		if ev.Path != path {
			t.Errorf("line %d path = %q, want %q", i, ev.Path, path)
		}
	}
}

func TestRunParse_TimeWindow(t *testing.T) {
	resetParseFlags(t)
	path := writeSampleLog(t, filepath.Join(t.TempDir(), "20240115-201500.evtc"))

	parseFormat = "pretty"
	parseIncludeTypes, parseExcludeTypes = nil, nil
	parseFromMs, parseToMs = 1100, 1200
	parseRaw = false

	var buf bytes.Buffer
	parseCmd.SetOut(&buf)
	if err := runParse(parseCmd, []string{path}); err != nil {
		t.Fatalf("runParse() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "strike") {
		t.Errorf("output missing strike:\n%s", out)
	}
	for _, unwanted := range []string{"enter_combat", "buff_apply", "health_update"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("output contains %s outside the window:\n%s", unwanted, out)
		}
	}
}

func TestRunParse_RemovedSquadMarker(t *testing.T) {
	resetParseFlags(t)
	path := writeLog(t, filepath.Join(t.TempDir(), "markers.evtc"), markerLog())

	parseFormat = "jsonl"
	parseIncludeTypes, parseExcludeTypes = nil, nil
	parseFromMs, parseToMs = 0, 0
	parseRaw = false

	var buf bytes.Buffer
	parseCmd.SetOut(&buf)
	if err := runParse(parseCmd, []string{path}); err != nil {
		t.Fatalf("runParse() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if want := `"position":{"x":null,"y":null,"z":null}`; !strings.Contains(lines[1], want) {
		t.Errorf("removed marker line = %s, want to contain %s", lines[1], want)
	}
	if want := `"position":{"x":100,"y":-50,"z":8}`; !strings.Contains(lines[0], want) {
		t.Errorf("placed marker line = %s, want to contain %s", lines[0], want)
	}
}
