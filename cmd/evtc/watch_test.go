package main

import (
	"strings"
	"testing"

	"github.com/evtclog/evtc-go/pkg/evtc"
)

func TestRunWatch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func()
		wantErr string
	}{
		{
			name:    "invalid replay",
			setup:   func() { watchReplay = "first" },
			wantErr: "invalid --replay",
		},
		{
			name:    "invalid event type",
			setup:   func() { watchExcludeTypes = []string{"player_join"} },
			wantErr: "unknown event type",
		},
		{
			name:    "invalid format",
			setup:   func() { watchFormat = "table" },
			wantErr: "invalid format",
		},
		{
			name: "missing log directory",
			setup: func() {
				watchLogDir = "/nonexistent/arcdps.cbtlogs"
			},
			wantErr: "log directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origLogDir, origFormat, origReplay := watchLogDir, watchFormat, watchReplay
			origInclude, origExclude := watchIncludeTypes, watchExcludeTypes
			t.Cleanup(func() {
				watchLogDir, watchFormat, watchReplay = origLogDir, origFormat, origReplay
				watchIncludeTypes, watchExcludeTypes = origInclude, origExclude
			})

			watchLogDir, watchFormat, watchReplay = "", "jsonl", "none"
			watchIncludeTypes, watchExcludeTypes = nil, nil
			tt.setup()

			err := runWatch(watchCmd, nil)
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestReplayModes(t *testing.T) {
	for name, mode := range replayModes {
		if mode.String() != name {
			t.Errorf("replayModes[%q].String() = %q", name, mode.String())
		}
	}
	if replayModes["latest"] != evtc.ReplayLatest {
		t.Errorf("replayModes[latest] = %v", replayModes["latest"])
	}
}
