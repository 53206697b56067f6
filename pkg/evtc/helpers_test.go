package evtc_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/evtclog/evtc-go/pkg/evtc"
	"github.com/evtclog/evtc-go/pkg/evtc/event"
)

func sampleLog() *evtc.Log {
	return &evtc.Log{
		Header: evtc.Header{Date: "20240115", Revision: 1, BossID: 15438},
		Agents: []evtc.Agent{
			{
				Address: 0x1000, Profession: 1, Elite: 0,
				Toughness: 10, Concentration: 5, HitboxWidth: 48, Condition: 7, HitboxHeight: 96,
				Name: []string{"Aria Windsong", ":aria.1234", "1"},
			},
			{
				Address: 0x2000, Profession: 15438, Elite: 0xFFFFFFFF,
				HitboxWidth: 200, HitboxHeight: 400,
				Name: []string{"Vale Guardian"},
			},
			{
				Address: 0x3000, Profession: 0xFFFF0042, Elite: 0xFFFFFFFF,
				Name: []string{"Seeker"},
			},
		},
		Skills: []evtc.Skill{
			{ID: 1066, Name: "Resurrect"},
			{ID: 740, Name: "Might"},
		},
		Events: []event.Event{
			{Time: 1000, SrcAgent: 0x1000, DstAgent: 1, IsStateChange: uint8(event.StateChangeEnterCombat)},
			{Time: 1100, SrcAgent: 0x1000, DstAgent: 0x2000, Value: 2500, SkillID: 5491, Result: uint8(event.ResultCrit)},
			{Time: 1200, SrcAgent: 0x1000, DstAgent: 0x1000, SkillID: 740, Buff: 1, Value: 8000},
			{Time: 1300, SrcAgent: 0x2000, DstAgent: 9950, IsStateChange: uint8(event.StateChangeHealthUpdate)},
			{SkillID: 740, IsStateChange: uint8(event.StateChangeBuffFormula)},
		},
	}
}

func encodeLog(t *testing.T, l *evtc.Log) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := l.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return buf.Bytes()
}

func zipBytes(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// writeLogFile writes l to dir/name, compressing it for .zevtc names.
func writeLogFile(t *testing.T, dir, name string, l *evtc.Log) string {
	t.Helper()
	data := encodeLog(t, l)
	if filepath.Ext(name) == ".zevtc" {
		data = zipBytes(t, map[string][]byte{"log": data})
	}
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func chtimes(path string, t time.Time) error {
	return os.Chtimes(path, t, t)
}
