package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/evtclog/evtc-go/pkg/evtc"
	"github.com/evtclog/evtc-go/pkg/evtc/event"
)

func sampleLog() *evtc.Log {
	return &evtc.Log{
		Header: evtc.Header{Date: "20240115", Revision: 1, BossID: 15438},
		Agents: []evtc.Agent{
			{Address: 0x1000, Profession: 1, Name: []string{"Aria Windsong", ":aria.1234", "1"}},
			{Address: 0x2000, Profession: 15438, Elite: 0xFFFFFFFF, Name: []string{"Vale Guardian"}},
		},
		Skills: []evtc.Skill{{ID: 740, Name: "Might"}},
		Events: []event.Event{
			{Time: 1000, SrcAgent: 0x1000, DstAgent: 1, IsStateChange: uint8(event.StateChangeEnterCombat)},
			{Time: 1100, SrcAgent: 0x1000, DstAgent: 0x2000, Value: 2500, SkillID: 5491, Result: uint8(event.ResultCrit)},
			{Time: 1200, SrcAgent: 0x1000, DstAgent: 0x1000, SkillID: 740, Buff: 1, Value: 8000},
			{Time: 1300, SrcAgent: 0x2000, DstAgent: 9950, IsStateChange: uint8(event.StateChangeHealthUpdate)},
		},
	}
}

// markerLog is a log with a squad marker placed and then removed.
// Removal is stored as +Inf on every axis.
func markerLog() *evtc.Log {
	inf := uint64(math.Float32bits(float32(math.Inf(1))))
	x, y := uint64(math.Float32bits(100)), uint64(math.Float32bits(-50))
	return &evtc.Log{
		Header: evtc.Header{Date: "20240115", Revision: 1, BossID: 15438},
		Events: []event.Event{
			{Time: 1000, SrcAgent: y<<32 | x, DstAgent: uint64(math.Float32bits(8)), SkillID: 1, IsStateChange: uint8(event.StateChangeSquadMarker)},
			{Time: 2000, SrcAgent: inf<<32 | inf, DstAgent: inf, SkillID: 1, IsStateChange: uint8(event.StateChangeSquadMarker)},
		},
	}
}

func timestamp(ms uint64) *uint64 {
	return &ms
}

func writeSampleLog(t *testing.T, path string) string {
	t.Helper()
	return writeLog(t, path, sampleLog())
}

func writeLog(t *testing.T, path string, l *evtc.Log) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := l.Write(f); err != nil {
		t.Fatal(err)
	}
	return path
}
