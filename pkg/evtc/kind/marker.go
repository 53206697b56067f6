package kind

import (
	"math"

	"github.com/evtclog/evtc-go/pkg/evtc/event"
	"github.com/evtclog/evtc-go/pkg/evtc/geom"
)

// AgentMarker is a marker placed on, or removed from, an agent.
// Marker is the content id of the marker, see ContentInfo.
type AgentMarker struct {
	Time      uint64  `json:"time"`
	Agent     AgentID `json:"agent"`
	Marker    int32   `json:"marker"`
	Commander bool    `json:"commander"`
}

func (AgentMarker) Type() Type { return TypeAgentMarker }
func (AgentMarker) isKind() {}

// IsRemove reports whether the record removes all markers from the agent.
func (k AgentMarker) IsRemove() bool { return k.Marker == 0 }

func (k *AgentMarker) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeMarker)
}

func (k *AgentMarker) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Agent = SrcAgent(ev)
	k.Marker = ev.Value
	k.Commander = ev.Buff != 0
}

// SquadMarker is a squad ground marker being placed or removed.
type SquadMarker struct {
	Time     uint64            `json:"time"`
	Marker   event.SquadMarker `json:"marker"`
	Position geom.Position     `json:"position"`
}

func (SquadMarker) Type() Type { return TypeSquadMarker }
func (SquadMarker) isKind() {}

// Removed reports whether the marker was removed. Removal is encoded as
// a position of positive infinity on every axis.
func (k SquadMarker) Removed() bool {
	inf := func(f float32) bool { return math.IsInf(float64(f), 1) }
	return inf(k.Position.X) && inf(k.Position.Y) && inf(k.Position.Z)
}

func (k *SquadMarker) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeSquadMarker)
}

func (k *SquadMarker) fill(ev *event.Event) {
	b := ev.Bytes()
	p := event.F32sAt(&b, 8, 3)
	k.Time = ev.Time
	k.Marker = event.SquadMarker(ev.SkillID)
	k.Position = geom.New(p[0], p[1], p[2])
}
