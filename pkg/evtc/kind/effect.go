package kind

import (
	"encoding/json"

	"github.com/evtclog/evtc-go/pkg/evtc/event"
	"github.com/evtclog/evtc-go/pkg/evtc/geom"
)

// EffectLocation is where an effect is anchored: an agent, or a position
// when Agent is zero.
type EffectLocation struct {
	Agent    uint64        `json:"agent,omitempty"`
	Position geom.Position `json:"position"`
}

// IsAgent reports whether the effect follows an agent.
func (l EffectLocation) IsAgent() bool { return l.Agent != 0 }

// MarshalJSON emits only the populated variant.
func (l EffectLocation) MarshalJSON() ([]byte, error) {
	if l.IsAgent() {
		return json.Marshal(struct {
			Agent uint64 `json:"agent"`
		}{l.Agent})
	}
	return json.Marshal(struct {
		Position geom.Position `json:"position"`
	}{l.Position})
}

func effectLocation(ev *event.Event, b *[event.Size]byte) EffectLocation {
	if ev.DstAgent != 0 {
		return EffectLocation{Agent: ev.DstAgent}
	}
	p := event.F32sAt(b, 24, 3)
	return EffectLocation{Position: geom.New(p[0], p[1], p[2])}
}

// Effect51 is a visual effect, as logged from ArcDPS 2023-05 onwards.
// EffectID zero ends the effect with TrackingID.
type Effect51 struct {
	Time           uint64         `json:"time"`
	EffectID       uint32         `json:"effect_id"`
	Owner          AgentID        `json:"owner"`
	Location       EffectLocation `json:"location"`
	MovingPlatform uint8          `json:"moving_platform"`
	Duration       uint32         `json:"duration"`
	TrackingID     uint32         `json:"tracking_id"`
	Orientation    geom.Position  `json:"orientation"`
}

func (Effect51) Type() Type { return TypeEffect51 }
func (Effect51) isKind() {}

// IsEnd reports whether the record ends a tracked effect.
func (k Effect51) IsEnd() bool { return k.EffectID == 0 }

func (k *Effect51) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeEffect51)
}

func (k *Effect51) fill(ev *event.Event) {
	b := ev.Bytes()
	o := event.I16sAt(&b, 58, 3)
	k.Time = ev.Time
	k.EffectID = ev.SkillID
	k.Owner = SrcAgent(ev)
	k.Location = effectLocation(ev, &b)
	k.MovingPlatform = ev.IsFlanking
	k.Duration = event.U32At(&b, 48)
	k.TrackingID = event.U32At(&b, 52)
	k.Orientation = geom.OrientationFromInt16s([3]int16{o[0], o[1], o[2]})
}

// Effect45 is a visual effect in the retired layout. The u16 at offset 58
// is a tracking id for ends and on moving platforms, a duration otherwise.
type Effect45 struct {
	Time        uint64         `json:"time"`
	EffectID    uint32         `json:"effect_id"`
	Owner       AgentID        `json:"owner"`
	Location    EffectLocation `json:"location"`
	Orientation geom.Position  `json:"orientation"`
	Duration    uint16         `json:"duration,omitempty"`
	TrackingID  uint16         `json:"tracking_id,omitempty"`
}

func (Effect45) Type() Type { return TypeEffect45 }
func (Effect45) isKind() {}

// IsEnd reports whether the record ends a tracked effect.
func (k Effect45) IsEnd() bool { return k.EffectID == 0 }

func (k *Effect45) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeEffect45)
}

func (k *Effect45) fill(ev *event.Event) {
	b := ev.Bytes()
	k.Time = ev.Time
	k.EffectID = ev.SkillID
	k.Owner = SrcAgent(ev)
	k.Location = effectLocation(ev, &b)
	k.Orientation = geom.New(event.F32At(&b, 48), event.F32At(&b, 52), event.F32At(&b, 60))
	v := event.U16At(&b, 58)
	if ev.IsFlanking != 0 || ev.SkillID == 0 {
		k.TrackingID = v
	} else {
		k.Duration = v
	}
}

// GroundEffect is an effect placed on the ground.
type GroundEffect struct {
	Time           uint64        `json:"time"`
	EffectID       uint32        `json:"effect_id"`
	Source         AgentID       `json:"source"`
	Position       geom.Position `json:"position"`
	Orientation    geom.Position `json:"orientation"`
	Duration       uint32        `json:"duration"`
	Flags          uint8         `json:"flags"`
	MovingPlatform uint8         `json:"moving_platform"`
	Scale          float32       `json:"scale"`
	TrackingID     uint32        `json:"tracking_id"`
}

func (GroundEffect) Type() Type { return TypeEffectGroundCreate }
func (GroundEffect) isKind() {}

func (k *GroundEffect) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeEffectGroundCreate)
}

func (k *GroundEffect) fill(ev *event.Event) {
	b := ev.Bytes()
	p := event.I16sAt(&b, 16, 3)
	o := event.I16sAt(&b, 22, 3)
	k.Time = ev.Time
	k.EffectID = ev.SkillID
	k.Source = SrcAgent(ev)
	k.Position = geom.FromScaledInt16(p[0], p[1], p[2], 10)
	k.Orientation = geom.OrientationFromInt16s([3]int16{o[0], o[1], o[2]})
	k.Duration = event.U32At(&b, 48)
	k.Flags = ev.IsBuffRemove
	k.MovingPlatform = ev.IsFlanking
	k.Scale = float32(event.I16At(&b, 58)) / 1000
	k.TrackingID = ev.PadID()
}

// GroundEffectRemove ends a ground effect.
type GroundEffectRemove struct {
	Time       uint64 `json:"time"`
	TrackingID uint32 `json:"tracking_id"`
}

func (GroundEffectRemove) Type() Type { return TypeEffectGroundRemove }
func (GroundEffectRemove) isKind() {}

func (k *GroundEffectRemove) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeEffectGroundRemove)
}

func (k *GroundEffectRemove) fill(ev *event.Event) {
	k.Time = ev.Time
	k.TrackingID = ev.PadID()
}

// AgentEffect is an effect attached to an agent.
type AgentEffect struct {
	Time       uint64  `json:"time"`
	Agent      AgentID `json:"agent"`
	EffectID   uint32  `json:"effect_id"`
	Duration   uint32  `json:"duration"`
	TrackingID uint32  `json:"tracking_id"`
}

func (AgentEffect) Type() Type { return TypeEffectAgentCreate }
func (AgentEffect) isKind() {}

func (k *AgentEffect) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeEffectAgentCreate)
}

func (k *AgentEffect) fill(ev *event.Event) {
	b := ev.Bytes()
	k.Time = ev.Time
	k.Agent = SrcAgent(ev)
	k.EffectID = ev.SkillID
	k.Duration = event.U32At(&b, 48)
	k.TrackingID = ev.PadID()
}

// AgentEffectRemove ends an agent effect.
type AgentEffectRemove struct {
	Time       uint64  `json:"time"`
	Agent      AgentID `json:"agent"`
	TrackingID uint32  `json:"tracking_id"`
}

func (AgentEffectRemove) Type() Type { return TypeEffectAgentRemove }
func (AgentEffectRemove) isKind() {}

func (k *AgentEffectRemove) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeEffectAgentRemove)
}

func (k *AgentEffectRemove) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Agent = SrcAgent(ev)
	k.TrackingID = ev.PadID()
}
