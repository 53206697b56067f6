package kind

import (
	"github.com/evtclog/evtc-go/pkg/evtc/event"
	"github.com/evtclog/evtc-go/pkg/evtc/geom"
)

// ActivationEvent is a skill activation, or the end of one.
type ActivationEvent struct {
	Time         uint64           `json:"time"`
	Agent        AgentID          `json:"agent"`
	SkillID      uint32           `json:"skill_id"`
	Kind         event.Activation `json:"kind"`
	Duration     int32            `json:"duration"`
	FullDuration int32            `json:"full_duration"`
	Target       geom.Position    `json:"target"`
}

func (ActivationEvent) Type() Type { return TypeActivation }
func (ActivationEvent) isKind() {}

func (k *ActivationEvent) matches(ev *event.Event) bool {
	return isCategory(ev, event.CategoryActivation)
}

func (k *ActivationEvent) fill(ev *event.Event) {
	b := ev.Bytes()
	k.Time = ev.Time
	k.Agent = SrcAgent(ev)
	k.SkillID = ev.SkillID
	k.Kind = ev.Activation()
	k.Duration = ev.Value
	k.FullDuration = ev.BuffDmg
	k.Target = geom.New(event.F32At(&b, 16), event.F32At(&b, 20), event.F32At(&b, 32))
}

// Strike is direct damage, or a strike that did not deal damage such as
// a block or an evade.
type Strike struct {
	Common
	Result       event.Result `json:"result"`
	TotalDamage  int32        `json:"total_damage"`
	ShieldDamage uint32       `json:"shield_damage"`
	TargetDowned bool         `json:"target_downed"`
}

func (Strike) Type() Type { return TypeStrike }
func (Strike) isKind() {}

// DealtDamage reports whether the strike dealt damage.
func (k Strike) DealtDamage() bool { return k.Result.DealtDamage() }

func (k *Strike) matches(ev *event.Event) bool {
	return isCategory(ev, event.CategoryStrike)
}

func (k *Strike) fill(ev *event.Event) {
	k.Common = commonOf(ev)
	k.Result = event.Result(ev.Result)
	k.TotalDamage = ev.Value
	k.ShieldDamage = ev.OverstackValue
	k.TargetDowned = ev.IsOffCycle == 1
}
