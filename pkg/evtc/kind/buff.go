package kind

import (
	"math"

	"github.com/evtclog/evtc-go/pkg/evtc/event"
	"github.com/evtclog/evtc-go/pkg/evtc/geom"
)

func isCategory(ev *event.Event, c event.Category) bool {
	return event.Categorize(ev) == c
}

// BuffApplyNew is a new buff stack.
type BuffApplyNew struct {
	Duration        int32  `json:"duration"`
	RemovedDuration uint32 `json:"removed_duration"`
}

// BuffExtend is a change of the duration of an existing stack.
type BuffExtend struct {
	NewDuration    uint32 `json:"new_duration"`
	DurationChange int32  `json:"duration_change"`
}

// BuffApply is a buff application. Exactly one of Apply and Extend is set.
type BuffApply struct {
	Common
	Buff        uint8         `json:"buff"`
	Apply       *BuffApplyNew `json:"apply,omitempty"`
	Extend      *BuffExtend   `json:"extend,omitempty"`
	StackActive uint8         `json:"stack_active"`
	StackID     uint32        `json:"stack_id"`
}

func (BuffApply) Type() Type { return TypeBuffApply }
func (BuffApply) isKind() {}

func (k *BuffApply) matches(ev *event.Event) bool {
	return isCategory(ev, event.CategoryBuffApply)
}

func (k *BuffApply) fill(ev *event.Event) {
	k.Common = commonOf(ev)
	k.Buff = ev.Buff
	if ev.IsOffCycle == 0 {
		k.Apply = &BuffApplyNew{Duration: ev.Value, RemovedDuration: ev.OverstackValue}
	} else {
		k.Extend = &BuffExtend{NewDuration: ev.OverstackValue, DurationChange: ev.Value}
	}
	k.StackActive = ev.IsShields
	k.StackID = ev.PadID()
}

// BuffRemove is a buff removal.
//
// StacksRemoved is only set for BuffRemoveAll and StackID only for
// BuffRemoveSingle and BuffRemoveManual.
type BuffRemove struct {
	Common
	Kind             event.BuffRemove `json:"kind"`
	Buff             uint8            `json:"buff"`
	RemovedDuration  int32            `json:"removed_duration"`
	RemovedIntensity int32            `json:"removed_intensity"`
	StacksRemoved    uint8            `json:"stacks_removed,omitempty"`
	StackID          uint32           `json:"stack_id,omitempty"`
}

func (BuffRemove) Type() Type { return TypeBuffRemove }
func (BuffRemove) isKind() {}

func (k *BuffRemove) matches(ev *event.Event) bool {
	return isCategory(ev, event.CategoryBuffRemove)
}

func (k *BuffRemove) fill(ev *event.Event) {
	k.Common = commonOf(ev)
	k.Kind = ev.BuffRemove()
	k.Buff = ev.Buff
	k.RemovedDuration = ev.Value
	k.RemovedIntensity = ev.BuffDmg
	switch k.Kind {
	case event.BuffRemoveAll:
		k.StacksRemoved = ev.Result
	case event.BuffRemoveSingle, event.BuffRemoveManual:
		k.StackID = ev.PadID()
	}
}

// BuffDamage is damage or healing from a buff tick.
type BuffDamage struct {
	Common
	Buff   uint8                  `json:"buff"`
	Damage int32                  `json:"damage"`
	Cycle  event.BuffCycle        `json:"cycle"`
	Result event.BuffDamageResult `json:"result"`
}

func (BuffDamage) Type() Type { return TypeBuffDamage }
func (BuffDamage) isKind() {}

func (k *BuffDamage) matches(ev *event.Event) bool {
	return isCategory(ev, event.CategoryBuffDamage)
}

func (k *BuffDamage) fill(ev *event.Event) {
	k.Common = commonOf(ev)
	k.Buff = ev.Buff
	k.Damage = ev.BuffDmg
	k.Cycle = event.BuffCycle(ev.IsOffCycle)
	k.Result = event.BuffDamageResult(ev.Result)
}

// BuffInitial is a buff present on an agent when logging started.
type BuffInitial struct {
	Common
	Buff             uint8  `json:"buff"`
	Duration         int32  `json:"duration"`
	OriginalDuration int32  `json:"original_duration"`
	StackActive      bool   `json:"stack_active"`
	StackID          uint32 `json:"stack_id"`
}

func (BuffInitial) Type() Type { return TypeBuffInitial }
func (BuffInitial) isKind() {}

func (k *BuffInitial) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeBuffInitial)
}

func (k *BuffInitial) fill(ev *event.Event) {
	k.Common = commonOf(ev)
	k.Buff = ev.Buff
	k.Duration = ev.Value
	k.OriginalDuration = ev.BuffDmg
	k.StackActive = ev.IsShields != 0
	k.StackID = ev.PadID()
}

// StackActive marks the buff stack that is currently active.
type StackActive struct {
	Time     uint64  `json:"time"`
	Agent    AgentID `json:"agent"`
	StackID  uint64  `json:"stack_id"`
	Duration int32   `json:"duration"`
}

func (StackActive) Type() Type { return TypeStackActive }
func (StackActive) isKind() {}

func (k *StackActive) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeStackActive)
}

func (k *StackActive) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Agent = SrcAgent(ev)
	k.StackID = ev.DstAgent
	k.Duration = ev.Value
}

// StackReset resets the duration of a buff stack.
type StackReset struct {
	Time     uint64  `json:"time"`
	Agent    AgentID `json:"agent"`
	Duration int32   `json:"duration"`
	StackID  uint32  `json:"stack_id"`
}

func (StackReset) Type() Type { return TypeStackReset }
func (StackReset) isKind() {}

func (k *StackReset) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeStackReset)
}

func (k *StackReset) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Agent = SrcAgent(ev)
	k.Duration = ev.Value
	k.StackID = ev.PadID()
}

// BuffInfo holds static buff data.
//
// Invulnerable, Invert, Resistance and CombatSimUse are community
// inferred and may not hold for every buff.
type BuffInfo struct {
	Time         uint64              `json:"time"`
	SkillID      uint32              `json:"skill_id"`
	Category     event.BuffCategory  `json:"category"`
	StackingType event.BuffStackType `json:"stacking_type"`
	MaxStacks    uint16              `json:"max_stacks"`
	DurationCap  uint32              `json:"duration_cap"`
	Invulnerable bool                `json:"invulnerable"`
	Invert       bool                `json:"invert"`
	Resistance   bool                `json:"resistance"`
	CombatSimUse bool                `json:"combat_sim_use"`
}

func (BuffInfo) Type() Type { return TypeBuffInfo }
func (BuffInfo) isKind() {}

func (k *BuffInfo) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeBuffInfo)
}

func (k *BuffInfo) fill(ev *event.Event) {
	k.Time = ev.Time
	k.SkillID = ev.SkillID
	k.Category = event.BuffCategory(ev.IsOffCycle)
	k.StackingType = event.BuffStackType(ev.Pad61)
	k.MaxStacks = ev.SrcMasterInstanceID
	k.DurationCap = ev.OverstackValue
	k.Invulnerable = ev.IsFlanking != 0
	k.Invert = ev.IsShields != 0
	k.Resistance = ev.Pad62 != 0
	k.CombatSimUse = ev.Pad64 != 0
}

// BuffFormula is one formula of a buff's effect on attributes.
type BuffFormula struct {
	SkillID   uint32     `json:"skill_id"`
	Formula   uint32     `json:"formula"`
	Attr1     uint32     `json:"attr1"`
	Attr2     uint32     `json:"attr2"`
	Param1    geom.Float `json:"param1"`
	Param2    geom.Float `json:"param2"`
	Param3    geom.Float `json:"param3"`
	TraitSrc  uint32     `json:"trait_src"`
	TraitSelf uint32     `json:"trait_self"`
	BuffSrc   uint32     `json:"buff_src"`
	BuffSelf  uint32     `json:"buff_self"`
	NotNPC    bool       `json:"not_npc"`
	NotPlayer bool       `json:"not_player"`
	IsBreak   bool       `json:"is_break"`
	Value     uint32     `json:"value"`
	ValueType uint8      `json:"value_type"`
}

func (BuffFormula) Type() Type { return TypeBuffFormula }
func (BuffFormula) isKind() {}

// Attributes returns the two attributes the formula affects.
func (k BuffFormula) Attributes() (event.Attribute, event.Attribute) {
	return event.Attribute(k.Attr1), event.Attribute(k.Attr2)
}

// IsUnconditional reports whether the formula applies without a trait
// or buff requirement.
func (k BuffFormula) IsUnconditional() bool {
	return k.TraitSrc == 0 && k.TraitSelf == 0 && k.BuffSrc == 0 && k.BuffSelf == 0
}

func (k *BuffFormula) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeBuffFormula)
}

func (k *BuffFormula) fill(ev *event.Event) {
	b := ev.Bytes()
	f := event.F32sAt(&b, 0, 8)
	buffs := event.F32sAt(&b, 40, 2)
	k.SkillID = ev.SkillID
	k.Formula = floatID(f[0])
	k.Attr1 = floatID(f[1])
	k.Attr2 = floatID(f[2])
	k.Param1, k.Param2, k.Param3 = geom.Float(f[3]), geom.Float(f[4]), geom.Float(f[5])
	k.TraitSrc = floatID(f[6])
	k.TraitSelf = floatID(f[7])
	k.BuffSrc = floatID(buffs[0])
	k.BuffSelf = floatID(buffs[1])
	k.NotNPC = ev.IsFlanking != 0
	k.NotPlayer = ev.IsShields != 0
	k.IsBreak = ev.IsOffCycle != 0
	k.Value = ev.OverstackValue
	k.ValueType = ev.Pad61
}

// floatID converts an id stored as a float to an integer, truncating
// toward zero and saturating at the uint32 bounds. NaN is zero.
func floatID(f float32) uint32 {
	v := float64(f)
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(v)
}
