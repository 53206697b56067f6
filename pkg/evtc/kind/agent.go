package kind

import (
	"math"

	"github.com/evtclog/evtc-go/pkg/evtc/event"
	"github.com/evtclog/evtc-go/pkg/evtc/geom"
)

// EnterCombat is an agent entering combat.
type EnterCombat struct {
	Time       uint64  `json:"time"`
	Agent      AgentID `json:"agent"`
	Subgroup   uint64  `json:"subgroup"`
	Profession uint32  `json:"profession"`
	Elite      uint32  `json:"elite"`
}

func (EnterCombat) Type() Type { return TypeEnterCombat }
func (EnterCombat) isKind() {}

func (k *EnterCombat) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeEnterCombat)
}

func (k *EnterCombat) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Agent = SrcAgent(ev)
	k.Subgroup = ev.DstAgent
	k.Profession = uint32(ev.Value)
	k.Elite = uint32(ev.BuffDmg)
}

// AgentStatus is a change of an agent's status without further payload:
// exit combat, up, dead, down, spawn, despawn or point of view.
type AgentStatus struct {
	Time  uint64            `json:"time"`
	Agent AgentID           `json:"agent"`
	State event.StateChange `json:"-"`
}

var agentStatusTypes = map[event.StateChange]Type{
	event.StateChangeExitCombat:  TypeExitCombat,
	event.StateChangeChangeUp:    TypeChangeUp,
	event.StateChangeChangeDead:  TypeChangeDead,
	event.StateChangeChangeDown:  TypeChangeDown,
	event.StateChangeSpawn:       TypeSpawn,
	event.StateChangeDespawn:     TypeDespawn,
	event.StateChangePointOfView: TypePointOfView,
}

func (k AgentStatus) Type() Type { return agentStatusTypes[k.State] }
func (AgentStatus) isKind() {}

func (k *AgentStatus) matches(ev *event.Event) bool {
	_, ok := agentStatusTypes[ev.StateChange()]
	return ok
}

func (k *AgentStatus) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Agent = SrcAgent(ev)
	k.State = ev.StateChange()
}

// HealthUpdate is an agent's health percentage, in [0, 1].
type HealthUpdate struct {
	Time   uint64  `json:"time"`
	Agent  AgentID `json:"agent"`
	Health float32 `json:"health"`
}

func (HealthUpdate) Type() Type { return TypeHealthUpdate }
func (HealthUpdate) isKind() {}

func (k *HealthUpdate) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeHealthUpdate)
}

func (k *HealthUpdate) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Agent = SrcAgent(ev)
	k.Health = float32(ev.DstAgent) / 10000
}

// BarrierUpdate is an agent's barrier as a percentage of max health, in [0, 1].
type BarrierUpdate struct {
	Time    uint64  `json:"time"`
	Agent   AgentID `json:"agent"`
	Barrier float32 `json:"barrier"`
}

func (BarrierUpdate) Type() Type { return TypeBarrierUpdate }
func (BarrierUpdate) isKind() {}

func (k *BarrierUpdate) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeBarrierUpdate)
}

func (k *BarrierUpdate) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Agent = SrcAgent(ev)
	k.Barrier = float32(ev.DstAgent) / 10000
}

// MaxHealth is a change of an agent's max health.
type MaxHealth struct {
	Time      uint64  `json:"time"`
	Agent     AgentID `json:"agent"`
	MaxHealth uint64  `json:"max_health"`
}

func (MaxHealth) Type() Type { return TypeMaxHealthUpdate }
func (MaxHealth) isKind() {}

func (k *MaxHealth) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeMaxHealthUpdate)
}

func (k *MaxHealth) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Agent = SrcAgent(ev)
	k.MaxHealth = ev.DstAgent
}

// DownContribution is the time frame considered for down contribution.
// Retired, only present in older logs.
type DownContribution struct {
	Time      uint64  `json:"time"`
	Agent     AgentID `json:"agent"`
	TimeFrame uint64  `json:"time_frame"`
}

func (DownContribution) Type() Type { return TypeLast90BeforeDown }
func (DownContribution) isKind() {}

func (k *DownContribution) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeLast90BeforeDown)
}

func (k *DownContribution) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Agent = SrcAgent(ev)
	k.TimeFrame = ev.DstAgent
}

// BreakbarState is a change of an agent's defiance bar state.
type BreakbarState struct {
	Time  uint64              `json:"time"`
	Agent AgentID             `json:"agent"`
	State event.BreakbarState `json:"state"`
}

func (BreakbarState) Type() Type { return TypeBreakbarState }
func (BreakbarState) isKind() {}

func (k *BreakbarState) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeBreakbarState)
}

func (k *BreakbarState) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Agent = SrcAgent(ev)
	k.State = event.BreakbarState(uint16(ev.Value))
}

// BreakbarPercent is an agent's defiance bar percentage.
type BreakbarPercent struct {
	Time   uint64     `json:"time"`
	Agent  AgentID    `json:"agent"`
	Health geom.Float `json:"health"`
}

func (BreakbarPercent) Type() Type { return TypeBreakbarPercent }
func (BreakbarPercent) isKind() {}

func (k *BreakbarPercent) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeBreakbarPercent)
}

func (k *BreakbarPercent) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Agent = SrcAgent(ev)
	k.Health = geom.Float(math.Float32frombits(uint32(ev.Value)))
}

// AttackTarget associates an attack target gadget with its parent agent.
type AttackTarget struct {
	Time       uint64  `json:"time"`
	Agent      AgentID `json:"agent"`
	Parent     AgentID `json:"parent"`
	Targetable bool    `json:"targetable"`
}

func (AttackTarget) Type() Type { return TypeAttackTarget }
func (AttackTarget) isKind() {}

func (k *AttackTarget) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeAttackTarget)
}

func (k *AttackTarget) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Agent = SrcAgent(ev)
	k.Parent = DstAgent(ev)
	k.Targetable = ev.Value != 0
}

// Targetable is a change of an agent's targetability.
type Targetable struct {
	Time       uint64  `json:"time"`
	Agent      AgentID `json:"agent"`
	Targetable bool    `json:"targetable"`
}

func (Targetable) Type() Type { return TypeTargetable }
func (Targetable) isKind() {}

func (k *Targetable) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeTargetable)
}

func (k *Targetable) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Agent = SrcAgent(ev)
	k.Targetable = ev.Value != 0
}

// TeamChange is a change of an agent's team.
type TeamChange struct {
	Time     uint64  `json:"time"`
	Agent    AgentID `json:"agent"`
	Team     uint64  `json:"team"`
	Previous int32   `json:"previous"`
}

func (TeamChange) Type() Type { return TypeTeamChange }
func (TeamChange) isKind() {}

func (k *TeamChange) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeTeamChange)
}

func (k *TeamChange) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Agent = SrcAgent(ev)
	k.Team = ev.DstAgent
	k.Previous = ev.Value
}

// Glider is an agent deploying or stowing their glider.
type Glider struct {
	Time     uint64  `json:"time"`
	Agent    AgentID `json:"agent"`
	Deployed bool    `json:"deployed"`
}

func (Glider) Type() Type { return TypeGlider }
func (Glider) isKind() {}

func (k *Glider) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeGlider)
}

func (k *Glider) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Agent = SrcAgent(ev)
	k.Deployed = ev.Value != 0
}

// Stunbreak is an agent breaking a stun.
type Stunbreak struct {
	Time              uint64  `json:"time"`
	Agent             AgentID `json:"agent"`
	DurationRemaining int32   `json:"duration_remaining"`
}

func (Stunbreak) Type() Type { return TypeStunbreak }
func (Stunbreak) isKind() {}

func (k *Stunbreak) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeStunbreak)
}

func (k *Stunbreak) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Agent = SrcAgent(ev)
	k.DurationRemaining = ev.Value
}

// WeaponSwap is an agent swapping weapon sets.
type WeaponSwap struct {
	Time   uint64          `json:"time"`
	Agent  AgentID         `json:"agent"`
	Weapon event.WeaponSet `json:"weapon"`
}

func (WeaponSwap) Type() Type { return TypeWeaponSwap }
func (WeaponSwap) isKind() {}

func (k *WeaponSwap) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeWeaponSwap)
}

func (k *WeaponSwap) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Agent = SrcAgent(ev)
	k.Weapon = event.WeaponSet(ev.DstAgent)
}

// PositionEvent is an agent's position, velocity or facing.
// Facing only uses X and Y.
type PositionEvent struct {
	Time     uint64            `json:"time"`
	Agent    AgentID           `json:"agent"`
	Position geom.Position     `json:"position"`
	State    event.StateChange `json:"-"`
}

func (k PositionEvent) Type() Type {
	switch k.State {
	case event.StateChangeVelocity:
		return TypeVelocity
	case event.StateChangeFacing:
		return TypeFacing
	}
	return TypePosition
}

func (PositionEvent) isKind() {}

func (k *PositionEvent) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangePosition, event.StateChangeVelocity, event.StateChangeFacing)
}

func (k *PositionEvent) fill(ev *event.Event) {
	b := ev.Bytes()
	k.Time = ev.Time
	k.Agent = SrcAgent(ev)
	k.Position = geom.New(event.F32At(&b, 16), event.F32At(&b, 20), event.F32At(&b, 24))
	k.State = ev.StateChange()
}
