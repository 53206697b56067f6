package kind

import (
	"github.com/evtclog/evtc-go/pkg/evtc/event"
	"github.com/google/uuid"
)

// Kind is a decoded event. The dynamic type is one of the payload types
// of this package; use a type switch or Type to tell them apart.
type Kind interface {
	// Type returns the kind name.
	Type() Type

	isKind()
}

// extractor is implemented by every payload type.
//
// matches is the guard: it reports whether a record is of this kind.
// fill reinterprets the record's fields and is only meaningful after a
// successful match.
type extractor[T any] interface {
	*T
	matches(ev *event.Event) bool
	fill(ev *event.Event)
}

// TryExtract decodes ev as the payload type T.
//
// It returns false, and the zero T, if the record is not of kind T.
//
//	if hp, ok := kind.TryExtract[kind.HealthUpdate](ev); ok {
//	    fmt.Printf("%d at %.1f%%\n", hp.Agent.ID, hp.Health*100)
//	}
func TryExtract[T any, P extractor[T]](ev *event.Event) (T, bool) {
	var out T
	if ev == nil || !P(&out).matches(ev) {
		return out, false
	}
	P(&out).fill(ev)
	return out, true
}

// extract decodes ev without checking the guard.
// Callers must have established the kind through Categorize.
func extract[T any, P extractor[T]](ev *event.Event) T {
	var out T
	P(&out).fill(ev)
	return out
}

// Decode categorizes ev and decodes it into its kind.
//
// Every record decodes to exactly one kind. Unknown or internal state
// changes decode to Unknown.
func Decode(ev *event.Event) Kind {
	switch event.Categorize(ev) {
	case event.CategoryActivation:
		return extract[ActivationEvent](ev)
	case event.CategoryBuffRemove:
		return extract[BuffRemove](ev)
	case event.CategoryBuffApply:
		return extract[BuffApply](ev)
	case event.CategoryBuffDamage:
		return extract[BuffDamage](ev)
	case event.CategoryStrike:
		return extract[Strike](ev)
	}

	switch ev.StateChange() {
	case event.StateChangeEnterCombat:
		return extract[EnterCombat](ev)
	case event.StateChangeExitCombat,
		event.StateChangeChangeUp,
		event.StateChangeChangeDead,
		event.StateChangeChangeDown,
		event.StateChangeSpawn,
		event.StateChangeDespawn,
		event.StateChangePointOfView:
		return extract[AgentStatus](ev)
	case event.StateChangeHealthUpdate:
		return extract[HealthUpdate](ev)
	case event.StateChangeSquadCombatStart,
		event.StateChangeSquadCombatEnd,
		event.StateChangeLogNPCUpdate:
		return extract[LogEvent](ev)
	case event.StateChangeWeaponSwap:
		return extract[WeaponSwap](ev)
	case event.StateChangeMaxHealthUpdate:
		return extract[MaxHealth](ev)
	case event.StateChangeLanguage:
		return extract[LanguageEvent](ev)
	case event.StateChangeGWBuild:
		return extract[GWBuild](ev)
	case event.StateChangeShardID:
		return extract[ShardID](ev)
	case event.StateChangeReward:
		return extract[Reward](ev)
	case event.StateChangeBuffInitial:
		return extract[BuffInitial](ev)
	case event.StateChangePosition,
		event.StateChangeVelocity,
		event.StateChangeFacing:
		return extract[PositionEvent](ev)
	case event.StateChangeTeamChange:
		return extract[TeamChange](ev)
	case event.StateChangeAttackTarget:
		return extract[AttackTarget](ev)
	case event.StateChangeTargetable:
		return extract[Targetable](ev)
	case event.StateChangeMapID:
		return extract[MapID](ev)
	case event.StateChangeStackActive:
		return extract[StackActive](ev)
	case event.StateChangeStackReset:
		return extract[StackReset](ev)
	case event.StateChangeGuild:
		return extract[Guild](ev)
	case event.StateChangeBuffInfo:
		return extract[BuffInfo](ev)
	case event.StateChangeBuffFormula:
		return extract[BuffFormula](ev)
	case event.StateChangeSkillInfo:
		return extract[SkillInfo](ev)
	case event.StateChangeSkillTiming:
		return extract[SkillTiming](ev)
	case event.StateChangeBreakbarState:
		return extract[BreakbarState](ev)
	case event.StateChangeBreakbarPercent:
		return extract[BreakbarPercent](ev)
	case event.StateChangeIntegrity:
		return extract[Integrity](ev)
	case event.StateChangeMarker:
		return extract[AgentMarker](ev)
	case event.StateChangeBarrierUpdate:
		return extract[BarrierUpdate](ev)
	case event.StateChangeStatReset:
		return extract[StatReset](ev)
	case event.StateChangeExtension,
		event.StateChangeExtensionCombat:
		return extract[Extension](ev)
	case event.StateChangeAPIDelayed:
		return extract[APIDelayed](ev)
	case event.StateChangeInstanceStart:
		return extract[InstanceStart](ev)
	case event.StateChangeRateHealth:
		return extract[RateHealth](ev)
	case event.StateChangeLast90BeforeDown:
		return extract[DownContribution](ev)
	case event.StateChangeEffect45:
		return extract[Effect45](ev)
	case event.StateChangeIDToGUID:
		return extract[ContentInfo](ev)
	case event.StateChangeFractalScale:
		return extract[FractalScale](ev)
	case event.StateChangeEffect51:
		return extract[Effect51](ev)
	case event.StateChangeRuleset:
		return extract[Ruleset](ev)
	case event.StateChangeSquadMarker:
		return extract[SquadMarker](ev)
	case event.StateChangeArcBuild:
		return extract[ArcBuild](ev)
	case event.StateChangeGlider:
		return extract[Glider](ev)
	case event.StateChangeStunbreak:
		return extract[Stunbreak](ev)
	case event.StateChangeMissileCreate:
		return extract[MissileCreate](ev)
	case event.StateChangeMissileLaunch:
		return extract[MissileLaunch](ev)
	case event.StateChangeMissileRemove:
		return extract[MissileRemove](ev)
	case event.StateChangeEffectGroundCreate:
		return extract[GroundEffect](ev)
	case event.StateChangeEffectGroundRemove:
		return extract[GroundEffectRemove](ev)
	case event.StateChangeEffectAgentCreate:
		return extract[AgentEffect](ev)
	case event.StateChangeEffectAgentRemove:
		return extract[AgentEffectRemove](ev)
	}

	return extract[Unknown](ev)
}

// Unknown is a record with a state change this package does not decode,
// including internal state changes that should never appear in logs.
type Unknown struct {
	Event event.Event `json:"event"`
}

func (Unknown) Type() Type { return TypeUnknown }
func (Unknown) isKind() {}

func (u *Unknown) matches(ev *event.Event) bool {
	sc := ev.StateChange()
	return sc != event.StateChangeNone && (!sc.Known() || sc.IsInternal())
}

func (u *Unknown) fill(ev *event.Event) {
	u.Event = *ev
}

func isState(ev *event.Event, states ...event.StateChange) bool {
	sc := ev.StateChange()
	for _, s := range states {
		if sc == s {
			return true
		}
	}
	return false
}

// guidAt reads a Windows GUID stored at off. The first three groups are
// little-endian on disk and are swapped into RFC 4122 byte order.
func guidAt(b *[event.Size]byte, off int) uuid.UUID {
	var u uuid.UUID
	u[0], u[1], u[2], u[3] = b[off+3], b[off+2], b[off+1], b[off]
	u[4], u[5] = b[off+5], b[off+4]
	u[6], u[7] = b[off+7], b[off+6]
	copy(u[8:], b[off+8:off+16])
	return u
}
