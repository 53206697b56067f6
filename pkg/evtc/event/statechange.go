package event

import "strconv"

// StateChange is the state change discriminant of a record.
//
// Codes not known to this package are preserved as-is and render as
// "unknown(N)", so logs from newer ArcDPS builds still decode.
type StateChange uint8

// State change codes.
const (
	StateChangeNone               StateChange = 0
	StateChangeEnterCombat        StateChange = 1
	StateChangeExitCombat         StateChange = 2
	StateChangeChangeUp           StateChange = 3
	StateChangeChangeDead         StateChange = 4
	StateChangeChangeDown         StateChange = 5
	StateChangeSpawn              StateChange = 6
	StateChangeDespawn            StateChange = 7
	StateChangeHealthUpdate       StateChange = 8
	StateChangeSquadCombatStart   StateChange = 9
	StateChangeSquadCombatEnd     StateChange = 10
	StateChangeWeaponSwap         StateChange = 11
	StateChangeMaxHealthUpdate    StateChange = 12
	StateChangePointOfView        StateChange = 13
	StateChangeLanguage           StateChange = 14
	StateChangeGWBuild            StateChange = 15
	StateChangeShardID            StateChange = 16
	StateChangeReward             StateChange = 17
	StateChangeBuffInitial        StateChange = 18
	StateChangePosition           StateChange = 19
	StateChangeVelocity           StateChange = 20
	StateChangeFacing             StateChange = 21
	StateChangeTeamChange         StateChange = 22
	StateChangeAttackTarget       StateChange = 23
	StateChangeTargetable         StateChange = 24
	StateChangeMapID              StateChange = 25
	StateChangeReplInfo           StateChange = 26 // internal
	StateChangeStackActive        StateChange = 27
	StateChangeStackReset         StateChange = 28
	StateChangeGuild              StateChange = 29
	StateChangeBuffInfo           StateChange = 30
	StateChangeBuffFormula        StateChange = 31
	StateChangeSkillInfo          StateChange = 32
	StateChangeSkillTiming        StateChange = 33
	StateChangeBreakbarState      StateChange = 34
	StateChangeBreakbarPercent    StateChange = 35
	StateChangeIntegrity          StateChange = 36
	StateChangeMarker             StateChange = 37
	StateChangeBarrierUpdate      StateChange = 38
	StateChangeStatReset          StateChange = 39
	StateChangeExtension          StateChange = 40
	StateChangeAPIDelayed         StateChange = 41
	StateChangeInstanceStart      StateChange = 42
	StateChangeRateHealth         StateChange = 43
	StateChangeLast90BeforeDown   StateChange = 44 // retired
	StateChangeEffect45           StateChange = 45 // retired
	StateChangeIDToGUID           StateChange = 46
	StateChangeLogNPCUpdate       StateChange = 47
	StateChangeIdleEvent          StateChange = 48 // internal
	StateChangeExtensionCombat    StateChange = 49
	StateChangeFractalScale       StateChange = 50
	StateChangeEffect51           StateChange = 51
	StateChangeRuleset            StateChange = 52
	StateChangeSquadMarker        StateChange = 53
	StateChangeArcBuild           StateChange = 54
	StateChangeGlider             StateChange = 55
	StateChangeStunbreak          StateChange = 56
	StateChangeMissileCreate      StateChange = 57
	StateChangeMissileLaunch      StateChange = 58
	StateChangeMissileRemove      StateChange = 59
	StateChangeEffectGroundCreate StateChange = 60
	StateChangeEffectGroundRemove StateChange = 61
	StateChangeEffectAgentCreate  StateChange = 62
	StateChangeEffectAgentRemove  StateChange = 63
)

var stateChangeNames = [...]string{
	"None", "EnterCombat", "ExitCombat", "ChangeUp", "ChangeDead", "ChangeDown",
	"Spawn", "Despawn", "HealthUpdate", "SquadCombatStart", "SquadCombatEnd",
	"WeaponSwap", "MaxHealthUpdate", "PointOfView", "Language", "GWBuild",
	"ShardId", "Reward", "BuffInitial", "Position", "Velocity", "Facing",
	"TeamChange", "AttackTarget", "Targetable", "MapId", "ReplInfo",
	"StackActive", "StackReset", "Guild", "BuffInfo", "BuffFormula",
	"SkillInfo", "SkillTiming", "BreakbarState", "BreakbarPercent", "Integrity",
	"Marker", "BarrierUpdate", "StatReset", "Extension", "ApiDelayed",
	"InstanceStart", "RateHealth", "Last90BeforeDown", "Effect45", "IdToGUID",
	"LogNPCUpdate", "IdleEvent", "ExtensionCombat", "FractalScale", "Effect51",
	"Ruleset", "SquadMarker", "ArcBuild", "Glider", "Stunbreak",
	"MissileCreate", "MissileLaunch", "MissileRemove", "EffectGroundCreate",
	"EffectGroundRemove", "EffectAgentCreate", "EffectAgentRemove",
}

// Known reports whether the code is one this package can name.
func (s StateChange) Known() bool {
	return int(s) < len(stateChangeNames)
}

// String returns the ArcDPS name of the state change.
func (s StateChange) String() string {
	if s.Known() {
		return stateChangeNames[s]
	}
	return unknownName(uint64(s))
}

// MarshalText renders the state change by name.
func (s StateChange) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsInternal reports whether the code is only used inside ArcDPS and never
// appears in logs or realtime callbacks.
func (s StateChange) IsInternal() bool {
	return s == StateChangeReplInfo || s == StateChangeIdleEvent
}

// HasTime reports whether records with this state change carry a
// timestamp in their Time field. Kinds such as BuffFormula reuse the Time
// bytes for unrelated payload.
func (s StateChange) HasTime() bool {
	switch s {
	case StateChangeNone,
		StateChangeEnterCombat,
		StateChangeExitCombat,
		StateChangeChangeUp,
		StateChangeChangeDead,
		StateChangeChangeDown,
		StateChangeSpawn,
		StateChangeDespawn,
		StateChangeHealthUpdate,
		StateChangeSquadCombatStart,
		StateChangeSquadCombatEnd,
		StateChangeWeaponSwap,
		StateChangeMaxHealthUpdate,
		StateChangeReward,
		StateChangeBuffInitial,
		StateChangePosition,
		StateChangeVelocity,
		StateChangeFacing,
		StateChangeTeamChange,
		StateChangeAttackTarget,
		StateChangeTargetable,
		StateChangeStackActive,
		StateChangeStackReset,
		StateChangeBreakbarState,
		StateChangeBreakbarPercent,
		StateChangeBarrierUpdate,
		StateChangeStatReset,
		StateChangeExtension,
		StateChangeAPIDelayed,
		StateChangeLast90BeforeDown,
		StateChangeEffect45,
		StateChangeLogNPCUpdate,
		StateChangeExtensionCombat,
		StateChangeEffect51,
		StateChangeSquadMarker,
		StateChangeGlider:
		return true
	}
	return false
}

func unknownName(v uint64) string {
	return "unknown(" + strconv.FormatUint(v, 10) + ")"
}
