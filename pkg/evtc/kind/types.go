package kind

import (
	"sort"
	"strings"
)

// Type is the name of a decoded event kind.
type Type string

// Kind type names.
const (
	TypeEnterCombat        Type = "enter_combat"
	TypeExitCombat         Type = "exit_combat"
	TypeChangeUp           Type = "change_up"
	TypeChangeDead         Type = "change_dead"
	TypeChangeDown         Type = "change_down"
	TypeSpawn              Type = "spawn"
	TypeDespawn            Type = "despawn"
	TypeHealthUpdate       Type = "health_update"
	TypeSquadCombatStart   Type = "squad_combat_start"
	TypeSquadCombatEnd     Type = "squad_combat_end"
	TypeWeaponSwap         Type = "weapon_swap"
	TypeMaxHealthUpdate    Type = "max_health_update"
	TypePointOfView        Type = "point_of_view"
	TypeLanguage           Type = "language"
	TypeGWBuild            Type = "gw_build"
	TypeShardID            Type = "shard_id"
	TypeReward             Type = "reward"
	TypeBuffInitial        Type = "buff_initial"
	TypePosition           Type = "position"
	TypeVelocity           Type = "velocity"
	TypeFacing             Type = "facing"
	TypeTeamChange         Type = "team_change"
	TypeAttackTarget       Type = "attack_target"
	TypeTargetable         Type = "targetable"
	TypeMapID              Type = "map_id"
	TypeStackActive        Type = "stack_active"
	TypeStackReset         Type = "stack_reset"
	TypeGuild              Type = "guild"
	TypeBuffInfo           Type = "buff_info"
	TypeBuffFormula        Type = "buff_formula"
	TypeSkillInfo          Type = "skill_info"
	TypeSkillTiming        Type = "skill_timing"
	TypeBreakbarState      Type = "breakbar_state"
	TypeBreakbarPercent    Type = "breakbar_percent"
	TypeIntegrity          Type = "integrity"
	TypeAgentMarker        Type = "agent_marker"
	TypeBarrierUpdate      Type = "barrier_update"
	TypeStatReset          Type = "stat_reset"
	TypeExtension          Type = "extension"
	TypeAPIDelayed         Type = "api_delayed"
	TypeInstanceStart      Type = "instance_start"
	TypeRateHealth         Type = "rate_health"
	TypeLast90BeforeDown   Type = "last90_before_down"
	TypeEffect45           Type = "effect45"
	TypeIDToGUID           Type = "id_to_guid"
	TypeLogNPCUpdate       Type = "log_npc_update"
	TypeExtensionCombat    Type = "extension_combat"
	TypeFractalScale       Type = "fractal_scale"
	TypeEffect51           Type = "effect51"
	TypeRuleset            Type = "ruleset"
	TypeSquadMarker        Type = "squad_marker"
	TypeArcBuild           Type = "arc_build"
	TypeGlider             Type = "glider"
	TypeStunbreak          Type = "stunbreak"
	TypeMissileCreate      Type = "missile_create"
	TypeMissileLaunch      Type = "missile_launch"
	TypeMissileRemove      Type = "missile_remove"
	TypeEffectGroundCreate Type = "effect_ground_create"
	TypeEffectGroundRemove Type = "effect_ground_remove"
	TypeEffectAgentCreate  Type = "effect_agent_create"
	TypeEffectAgentRemove  Type = "effect_agent_remove"
	TypeActivation         Type = "activation"
	TypeBuffRemove         Type = "buff_remove"
	TypeBuffApply          Type = "buff_apply"
	TypeBuffDamage         Type = "buff_damage"
	TypeStrike             Type = "strike"
	TypeUnknown            Type = "unknown"
)

// allTypes is the canonical list of all kind types.
// Add new kinds here when extending the decoder.
var allTypes = []Type{
	TypeEnterCombat, TypeExitCombat, TypeChangeUp, TypeChangeDead, TypeChangeDown,
	TypeSpawn, TypeDespawn, TypeHealthUpdate, TypeSquadCombatStart, TypeSquadCombatEnd,
	TypeWeaponSwap, TypeMaxHealthUpdate, TypePointOfView, TypeLanguage, TypeGWBuild,
	TypeShardID, TypeReward, TypeBuffInitial, TypePosition, TypeVelocity, TypeFacing,
	TypeTeamChange, TypeAttackTarget, TypeTargetable, TypeMapID, TypeStackActive,
	TypeStackReset, TypeGuild, TypeBuffInfo, TypeBuffFormula, TypeSkillInfo,
	TypeSkillTiming, TypeBreakbarState, TypeBreakbarPercent, TypeIntegrity,
	TypeAgentMarker, TypeBarrierUpdate, TypeStatReset, TypeExtension, TypeAPIDelayed,
	TypeInstanceStart, TypeRateHealth, TypeLast90BeforeDown, TypeEffect45, TypeIDToGUID,
	TypeLogNPCUpdate, TypeExtensionCombat, TypeFractalScale, TypeEffect51, TypeRuleset,
	TypeSquadMarker, TypeArcBuild, TypeGlider, TypeStunbreak, TypeMissileCreate,
	TypeMissileLaunch, TypeMissileRemove, TypeEffectGroundCreate, TypeEffectGroundRemove,
	TypeEffectAgentCreate, TypeEffectAgentRemove, TypeActivation, TypeBuffRemove,
	TypeBuffApply, TypeBuffDamage, TypeStrike, TypeUnknown,
}

// TypeNames returns a sorted list of all valid kind type names.
// This is the single source of truth for kind type enumeration.
func TypeNames() []string {
	names := make([]string, len(allTypes))
	for i, t := range allTypes {
		names[i] = string(t)
	}
	sort.Strings(names)
	return names
}

// Types returns all kind types in declaration order.
func Types() []Type {
	return append([]Type(nil), allTypes...)
}

// typeByName maps lowercase string names to Type for efficient lookup.
// Built once from allTypes at package initialization.
var typeByName = func() map[string]Type {
	m := make(map[string]Type, len(allTypes))
	for _, t := range allTypes {
		m[string(t)] = t
	}
	return m
}()

// ParseType converts a string to Type if valid.
// It is case-insensitive and trims leading/trailing whitespace.
// Returns the type and true if found, zero value and false otherwise.
func ParseType(name string) (Type, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	t, ok := typeByName[name]
	return t, ok
}
