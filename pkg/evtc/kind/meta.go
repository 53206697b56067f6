package kind

import (
	"bytes"
	"math"
	"strings"

	"github.com/evtclog/evtc-go/pkg/evtc/event"
	"github.com/evtclog/evtc-go/pkg/evtc/geom"
	"github.com/google/uuid"
)

// LogEvent marks the start or end of squad combat, or an NPC update
// of the log. The timestamps are Unix seconds.
type LogEvent struct {
	Time       uint64            `json:"time"`
	ServerTime uint32            `json:"server_time"`
	LocalTime  uint32            `json:"local_time"`
	ID         uint64            `json:"id"`
	State      event.StateChange `json:"-"`
}

func (k LogEvent) Type() Type {
	switch k.State {
	case event.StateChangeSquadCombatEnd:
		return TypeSquadCombatEnd
	case event.StateChangeLogNPCUpdate:
		return TypeLogNPCUpdate
	}
	return TypeSquadCombatStart
}

func (LogEvent) isKind() {}

func (k *LogEvent) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeSquadCombatStart, event.StateChangeSquadCombatEnd, event.StateChangeLogNPCUpdate)
}

func (k *LogEvent) fill(ev *event.Event) {
	k.Time = ev.Time
	k.ServerTime = uint32(ev.Value)
	k.LocalTime = uint32(ev.BuffDmg)
	k.ID = ev.SrcAgent
	k.State = ev.StateChange()
}

// LanguageEvent is the game client language.
type LanguageEvent struct {
	Time     uint64         `json:"time"`
	Language event.Language `json:"language"`
}

func (LanguageEvent) Type() Type { return TypeLanguage }
func (LanguageEvent) isKind() {}

func (k *LanguageEvent) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeLanguage)
}

func (k *LanguageEvent) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Language = event.Language(int32(ev.SrcAgent))
}

// GWBuild is the game build the log was recorded on.
type GWBuild struct {
	Time  uint64 `json:"time"`
	Build uint64 `json:"build"`
}

func (GWBuild) Type() Type { return TypeGWBuild }
func (GWBuild) isKind() {}

func (k *GWBuild) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeGWBuild)
}

func (k *GWBuild) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Build = ev.SrcAgent
}

// ShardID is the server shard id.
type ShardID struct {
	Time  uint64 `json:"time"`
	Shard uint64 `json:"shard"`
}

func (ShardID) Type() Type { return TypeShardID }
func (ShardID) isKind() {}

func (k *ShardID) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeShardID)
}

func (k *ShardID) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Shard = ev.SrcAgent
}

// MapID is the map the log was recorded on.
type MapID struct {
	Time uint64 `json:"time"`
	Map  uint64 `json:"map"`
}

func (MapID) Type() Type { return TypeMapID }
func (MapID) isKind() {}

func (k *MapID) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeMapID)
}

func (k *MapID) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Map = ev.SrcAgent
}

// StatReset marks a reset of the stats of an agent, typically a boss
// or a training golem.
type StatReset struct {
	Time   uint64 `json:"time"`
	Target uint64 `json:"target"`
}

func (StatReset) Type() Type { return TypeStatReset }
func (StatReset) isKind() {}

func (k *StatReset) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeStatReset)
}

func (k *StatReset) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Target = ev.SrcAgent
}

// InstanceStart is the time the map instance started, in milliseconds
// relative to the log time base.
type InstanceStart struct {
	Time  uint64 `json:"time"`
	Start uint64 `json:"start"`
}

func (InstanceStart) Type() Type { return TypeInstanceStart }
func (InstanceStart) isKind() {}

func (k *InstanceStart) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeInstanceStart)
}

func (k *InstanceStart) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Start = ev.SrcAgent
}

// RateHealth is the tick rate health: ticks per second below 20 indicate
// a struggling server or client.
type RateHealth struct {
	Time uint64 `json:"time"`
	Rate uint64 `json:"rate"`
}

func (RateHealth) Type() Type { return TypeRateHealth }
func (RateHealth) isKind() {}

func (k *RateHealth) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeRateHealth)
}

func (k *RateHealth) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Rate = ev.SrcAgent
}

// FractalScale is the fractal difficulty scale.
type FractalScale struct {
	Time  uint64 `json:"time"`
	Scale uint64 `json:"scale"`
}

func (FractalScale) Type() Type { return TypeFractalScale }
func (FractalScale) isKind() {}

func (k *FractalScale) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeFractalScale)
}

func (k *FractalScale) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Scale = ev.SrcAgent
}

// RulesetFlags is a set of rulesets active on the map.
type RulesetFlags uint64

// Rulesets.
const (
	RulesetPvE RulesetFlags = 1 << iota
	RulesetWvW
	RulesetPvP
)

// Has reports whether all rulesets in o are set.
func (f RulesetFlags) Has(o RulesetFlags) bool { return f&o == o }

// String renders the set as a "|"-separated list.
func (f RulesetFlags) String() string {
	var parts []string
	if f.Has(RulesetPvE) {
		parts = append(parts, "PvE")
	}
	if f.Has(RulesetWvW) {
		parts = append(parts, "WvW")
	}
	if f.Has(RulesetPvP) {
		parts = append(parts, "PvP")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// MarshalText renders the set as a "|"-separated list.
func (f RulesetFlags) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// Ruleset lists the rulesets active on the map.
type Ruleset struct {
	Time  uint64       `json:"time"`
	Flags RulesetFlags `json:"flags"`
}

func (Ruleset) Type() Type { return TypeRuleset }
func (Ruleset) isKind() {}

func (k *Ruleset) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeRuleset)
}

func (k *Ruleset) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Flags = RulesetFlags(ev.SrcAgent)
}

// Reward is a reward chest awarded to the recording player.
type Reward struct {
	Time       uint64  `json:"time"`
	Agent      AgentID `json:"agent"`
	Reward     uint64  `json:"reward"`
	RewardType int32   `json:"reward_type"`
}

func (Reward) Type() Type { return TypeReward }
func (Reward) isKind() {}

func (k *Reward) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeReward)
}

func (k *Reward) fill(ev *event.Event) {
	k.Time = ev.Time
	k.Agent = SrcAgent(ev)
	k.Reward = ev.DstAgent
	k.RewardType = ev.Value
}

// Guild is the guild an agent represents.
type Guild struct {
	Time  uint64    `json:"time"`
	Agent AgentID   `json:"agent"`
	Guild uuid.UUID `json:"guild"`
}

func (Guild) Type() Type { return TypeGuild }
func (Guild) isKind() {}

func (k *Guild) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeGuild)
}

func (k *Guild) fill(ev *event.Event) {
	b := ev.Bytes()
	k.Time = ev.Time
	k.Agent = SrcAgent(ev)
	k.Guild = guidAt(&b, 16)
}

// Extension is a record emitted by an ArcDPS addon. Sig identifies the
// addon; the payload layout is addon specific and kept as the raw record.
type Extension struct {
	Sig   uint32            `json:"sig"`
	Event event.Event       `json:"event"`
	State event.StateChange `json:"-"`
}

func (k Extension) Type() Type {
	if k.State == event.StateChangeExtensionCombat {
		return TypeExtensionCombat
	}
	return TypeExtension
}

func (Extension) isKind() {}

func (k *Extension) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeExtension, event.StateChangeExtensionCombat)
}

func (k *Extension) fill(ev *event.Event) {
	k.Sig = ev.PadID()
	k.Event = *ev
	k.State = ev.StateChange()
}

// APIDelayed wraps a record that was held back by the realtime API and
// emitted later. Kind is the decoded inner record.
type APIDelayed struct {
	Kind Kind `json:"kind"`
}

func (APIDelayed) Type() Type { return TypeAPIDelayed }
func (APIDelayed) isKind() {}

func (k *APIDelayed) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeAPIDelayed)
}

func (k *APIDelayed) fill(ev *event.Event) {
	inner := *ev
	inner.IsStateChange = uint8(event.StateChangeNone)
	k.Kind = Decode(&inner)
}

// ArcBuild is the ArcDPS build string.
type ArcBuild struct {
	Build string `json:"build"`
}

func (ArcBuild) Type() Type { return TypeArcBuild }
func (ArcBuild) isKind() {}

func (k *ArcBuild) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeArcBuild)
}

func (k *ArcBuild) fill(ev *event.Event) {
	k.Build = stringAt(ev)
}

// Integrity is an ArcDPS integrity check message.
type Integrity struct {
	Message string `json:"message"`
}

func (Integrity) Type() Type { return TypeIntegrity }
func (Integrity) isKind() {}

func (k *Integrity) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeIntegrity)
}

func (k *Integrity) fill(ev *event.Event) {
	k.Message = stringAt(ev)
}

// stringAt reads the NUL-terminated string stored in the first 32 bytes of
// the record. Invalid UTF-8 is replaced rather than rejected.
func stringAt(ev *event.Event) string {
	b := ev.Bytes()
	s := b[:32]
	if i := bytes.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return strings.ToValidUTF8(string(s), "\uFFFD")
}

// ContentEffect describes an effect GUID mapping.
type ContentEffect struct {
	EffectType      uint16     `json:"effect_type"`
	DefaultDuration geom.Float `json:"default_duration"`
}

// ContentMarker describes a marker GUID mapping.
type ContentMarker struct {
	IsCommanderTag bool `json:"is_commander_tag"`
}

// ContentInfo maps a content id used by other records to its GUID.
// Exactly one of Effect and Marker is set for the known content types.
type ContentInfo struct {
	Time        uint64            `json:"time"`
	ContentID   uint32            `json:"content_id"`
	GUID        uuid.UUID         `json:"guid"`
	ContentType event.ContentType `json:"content_type"`
	Effect      *ContentEffect    `json:"effect,omitempty"`
	Marker      *ContentMarker    `json:"marker,omitempty"`
}

func (ContentInfo) Type() Type { return TypeIDToGUID }
func (ContentInfo) isKind() {}

func (k *ContentInfo) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeIDToGUID)
}

func (k *ContentInfo) fill(ev *event.Event) {
	b := ev.Bytes()
	k.Time = ev.Time
	k.ContentID = ev.SkillID
	k.GUID = guidAt(&b, 8)
	k.ContentType = event.ContentType(ev.OverstackValue)
	switch k.ContentType {
	case event.ContentEffect:
		k.Effect = &ContentEffect{
			EffectType:      ev.SrcInstanceID,
			DefaultDuration: geom.Float(math.Float32frombits(uint32(ev.BuffDmg))),
		}
	case event.ContentMarker:
		k.Marker = &ContentMarker{IsCommanderTag: ev.SrcInstanceID != 0}
	}
}

// SkillInfo holds static skill data.
type SkillInfo struct {
	SkillID     uint32     `json:"skill_id"`
	Recharge    geom.Float `json:"recharge"`
	Range0      geom.Float `json:"range0"`
	Range1      geom.Float `json:"range1"`
	TooltipTime geom.Float `json:"tooltip_time"`
}

func (SkillInfo) Type() Type { return TypeSkillInfo }
func (SkillInfo) isKind() {}

func (k *SkillInfo) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeSkillInfo)
}

func (k *SkillInfo) fill(ev *event.Event) {
	b := ev.Bytes()
	f := event.F32sAt(&b, 0, 4)
	k.SkillID = ev.SkillID
	k.Recharge, k.Range0, k.Range1, k.TooltipTime = geom.Float(f[0]), geom.Float(f[1]), geom.Float(f[2]), geom.Float(f[3])
}

// SkillTiming is a timing entry of a skill: action happens at millisecond
// into the cast.
type SkillTiming struct {
	Time        uint64 `json:"time"`
	SkillID     uint32 `json:"skill_id"`
	Action      uint64 `json:"action"`
	Millisecond uint64 `json:"millisecond"`
}

func (SkillTiming) Type() Type { return TypeSkillTiming }
func (SkillTiming) isKind() {}

func (k *SkillTiming) matches(ev *event.Event) bool {
	return isState(ev, event.StateChangeSkillTiming)
}

func (k *SkillTiming) fill(ev *event.Event) {
	k.Time = ev.Time
	k.SkillID = ev.SkillID
	k.Action = ev.SrcAgent
	k.Millisecond = ev.DstAgent
}
