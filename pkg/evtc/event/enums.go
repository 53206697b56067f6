package event

import "strconv"

// Discriminant and payload enumerations. Every type keeps values it does not
// know and renders them as "unknown(N)" instead of failing.

// Activation is the skill activation discriminant.
type Activation uint8

// Activation kinds.
const (
	ActivationNone            Activation = 0
	ActivationStart           Activation = 1
	ActivationQuicknessUnused Activation = 2
	ActivationCancelFire      Activation = 3
	ActivationCancelCancel    Activation = 4
	ActivationReset           Activation = 5
)

var activationNames = [...]string{"None", "Start", "QuicknessUnused", "CancelFire", "CancelCancel", "Reset"}

func (a Activation) String() string { return enumName(activationNames[:], uint64(a)) }

// MarshalText renders the value by name.
func (a Activation) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// BuffRemove is the buff remove discriminant.
type BuffRemove uint8

// Buff remove kinds.
const (
	// BuffRemoveNone is not a buff remove.
	BuffRemoveNone BuffRemove = 0

	// BuffRemoveAll removes every stack. Result holds the number of stacks removed.
	BuffRemoveAll BuffRemove = 1

	// BuffRemoveSingle removes a single stack, one event per stack.
	BuffRemoveSingle BuffRemove = 2

	// BuffRemoveManual removes a single stack without a preceding All.
	BuffRemoveManual BuffRemove = 3
)

var buffRemoveNames = [...]string{"None", "All", "Single", "Manual"}

func (b BuffRemove) String() string { return enumName(buffRemoveNames[:], uint64(b)) }

// MarshalText renders the value by name.
func (b BuffRemove) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// Affinity tells whether an agent is friend or foe to the source.
// ArcDPS calls this "iff".
type Affinity uint8

// Affinity values.
const (
	AffinityFriend  Affinity = 0
	AffinityFoe     Affinity = 1
	AffinityUnknown Affinity = 2
)

var affinityNames = [...]string{"Friend", "Foe", "Unknown"}

func (a Affinity) String() string { return enumName(affinityNames[:], uint64(a)) }

// MarshalText renders the value by name.
func (a Affinity) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// Result is the outcome of a strike.
type Result uint8

// Strike results.
const (
	ResultNormal      Result = 0
	ResultCrit        Result = 1
	ResultGlance      Result = 2
	ResultBlock       Result = 3
	ResultEvade       Result = 4
	ResultInterrupt   Result = 5
	ResultAbsorb      Result = 6
	ResultBlind       Result = 7
	ResultKillingBlow Result = 8
	ResultDowned      Result = 9
	ResultBreakbar    Result = 10
	ResultActivation  Result = 11
)

var resultNames = [...]string{
	"Normal", "Crit", "Glance", "Block", "Evade", "Interrupt",
	"Absorb", "Blind", "KillingBlow", "Downed", "Breakbar", "Activation",
}

func (r Result) String() string { return enumName(resultNames[:], uint64(r)) }

// MarshalText renders the value by name.
func (r Result) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// DealtDamage reports whether the strike dealt damage.
func (r Result) DealtDamage() bool {
	return r == ResultNormal || r == ResultCrit || r == ResultGlance
}

// BuffCycle tells when a buff damage tick happened.
type BuffCycle uint8

// Buff cycle kinds.
const (
	BuffCycleCycle                            BuffCycle = 0
	BuffCycleNotCycle                         BuffCycle = 1
	BuffCycleNotCycleOrResist                 BuffCycle = 2
	BuffCycleNotCycleDmgToTargetOnHit         BuffCycle = 3
	BuffCycleNotCycleDmgToSourceOnHit         BuffCycle = 4
	BuffCycleNotCycleDmgToTargetOnStackRemove BuffCycle = 5
)

var buffCycleNames = [...]string{
	"Cycle", "NotCycle", "NotCycleOrResist", "NotCycleDmgToTargetOnHit",
	"NotCycleDmgToSourceOnHit", "NotCycleDmgToTargetOnStackRemove",
}

func (c BuffCycle) String() string { return enumName(buffCycleNames[:], uint64(c)) }

// MarshalText renders the value by name.
func (c BuffCycle) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// BuffDamageResult is the outcome of a buff damage tick.
type BuffDamageResult uint8

// Buff damage results.
const (
	BuffDamageHit            BuffDamageResult = 0
	BuffDamageInvulnByBuff   BuffDamageResult = 1
	BuffDamageInvulnBySkill1 BuffDamageResult = 2
	BuffDamageInvulnBySkill2 BuffDamageResult = 3
	BuffDamageInvulnBySkill3 BuffDamageResult = 4
)

var buffDamageResultNames = [...]string{"Hit", "InvulnByBuff", "InvulnBySkill1", "InvulnBySkill2", "InvulnBySkill3"}

func (r BuffDamageResult) String() string { return enumName(buffDamageResultNames[:], uint64(r)) }

// MarshalText renders the value by name.
func (r BuffDamageResult) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// BuffCategory is the category of a buff as reported by BuffInfo.
type BuffCategory uint8

// Buff categories.
const (
	BuffCategoryBoon        BuffCategory = 0
	BuffCategoryAny         BuffCategory = 1
	BuffCategoryCondition   BuffCategory = 2
	BuffCategoryFood        BuffCategory = 5
	BuffCategoryUpgrade     BuffCategory = 7
	BuffCategoryBoost       BuffCategory = 9
	BuffCategoryTrait       BuffCategory = 12
	BuffCategoryTransform   BuffCategory = 13
	BuffCategoryEnhancement BuffCategory = 14
	BuffCategoryStance      BuffCategory = 17
)

var buffCategoryNames = map[BuffCategory]string{
	BuffCategoryBoon:        "Boon",
	BuffCategoryAny:         "Any",
	BuffCategoryCondition:   "Condition",
	BuffCategoryFood:        "Food",
	BuffCategoryUpgrade:     "Upgrade",
	BuffCategoryBoost:       "Boost",
	BuffCategoryTrait:       "Trait",
	BuffCategoryTransform:   "Transform",
	BuffCategoryEnhancement: "Enhancement",
	BuffCategoryStance:      "Stance",
}

func (c BuffCategory) String() string {
	if name, ok := buffCategoryNames[c]; ok {
		return name
	}
	return unknownName(uint64(c))
}

// MarshalText renders the value by name.
func (c BuffCategory) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// BuffStackType is the stacking behavior of a buff.
type BuffStackType uint8

// Buff stacking types.
const (
	BuffStackStackingConditionalLoss BuffStackType = 0
	BuffStackQueue                   BuffStackType = 1
	BuffStackCappedDuration          BuffStackType = 2
	BuffStackRegeneration            BuffStackType = 3
	BuffStackStacking                BuffStackType = 4
	BuffStackForce                   BuffStackType = 5
)

var buffStackTypeNames = [...]string{
	"StackingConditionalLoss", "Queue", "CappedDuration", "Regeneration", "Stacking", "Force",
}

func (s BuffStackType) String() string { return enumName(buffStackTypeNames[:], uint64(s)) }

// MarshalText renders the value by name.
func (s BuffStackType) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Attribute is a character attribute referenced by buff formulas.
type Attribute uint16

// Attributes.
const (
	AttributeNone          Attribute = 0
	AttributePower         Attribute = 1
	AttributePrecision     Attribute = 2
	AttributeToughness     Attribute = 3
	AttributeVitality      Attribute = 4
	AttributeFerocity      Attribute = 5
	AttributeHealing       Attribute = 6
	AttributeCondition     Attribute = 7
	AttributeConcentration Attribute = 8
	AttributeExpertise     Attribute = 9
	AttributeArmor         Attribute = 10
	AttributeAgony         Attribute = 11
	AttributeStatInc       Attribute = 12
	AttributePhysInc       Attribute = 13
	AttributeCondInc       Attribute = 14
	AttributePhysRec       Attribute = 15
	AttributeCondRec       Attribute = 16
	AttributeAttackSpeed   Attribute = 17
	AttributeSiphonInc     Attribute = 18
	AttributeSiphonRec     Attribute = 19
)

var attributeNames = [...]string{
	"None", "Power", "Precision", "Toughness", "Vitality", "Ferocity", "Healing",
	"Condition", "Concentration", "Expertise", "Armor", "Agony", "StatInc",
	"PhysInc", "CondInc", "PhysRec", "CondRec", "AttackSpeed", "SiphonInc", "SiphonRec",
}

func (a Attribute) String() string { return enumName(attributeNames[:], uint64(a)) }

// MarshalText renders the value by name.
func (a Attribute) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// WeaponSet is a weapon set an agent swapped to.
type WeaponSet uint64

// Weapon sets.
const (
	WeaponSetWater1    WeaponSet = 0
	WeaponSetWater2    WeaponSet = 1
	WeaponSetBundle    WeaponSet = 2
	WeaponSetTransform WeaponSet = 3
	WeaponSetLand1     WeaponSet = 4
	WeaponSetLand2     WeaponSet = 5
)

var weaponSetNames = [...]string{"Water1", "Water2", "Bundle", "Transform", "Land1", "Land2"}

func (w WeaponSet) String() string { return enumName(weaponSetNames[:], uint64(w)) }

// MarshalText renders the value by name.
func (w WeaponSet) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

// BreakbarState is the state of a defiance bar.
type BreakbarState uint16

// Breakbar states.
const (
	BreakbarActive  BreakbarState = 0
	BreakbarRecover BreakbarState = 1
	BreakbarImmune  BreakbarState = 2
	BreakbarNone    BreakbarState = 3
)

var breakbarStateNames = [...]string{"Active", "Recover", "Immune", "None"}

func (s BreakbarState) String() string { return enumName(breakbarStateNames[:], uint64(s)) }

// MarshalText renders the value by name.
func (s BreakbarState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Language is the game client language.
type Language int32

// Client languages. 1 is unused.
const (
	LanguageEnglish Language = 0
	LanguageFrench  Language = 2
	LanguageGerman  Language = 3
	LanguageSpanish Language = 4
	LanguageChinese Language = 5
)

var languageNames = map[Language]string{
	LanguageEnglish: "English",
	LanguageFrench:  "French",
	LanguageGerman:  "German",
	LanguageSpanish: "Spanish",
	LanguageChinese: "Chinese",
}

// Known reports whether the language is one of the defined values.
func (l Language) Known() bool {
	_, ok := languageNames[l]
	return ok
}

func (l Language) String() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return "unknown(" + strconv.FormatInt(int64(l), 10) + ")"
}

// MarshalText renders the value by name.
func (l Language) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// SquadMarker is a squad marker symbol.
type SquadMarker uint32

// Squad markers.
const (
	SquadMarkerArrow    SquadMarker = 0
	SquadMarkerCircle   SquadMarker = 1
	SquadMarkerHeart    SquadMarker = 2
	SquadMarkerSquare   SquadMarker = 3
	SquadMarkerStar     SquadMarker = 4
	SquadMarkerSwirl    SquadMarker = 5
	SquadMarkerTriangle SquadMarker = 6
	SquadMarkerX        SquadMarker = 7
)

var squadMarkerNames = [...]string{"Arrow", "Circle", "Heart", "Square", "Star", "Swirl", "Triangle", "X"}

func (m SquadMarker) String() string { return enumName(squadMarkerNames[:], uint64(m)) }

// MarshalText renders the value by name.
func (m SquadMarker) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// ContentType is the kind of content an IdToGUID record maps.
type ContentType uint32

// Content types.
const (
	ContentEffect  ContentType = 0
	ContentMarker  ContentType = 1
	ContentSkill   ContentType = 2
	ContentSpecies ContentType = 3
)

var contentTypeNames = [...]string{"Effect", "Marker", "Skill", "Species"}

func (c ContentType) String() string { return enumName(contentTypeNames[:], uint64(c)) }

// MarshalText renders the value by name.
func (c ContentType) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func enumName(names []string, v uint64) string {
	if v < uint64(len(names)) {
		return names[v]
	}
	return unknownName(v)
}
