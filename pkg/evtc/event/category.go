package event

// Category is the logical category of a record.
type Category uint8

// Record categories.
const (
	// CategoryStateChange is a state change, see Event.StateChange for the sub-kind.
	CategoryStateChange Category = iota

	// CategoryActivation is a skill activation or cancellation.
	CategoryActivation

	// CategoryBuffRemove is a buff removal.
	CategoryBuffRemove

	// CategoryBuffApply is a buff application or extension.
	CategoryBuffApply

	// CategoryBuffDamage is damage or healing from a buff tick.
	CategoryBuffDamage

	// CategoryStrike is direct damage or a non-damage strike result.
	CategoryStrike
)

var categoryNames = [...]string{
	CategoryStateChange: "StateChange",
	CategoryActivation:  "Activation",
	CategoryBuffRemove:  "BuffRemove",
	CategoryBuffApply:   "BuffApply",
	CategoryBuffDamage:  "BuffDamage",
	CategoryStrike:      "Strike",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return unknownName(uint64(c))
}

// Categorize determines the category of a record.
//
// The first matching discriminant wins: state change, activation,
// buff remove, then buff (apply when BuffDmg is zero, damage otherwise).
// Everything else is a strike.
func Categorize(e *Event) Category {
	switch {
	case e.IsStateChange != uint8(StateChangeNone):
		return CategoryStateChange
	case e.IsActivation != uint8(ActivationNone):
		return CategoryActivation
	case e.IsBuffRemove != uint8(BuffRemoveNone):
		return CategoryBuffRemove
	case e.Buff != 0:
		if e.BuffDmg == 0 {
			return CategoryBuffApply
		}
		return CategoryBuffDamage
	default:
		return CategoryStrike
	}
}

// Category returns the category of the record.
func (e *Event) Category() Category {
	return Categorize(e)
}
