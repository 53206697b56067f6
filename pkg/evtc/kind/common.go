package kind

import "github.com/evtclog/evtc-go/pkg/evtc/event"

// AgentID identifies an agent in an event.
type AgentID struct {
	// ID is the agent id assigned by ArcDPS.
	ID uint64 `json:"id"`

	// InstanceID is the in-game instance id at the time of the event.
	InstanceID uint16 `json:"instance_id"`

	// MasterInstanceID is the instance id of the agent's master (e.g. for
	// minions), zero otherwise.
	MasterInstanceID uint16 `json:"master_instance_id"`
}

// SrcAgent returns the source agent of ev.
func SrcAgent(ev *event.Event) AgentID {
	return AgentID{
		ID:               ev.SrcAgent,
		InstanceID:       ev.SrcInstanceID,
		MasterInstanceID: ev.SrcMasterInstanceID,
	}
}

// DstAgent returns the destination agent of ev.
func DstAgent(ev *event.Event) AgentID {
	return AgentID{
		ID:               ev.DstAgent,
		InstanceID:       ev.DstInstanceID,
		MasterInstanceID: ev.DstMasterInstanceID,
	}
}

// Common holds the fields shared by combat events.
type Common struct {
	Time       uint64         `json:"time"`
	Source     AgentID        `json:"source"`
	Target     AgentID        `json:"target"`
	SkillID    uint32         `json:"skill_id"`
	Affinity   event.Affinity `json:"affinity"`
	IsNinety   bool           `json:"is_ninety"`
	IsFifty    bool           `json:"is_fifty"`
	IsMoving   bool           `json:"is_moving"`
	IsFlanking bool           `json:"is_flanking"`
}

func commonOf(ev *event.Event) Common {
	return Common{
		Time:       ev.Time,
		Source:     SrcAgent(ev),
		Target:     DstAgent(ev),
		SkillID:    ev.SkillID,
		Affinity:   event.Affinity(ev.Affinity),
		IsNinety:   ev.IsNinety != 0,
		IsFifty:    ev.IsFifty != 0,
		IsMoving:   ev.IsMoving != 0,
		IsFlanking: ev.IsFlanking != 0,
	}
}
