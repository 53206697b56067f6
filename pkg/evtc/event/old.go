package event

import (
	"encoding/binary"
	"io"
)

// Old is a record of the old (pre-2018) event revision.
//
// It has the same size as Event but narrower skill and overstack fields,
// no destination master and a block of unused skin offsets.
type Old struct {
	Time                uint64  `json:"time"`
	SrcAgent            uint64  `json:"src_agent"`
	DstAgent            uint64  `json:"dst_agent"`
	Value               int32   `json:"value"`
	BuffDmg             int32   `json:"buff_dmg"`
	OverstackValue      uint16  `json:"overstack_value"`
	SkillID             uint16  `json:"skill_id"`
	SrcInstanceID       uint16  `json:"src_instance_id"`
	DstInstanceID       uint16  `json:"dst_instance_id"`
	SrcMasterInstanceID uint16  `json:"src_master_instance_id"`
	Skin                [9]byte `json:"-"`
	Affinity            uint8   `json:"affinity"`
	Buff                uint8   `json:"buff"`
	Result              uint8   `json:"result"`
	IsActivation        uint8   `json:"is_activation"`
	IsBuffRemove        uint8   `json:"is_buffremove"`
	IsNinety            uint8   `json:"is_ninety"`
	IsFifty             uint8   `json:"is_fifty"`
	IsMoving            uint8   `json:"is_moving"`
	IsStateChange       uint8   `json:"is_statechange"`
	IsFlanking          uint8   `json:"is_flanking"`
	IsShields           uint8   `json:"is_shields"`
	IsOffCycle          uint8   `json:"is_offcycle"`
	Pad64               uint8   `json:"pad64"`
}

// ReadOld reads a single old-revision record from r.
// End-of-input behaves like Read.
func ReadOld(r io.Reader) (Old, error) {
	var b [Size]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return Old{}, err
	}

	le := binary.LittleEndian
	old := Old{
		Time:                le.Uint64(b[0:]),
		SrcAgent:            le.Uint64(b[8:]),
		DstAgent:            le.Uint64(b[16:]),
		Value:               int32(le.Uint32(b[24:])),
		BuffDmg:             int32(le.Uint32(b[28:])),
		OverstackValue:      le.Uint16(b[32:]),
		SkillID:             le.Uint16(b[34:]),
		SrcInstanceID:       le.Uint16(b[36:]),
		DstInstanceID:       le.Uint16(b[38:]),
		SrcMasterInstanceID: le.Uint16(b[40:]),
	}
	copy(old.Skin[:], b[42:51])
	old.Affinity = b[51]
	old.Buff = b[52]
	old.Result = b[53]
	old.IsActivation = b[54]
	old.IsBuffRemove = b[55]
	old.IsNinety = b[56]
	old.IsFifty = b[57]
	old.IsMoving = b[58]
	old.IsStateChange = b[59]
	old.IsFlanking = b[60]
	old.IsShields = b[61]
	old.IsOffCycle = b[62]
	old.Pad64 = b[63]
	return old, nil
}

// Upgrade converts the record to the current layout.
// Fields the old revision does not have are zero.
func (o *Old) Upgrade() Event {
	return Event{
		Time:                o.Time,
		SrcAgent:            o.SrcAgent,
		DstAgent:            o.DstAgent,
		Value:               o.Value,
		BuffDmg:             o.BuffDmg,
		OverstackValue:      uint32(o.OverstackValue),
		SkillID:             uint32(o.SkillID),
		SrcInstanceID:       o.SrcInstanceID,
		DstInstanceID:       o.DstInstanceID,
		SrcMasterInstanceID: o.SrcMasterInstanceID,
		Affinity:            o.Affinity,
		Buff:                o.Buff,
		Result:              o.Result,
		IsActivation:        o.IsActivation,
		IsBuffRemove:        o.IsBuffRemove,
		IsNinety:            o.IsNinety,
		IsFifty:             o.IsFifty,
		IsMoving:            o.IsMoving,
		IsStateChange:       o.IsStateChange,
		IsFlanking:          o.IsFlanking,
		IsShields:           o.IsShields,
		IsOffCycle:          o.IsOffCycle,
		Pad64:               o.Pad64,
	}
}
