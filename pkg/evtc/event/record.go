package event

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Size is the encoded size of a current-revision record in bytes.
const Size = 64

// Event is a raw EVTC combat event record.
//
// The meaning of most fields depends on the record's category, see Categorize.
// For many state changes SrcAgent, DstAgent and even Time carry unrelated
// payloads, so fields should be read through the kind package rather than
// directly.
type Event struct {
	Time                uint64 `json:"time"`
	SrcAgent            uint64 `json:"src_agent"`
	DstAgent            uint64 `json:"dst_agent"`
	Value               int32  `json:"value"`
	BuffDmg             int32  `json:"buff_dmg"`
	OverstackValue      uint32 `json:"overstack_value"`
	SkillID             uint32 `json:"skill_id"`
	SrcInstanceID       uint16 `json:"src_instance_id"`
	DstInstanceID       uint16 `json:"dst_instance_id"`
	SrcMasterInstanceID uint16 `json:"src_master_instance_id"`
	DstMasterInstanceID uint16 `json:"dst_master_instance_id"`
	Affinity            uint8  `json:"affinity"`
	Buff                uint8  `json:"buff"`
	Result              uint8  `json:"result"`
	IsActivation        uint8  `json:"is_activation"`
	IsBuffRemove        uint8  `json:"is_buffremove"`
	IsNinety            uint8  `json:"is_ninety"`
	IsFifty             uint8  `json:"is_fifty"`
	IsMoving            uint8  `json:"is_moving"`
	IsStateChange       uint8  `json:"is_statechange"`
	IsFlanking          uint8  `json:"is_flanking"`
	IsShields           uint8  `json:"is_shields"`
	IsOffCycle          uint8  `json:"is_offcycle"`
	Pad61               uint8  `json:"pad61"`
	Pad62               uint8  `json:"pad62"`
	Pad63               uint8  `json:"pad63"`
	Pad64               uint8  `json:"pad64"`
}

// Record field offsets.
const (
	offTime          = 0
	offSrcAgent      = 8
	offDstAgent      = 16
	offValue         = 24
	offBuffDmg       = 28
	offOverstack     = 32
	offSkillID       = 36
	offSrcInstance   = 40
	offDstInstance   = 42
	offSrcMaster     = 44
	offDstMaster     = 46
	offAffinity      = 48
	offBuff          = 49
	offResult        = 50
	offIsActivation  = 51
	offIsBuffRemove  = 52
	offIsNinety      = 53
	offIsFifty       = 54
	offIsMoving      = 55
	offIsStateChange = 56
	offIsFlanking    = 57
	offIsShields     = 58
	offIsOffCycle    = 59
	offPad           = 60
)

// Read reads a single record from r.
//
// It returns io.EOF if r is exhausted exactly at a record boundary and
// io.ErrUnexpectedEOF if only part of a record could be read.
func Read(r io.Reader) (Event, error) {
	var buf [Size]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Event{}, err
	}
	return FromBytes(buf), nil
}

// FromBytes decodes a record from its wire representation.
func FromBytes(b [Size]byte) Event {
	le := binary.LittleEndian
	return Event{
		Time:                le.Uint64(b[offTime:]),
		SrcAgent:            le.Uint64(b[offSrcAgent:]),
		DstAgent:            le.Uint64(b[offDstAgent:]),
		Value:               int32(le.Uint32(b[offValue:])),
		BuffDmg:             int32(le.Uint32(b[offBuffDmg:])),
		OverstackValue:      le.Uint32(b[offOverstack:]),
		SkillID:             le.Uint32(b[offSkillID:]),
		SrcInstanceID:       le.Uint16(b[offSrcInstance:]),
		DstInstanceID:       le.Uint16(b[offDstInstance:]),
		SrcMasterInstanceID: le.Uint16(b[offSrcMaster:]),
		DstMasterInstanceID: le.Uint16(b[offDstMaster:]),
		Affinity:            b[offAffinity],
		Buff:                b[offBuff],
		Result:              b[offResult],
		IsActivation:        b[offIsActivation],
		IsBuffRemove:        b[offIsBuffRemove],
		IsNinety:            b[offIsNinety],
		IsFifty:             b[offIsFifty],
		IsMoving:            b[offIsMoving],
		IsStateChange:       b[offIsStateChange],
		IsFlanking:          b[offIsFlanking],
		IsShields:           b[offIsShields],
		IsOffCycle:          b[offIsOffCycle],
		Pad61:               b[offPad],
		Pad62:               b[offPad+1],
		Pad63:               b[offPad+2],
		Pad64:               b[offPad+3],
	}
}

// Bytes returns the wire representation of the record.
func (e *Event) Bytes() [Size]byte {
	var b [Size]byte
	le := binary.LittleEndian
	le.PutUint64(b[offTime:], e.Time)
	le.PutUint64(b[offSrcAgent:], e.SrcAgent)
	le.PutUint64(b[offDstAgent:], e.DstAgent)
	le.PutUint32(b[offValue:], uint32(e.Value))
	le.PutUint32(b[offBuffDmg:], uint32(e.BuffDmg))
	le.PutUint32(b[offOverstack:], e.OverstackValue)
	le.PutUint32(b[offSkillID:], e.SkillID)
	le.PutUint16(b[offSrcInstance:], e.SrcInstanceID)
	le.PutUint16(b[offDstInstance:], e.DstInstanceID)
	le.PutUint16(b[offSrcMaster:], e.SrcMasterInstanceID)
	le.PutUint16(b[offDstMaster:], e.DstMasterInstanceID)
	b[offAffinity] = e.Affinity
	b[offBuff] = e.Buff
	b[offResult] = e.Result
	b[offIsActivation] = e.IsActivation
	b[offIsBuffRemove] = e.IsBuffRemove
	b[offIsNinety] = e.IsNinety
	b[offIsFifty] = e.IsFifty
	b[offIsMoving] = e.IsMoving
	b[offIsStateChange] = e.IsStateChange
	b[offIsFlanking] = e.IsFlanking
	b[offIsShields] = e.IsShields
	b[offIsOffCycle] = e.IsOffCycle
	b[offPad] = e.Pad61
	b[offPad+1] = e.Pad62
	b[offPad+2] = e.Pad63
	b[offPad+3] = e.Pad64
	return b
}

// Write writes the wire representation of the record to w.
func (e *Event) Write(w io.Writer) error {
	b := e.Bytes()
	_, err := w.Write(b[:])
	return err
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (e *Event) MarshalBinary() ([]byte, error) {
	b := e.Bytes()
	return b[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (e *Event) UnmarshalBinary(data []byte) error {
	if len(data) != Size {
		return fmt.Errorf("event: record must be %d bytes, got %d", Size, len(data))
	}
	*e = FromBytes([Size]byte(data))
	return nil
}

// StateChange returns the state change discriminant.
func (e *Event) StateChange() StateChange {
	return StateChange(e.IsStateChange)
}

// Activation returns the activation discriminant.
func (e *Event) Activation() Activation {
	return Activation(e.IsActivation)
}

// BuffRemove returns the buff remove discriminant.
func (e *Event) BuffRemove() BuffRemove {
	return BuffRemove(e.IsBuffRemove)
}

// PadID returns the four padding bytes as a little-endian uint32.
// Several kinds reuse them as a stack or tracking id.
func (e *Event) PadID() uint32 {
	return uint32(e.Pad61) | uint32(e.Pad62)<<8 | uint32(e.Pad63)<<16 | uint32(e.Pad64)<<24
}

// HasTime reports whether the Time field holds a timestamp.
func (e *Event) HasTime() bool {
	return e.StateChange().HasTime()
}

// Readers over the wire representation. Offsets are constants within Size,
// out-of-range offsets are programming errors and panic like any slice access.

// U16At reads a little-endian uint16 at off.
func U16At(b *[Size]byte, off int) uint16 {
	return binary.LittleEndian.Uint16(b[off : off+2])
}

// I16At reads a little-endian int16 at off.
func I16At(b *[Size]byte, off int) int16 {
	return int16(U16At(b, off))
}

// U32At reads a little-endian uint32 at off.
func U32At(b *[Size]byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// F32At reads a little-endian float32 at off.
func F32At(b *[Size]byte, off int) float32 {
	return math.Float32frombits(U32At(b, off))
}

// I16sAt reads n consecutive int16 values starting at off.
func I16sAt(b *[Size]byte, off, n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = I16At(b, off+2*i)
	}
	return out
}

// F32sAt reads n consecutive float32 values starting at off.
func F32sAt(b *[Size]byte, off, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = F32At(b, off+4*i)
	}
	return out
}
