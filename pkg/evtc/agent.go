package evtc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	nameSize  = 64
	agentSize = 8 + 4 + 4 + 6*2 + nameSize + 4
	skillSize = 4 + nameSize
)

// AgentType tells players, NPCs and gadgets apart.
type AgentType uint8

// Agent types.
const (
	AgentPlayer AgentType = iota
	AgentNPC
	AgentGadget
)

func (t AgentType) String() string {
	switch t {
	case AgentPlayer:
		return "player"
	case AgentNPC:
		return "npc"
	case AgentGadget:
		return "gadget"
	}
	return "unknown(" + strconv.Itoa(int(t)) + ")"
}

// MarshalText renders the agent type by name.
func (t AgentType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// AgentKind is the decoded kind of an agent. ID is the species id for
// NPCs and the gadget id for gadgets; it is zero for players.
type AgentKind struct {
	Type AgentType `json:"type"`
	ID   uint16    `json:"id,omitempty"`
}

// Agent is an entry of the agent table.
type Agent struct {
	Address       uint64   `json:"address"`
	Profession    uint32   `json:"profession"`
	Elite         uint32   `json:"elite"`
	Toughness     uint16   `json:"toughness"`
	Concentration uint16   `json:"concentration"`
	Healing       uint16   `json:"healing"`
	HitboxWidth   uint16   `json:"hitbox_width"`
	Condition     uint16   `json:"condition"`
	HitboxHeight  uint16   `json:"hitbox_height"`
	Name          []string `json:"name"`
}

// Kind decodes the agent kind from Profession and Elite.
func (a *Agent) Kind() AgentKind {
	if a.Elite != 0xFFFFFFFF {
		return AgentKind{Type: AgentPlayer}
	}
	id := uint16(a.Profession)
	if a.Profession>>16 == 0xFFFF {
		return AgentKind{Type: AgentGadget, ID: id}
	}
	return AgentKind{Type: AgentNPC, ID: id}
}

// CharacterName returns the character or NPC name.
func (a *Agent) CharacterName() string {
	if len(a.Name) == 0 {
		return ""
	}
	return a.Name[0]
}

// AccountName returns the account name of a player, without the
// leading colon. It is empty for NPCs and gadgets.
func (a *Agent) AccountName() string {
	if len(a.Name) < 2 {
		return ""
	}
	return strings.TrimPrefix(a.Name[1], ":")
}

// Subgroup returns the squad subgroup of a player, or 0 if unknown.
func (a *Agent) Subgroup() int {
	if len(a.Name) < 3 {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(a.Name[2]))
	if err != nil {
		return 0
	}
	return n
}

func readAgent(r io.Reader) (Agent, error) {
	var b [agentSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return Agent{}, err
	}
	le := binary.LittleEndian
	name, err := decodeNameParts(b[28 : 28+nameSize])
	if err != nil {
		return Agent{}, err
	}
	return Agent{
		Address:       le.Uint64(b[0:]),
		Profession:    le.Uint32(b[8:]),
		Elite:         le.Uint32(b[12:]),
		Toughness:     le.Uint16(b[16:]),
		Concentration: le.Uint16(b[18:]),
		Healing:       le.Uint16(b[20:]),
		HitboxWidth:   le.Uint16(b[22:]),
		Condition:     le.Uint16(b[24:]),
		HitboxHeight:  le.Uint16(b[26:]),
		Name:          name,
	}, nil
}

func (a *Agent) write(w io.Writer) error {
	var b [agentSize]byte
	le := binary.LittleEndian
	le.PutUint64(b[0:], a.Address)
	le.PutUint32(b[8:], a.Profession)
	le.PutUint32(b[12:], a.Elite)
	le.PutUint16(b[16:], a.Toughness)
	le.PutUint16(b[18:], a.Concentration)
	le.PutUint16(b[20:], a.Healing)
	le.PutUint16(b[22:], a.HitboxWidth)
	le.PutUint16(b[24:], a.Condition)
	le.PutUint16(b[26:], a.HitboxHeight)
	if err := encodeNameParts(b[28:28+nameSize], a.Name); err != nil {
		return fmt.Errorf("agent %#x: %w", a.Address, err)
	}
	_, err := w.Write(b[:])
	return err
}

// Skill is an entry of the skill table.
type Skill struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
}

func readSkill(r io.Reader) (Skill, error) {
	var b [skillSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return Skill{}, err
	}
	raw := b[4:]
	if !utf8.Valid(raw) {
		return Skill{}, ErrInvalidUTF8
	}
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return Skill{
		ID:   binary.LittleEndian.Uint32(b[0:]),
		Name: string(raw),
	}, nil
}

func (s *Skill) write(w io.Writer) error {
	var b [skillSize]byte
	binary.LittleEndian.PutUint32(b[0:], s.ID)
	if err := encodeName(b[4:], s.Name); err != nil {
		return fmt.Errorf("skill %d: %w", s.ID, err)
	}
	_, err := w.Write(b[:])
	return err
}

// decodeNameParts splits a NUL-padded name buffer on NUL and drops the
// trailing empty parts. An empty buffer decodes to nil.
func decodeNameParts(raw []byte) ([]string, error) {
	if !utf8.Valid(raw) {
		return nil, ErrInvalidUTF8
	}
	parts := strings.Split(string(raw), "\x00")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		return nil, nil
	}
	return parts, nil
}

// encodeNameParts joins parts with NUL into dst. Trailing empty parts
// would be lost on decode, so they are rejected.
func encodeNameParts(dst []byte, parts []string) error {
	if n := len(parts); n > 0 && parts[n-1] == "" {
		return fmt.Errorf("name %q ends with an empty part", parts)
	}
	for _, p := range parts {
		if strings.IndexByte(p, 0) >= 0 {
			return fmt.Errorf("name part %q contains NUL", p)
		}
	}
	return copyName(dst, strings.Join(parts, "\x00"))
}

// encodeName copies s into the NUL-padded buffer dst.
func encodeName(dst []byte, s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("name %q contains NUL", s)
	}
	return copyName(dst, s)
}

func copyName(dst []byte, s string) error {
	if len(s) > len(dst) {
		return fmt.Errorf("name %q exceeds %d bytes", s, len(dst))
	}
	copy(dst, s)
	return nil
}
