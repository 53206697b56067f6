package evtc

import "github.com/evtclog/evtc-go/pkg/evtc/kind"

// LogTransformed is a log with every event decoded into its kind.
type LogTransformed struct {
	Header Header      `json:"header"`
	Agents []Agent     `json:"agents"`
	Skills []Skill     `json:"skills"`
	Events []kind.Kind `json:"events"`

	agentIndex map[uint64]int
	skillIndex map[uint32]int
}

// Transform decodes every event of l.
func Transform(l *Log) *LogTransformed {
	t := &LogTransformed{
		Header: l.Header,
		Agents: l.Agents,
		Skills: l.Skills,
		Events: make([]kind.Kind, len(l.Events)),
	}
	for i := range l.Events {
		t.Events[i] = kind.Decode(&l.Events[i])
	}
	t.buildIndex()
	return t
}

// ParseFileTransformed reads and decodes the log at path.
func ParseFileTransformed(path string) (*LogTransformed, error) {
	l, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return Transform(l), nil
}

func (t *LogTransformed) buildIndex() {
	t.agentIndex = make(map[uint64]int, len(t.Agents))
	for i, a := range t.Agents {
		if _, dup := t.agentIndex[a.Address]; !dup {
			t.agentIndex[a.Address] = i
		}
	}
	t.skillIndex = make(map[uint32]int, len(t.Skills))
	for i, s := range t.Skills {
		if _, dup := t.skillIndex[s.ID]; !dup {
			t.skillIndex[s.ID] = i
		}
	}
}

// Agent returns the agent with the given address.
func (t *LogTransformed) Agent(addr uint64) (*Agent, bool) {
	if t.agentIndex == nil {
		t.buildIndex()
	}
	i, ok := t.agentIndex[addr]
	if !ok {
		return nil, false
	}
	return &t.Agents[i], true
}

// AgentName returns the character name of the agent with the given
// address, or an empty string.
func (t *LogTransformed) AgentName(addr uint64) string {
	if a, ok := t.Agent(addr); ok {
		return a.CharacterName()
	}
	return ""
}

// Skill returns the skill with the given id.
func (t *LogTransformed) Skill(id uint32) (*Skill, bool) {
	if t.skillIndex == nil {
		t.buildIndex()
	}
	i, ok := t.skillIndex[id]
	if !ok {
		return nil, false
	}
	return &t.Skills[i], true
}

// SkillName returns the name of the skill with the given id, or an
// empty string.
func (t *LogTransformed) SkillName(id uint32) string {
	if s, ok := t.Skill(id); ok {
		return s.Name
	}
	return ""
}

// filterEvents drops the events f rejects.
func (t *LogTransformed) filterEvents(f *compiledFilter) {
	if f == nil {
		return
	}
	kept := t.Events[:0]
	for _, k := range t.Events {
		if f.Allows(k.Type()) {
			kept = append(kept, k)
		}
	}
	t.Events = kept
}

