package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/evtclog/evtc-go/internal/config"
	"github.com/evtclog/evtc-go/pkg/evtc"
	"github.com/evtclog/evtc-go/pkg/evtc/kind"
)

// ValidFormats lists the accepted --format values.
var ValidFormats = map[string]bool{
	config.FormatJSONL:  true,
	config.FormatPretty: true,
}

func formatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for name := range ValidFormats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format %q: must be one of: %s", format, strings.Join(formatNames(), ", "))
	}
	return nil
}

// typeColumn is the width of the event type column in pretty output.
const typeColumn = 20

var (
	accent = lipgloss.Color("#E8A33D")
	muted  = lipgloss.Color("#666666")
	damage = lipgloss.Color("#D9534F")
	heal   = lipgloss.Color("#00CC66")
)

// printer writes events and log summaries in one output format.
// Styles are bound to the output so colors are dropped when it is not
// a terminal.
type printer struct {
	format string
	w      io.Writer
	enc    *json.Encoder

	timeStyle   lipgloss.Style
	typeStyle   lipgloss.Style
	damageStyle lipgloss.Style
	healStyle   lipgloss.Style
	pathStyle   lipgloss.Style
}

func newPrinter(format string, w io.Writer) (*printer, error) {
	if err := validateFormat(format); err != nil {
		return nil, err
	}
	r := lipgloss.NewRenderer(w)
	return &printer{
		format:      format,
		w:           w,
		enc:         json.NewEncoder(w),
		timeStyle:   r.NewStyle().Foreground(muted),
		typeStyle:   r.NewStyle().Foreground(accent).Bold(true),
		damageStyle: r.NewStyle().Foreground(damage),
		healStyle:   r.NewStyle().Foreground(heal),
		pathStyle:   r.NewStyle().Bold(true),
	}, nil
}

// Event writes a single decoded event.
func (p *printer) Event(ev evtc.FileEvent) error {
	if p.format == config.FormatJSONL {
		return p.enc.Encode(ev)
	}

	typ := string(ev.Type)
	pad := max(typeColumn-len(typ), 1)
	_, err := fmt.Fprintf(p.w, "%s %s%s%s\n",
		p.timeStyle.Render(formatTime(ev.Event)),
		p.typeStyle.Render(typ), strings.Repeat(" ", pad),
		p.describe(ev.Kind))
	return err
}

// Update writes the summary of a finished log.
func (p *printer) Update(u evtc.Update) error {
	s := summarize(u.Path, u.Log)
	if p.format == config.FormatJSONL {
		return p.enc.Encode(s)
	}

	target := s.Target
	if target == "" {
		target = "unknown"
	}
	_, err := fmt.Fprintf(p.w, "%s %s %s %s\n",
		p.pathStyle.Render(s.Path),
		p.typeStyle.Render(fmt.Sprintf("%s (%d)", target, s.BossID)),
		p.timeStyle.Render(s.Date),
		fmt.Sprintf("players=%d agents=%d events=%d", len(s.Players), s.Agents, s.Events))
	return err
}

// formatTime renders the event time in seconds, or a dash for records
// without a timestamp.
func formatTime(ev evtc.Event) string {
	t, ok := ev.Timestamp()
	if !ok {
		return fmt.Sprintf("%10s", "-")
	}
	return fmt.Sprintf("%9.3fs", float64(t)/1000)
}

// describe renders a one-line summary of common kinds and falls back to
// the JSON payload for the rest.
func (p *printer) describe(k kind.Kind) string {
	switch k := k.(type) {
	case kind.Strike:
		return fmt.Sprintf("%d -> %d skill %d %s %s",
			k.Source.ID, k.Target.ID, k.SkillID, k.Result,
			p.damageStyle.Render(fmt.Sprint(k.TotalDamage)))
	case kind.BuffDamage:
		amount := p.damageStyle.Render(fmt.Sprint(k.Damage))
		if k.Damage < 0 {
			amount = p.healStyle.Render(fmt.Sprint(-k.Damage))
		}
		return fmt.Sprintf("%d -> %d buff %d %s", k.Source.ID, k.Target.ID, k.SkillID, amount)
	case kind.BuffApply:
		s := fmt.Sprintf("%d -> %d buff %d", k.Source.ID, k.Target.ID, k.SkillID)
		if k.Apply != nil {
			s += fmt.Sprintf(" for %dms", k.Apply.Duration)
		}
		return s
	case kind.BuffRemove:
		return fmt.Sprintf("%d -> %d buff %d %s", k.Source.ID, k.Target.ID, k.SkillID, k.Kind)
	case kind.ActivationEvent:
		return fmt.Sprintf("agent %d skill %d %s", k.Agent.ID, k.SkillID, k.Kind)
	case kind.HealthUpdate:
		return fmt.Sprintf("agent %d %.1f%%", k.Agent.ID, k.Health*100)
	case kind.EnterCombat:
		return fmt.Sprintf("agent %d subgroup %d", k.Agent.ID, k.Subgroup)
	}
	b, err := json.Marshal(k)
	if err != nil {
		return err.Error()
	}
	return string(b)
}

// logSummary is the watch output for a finished log.
type logSummary struct {
	Path    string            `json:"path"`
	Date    string            `json:"date"`
	BossID  uint16            `json:"boss_id"`
	Target  string            `json:"target,omitempty"`
	Players []string          `json:"players"`
	Agents  int               `json:"agents"`
	Skills  int               `json:"skills"`
	Events  int               `json:"events"`
	Counts  map[kind.Type]int `json:"counts"`
}

func summarize(path string, l *evtc.LogTransformed) logSummary {
	s := logSummary{
		Path:    path,
		Date:    l.Header.Date,
		BossID:  l.Header.BossID,
		Players: []string{},
		Agents:  len(l.Agents),
		Skills:  len(l.Skills),
		Events:  len(l.Events),
		Counts:  make(map[kind.Type]int),
	}
	for i := range l.Agents {
		a := &l.Agents[i]
		k := a.Kind()
		switch {
		case k.Type == evtc.AgentPlayer:
			s.Players = append(s.Players, a.CharacterName())
		case k.Type == evtc.AgentNPC && k.ID == l.Header.BossID && s.Target == "":
			s.Target = a.CharacterName()
		}
	}
	for _, k := range l.Events {
		s.Counts[k.Type()]++
	}
	return s
}
