package evtc

import (
	"github.com/evtclog/evtc-go/pkg/evtc/event"
	"github.com/evtclog/evtc-go/pkg/evtc/kind"
)

// Re-export kind types for convenience.
// Users can import just "github.com/evtclog/evtc-go/pkg/evtc"
// and use evtc.EventType, evtc.EventStrike, etc.

// EventType is the name of a decoded event kind.
type EventType = kind.Type

// Kind is a decoded event payload.
type Kind = kind.Kind

// RawEvent is a raw 64-byte combat event record.
type RawEvent = event.Event

// Commonly filtered event types. See kind.TypeNames for the full list.
const (
	EventStrike           = kind.TypeStrike
	EventBuffApply        = kind.TypeBuffApply
	EventBuffRemove       = kind.TypeBuffRemove
	EventBuffDamage       = kind.TypeBuffDamage
	EventActivation       = kind.TypeActivation
	EventEnterCombat      = kind.TypeEnterCombat
	EventExitCombat       = kind.TypeExitCombat
	EventHealthUpdate     = kind.TypeHealthUpdate
	EventPosition         = kind.TypePosition
	EventSquadCombatStart = kind.TypeSquadCombatStart
	EventSquadCombatEnd   = kind.TypeSquadCombatEnd
	EventUnknown          = kind.TypeUnknown
)

// Event is a decoded event yielded by Events.
type Event struct {
	// Index is the position of the record in the log's event stream,
	// counted before filtering.
	Index int `json:"index"`

	// Type is the kind name.
	Type EventType `json:"type"`

	// Time is the record timestamp in milliseconds. It is nil for records
	// that reuse the time field for payload.
	Time *uint64 `json:"time,omitempty"`

	// Kind is the decoded payload.
	Kind Kind `json:"kind"`

	// Raw is the original record, only set with WithParseIncludeRaw.
	Raw *RawEvent `json:"raw,omitempty"`
}

// Timestamp returns the record time and whether the record has one.
func (e Event) Timestamp() (uint64, bool) {
	if e.Time == nil {
		return 0, false
	}
	return *e.Time, true
}

// FileEvent is an Event together with the log file it was read from.
type FileEvent struct {
	Path string `json:"path"`
	Event
}
