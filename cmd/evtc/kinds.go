package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evtclog/evtc-go/pkg/evtc"
	"github.com/evtclog/evtc-go/pkg/evtc/kind"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List event type names",
	Long: `List the event type names accepted by --include-types and --exclude-types.

Every decoded event carries one of these names in its "type" field.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range ValidEventTypeNames() {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
				return err
			}
		}
		return nil
	},
}

// ValidEventTypeNames returns a sorted list of valid event type names.
// Delegates to kind.TypeNames() as the single source of truth.
func ValidEventTypeNames() []string {
	return kind.TypeNames()
}

// NormalizeEventTypes converts CLI string values to an evtc.EventType slice.
// It handles case-insensitivity, whitespace trimming, and duplicate removal.
func NormalizeEventTypes(values []string) ([]evtc.EventType, error) {
	if len(values) == 0 {
		return nil, nil
	}

	result := make([]evtc.EventType, 0, len(values))
	seen := make(map[evtc.EventType]struct{})

	for _, raw := range values {
		if strings.TrimSpace(raw) == "" {
			return nil, fmt.Errorf("empty event type provided (input: %q); run 'evtc kinds' for valid types", raw)
		}

		t, ok := kind.ParseType(raw)
		if !ok {
			return nil, fmt.Errorf("unknown event type %q (run 'evtc kinds' for valid types)", raw)
		}

		if _, dup := seen[t]; dup {
			continue // ignore duplicates silently
		}
		seen[t] = struct{}{}
		result = append(result, t)
	}

	return result, nil
}

// RejectOverlap returns an error if any event type is in both includes and excludes.
func RejectOverlap(includes, excludes []evtc.EventType) error {
	ex := make(map[evtc.EventType]struct{}, len(excludes))
	for _, t := range excludes {
		ex[t] = struct{}{}
	}
	for _, t := range includes {
		if _, ok := ex[t]; ok {
			return fmt.Errorf("event type %q cannot be both included and excluded", t)
		}
	}
	return nil
}

// typeFilters normalizes the include and exclude flags of a command.
func typeFilters(include, exclude []string) ([]evtc.EventType, []evtc.EventType, error) {
	includes, err := NormalizeEventTypes(include)
	if err != nil {
		return nil, nil, err
	}
	excludes, err := NormalizeEventTypes(exclude)
	if err != nil {
		return nil, nil, err
	}
	if err := RejectOverlap(includes, excludes); err != nil {
		return nil, nil, err
	}
	return includes, excludes, nil
}
