// Package kind decodes raw EVTC records into typed events.
//
// A raw record is a fixed 64-byte layout whose fields are reused with
// different meanings depending on the record's category and state change.
// Decode resolves the category once and returns the matching payload type:
//
//	switch k := kind.Decode(&ev).(type) {
//	case kind.Strike:
//	    total += int64(k.TotalDamage)
//	case kind.HealthUpdate:
//	    fmt.Println(k.Agent.ID, k.Health)
//	}
//
// TryExtract decodes a record as a single expected type and reports
// false, never an error, when the record is of a different kind.
//
// Type names are stable strings ("strike", "health_update", ...) and are
// used for filtering by the evtc package and the command line tool.
package kind
