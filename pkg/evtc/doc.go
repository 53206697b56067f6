// Package evtc provides parsing and monitoring of ArcDPS EVTC combat logs.
//
// This package allows you to:
//   - Parse .evtc logs and compressed .zevtc archives
//   - Decode raw combat records into typed events (see package kind)
//   - Stream events from single files or whole log directories
//   - Watch the ArcDPS log directory for newly written logs
//
// # Basic Usage
//
// To load a whole log with decoded events:
//
//	l, err := evtc.ParseFileTransformed("20240115-201500.zevtc")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, k := range l.Events {
//	    if s, ok := k.(kind.Strike); ok && s.DealtDamage() {
//	        fmt.Printf("%s hit %s for %d\n",
//	            l.AgentName(s.Source.ID), l.AgentName(s.Target.ID), s.TotalDamage)
//	    }
//	}
//
// To stream events without holding the log in memory:
//
//	for ev, err := range evtc.Events(ctx, path,
//	    evtc.WithParseIncludeTypes(evtc.EventHealthUpdate),
//	) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(ev.Type, ev.Kind)
//	}
//
// To react to new logs as ArcDPS writes them:
//
//	updates, errs, err := evtc.Watch(ctx, evtc.WithReplay(evtc.ReplayLatest))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for {
//	    select {
//	    case u, ok := <-updates:
//	        if !ok {
//	            return
//	        }
//	        fmt.Printf("%s: boss %d, %d events\n", u.Path, u.Log.Header.BossID, len(u.Log.Events))
//	    case err, ok := <-errs:
//	        if !ok {
//	            return
//	        }
//	        log.Printf("error: %v", err)
//	    }
//	}
//
// # Format
//
// A log is a 16-byte header, an agent table, a skill table and a stream
// of 64-byte event records, all little-endian. Only header revision 1 is
// supported.
//
// # Disclaimer
//
// This is an unofficial tool and is not affiliated with ArenaNet or deltaconnected.
package evtc
