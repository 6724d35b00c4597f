// Package arrivals is the main entry point for matching realtime feeds
// against the static subway schedule.
//
// This package joins one decoded GTFS-Realtime snapshot with the static
// schedule index to produce ranked arrival records between two stations,
// and the predicted stop path of one selected trip.
//
// # Overview
//
// The arrivals package coordinates three inputs:
//   - Static schedule lookups (station names, base codes, headsigns) via gtfs.ScheduleIndex
//   - One realtime snapshot (decoded feed + fetch time) via Snapshot
//   - The two station names selected by the user
//
// # Usage
//
// Basic setup:
//
//	import (
//	    "time"
//
//	    "github.com/subwaylabs/subway-arrivals/arrivals"
//	    "github.com/subwaylabs/subway-arrivals/gtfs"
//	    "github.com/subwaylabs/subway-arrivals/gtfsrt"
//	)
//
//	// Build the schedule index once at startup
//	index, _ := gtfs.NewScheduleIndexFromBytes(zipBytes)
//
//	// Per cycle: fetch + decode one feed, capture the snapshot
//	feed, _ := gtfsrt.Decode(rawFeedBytes)
//	snap := arrivals.NewSnapshot(feed, time.Now())
//
//	// Match
//	m := arrivals.NewMatcher(index)
//	records, err := m.Match(snap, "Times Sq-42 St", "South Ferry")
//
// Sorting is opt-in; the matcher preserves feed entity order:
//
//	arrivals.SortBySoonest(records)
//
// The path of one trip selected from the records reuses the SAME snapshot,
// so the trip cannot have vanished between the two calls:
//
//	path := m.TripPath(snap, records[0].TripID)
//
// # Errors and empty results
//
// A station name missing from the schedule fails with *StopNotFoundError.
// A valid search with no upcoming trains returns an empty slice and a nil
// error; callers show NoResultsWarning for it, which is a user message, not
// an error. Malformed feeds never reach this package: the decoder rejects
// them first.
//
// # Thread Safety
//
// Matcher instances are NOT thread-safe: they aggregate per-cycle
// data-quality warnings (see WarningAggregator). Create one per cycle or
// request; the underlying schedule index and snapshots can be safely shared
// across matchers because both are immutable.
package arrivals
