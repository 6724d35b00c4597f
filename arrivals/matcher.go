package arrivals

import (
	"strings"

	"github.com/subwaylabs/subway-arrivals/gtfs"
	"github.com/subwaylabs/subway-arrivals/utils"
)

// Matcher joins a realtime snapshot against the static schedule to produce
// arrival records. Create one per fetch/match cycle: it is cheap, and it
// aggregates per-cycle warnings, so it is not safe for concurrent use.
type Matcher struct {
	Static   *gtfs.ScheduleIndex
	Warnings *WarningAggregator
}

// NewMatcher creates a matcher over the given schedule index.
func NewMatcher(static *gtfs.ScheduleIndex) *Matcher {
	return &Matcher{
		Static:   static,
		Warnings: NewWarningAggregator(),
	}
}

// Match returns the upcoming trains between two stations, in feed entity
// order.
//
// Both station names resolve to 3-character base codes first; a name absent
// from the stop table fails with *StopNotFoundError. Each trip update is
// scanned once, keeping the first update whose stop ID starts with the start
// base code and has a known arrival, and independently the first for the end
// base code. A record is emitted only when both arrivals exist, the start
// arrival strictly precedes the end arrival, and the start arrival is
// strictly after the snapshot's now: that discards departed trains,
// reversed-direction matches, and trips that never reach the destination.
//
// An empty result with a nil error is a valid outcome; callers render
// NoResultsWarning for it.
func (m *Matcher) Match(snap *Snapshot, startName, endName string) ([]Record, error) {
	startBase, ok := m.Static.BaseCodeForStopName(startName)
	if !ok {
		return nil, &StopNotFoundError{Name: startName}
	}
	endBase, ok := m.Static.BaseCodeForStopName(endName)
	if !ok {
		return nil, &StopNotFoundError{Name: endName}
	}

	now := snap.Now()
	fromName := m.Static.StopName(startBase)
	toName := m.Static.StopName(endBase)

	records := make([]Record, 0, 8)
	for i := range snap.Feed.Entities {
		e := &snap.Feed.Entities[i]
		if len(e.Updates) == 0 {
			m.Warnings.Add(WarningNoStopTimeUpdates, e.TripID)
			continue
		}

		var startArrival, endArrival int64
		var haveStart, haveEnd bool
		for _, u := range e.Updates {
			if u.Arrival == nil {
				continue
			}
			if !haveStart && strings.HasPrefix(u.StopID, startBase) {
				startArrival = *u.Arrival
				haveStart = true
			}
			if !haveEnd && strings.HasPrefix(u.StopID, endBase) {
				endArrival = *u.Arrival
				haveEnd = true
			}
		}

		if !haveStart || !haveEnd {
			continue
		}
		if startArrival >= endArrival || startArrival <= now {
			continue
		}

		if e.RouteID == "" {
			m.Warnings.Add(WarningNoRouteID, e.TripID)
		}
		headsign, ok := m.Static.HeadsignForTrip(e.TripID)
		if !ok {
			m.Warnings.Add(WarningNoHeadsign, e.TripID)
		}
		status := StatusOnTime
		if e.HasScheduleDeviation() {
			status = StatusDelayed
		}

		records = append(records, Record{
			Train:        e.RouteID,
			From:         fromName,
			To:           toName,
			StartArrival: startArrival,
			EndArrival:   endArrival,
			MinutesAway:  utils.MinutesUntil(startArrival, now),
			Status:       status,
			TripID:       e.TripID,
			Headsign:     headsign,
		})
	}
	return records, nil
}
