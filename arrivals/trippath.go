package arrivals

import "github.com/subwaylabs/subway-arrivals/utils"

// TripPath extracts the predicted stop sequence of one trip for map
// display, scanning entities until the first one carrying that trip ID.
// Updates without a known arrival, or whose base code has no row in the stop
// table, are skipped (and counted as warnings). Minutes away are measured
// against the snapshot's now and may be negative for stops already passed.
//
// A trip absent from the snapshot yields an empty path with no error: that
// legitimately happens when a trip leaves the feed, and because callers hand
// in the same Snapshot the match ran on, it cannot happen merely because
// time passed between the two calls.
func (m *Matcher) TripPath(snap *Snapshot, tripID string) []PathStop {
	now := snap.Now()

	for i := range snap.Feed.Entities {
		e := &snap.Feed.Entities[i]
		if e.TripID != tripID {
			continue
		}

		path := make([]PathStop, 0, len(e.Updates))
		for _, u := range e.Updates {
			if u.Arrival == nil {
				m.Warnings.Add(WarningNoArrivalTime, u.StopID)
				continue
			}
			stop, ok := m.Static.StopForBaseCode(u.StopID)
			if !ok {
				m.Warnings.Add(WarningUnknownStopCode, u.StopID)
				continue
			}
			path = append(path, PathStop{
				StopName:    stop.Name,
				Lat:         stop.Lat,
				Lon:         stop.Lon,
				Arrival:     *u.Arrival,
				MinutesAway: utils.MinutesUntil(*u.Arrival, now),
			})
		}
		return path
	}
	return []PathStop{}
}
