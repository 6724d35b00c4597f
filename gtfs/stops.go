package gtfs

import "sort"

// StopsForLine resolves a line label to the stations it serves: routes
// matching the label, their trips, those trips' stop IDs, then one stop row
// per distinct station name. When several platforms share a name the first
// row in dataset order supplies the ID and coordinates. The result is
// sorted by station name so pickers render alphabetically.
func (x *ScheduleIndex) StopsForLine(lineLabel string) []Stop {
	routeIDs := x.RoutesMatchingLine(lineLabel)
	tripIDs := x.TripsForRoutes(routeIDs)
	stopIDs := x.StopIDsForTrips(tripIDs)

	inLine := make(map[string]struct{}, len(stopIDs))
	for _, id := range stopIDs {
		inLine[id] = struct{}{}
	}

	seenName := make(map[string]struct{}, len(stopIDs))
	out := make([]Stop, 0, len(stopIDs))
	for _, s := range x.stops {
		if _, ok := inLine[s.ID]; !ok {
			continue
		}
		if _, dup := seenName[s.Name]; dup {
			continue
		}
		seenName[s.Name] = struct{}{}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
