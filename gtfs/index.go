package gtfs

import (
	"sort"
	"strings"
)

// UnknownStopName is returned by StopName for base codes absent from the
// stop table. Lookups never fail; callers render the sentinel as-is.
const UnknownStopName = "Unknown Stop"

// baseCodeLen is the length of a station's base code. Platform-qualified
// stop IDs ("101N", "101S") share the base code of their parent station.
const baseCodeLen = 3

// ScheduleIndex stores the static GTFS relations in memory for fast lookups.
// It keeps the raw rows in dataset order plus derived lookup maps, and is
// immutable after construction, so concurrent readers need no locking.
type ScheduleIndex struct {
	routes    []string      // routes.txt order
	trips     []tripRow     // trips.txt order
	stopTimes []stopTimeRef // stop_times.txt order
	stops     []Stop        // stops.txt order

	routeSet     map[string]struct{}
	tripRoute    map[string]string // trip_id -> route_id
	tripHeadsign map[string]string // trip_id -> headsign ("" when the feed has none)
	sortedTrips  []string          // trip IDs, lexicographic, for prefix fallback

	baseToName map[string]string // base code -> stop_name, LAST row wins
	baseToStop map[string]int    // base code -> index of FIRST stops row with that prefix
	nameToBase map[string]string // stop_name -> base code of FIRST row with that name
}

// buildLookups derives every lookup map from the raw relations. Both the
// zip loader and the gob cache funnel through here, so a cached index
// behaves identically to a freshly parsed one.
func (x *ScheduleIndex) buildLookups() {
	x.routeSet = make(map[string]struct{}, len(x.routes))
	for _, r := range x.routes {
		x.routeSet[r] = struct{}{}
	}

	x.tripRoute = make(map[string]string, len(x.trips))
	x.tripHeadsign = make(map[string]string, len(x.trips))
	x.sortedTrips = make([]string, 0, len(x.trips))
	for _, t := range x.trips {
		if _, dup := x.tripRoute[t.ID]; !dup {
			x.sortedTrips = append(x.sortedTrips, t.ID)
		}
		x.tripRoute[t.ID] = t.RouteID
		x.tripHeadsign[t.ID] = t.Headsign
	}
	sort.Strings(x.sortedTrips)

	x.baseToName = make(map[string]string, len(x.stops))
	x.baseToStop = make(map[string]int, len(x.stops))
	x.nameToBase = make(map[string]string, len(x.stops))
	for i, s := range x.stops {
		base := baseCodeOf(s.ID)
		x.baseToName[base] = s.Name
		if _, ok := x.baseToStop[base]; !ok {
			x.baseToStop[base] = i
		}
		if _, ok := x.nameToBase[s.Name]; !ok {
			x.nameToBase[s.Name] = base
		}
	}
}

// baseCodeOf truncates a stop ID to its station base code. IDs shorter
// than the base length are their own base code.
func baseCodeOf(stopID string) string {
	if len(stopID) <= baseCodeLen {
		return stopID
	}
	return stopID[:baseCodeLen]
}

// normalizeLineLabel reduces a line label or feed-group key to the token
// used for route matching: lowercase, any "gtfs-" dropped, and only what
// precedes the first dash kept. "GTFS-A-C-E" and "A-C-E" both become "a".
func normalizeLineLabel(label string) string {
	s := strings.ToLower(label)
	s = strings.ReplaceAll(s, "gtfs-", "")
	if i := strings.Index(s, "-"); i >= 0 {
		s = s[:i]
	}
	return s
}

// RoutesMatchingLine returns the route IDs whose lowercased ID contains the
// normalized line token, in routes.txt order. An unrecognized label matches
// nothing and yields an empty slice.
func (x *ScheduleIndex) RoutesMatchingLine(lineLabel string) []string {
	token := normalizeLineLabel(lineLabel)
	seen := make(map[string]struct{}, 8)
	out := make([]string, 0, 8)
	for _, rid := range x.routes {
		if !strings.Contains(strings.ToLower(rid), token) {
			continue
		}
		if _, dup := seen[rid]; dup {
			continue
		}
		seen[rid] = struct{}{}
		out = append(out, rid)
	}
	return out
}

// TripsForRoutes returns the distinct trip IDs belonging to any of the given
// routes, first occurrence wins, in trips.txt order.
func (x *ScheduleIndex) TripsForRoutes(routeIDs []string) []string {
	want := make(map[string]struct{}, len(routeIDs))
	for _, r := range routeIDs {
		want[r] = struct{}{}
	}
	seen := make(map[string]struct{}, 256)
	out := make([]string, 0, 256)
	for _, t := range x.trips {
		if _, ok := want[t.RouteID]; !ok {
			continue
		}
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t.ID)
	}
	return out
}

// StopIDsForTrips returns the distinct stop IDs referenced by any of the
// given trips, first occurrence wins, in stop_times.txt order.
func (x *ScheduleIndex) StopIDsForTrips(tripIDs []string) []string {
	want := make(map[string]struct{}, len(tripIDs))
	for _, t := range tripIDs {
		want[t] = struct{}{}
	}
	seen := make(map[string]struct{}, 256)
	out := make([]string, 0, 256)
	for _, st := range x.stopTimes {
		if _, ok := want[st.TripID]; !ok {
			continue
		}
		if _, dup := seen[st.StopID]; dup {
			continue
		}
		seen[st.StopID] = struct{}{}
		out = append(out, st.StopID)
	}
	return out
}

// StopName resolves a stop ID or base code to a station name. The input is
// truncated to its base code first. Unknown codes resolve to
// UnknownStopName rather than an error.
func (x *ScheduleIndex) StopName(code string) string {
	if name, ok := x.baseToName[baseCodeOf(code)]; ok {
		return name
	}
	return UnknownStopName
}

// HeadsignForTrip returns the headsign for a trip ID. Realtime trip IDs are
// often extensions of the static ones, so when no exact row exists the
// lexicographically smallest static trip whose ID starts with the requested
// ID is used. The bool reports whether any trip matched.
func (x *ScheduleIndex) HeadsignForTrip(tripID string) (string, bool) {
	if hs, ok := x.tripHeadsign[tripID]; ok {
		return hs, true
	}
	i := sort.SearchStrings(x.sortedTrips, tripID)
	if i < len(x.sortedTrips) && strings.HasPrefix(x.sortedTrips[i], tripID) {
		return x.tripHeadsign[x.sortedTrips[i]], true
	}
	return "", false
}

// BaseCodeForStopName maps an exact station name back to the base code of
// the first stops.txt row carrying that name.
func (x *ScheduleIndex) BaseCodeForStopName(name string) (string, bool) {
	base, ok := x.nameToBase[name]
	return base, ok
}

// StopForBaseCode returns the first stops.txt row whose ID starts with the
// given base code, which carries the coordinates used for trip paths.
func (x *ScheduleIndex) StopForBaseCode(code string) (Stop, bool) {
	if i, ok := x.baseToStop[baseCodeOf(code)]; ok {
		return x.stops[i], true
	}
	return Stop{}, false
}

// RouteCount reports the number of routes.txt rows loaded.
func (x *ScheduleIndex) RouteCount() int { return len(x.routes) }

// TripCount reports the number of trips.txt rows loaded.
func (x *ScheduleIndex) TripCount() int { return len(x.trips) }

// StopCount reports the number of stops.txt rows loaded.
func (x *ScheduleIndex) StopCount() int { return len(x.stops) }
