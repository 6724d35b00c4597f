package arrivals

import "sort"

// Status values for a matched train. Delayed is a coarse presence proxy on
// the trip's schedule relationship, not a timing comparison.
const (
	StatusOnTime  = "On Time"
	StatusDelayed = "Delayed"
)

// Record is one upcoming train between the two selected stations, produced
// fresh by each match and never persisted.
type Record struct {
	Train        string `json:"train"`
	From         string `json:"from"`
	To           string `json:"to"`
	StartArrival int64  `json:"startArrival"` // epoch seconds at the origin station
	EndArrival   int64  `json:"endArrival"`   // epoch seconds at the destination station
	MinutesAway  int    `json:"minutesAway"`
	Status       string `json:"status"`
	TripID       string `json:"tripId"`
	Headsign     string `json:"headsign,omitempty"`
}

// PathStop is one stop on a selected trip's predicted path, for map display.
type PathStop struct {
	StopName    string  `json:"stopName"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Arrival     int64   `json:"arrival"`
	MinutesAway int     `json:"minutesAway"`
}

// SortBySoonest reorders records so the next train to reach the origin
// station comes first. The sort is stable, so trains predicted for the same
// second keep their feed order. The matcher itself never sorts; callers opt
// in for presentation.
func SortBySoonest(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].StartArrival < records[j].StartArrival
	})
}
