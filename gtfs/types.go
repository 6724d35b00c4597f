package gtfs

// Stop is a single stops.txt row. ID keeps the full platform-qualified
// identifier (e.g. "101N"); the logical station is addressed by the
// 3-character base code (e.g. "101").
type Stop struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// tripRow and stopTimeRef are raw relation rows kept in dataset order.
// The line resolver's first-occurrence dedupe rules are order-sensitive,
// so the index retains the rows rather than only derived maps. Fields are
// exported for gob serialization (see cache.go).
type tripRow struct {
	ID       string
	RouteID  string
	Headsign string
}

type stopTimeRef struct {
	TripID string
	StopID string
}
