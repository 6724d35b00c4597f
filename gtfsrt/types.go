package gtfsrt

// Feed is one decoded realtime snapshot. Entities keep the feed's own order;
// downstream match output follows it.
type Feed struct {
	HeaderTimestamp int64
	Entities        []TripEntity
}

// TripEntity is the trip update carried by one feed entity.
type TripEntity struct {
	TripID  string
	RouteID string
	// ScheduleRelationship is the trip descriptor's enum value, nil when the
	// feed omits the field. Zero means scheduled.
	ScheduleRelationship *int32
	Updates              []StopTimeUpdate
}

// StopTimeUpdate is one predicted stop event. Arrival is epoch seconds, nil
// when the feed carries no arrival event for the stop.
type StopTimeUpdate struct {
	StopID  string
	Arrival *int64
}

// HasScheduleDeviation reports whether the trip descriptor carried a
// schedule relationship other than the scheduled default. This is a coarse
// proxy for "delayed", not a timing comparison.
func (t *TripEntity) HasScheduleDeviation() bool {
	return t.ScheduleRelationship != nil && *t.ScheduleRelationship != 0
}
