package gtfsrt

import (
	"fmt"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// DecodeError reports a realtime payload that could not be parsed. Callers
// surface it as a warning and treat the cycle as having no trips.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode realtime feed: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode deserializes a GTFS-Realtime FeedMessage into the slim in-memory
// form the matcher consumes. Any payload the protobuf layer rejects,
// including an empty body (the schema requires a header), comes back as a
// DecodeError. Entities without a trip update or without a trip ID are
// skipped; stop-time updates without a stop ID are skipped.
func Decode(raw []byte) (*Feed, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(raw, &fm); err != nil {
		return nil, &DecodeError{Err: err}
	}

	feed := &Feed{}
	if fm.Header != nil && fm.Header.Timestamp != nil {
		feed.HeaderTimestamp = int64(*fm.Header.Timestamp)
	}
	for _, e := range fm.Entity {
		if e.TripUpdate == nil || e.TripUpdate.Trip == nil || e.TripUpdate.Trip.TripId == nil {
			continue
		}
		tu := e.TripUpdate
		te := TripEntity{TripID: *tu.Trip.TripId}
		if tu.Trip.RouteId != nil {
			te.RouteID = *tu.Trip.RouteId
		}
		if tu.Trip.ScheduleRelationship != nil {
			sr := int32(*tu.Trip.ScheduleRelationship)
			te.ScheduleRelationship = &sr
		}
		for _, stu := range tu.StopTimeUpdate {
			if stu.StopId == nil {
				continue
			}
			u := StopTimeUpdate{StopID: *stu.StopId}
			if stu.Arrival != nil && stu.Arrival.Time != nil {
				t := *stu.Arrival.Time
				u.Arrival = &t
			}
			te.Updates = append(te.Updates, u)
		}
		feed.Entities = append(feed.Entities, te)
	}
	return feed, nil
}
