package arrivals

import (
	"time"

	"github.com/subwaylabs/subway-arrivals/gtfsrt"
)

// Snapshot pairs one decoded feed with the wall clock captured at fetch
// time. Every operation of one user cycle reads the same Snapshot, so a trip
// selected from the arrivals table cannot vanish between the match and the
// trip-path lookup the way it could if each step re-fetched the feed.
type Snapshot struct {
	Feed      *gtfsrt.Feed
	FetchedAt time.Time
}

// NewSnapshot captures a feed together with its fetch time. FetchedAt
// becomes the "now" for every freshness comparison and countdown derived
// from this snapshot, which keeps matching a pure function of its inputs.
func NewSnapshot(feed *gtfsrt.Feed, fetchedAt time.Time) *Snapshot {
	return &Snapshot{Feed: feed, FetchedAt: fetchedAt}
}

// Now is the epoch second all arrivals in this snapshot are measured
// against.
func (s *Snapshot) Now() int64 {
	return s.FetchedAt.Unix()
}
