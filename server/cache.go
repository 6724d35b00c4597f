package server

import (
	"time"

	"github.com/bluele/gcache"

	"github.com/subwaylabs/subway-arrivals/arrivals"
	"github.com/subwaylabs/subway-arrivals/config"
	"github.com/subwaylabs/subway-arrivals/gtfsrt"
)

// The MTA publishes well under this many distinct feed endpoints; the cache
// only needs one slot per URL because groups sharing an endpoint share the
// snapshot.
const maxFeedEndpoints = 16

// newSnapshotCache builds the per-endpoint snapshot cache. Entries expire
// after ttl, so consecutive requests inside that window observe the same
// feed snapshot. A non-positive ttl disables reuse entirely.
func newSnapshotCache(ttl time.Duration) gcache.Cache {
	if ttl <= 0 {
		return nil
	}
	return gcache.New(maxFeedEndpoints).
		LRU().
		Expiration(ttl).
		Build()
}

// snapshotFor returns a realtime snapshot for the group's endpoint, reusing
// a cached one when fresh. Keyed by URL, not label: the numbered IRT groups
// share one endpoint and must share one snapshot. A cold cache may fetch
// twice under concurrency; both results are valid and the later Set wins.
func (s *Server) snapshotFor(g config.FeedGroup) (*arrivals.Snapshot, error) {
	if s.snapshots != nil {
		if v, err := s.snapshots.Get(g.URL); err == nil {
			if snap, ok := v.(*arrivals.Snapshot); ok {
				return snap, nil
			}
		}
	}

	raw, err := s.fetcher.Get(g.URL)
	if err != nil {
		return nil, err
	}
	feed, err := gtfsrt.Decode(raw)
	if err != nil {
		return nil, err
	}

	snap := arrivals.NewSnapshot(feed, time.Now())
	if s.snapshots != nil {
		_ = s.snapshots.Set(g.URL, snap)
	}
	s.noteSnapshot(snap.Now())
	return snap, nil
}
