// Package gtfsrt decodes GTFS-Realtime protobuf feeds.
//
// Decode turns a raw FeedMessage payload into a Feed: the header timestamp
// plus one TripEntity per trip update, each carrying its stop-time updates
// in feed order. Optional protobuf fields stay optional here (nil pointers)
// so downstream code can distinguish "absent" from zero values.
//
// This package does no fetching; see the fetch package for transport.
package gtfsrt
