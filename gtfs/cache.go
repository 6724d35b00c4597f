package gtfs

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
)

// indexRelations is the gob wire form of a ScheduleIndex. Only the raw
// relation rows are serialized; the lookup maps are rebuilt on decode, so a
// cached index always reflects the current lookup-building logic.
type indexRelations struct {
	Routes    []string
	Trips     []tripRow
	StopTimes []stopTimeRef
	Stops     []Stop
}

// SerializeIndex encodes a ScheduleIndex to bytes using gob encoding.
// This is useful for disk-based caching to avoid re-parsing the static zip
// on every start.
//
// Example:
//
//	index, _ := gtfs.NewScheduleIndexFromBytes(zipBytes)
//	data, err := gtfs.SerializeIndex(index)
//	if err != nil {
//	    // handle error
//	}
//	os.WriteFile("/path/to/cache/schedule.gob", data, 0644)
func SerializeIndex(index *ScheduleIndex) ([]byte, error) {
	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	rel := indexRelations{
		Routes:    index.routes,
		Trips:     index.trips,
		StopTimes: index.stopTimes,
		Stops:     index.stops,
	}
	if err := encoder.Encode(rel); err != nil {
		return nil, fmt.Errorf("failed to encode schedule index: %w", err)
	}
	return buf.Bytes(), nil
}

// DeserializeIndex decodes a ScheduleIndex from bytes produced by
// SerializeIndex.
//
// Example:
//
//	data, _ := os.ReadFile("/path/to/cache/schedule.gob")
//	index, err := gtfs.DeserializeIndex(data)
//	if err != nil {
//	    // Cache is corrupted or stale, parse the zip again
//	    index, _ = gtfs.NewScheduleIndexFromBytes(freshZipBytes)
//	}
//
// The returned index is safe for concurrent read access.
func DeserializeIndex(data []byte) (*ScheduleIndex, error) {
	decoder := gob.NewDecoder(bytes.NewReader(data))
	var rel indexRelations
	if err := decoder.Decode(&rel); err != nil {
		return nil, fmt.Errorf("failed to decode schedule index: %w", err)
	}
	index := &ScheduleIndex{
		routes:    rel.Routes,
		trips:     rel.Trips,
		stopTimes: rel.StopTimes,
		stops:     rel.Stops,
	}
	index.buildLookups()
	return index, nil
}

// SerializeIndexToFile writes a ScheduleIndex to a file using gob encoding.
func SerializeIndexToFile(index *ScheduleIndex, filepath string) error {
	data, err := SerializeIndex(index)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// DeserializeIndexFromFile reads a ScheduleIndex from a file written by
// SerializeIndexToFile.
func DeserializeIndexFromFile(filepath string) (*ScheduleIndex, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	return DeserializeIndex(data)
}
