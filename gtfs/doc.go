/*
Package gtfs provides GTFS static schedule loading and indexing.

This package is data-source agnostic - it accepts raw zip bytes or an
io.ReaderAt and builds an in-memory index. It does NOT handle HTTP
downloads or file paths; see the fetch package for that.

# Basic Usage

Load from raw bytes:

	// Fetch the static zip from your source (HTTP, file, object store)
	zipBytes := fetchStaticZipFromYourSource()

	index, err := gtfs.NewScheduleIndexFromBytes(zipBytes)
	if err != nil {
	    log.Fatal(err)
	}

	// Access indexed data
	stations := index.StopsForLine("A-C-E")
	name := index.StopName("101")

Load from an io.ReaderAt:

	file, _ := os.Open("google_transit.zip")
	defer file.Close()
	stat, _ := file.Stat()

	index, err := gtfs.NewScheduleIndexFromReader(file, stat.Size())

# Performance: Cache the Index

Parse the zip once at startup and keep the index in memory. The schedule is
static data - parsing it on every request is wasteful (500ms-2s vs <1ms).
The index is immutable after construction and safe for concurrent readers.
For caching across process restarts, SerializeIndexToFile and
DeserializeIndexFromFile persist the parsed relations as gob.

# Data Structure

The index keeps the four relation tables in dataset order (several lookups
are first-occurrence sensitive) plus derived maps for:

- Routes matching a line label (route_id substring match)
- Trips (trip_id → route_id, headsign)
- Stations (3-character base code → stop_name, coordinates)
- Station names (stop_name → base code)

# Stop IDs and Base Codes

Subway stop IDs qualify the platform ("101N", "101S"); the station itself is
the 3-character base code ("101"). Name lookups key on the base code, with
the LAST stops.txt row winning when platforms share a base code, and unknown
codes resolving to UnknownStopName rather than an error.

# Memory Footprint

Typical NYC subway schedule: a few hundred MB with stop_times retained.
*/
package gtfs
