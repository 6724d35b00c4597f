package gtfs

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// requiredTables are the zip members a usable schedule needs. A zip missing
// any of them is rejected at construction time.
var requiredTables = []string{"routes.txt", "trips.txt", "stops.txt", "stop_times.txt"}

// NewScheduleIndexFromBytes parses a GTFS static zip held in memory.
func NewScheduleIndexFromBytes(data []byte) (*ScheduleIndex, error) {
	return NewScheduleIndexFromReader(bytes.NewReader(data), int64(len(data)))
}

// NewScheduleIndexFromReader parses a GTFS static zip from any io.ReaderAt,
// e.g. an *os.File. Only the four relation tables are read; other members
// are ignored.
func NewScheduleIndexFromReader(r io.ReaderAt, size int64) (*ScheduleIndex, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open gtfs zip: %w", err)
	}

	x := &ScheduleIndex{}
	seen := map[string]bool{}
	for _, f := range zr.File {
		name := strings.ToLower(f.Name)
		switch name {
		case "routes.txt", "trips.txt", "stops.txt", "stop_times.txt":
			if err := x.consumeCSV(f); err != nil {
				return nil, err
			}
			seen[name] = true
		}
	}
	for _, req := range requiredTables {
		if !seen[req] {
			return nil, fmt.Errorf("gtfs zip missing %s", req)
		}
	}

	x.buildLookups()
	return x, nil
}

func (x *ScheduleIndex) consumeCSV(f *zip.File) error {
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	csvr := csv.NewReader(r)
	rec, err := csvr.ReadAll()
	if err != nil {
		return fmt.Errorf("parse %s: %w", f.Name, err)
	}
	if len(rec) == 0 {
		return fmt.Errorf("parse %s: empty table", f.Name)
	}
	head := rec[0]
	idx := func(col string) int {
		for i, h := range head {
			// Some feeds ship a UTF-8 BOM on the first header cell.
			if strings.EqualFold(strings.TrimPrefix(h, "\uFEFF"), col) {
				return i
			}
		}
		return -1
	}
	require := func(cols ...string) ([]int, error) {
		out := make([]int, len(cols))
		for i, col := range cols {
			out[i] = idx(col)
			if out[i] < 0 {
				return nil, fmt.Errorf("parse %s: missing %s column", f.Name, col)
			}
		}
		return out, nil
	}

	switch strings.ToLower(f.Name) {
	case "routes.txt":
		cols, err := require("route_id")
		if err != nil {
			return err
		}
		rID := cols[0]
		for _, row := range rec[1:] {
			x.routes = append(x.routes, row[rID])
		}
	case "trips.txt":
		cols, err := require("trip_id", "route_id")
		if err != nil {
			return err
		}
		tID, rID := cols[0], cols[1]
		hs := idx("trip_headsign")
		for _, row := range rec[1:] {
			t := tripRow{ID: row[tID], RouteID: row[rID]}
			if hs >= 0 && hs < len(row) {
				t.Headsign = row[hs]
			}
			x.trips = append(x.trips, t)
		}
	case "stops.txt":
		cols, err := require("stop_id", "stop_name")
		if err != nil {
			return err
		}
		sID, sN := cols[0], cols[1]
		sLat := idx("stop_lat")
		sLon := idx("stop_lon")
		for _, row := range rec[1:] {
			s := Stop{ID: row[sID], Name: row[sN]}
			if sLat >= 0 && sLat < len(row) {
				s.Lat, _ = strconv.ParseFloat(row[sLat], 64)
			}
			if sLon >= 0 && sLon < len(row) {
				s.Lon, _ = strconv.ParseFloat(row[sLon], 64)
			}
			x.stops = append(x.stops, s)
		}
	case "stop_times.txt":
		cols, err := require("trip_id", "stop_id")
		if err != nil {
			return err
		}
		tID, sID := cols[0], cols[1]
		for _, row := range rec[1:] {
			x.stopTimes = append(x.stopTimes, stopTimeRef{TripID: row[tID], StopID: row[sID]})
		}
	}
	return nil
}
