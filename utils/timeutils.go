package utils

import (
	"time"

	// The subway timetable is civil-time bound to New York; embedding tzdata
	// keeps clock rendering correct on scratch images with no zoneinfo dir.
	_ "time/tzdata"
)

var nycLocation = loadNYC()

func loadNYC() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.UTC
	}
	return loc
}

// Iso8601Now returns the current time in ISO8601 format
func Iso8601Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Iso8601FromUnixSeconds converts Unix timestamp to ISO8601 format
func Iso8601FromUnixSeconds(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}

// NYCClockFromUnixSeconds renders an epoch as a 12-hour wall clock reading
// in America/New_York, e.g. "04:07:30 PM".
func NYCClockFromUnixSeconds(sec int64) string {
	return time.Unix(sec, 0).In(nycLocation).Format("03:04:05 PM")
}

// MinutesUntil returns floor((arrival-now)/60). Floor, not truncation: an
// arrival ten seconds in the past is -1 minutes away, never 0.
func MinutesUntil(arrivalEpoch, nowEpoch int64) int {
	d := arrivalEpoch - nowEpoch
	m := d / 60
	if d < 0 && d%60 != 0 {
		m--
	}
	return int(m)
}
