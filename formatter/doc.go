// Package formatter renders arrival results for the two output surfaces.
//
// This package is organized into:
// - json.go: response envelopes and JSON serialization for the HTTP API
// - table.go: aligned text tables for terminal output
//
// Envelope timestamps are ISO8601 UTC; table clock readings render in
// America/New_York because that is the timetable's civil time.
package formatter
