package formatter

import (
	"encoding/json"

	"github.com/subwaylabs/subway-arrivals/arrivals"
	"github.com/subwaylabs/subway-arrivals/gtfs"
	"github.com/subwaylabs/subway-arrivals/utils"
)

// ArrivalsResponse is the JSON envelope for one match cycle between two
// stations.
type ArrivalsResponse struct {
	GeneratedAt string            `json:"generatedAt"`
	Line        string            `json:"line"`
	From        string            `json:"from"`
	To          string            `json:"to"`
	Records     []arrivals.Record `json:"records"`
	Warning     string            `json:"warning,omitempty"`
}

// TripPathResponse is the JSON envelope for a single trip's predicted path.
type TripPathResponse struct {
	GeneratedAt string              `json:"generatedAt"`
	Line        string              `json:"line"`
	TripID      string              `json:"tripId"`
	Stops       []arrivals.PathStop `json:"stops"`
}

// StopsResponse lists the stations a line serves, for station pickers.
type StopsResponse struct {
	Line  string      `json:"line"`
	Stops []gtfs.Stop `json:"stops"`
}

// LinesResponse lists the line labels the service is configured for.
type LinesResponse struct {
	Lines []string `json:"lines"`
}

// ErrorResponse is the error payload shared by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// BuildArrivalsResponse wraps match records with the snapshot's generation
// timestamp. An empty record set carries the standard no-results warning so
// API clients show the same message the CLI does.
func BuildArrivalsResponse(line, from, to string, generatedAt int64, records []arrivals.Record) ArrivalsResponse {
	if records == nil {
		records = []arrivals.Record{}
	}
	resp := ArrivalsResponse{
		GeneratedAt: utils.Iso8601FromUnixSeconds(generatedAt),
		Line:        line,
		From:        from,
		To:          to,
		Records:     records,
	}
	if len(records) == 0 {
		resp.Warning = arrivals.NoResultsWarning
	}
	return resp
}

// BuildTripPathResponse wraps a trip's path stops with the snapshot's
// generation timestamp.
func BuildTripPathResponse(line, tripID string, generatedAt int64, stops []arrivals.PathStop) TripPathResponse {
	if stops == nil {
		stops = []arrivals.PathStop{}
	}
	return TripPathResponse{
		GeneratedAt: utils.Iso8601FromUnixSeconds(generatedAt),
		Line:        line,
		TripID:      tripID,
		Stops:       stops,
	}
}

// BuildStopsResponse wraps a line's station list.
func BuildStopsResponse(line string, stops []gtfs.Stop) StopsResponse {
	if stops == nil {
		stops = []gtfs.Stop{}
	}
	return StopsResponse{Line: line, Stops: stops}
}

// BuildLinesResponse wraps the configured line labels.
func BuildLinesResponse(lines []string) LinesResponse {
	if lines == nil {
		lines = []string{}
	}
	return LinesResponse{Lines: lines}
}

// ToJSON serializes a response envelope to JSON.
func ToJSON(v interface{}) []byte {
	b, _ := json.Marshal(v)
	return b
}

// ToJSONIndent serializes a response envelope to indented JSON for terminal
// output.
func ToJSONIndent(v interface{}) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
