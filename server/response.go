package server

import (
	"errors"
	"net/http"

	"github.com/subwaylabs/subway-arrivals/arrivals"
	"github.com/subwaylabs/subway-arrivals/fetch"
	"github.com/subwaylabs/subway-arrivals/formatter"
	"github.com/subwaylabs/subway-arrivals/gtfsrt"
)

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, formatter.ToJSON(formatter.ErrorResponse{Error: msg}))
}

// statusForError maps the error taxonomy to response codes: bad parameters
// are the caller's fault, unknown stations are addressable but absent, and
// upstream fetch or decode failures are gateway errors.
func statusForError(err error) int {
	var qe *QueryError
	if errors.As(err, &qe) {
		return http.StatusBadRequest
	}
	var nf *arrivals.StopNotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound
	}
	var fe *fetch.FetchError
	if errors.As(err, &fe) {
		return http.StatusBadGateway
	}
	var de *gtfsrt.DecodeError
	if errors.As(err, &de) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
