package server

import (
	"net/http"

	"github.com/subwaylabs/subway-arrivals/arrivals"
	"github.com/subwaylabs/subway-arrivals/formatter"
)

func (s *Server) handleLines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, formatter.ToJSON(formatter.BuildLinesResponse(s.cfg.LineLabels())))
}

func (s *Server) handleStops(w http.ResponseWriter, r *http.Request) {
	g, err := s.feedGroup(r.URL.Query().Get("line"))
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, formatter.ToJSON(formatter.BuildStopsResponse(g.Name, s.stopLists[g.Name])))
}

func (s *Server) handleArrivals(w http.ResponseWriter, r *http.Request) {
	q, err := parseArrivalsQuery(r.URL.Query())
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	g, err := s.feedGroup(q.Line)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	snap, err := s.snapshotFor(g)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	m := arrivals.NewMatcher(s.static)
	records, err := m.Match(snap, q.From, q.To)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	if q.Sort == sortSoonest {
		arrivals.SortBySoonest(records)
	}
	m.Warnings.LogAll(g.Name)

	writeJSON(w, http.StatusOK, formatter.ToJSON(
		formatter.BuildArrivalsResponse(g.Name, q.From, q.To, snap.Now(), records)))
}

func (s *Server) handleTripPath(w http.ResponseWriter, r *http.Request) {
	q, err := parseTripPathQuery(r.URL.Query())
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	g, err := s.feedGroup(q.Line)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	// Within the TTL this returns the same snapshot the preceding arrivals
	// request matched against, so the path a rider drills into belongs to
	// the train they selected.
	snap, err := s.snapshotFor(g)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	m := arrivals.NewMatcher(s.static)
	stops := m.TripPath(snap, q.Trip)
	m.Warnings.LogAll(g.Name)

	writeJSON(w, http.StatusOK, formatter.ToJSON(
		formatter.BuildTripPathResponse(g.Name, q.Trip, snap.Now(), stops)))
}
