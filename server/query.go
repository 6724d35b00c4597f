package server

import (
	"net/url"
	"strings"

	"github.com/subwaylabs/subway-arrivals/config"
)

const sortSoonest = "soonest"

// QueryError reports an invalid request parameter. Handlers map it to 400.
type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

type arrivalsQuery struct {
	Line string
	From string
	To   string
	Sort string
}

func parseArrivalsQuery(q url.Values) (arrivalsQuery, error) {
	aq := arrivalsQuery{
		Line: strings.TrimSpace(q.Get("line")),
		From: strings.TrimSpace(q.Get("from")),
		To:   strings.TrimSpace(q.Get("to")),
		Sort: strings.ToLower(strings.TrimSpace(q.Get("sort"))),
	}
	if aq.From == "" {
		return aq, &QueryError{Msg: "You must provide a from station."}
	}
	if aq.To == "" {
		return aq, &QueryError{Msg: "You must provide a to station."}
	}
	if aq.Sort != "" && aq.Sort != sortSoonest {
		return aq, &QueryError{Msg: "Unsupported sort: " + aq.Sort + "."}
	}
	return aq, nil
}

type tripPathQuery struct {
	Line string
	Trip string
}

func parseTripPathQuery(q url.Values) (tripPathQuery, error) {
	tq := tripPathQuery{
		Line: strings.TrimSpace(q.Get("line")),
		Trip: strings.TrimSpace(q.Get("trip")),
	}
	if tq.Trip == "" {
		return tq, &QueryError{Msg: "You must provide a trip ID."}
	}
	return tq, nil
}

// feedGroup resolves a line label to its configured feed group. Unlike the
// CLI, the API never falls back to the first group on an unknown label.
func (s *Server) feedGroup(label string) (config.FeedGroup, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return config.FeedGroup{}, &QueryError{Msg: "You must provide a line."}
	}
	g, ok := s.cfg.SelectFeedGroup(label)
	if !ok {
		return config.FeedGroup{}, &QueryError{Msg: "No such line: " + label + "."}
	}
	return g, nil
}
