package arrivals

import (
	"fmt"
	"log"
	"strings"
)

// Warning type constants
const (
	WarningNoRouteID         = "no_route_id"
	WarningNoHeadsign        = "no_headsign"
	WarningNoStopTimeUpdates = "no_stop_time_updates"
	WarningNoArrivalTime     = "no_arrival_time"
	WarningUnknownStopCode   = "unknown_stop_code"
)

// warningInfo holds aggregated information about a specific warning type
type warningInfo struct {
	count    int
	examples []string
}

// WarningAggregator collects data-quality warnings during one match cycle
// and outputs consolidated summaries instead of one log line per occurrence.
type WarningAggregator struct {
	warnings map[string]*warningInfo
}

// NewWarningAggregator creates a new warning aggregator
func NewWarningAggregator() *WarningAggregator {
	return &WarningAggregator{
		warnings: make(map[string]*warningInfo),
	}
}

// Add records a warning occurrence with an example ID
func (w *WarningAggregator) Add(warningType, exampleID string) {
	if w.warnings[warningType] == nil {
		w.warnings[warningType] = &warningInfo{
			examples: make([]string, 0, 3),
		}
	}

	info := w.warnings[warningType]
	info.count++

	// Store up to 3 examples
	if len(info.examples) < 3 {
		info.examples = append(info.examples, exampleID)
	}
}

// Empty reports whether no warnings were collected this cycle.
func (w *WarningAggregator) Empty() bool {
	return len(w.warnings) == 0
}

// LogAll outputs all collected warnings in consolidated format
func (w *WarningAggregator) LogAll(feedLabel string) {
	if len(w.warnings) == 0 {
		return
	}

	for warningType, info := range w.warnings {
		message := w.formatWarningMessage(warningType, feedLabel, info)
		log.Printf("%s", message)
	}
}

// formatWarningMessage creates a human-readable warning message
func (w *WarningAggregator) formatWarningMessage(warningType, feedLabel string, info *warningInfo) string {
	var description, action string

	switch warningType {
	case WarningNoRouteID:
		description = "trip updates with no route_id"
		action = "Emitting records with an empty train label"
	case WarningNoHeadsign:
		description = "trips with no headsign in the static schedule"
		action = "Emitting records without a destination label"
	case WarningNoStopTimeUpdates:
		description = "trip updates with no stop-time updates"
		action = "Skipping those trips"
	case WarningNoArrivalTime:
		description = "stop-time updates with no arrival event"
		action = "Skipping those stops in the trip path"
	case WarningUnknownStopCode:
		description = "stop IDs whose base code is not in the stop table"
		action = "Skipping those stops in the trip path"
	default:
		description = "unknown issue"
		action = "Proceeding with fallback behavior"
	}

	examplesStr := strings.Join(info.examples, ", ")

	return fmt.Sprintf("Feed %s has %s (%d occurrences). %s. Examples: %s",
		feedLabel, description, info.count, action, examplesStr)
}
