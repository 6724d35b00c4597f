package arrivals

import "fmt"

// StopNotFoundError reports a station name with no row in the stop table.
// It aborts the match but is a user error, never process-fatal.
type StopNotFoundError struct {
	Name string
}

func (e *StopNotFoundError) Error() string {
	return fmt.Sprintf("stop %q not found in the schedule", e.Name)
}

// NoResultsWarning is the user-facing message for a valid search that
// matched no upcoming trains. It is deliberately not an error: the cycle
// succeeded with an empty result set, and callers render this text instead
// of an error message.
const NoResultsWarning = "No upcoming trains found between selected stops."
