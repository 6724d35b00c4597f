package utils

import (
	"fmt"
)

// PresentableArrival formats a minutes-away countdown for display in the
// "Arriving In" column. Anything due now or overdue collapses to "due".
func PresentableArrival(minutesAway int) string {
	if minutesAway <= 0 {
		return "due"
	}
	if minutesAway == 1 {
		return "1 min"
	}
	return fmt.Sprintf("%d min", minutesAway)
}
