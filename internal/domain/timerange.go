package domain

import "fmt"

// TimeRange selects how far back a readings query reaches. The set is
// enumerated; anything else is a validation error.
type TimeRange string

const (
	// RangeToday covers readings since the start of the current day.
	RangeToday TimeRange = "today"
	// Range7Days covers the last seven days.
	Range7Days TimeRange = "7d"
	// Range30Days covers the last thirty days.
	Range30Days TimeRange = "30d"
)

// ParseTimeRange validates a period query parameter.
func ParseTimeRange(s string) (TimeRange, error) {
	switch TimeRange(s) {
	case RangeToday, Range7Days, Range30Days:
		return TimeRange(s), nil
	default:
		return "", fmt.Errorf("invalid time range %q: use 'today', '7d', or '30d'", s)
	}
}

func (r TimeRange) String() string {
	return string(r)
}
