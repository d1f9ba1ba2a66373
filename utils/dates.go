package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for all stay dates. Lexical comparison of two
// dates in this layout agrees with chronological order, which the booking
// overlap filters depend on.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// NightsBetween returns the number of nights between two dates. The result may
// be zero or negative; callers that care must check, pricing deliberately
// does not.
func NightsBetween(startDate, endDate string) (int64, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return 0, err
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return 0, err
	}
	return int64(end.Sub(start) / (24 * time.Hour)), nil
}
