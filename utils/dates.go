package utils

import (
	"fmt"
	"time"
)

// ParseDay parses an ISO calendar date ("2024-06-01") and returns it
// normalized to UTC midnight. Dates used in uniqueness keys must all pass
// through here so that repeated submissions for "the same day" collide
// regardless of the caller's timezone or time-of-day.
func ParseDay(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}

	// Accept a bare calendar date first, then a full RFC3339 timestamp
	// (the planner UI submits the former, older clients the latter).
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
		}
	}

	return NormalizeDay(t), nil
}

// NormalizeDay truncates a timestamp to UTC midnight of its calendar day.
func NormalizeDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
