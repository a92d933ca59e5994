package heartrate

import (
	"time"

	"github.com/cardio/cardio/internal/platform/apperror"
)

// Accepted timestamp layouts. Values without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
	"2006",
}

// ParseTimestamp parses an ISO-8601 timestamp.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsInRange reports whether ts falls inside the closed window [from, to].
// An empty bound is open. Unparsable timestamps are never in range.
func IsInRange(ts, from, to string) bool {
	t, ok := ParseTimestamp(ts)
	if !ok {
		return false
	}
	if f, ok := ParseTimestamp(from); from != "" && ok && t.Before(f) {
		return false
	}
	if u, ok := ParseTimestamp(to); to != "" && ok && t.After(u) {
		return false
	}
	return true
}

// AssertValidWindow fails with INVALID_TIME_WINDOW when both bounds are set
// and either does not parse or from is after to. Equal bounds are valid.
func AssertValidWindow(from, to string) error {
	if from == "" || to == "" {
		return nil
	}
	f, okFrom := ParseTimestamp(from)
	t, okTo := ParseTimestamp(to)
	if !okFrom || !okTo || f.After(t) {
		return apperror.InvalidTimeWindow(from, to)
	}
	return nil
}
