package utils

import (
	"math"
	"time"
)

// dayFormat is the ISO calendar-day key used for persistence and comparisons.
const dayFormat = "2006-01-02"

// DayKey returns the ISO date string for t in its own location.
func DayKey(t time.Time) string {
	return t.Format(dayFormat)
}

// ParseDayKey parses an ISO date string back into a local midnight time.
func ParseDayKey(s string) (time.Time, error) {
	return time.ParseInLocation(dayFormat, s, time.Local)
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the whole calendar days from earlier to later.
// Same calendar day yields 0, yesterday yields 1, and so on. Negative when
// later precedes earlier. DST transitions make local days 23 or 25 hours
// long, so the hour quotient is rounded to the nearest day rather than
// truncated.
func DaysBetween(earlier, later time.Time) int {
	a := StartOfDay(earlier)
	b := StartOfDay(later)
	return int(math.Round(b.Sub(a).Hours() / 24))
}
