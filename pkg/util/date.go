package util

import "time"

const dayFormat = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date. Returns (t, true) if it worked.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dayFormat, s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// ParseDateDefault parses a date or returns default if empty/invalid.
func ParseDateDefault(s string, def time.Time) time.Time {
	if t, ok := ParseDate(s); ok {
		return t
	}
	return def
}

// FormatDate renders a time as the YYYY-MM-DD form used throughout reports.
func FormatDate(t time.Time) string {
	return t.UTC().Format(dayFormat)
}

// Day truncates a time to UTC midnight so bars fetched from different
// providers align on the same date axis.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
