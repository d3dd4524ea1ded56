package timeutil

import "time"

// StartOfYear returns midnight UTC on January 1st of t's UTC year.
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// FormatRFC3339 formats t in UTC using RFC3339.
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseRFC3339 parses an RFC3339 timestamp, accepting fractional seconds.
func ParseRFC3339(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}
