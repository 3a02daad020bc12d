package utils

import (
	"time"
)

// FormatTimestamp renders t as an RFC 3339 string in UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseTimestamp accepts RFC 3339 and the "2006-01-02 15:04:05" form
// submitted by the booking form; the latter is read as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02 15:04:05", value, time.UTC)
}
