package validation

import (
	"fmt"
	"strings"
	"time"
)

// Wire layouts shared by every API payload.
const (
	DateLayout      = time.DateOnly     // YYYY-MM-DD
	ReminderLayout  = "2006-01-02 15:04" // YYYY-MM-DD HH:MM
	TimestampLayout = time.DateTime     // YYYY-MM-DD HH:MM:SS
)

// ParseDate parses a strict YYYY-MM-DD calendar date. Single digit months or
// days and impossible dates such as 2024-02-30 are rejected.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ValidReminder reports whether s is a strict YYYY-MM-DD HH:MM value.
// time.Parse alone lets a one digit hour through.
func ValidReminder(s string) bool {
	if len(s) != len(ReminderLayout) {
		return false
	}
	_, err := time.Parse(ReminderLayout, s)
	return err == nil
}

// ParseISODate parses the ISO-8601 forms produced by document-store
// extended JSON ({"$date": "..."}), with or without a zone, and returns the
// UTC calendar date.
func ParseISODate(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		DateLayout,
	}

	s = strings.TrimSpace(s)
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return TruncateToDate(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse ISO-8601 date: %q", s)
}

// TruncateToDate drops the time of day, keeping the UTC calendar date.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDatePtr renders a date as YYYY-MM-DD, or nil when unset.
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(DateLayout)
	return &s
}

// FormatTimestamp renders t as a UTC YYYY-MM-DD HH:MM:SS string.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
