// Package validation holds small helpers for payload validation and
// nullable field handling.
package validation

import (
	"strings"
	"time"
)

func StringPtr(s string) *string {
	return &s
}

// StringPtrIfNotEmpty returns a pointer to s if it is not blank, otherwise nil
func StringPtrIfNotEmpty(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// GetStringOrEmpty returns the string value or an empty string if nil
func GetStringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetStringOrDefault returns the string value or a default value if nil
func GetStringOrDefault(s *string, defaultValue string) string {
	if s == nil {
		return defaultValue
	}
	return *s
}

func TimePtr(t time.Time) *time.Time {
	return &t
}

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// OneOf reports whether v is one of allowed.
func OneOf[T comparable](v T, allowed ...T) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
