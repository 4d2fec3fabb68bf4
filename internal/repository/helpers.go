package repository

import (
	"strings"
	"time"
)

const timeLayout = time.RFC3339

// nowUTC returns the current UTC time formatted for storage.
func nowUTC() string {
	return time.Now().UTC().Format(timeLayout)
}

// parseTime parses a stored timestamp, returning the zero time when empty or
// malformed.
func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// placeholders returns "?, ?, ?" for n bind parameters.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
