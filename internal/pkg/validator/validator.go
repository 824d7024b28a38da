package validator

import (
	"slices"
	"strings"
	"time"
)

const (
	layoutDate      = "2006-01-02"
	layoutYearMonth = "2006-01"
)

type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors collects every field problem of one request.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

// ToMap keys messages by field. A later message for the same field wins.
func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v))
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsValidDate parses a calendar date "YYYY-MM-DD". Impossible dates such as
// 2025-02-30 are rejected.
func IsValidDate(s string) (time.Time, bool) {
	date, err := time.Parse(layoutDate, s)
	return date, err == nil
}

// IsValidYearMonth validates a "YYYY-MM" string.
func IsValidYearMonth(s string) (year int, month time.Month, ok bool) {
	t, err := time.Parse(layoutYearMonth, s)
	if err != nil {
		return 0, 0, false
	}
	return t.Year(), t.Month(), true
}

// IsValidDateTime parses an RFC3339 timestamp with an explicit offset,
// fractional seconds allowed.
func IsValidDateTime(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsValidTimezone reports whether name is a loadable IANA zone.
func IsValidTimezone(name string) bool {
	if IsEmpty(name) {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

// IsClockHour reports whether h is an hour of the day, 0 through 23.
func IsClockHour(h int) bool {
	return h >= 0 && h <= 23
}

func IsInSlice(value string, slice []string) bool {
	return slices.Contains(slice, value)
}
