package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Normalizer maps timestamps onto calendar days of a single reference zone.
type Normalizer struct {
	Location *time.Location
}

// UTC is the normalizer used when no zone is configured.
var UTC = Normalizer{Location: time.UTC}

// NewNormalizer loads an IANA zone name. An empty name means UTC.
func NewNormalizer(zone string) (Normalizer, error) {
	zone = strings.TrimSpace(zone)
	if zone == "" {
		return UTC, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return Normalizer{}, fmt.Errorf("%w: %q", ErrInvalidTimezone, zone)
	}
	return Normalizer{Location: loc}, nil
}

func (n Normalizer) location() *time.Location {
	if n.Location == nil {
		return time.UTC
	}
	return n.Location
}

// Zone returns the reference zone name.
func (n Normalizer) Zone() string {
	return n.location().String()
}

// Normalize returns the reference-zone calendar day of t.
func (n Normalizer) Normalize(t time.Time) Date {
	return FromTime(t.In(n.location()))
}

// In converts t into the reference zone.
func (n Normalizer) In(t time.Time) time.Time {
	return t.In(n.location())
}

// Today is Normalize(time.Now()).
func (n Normalizer) Today() Date {
	return n.Normalize(time.Now())
}

// ParseTimestamp accepts YYYY-MM-DD, RFC3339 and RFC3339Nano values.
// Date-only input is already a calendar day and is returned as is.
func (n Normalizer) ParseTimestamp(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(layoutDate, s); err == nil {
		return FromTime(t), nil
	}
	t, err := n.ParseInstant(s)
	if err != nil {
		return Date{}, err
	}
	return n.Normalize(t), nil
}

// ParseInstant parses an RFC3339 timestamp.
func (n Normalizer) ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}
