package company

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
)

// Company is the business owning holidays and attendance records.
type Company struct {
	ID            string
	Name          string
	Timezone      *string // overrides the configured reference zone
	WeeklyOffDays []calendar.Weekday
	WorkingDays   []calendar.Weekday

	// Attendance policy. Nil falls back to the configured defaults.
	LateInHour      *int
	EarlyOutHour    *int
	HalfDayMaxHours *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WeeklyOff returns the weekly-off configuration as a set.
func (c Company) WeeklyOff() calendar.WeekdaySet {
	return calendar.NewWeekdaySet(c.WeeklyOffDays...)
}

// Normalizer returns the company's reference zone, or fallback when unset.
// A stored zone that no longer loads falls back too.
func (c Company) Normalizer(fallback calendar.Normalizer) calendar.Normalizer {
	if c.Timezone == nil {
		return fallback
	}
	n, err := calendar.NewNormalizer(*c.Timezone)
	if err != nil {
		return fallback
	}
	return n
}

// Thresholds overlays the company policy on defaults.
func (c Company) Thresholds(defaults attendance.Thresholds) attendance.Thresholds {
	t := defaults
	if c.LateInHour != nil {
		t.LateInHour = *c.LateInHour
	}
	if c.EarlyOutHour != nil {
		t.EarlyOutHour = *c.EarlyOutHour
	}
	if c.HalfDayMaxHours != nil {
		t.HalfDayMaxHours = *c.HalfDayMaxHours
	}
	return t
}

// ValidateWorkWeek rejects weekdays that are both working and weekly-off,
// and values outside Sunday..Saturday.
func ValidateWorkWeek(weeklyOff, working []calendar.Weekday) error {
	for _, d := range append(append([]calendar.Weekday{}, weeklyOff...), working...) {
		if !d.Valid() {
			return calendar.ErrInvalidWeekday
		}
	}
	off := calendar.NewWeekdaySet(weeklyOff...)
	for _, d := range working {
		if off.Has(d) {
			return ErrConfigurationConflict
		}
	}
	return nil
}
