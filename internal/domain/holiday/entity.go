package holiday

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
)

type HolidayRule struct {
	ID                string
	CompanyID         string
	AnchorDate        calendar.Date
	Name              string
	Description       *string
	Recurring         bool
	RecurrencePattern *RecurrencePattern
	IsWeeklyHoliday   bool // materialised from the company's weekly-off days
	IsCustomHoliday   bool
	CreatedAt         time.Time
}

type RecurrencePattern string

const (
	RecurrenceNone    RecurrencePattern = "none"
	RecurrenceYearly  RecurrencePattern = "yearly"
	RecurrenceMonthly RecurrencePattern = "monthly"
	RecurrenceWeekly  RecurrencePattern = "weekly"
)

var RecurrencePatternValues = []string{
	string(RecurrenceYearly),
	string(RecurrenceMonthly),
	string(RecurrenceWeekly),
}

func (p RecurrencePattern) Valid() bool {
	switch p {
	case RecurrenceYearly, RecurrenceMonthly, RecurrenceWeekly:
		return true
	}
	return false
}

// Pattern returns the effective recurrence, RecurrenceNone for one-off rules.
func (r HolidayRule) Pattern() RecurrencePattern {
	if !r.Recurring || r.RecurrencePattern == nil {
		return RecurrenceNone
	}
	return *r.RecurrencePattern
}

// Validate checks the recurring/pattern invariant. A "none" pattern on a
// non-recurring rule is normalised to nil.
func (r *HolidayRule) Validate() error {
	if r.Recurring {
		if r.RecurrencePattern == nil || !r.RecurrencePattern.Valid() {
			return ErrInvalidRecurrence
		}
		return nil
	}
	if r.RecurrencePattern != nil {
		if *r.RecurrencePattern != RecurrenceNone {
			return ErrInvalidRecurrence
		}
		r.RecurrencePattern = nil
	}
	return nil
}

// DayClassification is the holiday/working verdict for one date.
type DayClassification struct {
	Date          calendar.Date    `json:"date"`
	Weekday       calendar.Weekday `json:"weekday"`
	IsHoliday     bool             `json:"isHoliday"`
	IsWeeklyOff   bool             `json:"isWeeklyOff"`
	HolidayName   *string          `json:"holidayName,omitempty"`
	MatchedRuleID *string          `json:"matchedRuleId,omitempty"`
}
