package fixtures

import (
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
)

// ==========================================
// DEFAULT WORK WEEK
// ==========================================

// DefaultWeeklyOffDays is seeded for a company created without a work week.
func DefaultWeeklyOffDays() []calendar.Weekday {
	return []calendar.Weekday{calendar.Sunday}
}

func DefaultWorkingDays() []calendar.Weekday {
	return []calendar.Weekday{
		calendar.Monday, calendar.Tuesday, calendar.Wednesday,
		calendar.Thursday, calendar.Friday, calendar.Saturday,
	}
}

// ==========================================
// WEEKLY HOLIDAY RULES
// ==========================================

// WeeklyHolidayRules materialises one weekly rule per weekly-off day, anchored
// on the first such weekday on or after from.
func WeeklyHolidayRules(companyID string, weeklyOff []calendar.Weekday, from calendar.Date) []holiday.HolidayRule {
	weekly := holiday.RecurrenceWeekly
	seen := calendar.NewWeekdaySet()
	rules := make([]holiday.HolidayRule, 0, len(weeklyOff))
	for _, wd := range weeklyOff {
		if !wd.Valid() || seen.Has(wd) {
			continue
		}
		seen[wd] = struct{}{}

		offset := (int(wd) - int(from.Weekday()) + 7) % 7
		p := weekly
		rules = append(rules, holiday.HolidayRule{
			CompanyID:         companyID,
			AnchorDate:        from.AddDays(offset),
			Name:              "Weekly Off (" + wd.String() + ")",
			Recurring:         true,
			RecurrencePattern: &p,
			IsWeeklyHoliday:   true,
		})
	}
	return rules
}
