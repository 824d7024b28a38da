package holiday

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/teambition/rrule-go"
)

// WeeklyOffName names dates that are off only through the weekly-off configuration.
const WeeklyOffName = "Weekly Off"

var rruleWeekdays = [7]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// Matches reports whether rule applies to date.
// Day-of-month rules never match a month lacking that day.
func Matches(rule holiday.HolidayRule, date calendar.Date) bool {
	anchor := rule.AnchorDate
	switch rule.Pattern() {
	case holiday.RecurrenceYearly:
		return anchor.Month == date.Month && anchor.Day == date.Day
	case holiday.RecurrenceMonthly:
		return anchor.Day == date.Day
	case holiday.RecurrenceWeekly:
		return anchor.Weekday() == date.Weekday()
	default:
		return anchor == date
	}
}

// MatchHoliday returns the rule that decides date, or nil.
// One-off rules win over recurring ones; ties go to the earliest created rule,
// then the lowest id, then the earliest position in rules.
func MatchHoliday(date calendar.Date, rules []holiday.HolidayRule) *holiday.HolidayRule {
	best := -1
	for i := range rules {
		if !Matches(rules[i], date) {
			continue
		}
		if best < 0 || precedes(rules[i], rules[best]) {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	matched := rules[best]
	return &matched
}

func precedes(a, b holiday.HolidayRule) bool {
	aOneOff := a.Pattern() == holiday.RecurrenceNone
	bOneOff := b.Pattern() == holiday.RecurrenceNone
	if aOneOff != bOneOff {
		return aOneOff
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// ClassifyDay decides whether date is a holiday, either through a matching
// rule or because its weekday is a weekly-off day.
func ClassifyDay(date calendar.Date, rules []holiday.HolidayRule, weeklyOff calendar.WeekdaySet) holiday.DayClassification {
	wd := date.Weekday()
	c := holiday.DayClassification{
		Date:        date,
		Weekday:     wd,
		IsWeeklyOff: weeklyOff.Has(wd),
	}
	if rule := MatchHoliday(date, rules); rule != nil {
		name, id := rule.Name, rule.ID
		c.IsHoliday = true
		c.HolidayName = &name
		c.MatchedRuleID = &id
		return c
	}
	if c.IsWeeklyOff {
		name := WeeklyOffName
		c.IsHoliday = true
		c.HolidayName = &name
	}
	return c
}

// GenerateWeeklyHolidayDates lists the dates of the month falling on a
// weekly-off day, ascending.
func GenerateWeeklyHolidayDates(weeklyOff []calendar.Weekday, year int, month time.Month) []calendar.Date {
	seen := calendar.NewWeekdaySet()
	var byweekday []rrule.Weekday
	for _, d := range weeklyOff {
		if !d.Valid() || seen.Has(d) {
			continue
		}
		seen[d] = struct{}{}
		byweekday = append(byweekday, rruleWeekdays[d])
	}
	if len(byweekday) == 0 {
		return []calendar.Date{}
	}
	return between(rrule.ROption{Freq: rrule.WEEKLY, Byweekday: byweekday}, year, month)
}

// ExpandOccurrences lists the dates of the month on which rule applies.
// It agrees with Matches for every date of the month.
func ExpandOccurrences(rule holiday.HolidayRule, year int, month time.Month) []calendar.Date {
	anchor := rule.AnchorDate
	switch rule.Pattern() {
	case holiday.RecurrenceYearly:
		return between(rrule.ROption{
			Freq:       rrule.YEARLY,
			Bymonth:    []int{int(anchor.Month)},
			Bymonthday: []int{anchor.Day},
		}, year, month)
	case holiday.RecurrenceMonthly:
		return between(rrule.ROption{Freq: rrule.MONTHLY, Bymonthday: []int{anchor.Day}}, year, month)
	case holiday.RecurrenceWeekly:
		return between(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{rruleWeekdays[anchor.Weekday()]},
		}, year, month)
	default:
		if anchor.Year == year && anchor.Month == month {
			return []calendar.Date{anchor}
		}
		return []calendar.Date{}
	}
}

// between expands opt over one month. Recurrences are year-agnostic, so the
// expansion always starts at the first of the month rather than the anchor.
func between(opt rrule.ROption, year int, month time.Month) []calendar.Date {
	first, last := calendar.MonthBounds(year, month)
	opt.Dtstart = first.Time()
	r, err := rrule.NewRRule(opt)
	if err != nil {
		return []calendar.Date{}
	}
	instances := r.Between(first.Time(), last.Time(), true)
	dates := make([]calendar.Date, 0, len(instances))
	for _, t := range instances {
		dates = append(dates, calendar.FromTime(t.UTC()))
	}
	return dates
}
