// Package calendar holds the date-only value used across holiday matching and
// attendance aggregation, together with the reference-zone normalizer that
// produces it.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

var (
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidTimezone  = errors.New("invalid timezone")
	ErrInvalidWeekday   = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")
)

// Weekday numbers days Sunday=0 through Saturday=6.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

func (w Weekday) Valid() bool {
	return w >= Sunday && w <= Saturday
}

func (w Weekday) String() string {
	if !w.Valid() {
		return "Weekday(" + strconv.Itoa(int(w)) + ")"
	}
	return time.Weekday(w).String()
}

// ParseWeekdays parses a comma separated list such as "0,6".
func ParseWeekdays(s string) ([]Weekday, error) {
	var days []Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWeekday, part)
		}
		wd := Weekday(n)
		if !wd.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, n)
		}
		days = append(days, wd)
	}
	return days, nil
}

// WeekdaySet is a lookup over configured weekdays.
type WeekdaySet map[Weekday]struct{}

func NewWeekdaySet(days ...Weekday) WeekdaySet {
	set := make(WeekdaySet, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}
	return set
}

func (s WeekdaySet) Has(d Weekday) bool {
	_, ok := s[d]
	return ok
}

// Date is a calendar day with no time-of-day component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date, rolling out-of-range values over the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime takes the wall-clock day of t in its own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(layoutDate, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	return FromTime(t), nil
}

// Time returns UTC midnight of d, the storage convention for date columns.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) Weekday() Weekday {
	return Weekday(d.Time().Weekday())
}

func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

func (d Date) Before(u Date) bool {
	return d.Time().Before(u.Time())
}

func (d Date) After(u Date) bool {
	return d.Time().After(u.Time())
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return d.Time().Format(layoutDate)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthDates lists every date of the month in ascending order.
func MonthDates(year int, month time.Month) []Date {
	n := DaysIn(year, month)
	dates := make([]Date, 0, n)
	for day := 1; day <= n; day++ {
		dates = append(dates, Date{Year: year, Month: month, Day: day})
	}
	return dates
}

// MonthBounds returns the first and last date of the month.
func MonthBounds(year int, month time.Month) (Date, Date) {
	return Date{Year: year, Month: month, Day: 1}, Date{Year: year, Month: month, Day: DaysIn(year, month)}
}
