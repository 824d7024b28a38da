package report

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var thresholds = attendance.Thresholds{LateInHour: 9, EarlyOutHour: 17, HalfDayMaxHours: 4}

func clock(date calendar.Date, hour int) *time.Time {
	t := time.Date(date.Year, date.Month, date.Day, hour, 0, 0, 0, time.UTC)
	return &t
}

func worked(employeeID string, date calendar.Date, in, out int) attendance.AttendanceEntry {
	return attendance.AttendanceEntry{EmployeeID: employeeID, InTime: clock(date, in), OutTime: clock(date, out)}
}

func absent(employeeID string) attendance.AttendanceEntry {
	return attendance.AttendanceEntry{EmployeeID: employeeID}
}

func republicDayCompany() (company.Company, []holiday.HolidayRule) {
	c := company.Company{ID: "b", WeeklyOffDays: []calendar.Weekday{calendar.Sunday}}
	rules := []holiday.HolidayRule{{
		ID:         "r1",
		CompanyID:  "b",
		AnchorDate: calendar.NewDate(2025, time.January, 26),
		Name:       "Republic Day",
	}}
	return c, rules
}

func TestAnalyzeMonth_JanuaryScenario(t *testing.T) {
	c, rules := republicDayCompany()

	got, err := AnalyzeMonth(c, 2025, time.January, rules, nil, thresholds, calendar.UTC)
	require.NoError(t, err)

	assert.Equal(t, 31, got.TotalDays)
	assert.Equal(t, 4, got.TotalHolidays)
	assert.Equal(t, 4, got.WeeklyHolidays)
	assert.Equal(t, 0, got.SpecialHolidays)
	assert.Equal(t, 27, got.WorkingDays)
	assert.Equal(t, 0, got.TotalEmployees)
	assert.Equal(t, 0.0, got.AverageAttendance)
	require.Len(t, got.Days, 31)

	republic := got.Days[25]
	assert.True(t, republic.IsHoliday)
	require.NotNil(t, republic.HolidayName)
	assert.Equal(t, "Republic Day", *republic.HolidayName)
}

func TestAnalyzeMonth_FoldsWorkingDays(t *testing.T) {
	c, rules := republicDayCompany()
	mon := calendar.NewDate(2025, time.January, 6)
	tue := calendar.NewDate(2025, time.January, 7)
	holidayDate := calendar.NewDate(2025, time.January, 26)

	records := []attendance.DailyAttendanceRecord{
		{Date: tue, Entries: []attendance.AttendanceEntry{
			worked("e1", tue, 8, 17),
			worked("e2", tue, 8, 11),
			absent("e3"),
		}},
		{Date: mon, Entries: []attendance.AttendanceEntry{
			worked("e1", mon, 8, 17),
			worked("e2", mon, 10, 18),
			absent("e3"),
		}},
		{Date: holidayDate, Entries: []attendance.AttendanceEntry{worked("e1", holidayDate, 8, 17)}},
	}

	got, err := AnalyzeMonth(c, 2025, time.January, rules, records, thresholds, calendar.UTC)
	require.NoError(t, err)

	assert.Equal(t, 3, got.TotalEmployees)
	assert.Equal(t, report.Summary{
		TotalPresent:          4,
		TotalAbsent:           2,
		TotalLate:             1,
		TotalHalfDay:          1,
		TotalWorkHours:        29,
		SkippedHolidayRecords: 1,
	}, got.Summary)
	// (4 + 1 + 0.5) / (27 * 3) * 100
	assert.Equal(t, 6.79, got.AverageAttendance)

	require.Len(t, got.Employees, 3)
	assert.Equal(t, report.EmployeeMonthlyStats{EmployeeID: "e1", Present: 2, TotalDays: 2, WorkHours: 18}, got.Employees[0])
	assert.Equal(t, report.EmployeeMonthlyStats{EmployeeID: "e2", Present: 2, Late: 1, HalfDay: 1, TotalDays: 2, WorkHours: 11}, got.Employees[1])
	assert.Equal(t, report.EmployeeMonthlyStats{EmployeeID: "e3", Absent: 2, TotalDays: 2}, got.Employees[2])

	monday := got.Days[5]
	assert.True(t, monday.HasRecord)
	require.NotNil(t, monday.Totals)
	assert.Equal(t, attendance.DailyTotals{Present: 2, Absent: 1, Late: 1}, *monday.Totals)

	sunday := got.Days[25]
	assert.True(t, sunday.HasRecord)
	assert.Nil(t, sunday.Totals)
}

func TestAnalyzeMonth_NoWorkingDays(t *testing.T) {
	c := company.Company{ID: "b", WeeklyOffDays: []calendar.Weekday{0, 1, 2, 3, 4, 5, 6}}
	date := calendar.NewDate(2025, time.March, 3)
	records := []attendance.DailyAttendanceRecord{{Date: date, Entries: []attendance.AttendanceEntry{worked("e1", date, 8, 17)}}}

	got, err := AnalyzeMonth(c, 2025, time.March, nil, records, thresholds, calendar.UTC)
	require.NoError(t, err)

	assert.Equal(t, 0, got.WorkingDays)
	assert.Equal(t, 0.0, got.AverageAttendance)
	assert.Equal(t, 1, got.Summary.SkippedHolidayRecords)
}

func TestAnalyzeMonth_AverageIsClampedTo100(t *testing.T) {
	// Only Saturdays are working days; the single employee is late on every one
	// of them, which counts as both present and late.
	c := company.Company{ID: "b", WeeklyOffDays: []calendar.Weekday{0, 1, 2, 3, 4, 5}}
	var records []attendance.DailyAttendanceRecord
	for _, day := range []int{4, 11, 18, 25} {
		date := calendar.NewDate(2025, time.January, day)
		records = append(records, attendance.DailyAttendanceRecord{
			Date:    date,
			Entries: []attendance.AttendanceEntry{worked("e1", date, 10, 18)},
		})
	}

	got, err := AnalyzeMonth(c, 2025, time.January, nil, records, thresholds, calendar.UTC)
	require.NoError(t, err)

	assert.Equal(t, 4, got.WorkingDays)
	assert.Equal(t, 4, got.Summary.TotalLate)
	assert.Equal(t, 100.0, got.AverageAttendance)
}

func TestAnalyzeMonth_AverageStaysInBounds(t *testing.T) {
	c, rules := republicDayCompany()
	var records []attendance.DailyAttendanceRecord
	for _, date := range calendar.MonthDates(2025, time.January) {
		records = append(records, attendance.DailyAttendanceRecord{
			Date: date,
			Entries: []attendance.AttendanceEntry{
				worked("e1", date, 8, 17),
				worked("e2", date, 11, 12),
				absent("e3"),
			},
		})
	}

	got, err := AnalyzeMonth(c, 2025, time.January, rules, records, thresholds, calendar.UTC)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, got.AverageAttendance, 0.0)
	assert.LessOrEqual(t, got.AverageAttendance, 100.0)
	assert.Equal(t, 4, got.Summary.SkippedHolidayRecords)
}

func TestAnalyzeMonth_InvalidMonth(t *testing.T) {
	c, rules := republicDayCompany()

	for _, tt := range []struct {
		year  int
		month time.Month
	}{{2025, 0}, {2025, 13}, {0, time.January}, {10000, time.January}} {
		_, err := AnalyzeMonth(c, tt.year, tt.month, rules, nil, thresholds, calendar.UTC)
		assert.ErrorIs(t, err, report.ErrInvalidMonthSpecifier, "%d-%d", tt.year, tt.month)
	}
}

func TestAnalyzeMonth_IgnoresRecordsOutsideMonth(t *testing.T) {
	c, rules := republicDayCompany()
	feb := calendar.NewDate(2025, time.February, 3)
	records := []attendance.DailyAttendanceRecord{{Date: feb, Entries: []attendance.AttendanceEntry{worked("e1", feb, 8, 17)}}}

	got, err := AnalyzeMonth(c, 2025, time.January, rules, records, thresholds, calendar.UTC)
	require.NoError(t, err)

	assert.Equal(t, 0, got.TotalEmployees)
	assert.Empty(t, got.Employees)
}
