package report

import (
	"math"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	attendanceservice "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
	holidayservice "github.com/cmlabs-hris/hris-attendance-go/internal/service/holiday"
)

// AnalyzeMonth classifies every date of the month and folds the attendance of
// working days into per-employee and company-wide counters. Records dated on a
// holiday are skipped. Entries are reclassified with thresholds in the zone of n.
func AnalyzeMonth(
	c company.Company,
	year int,
	month time.Month,
	rules []holiday.HolidayRule,
	records []attendance.DailyAttendanceRecord,
	thresholds attendance.Thresholds,
	n calendar.Normalizer,
) (report.MonthlyAnalysis, error) {
	if err := report.ValidateMonth(year, int(month)); err != nil {
		return report.MonthlyAnalysis{}, err
	}

	byDate := make(map[calendar.Date]attendance.DailyAttendanceRecord, len(records))
	for _, r := range records {
		if r.Date.Year != year || r.Date.Month != month {
			continue
		}
		if _, dup := byDate[r.Date]; !dup {
			byDate[r.Date] = r
		}
	}

	weeklyOff := c.WeeklyOff()
	dates := calendar.MonthDates(year, month)
	out := report.MonthlyAnalysis{
		CompanyID: c.ID,
		Year:      year,
		Month:     int(month),
		Timezone:  n.Zone(),
		TotalDays: len(dates),
		Days:      make([]report.DayResult, 0, len(dates)),
		Employees: []report.EmployeeMonthlyStats{},
	}

	stats := make(map[string]*report.EmployeeMonthlyStats)
	var order []string
	employeesCounted := false

	for _, date := range dates {
		day := report.DayResult{DayClassification: holidayservice.ClassifyDay(date, rules, weeklyOff)}
		if day.IsHoliday {
			out.TotalHolidays++
		}
		if day.IsWeeklyOff {
			out.WeeklyHolidays++
		}

		record, ok := byDate[date]
		day.HasRecord = ok
		if !ok {
			out.Days = append(out.Days, day)
			continue
		}
		if !employeesCounted {
			out.TotalEmployees = len(record.Entries)
			employeesCounted = true
		}
		if day.IsHoliday {
			out.Summary.SkippedHolidayRecords++
			out.Days = append(out.Days, day)
			continue
		}

		classified := make([]attendance.AttendanceEntry, 0, len(record.Entries))
		for _, e := range record.Entries {
			ce, err := attendanceservice.ClassifyEntry(e, thresholds, n)
			if err != nil {
				// A stored entry with out before in counts as absent for the day.
				ce = attendance.AttendanceEntry{EmployeeID: e.EmployeeID, InStatus: attendance.StatusAbsent, OutStatus: attendance.StatusAbsent}
			}
			classified = append(classified, ce)

			s, seen := stats[ce.EmployeeID]
			if !seen {
				s = &report.EmployeeMonthlyStats{EmployeeID: ce.EmployeeID}
				stats[ce.EmployeeID] = s
				order = append(order, ce.EmployeeID)
			}
			t := attendanceservice.FoldDay([]attendance.AttendanceEntry{ce})
			s.Present += t.Present
			s.Absent += t.Absent
			s.Late += t.Late
			s.HalfDay += t.HalfDay
			s.TotalDays++
			s.WorkHours = round2(s.WorkHours + ce.WorkHours)
		}

		totals := attendanceservice.FoldDay(classified)
		day.Totals = &totals
		out.Summary.TotalPresent += totals.Present
		out.Summary.TotalAbsent += totals.Absent
		out.Summary.TotalLate += totals.Late
		out.Summary.TotalHalfDay += totals.HalfDay
		for _, ce := range classified {
			out.Summary.TotalWorkHours += ce.WorkHours
		}
		out.Days = append(out.Days, day)
	}

	out.Summary.TotalWorkHours = round2(out.Summary.TotalWorkHours)
	out.SpecialHolidays = out.TotalHolidays - out.WeeklyHolidays
	out.WorkingDays = out.TotalDays - out.TotalHolidays
	out.AverageAttendance = averageAttendance(out.Summary, out.WorkingDays, out.TotalEmployees)

	for _, id := range order {
		out.Employees = append(out.Employees, *stats[id])
	}
	return out, nil
}

// averageAttendance is (present + late + half of half-days) over the
// working-day capacity, as a percentage clamped to [0, 100].
func averageAttendance(s report.Summary, workingDays, totalEmployees int) float64 {
	if workingDays <= 0 || totalEmployees <= 0 {
		return 0
	}
	numerator := float64(s.TotalPresent) + float64(s.TotalLate) + 0.5*float64(s.TotalHalfDay)
	pct := round2(numerator / float64(workingDays*totalEmployees) * 100)
	return math.Max(0, math.Min(100, pct))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
