package attendance

import (
	"math"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
)

// ClassifyEntry derives work hours and both statuses from the entry's times.
// Clock hours are read in the normalizer's reference zone. Any caller-supplied
// WorkHours or status is overwritten.
func ClassifyEntry(entry attendance.AttendanceEntry, t attendance.Thresholds, n calendar.Normalizer) (attendance.AttendanceEntry, error) {
	entry.WorkHours = 0
	entry.InStatus = ""
	entry.OutStatus = ""

	if entry.InTime == nil && entry.OutTime == nil {
		entry.InStatus = attendance.StatusAbsent
		entry.OutStatus = attendance.StatusAbsent
		return entry, nil
	}

	if entry.InTime != nil && entry.OutTime != nil {
		if entry.OutTime.Before(*entry.InTime) {
			return entry, attendance.ErrInvalidTimeRange
		}
		entry.WorkHours = round2(entry.OutTime.Sub(*entry.InTime).Hours())
	}

	if entry.InTime != nil {
		if n.In(*entry.InTime).Hour() <= t.LateInHour {
			entry.InStatus = attendance.StatusOnTime
		} else {
			entry.InStatus = attendance.StatusLate
		}
	}

	if entry.OutTime != nil {
		if n.In(*entry.OutTime).Hour() >= t.EarlyOutHour {
			entry.OutStatus = attendance.StatusOnTime
		} else {
			entry.OutStatus = attendance.StatusEarlyLeave
		}
	}

	if entry.InTime != nil && entry.OutTime != nil && t.HalfDayMaxHours > 0 && entry.WorkHours < t.HalfDayMaxHours {
		entry.OutStatus = attendance.StatusHalfDay
	}

	return entry, nil
}

// FoldDay counts the day's classified entries. The counters overlap: a late
// employee is also present.
func FoldDay(entries []attendance.AttendanceEntry) attendance.DailyTotals {
	var totals attendance.DailyTotals
	for _, e := range entries {
		absent := e.InStatus == attendance.StatusAbsent || e.OutStatus == attendance.StatusAbsent
		if absent {
			totals.Absent++
		} else {
			totals.Present++
		}
		if e.InStatus == attendance.StatusLate {
			totals.Late++
		}
		if e.InStatus == attendance.StatusHalfDay || e.OutStatus == attendance.StatusHalfDay {
			totals.HalfDay++
		}
	}
	return totals
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
