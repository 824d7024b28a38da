package report

import (
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
)

// MonthlyAnalysis is derived output only. It is never persisted.
type MonthlyAnalysis struct {
	CompanyID         string                 `json:"companyId"`
	Year              int                    `json:"year"`
	Month             int                    `json:"month"`
	Timezone          string                 `json:"timezone"`
	TotalDays         int                    `json:"totalDays"`
	TotalHolidays     int                    `json:"totalHolidays"`
	WeeklyHolidays    int                    `json:"weeklyHolidays"`
	SpecialHolidays   int                    `json:"specialHolidays"`
	WorkingDays       int                    `json:"workingDays"`
	TotalEmployees    int                    `json:"totalEmployees"`
	AverageAttendance float64                `json:"averageAttendance"`
	Days              []DayResult            `json:"days"`
	Employees         []EmployeeMonthlyStats `json:"employees"`
	Summary           Summary                `json:"summary"`
}

// DayResult is the classification of one date plus the totals of its record.
type DayResult struct {
	holiday.DayClassification
	HasRecord bool                    `json:"hasRecord"`
	Totals    *attendance.DailyTotals `json:"totals,omitempty"`
}

type EmployeeMonthlyStats struct {
	EmployeeID string  `json:"employeeId"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Late       int     `json:"late"`
	HalfDay    int     `json:"halfDay"`
	TotalDays  int     `json:"totalDays"`
	WorkHours  float64 `json:"workHours"`
}

type Summary struct {
	TotalPresent          int     `json:"totalPresent"`
	TotalAbsent           int     `json:"totalAbsent"`
	TotalLate             int     `json:"totalLate"`
	TotalHalfDay          int     `json:"totalHalfDay"`
	TotalWorkHours        float64 `json:"totalWorkHours"`
	SkippedHolidayRecords int     `json:"skippedHolidayRecords"`
}
