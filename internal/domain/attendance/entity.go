package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
)

type Status string

const (
	StatusOnTime     Status = "On Time"
	StatusLate       Status = "Late"
	StatusEarlyLeave Status = "Early Leave"
	StatusAbsent     Status = "Absent"
	StatusHalfDay    Status = "Half-Day"
	StatusLeave      Status = "Leave"
)

// AttendanceEntry is one employee's presence within one business-day.
// WorkHours and both statuses are derived by the classifier.
type AttendanceEntry struct {
	ID         string
	RecordID   string
	EmployeeID string
	InTime     *time.Time
	OutTime    *time.Time
	InStatus   Status
	OutStatus  Status
	WorkHours  float64
	Notes      *string
	DeviceInfo *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DailyAttendanceRecord holds at most one entry per employee, in insertion order.
type DailyAttendanceRecord struct {
	ID        string
	CompanyID string
	Date      calendar.Date
	Entries   []AttendanceEntry
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Entry returns the entry of employeeID, if present.
func (r *DailyAttendanceRecord) Entry(employeeID string) (AttendanceEntry, bool) {
	for _, e := range r.Entries {
		if e.EmployeeID == employeeID {
			return e, true
		}
	}
	return AttendanceEntry{}, false
}

// Upsert replaces the employee's entry in place or appends a new one.
func (r *DailyAttendanceRecord) Upsert(entry AttendanceEntry) {
	for i, e := range r.Entries {
		if e.EmployeeID == entry.EmployeeID {
			r.Entries[i] = entry
			return
		}
	}
	r.Entries = append(r.Entries, entry)
}

// Thresholds drive entry classification. Hours are clock hours in the
// reference zone.
type Thresholds struct {
	LateInHour      int
	EarlyOutHour    int
	HalfDayMaxHours float64
}

func (t Thresholds) Validate() error {
	if t.LateInHour < 0 || t.LateInHour > 23 || t.EarlyOutHour < 0 || t.EarlyOutHour > 23 {
		return ErrInvalidThresholds
	}
	if t.HalfDayMaxHours < 0 || t.HalfDayMaxHours > 24 {
		return ErrInvalidThresholds
	}
	return nil
}

// DailyTotals are independent counters; one employee may be both present and late.
type DailyTotals struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	HalfDay int `json:"halfDay"`
}
