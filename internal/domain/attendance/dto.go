package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// ========================================
// MARK IN / MARK OUT DTOs
// ========================================

type MarkInRequest struct {
	EmployeeID string  `json:"employeeId"`
	Timestamp  *string `json:"timestamp,omitempty"` // RFC3339, defaults to now
	Notes      *string `json:"notes,omitempty"`
	DeviceInfo *string `json:"deviceInfo,omitempty"`
}

func (r *MarkInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId is required",
		})
	}
	errs = appendTimestampError(errs, "timestamp", r.Timestamp)
	errs = appendNotesError(errs, r.Notes)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkOutRequest struct {
	EmployeeID string  `json:"employeeId"`
	Timestamp  *string `json:"timestamp,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	DeviceInfo *string `json:"deviceInfo,omitempty"`
}

func (r *MarkOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId is required",
		})
	}
	errs = appendTimestampError(errs, "timestamp", r.Timestamp)
	errs = appendNotesError(errs, r.Notes)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CorrectEntryRequest replaces both times of an entry. A nil time clears it.
type CorrectEntryRequest struct {
	EmployeeID string  `json:"employeeId"`
	Date       string  `json:"date"` // YYYY-MM-DD
	InTime     *string `json:"inTime,omitempty"`
	OutTime    *string `json:"outTime,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *CorrectEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	errs = appendTimestampError(errs, "inTime", r.InTime)
	errs = appendTimestampError(errs, "outTime", r.OutTime)
	if r.InTime == nil && r.OutTime != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "inTime",
			Message: "inTime is required when outTime is given",
		})
	}
	errs = appendNotesError(errs, r.Notes)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func appendTimestampError(errs validator.ValidationErrors, field string, value *string) validator.ValidationErrors {
	if value == nil {
		return errs
	}
	if _, ok := validator.IsValidDateTime(*value); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " must be an RFC3339 timestamp",
		})
	}
	return errs
}

func appendNotesError(errs validator.ValidationErrors, notes *string) validator.ValidationErrors {
	if notes != nil && len(*notes) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 1000 characters",
		})
	}
	return errs
}

// ========================================
// RESPONSES
// ========================================

type EntryResponse struct {
	EmployeeID string  `json:"employeeId"`
	Date       string  `json:"date"`
	InTime     *string `json:"inTime"`
	OutTime    *string `json:"outTime"`
	InStatus   Status  `json:"inStatus"`
	OutStatus  Status  `json:"outStatus"`
	WorkHours  float64 `json:"workHours"`
	Notes      *string `json:"notes,omitempty"`
	DeviceInfo *string `json:"deviceInfo,omitempty"`
}

// NewEntryResponse renders times in the reference zone of loc.
func NewEntryResponse(date calendar.Date, e AttendanceEntry, loc *time.Location) EntryResponse {
	return EntryResponse{
		EmployeeID: e.EmployeeID,
		Date:       date.String(),
		InTime:     formatTime(e.InTime, loc),
		OutTime:    formatTime(e.OutTime, loc),
		InStatus:   e.InStatus,
		OutStatus:  e.OutStatus,
		WorkHours:  e.WorkHours,
		Notes:      e.Notes,
		DeviceInfo: e.DeviceInfo,
	}
}

func formatTime(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}
	s := t.In(loc).Format(time.RFC3339)
	return &s
}

type DailyRecordResponse struct {
	Date    string          `json:"date"`
	Entries []EntryResponse `json:"entries"`
	Totals  DailyTotals     `json:"totals"`
}
