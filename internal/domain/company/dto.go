package company

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type PolicyResponse struct {
	Timezone        string  `json:"timezone"`
	LateInHour      int     `json:"lateInHour"`
	EarlyOutHour    int     `json:"earlyOutHour"`
	HalfDayMaxHours float64 `json:"halfDayMaxHours"`
}

type CompanyResponse struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	WeeklyOffDays []calendar.Weekday `json:"weeklyOffDays"`
	WorkingDays   []calendar.Weekday `json:"workingDays"`
	Policy        PolicyResponse     `json:"policy"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

type CreateCompanyRequest struct {
	Name          string             `json:"name"`
	Timezone      *string            `json:"timezone,omitempty"`
	WeeklyOffDays []calendar.Weekday `json:"weeklyOffDays"`
	WorkingDays   []calendar.Weekday `json:"workingDays"`
}

func (r *CreateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}
	if r.Timezone != nil && !validator.IsValidTimezone(*r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be an IANA zone name",
		})
	}
	errs = appendWeekdayErrors(errs, "weeklyOffDays", r.WeeklyOffDays)
	errs = appendWeekdayErrors(errs, "workingDays", r.WorkingDays)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateWorkWeekRequest struct {
	WeeklyOffDays []calendar.Weekday `json:"weeklyOffDays"`
	WorkingDays   []calendar.Weekday `json:"workingDays"`
}

func (r *UpdateWorkWeekRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = appendWeekdayErrors(errs, "weeklyOffDays", r.WeeklyOffDays)
	errs = appendWeekdayErrors(errs, "workingDays", r.WorkingDays)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePolicyRequest struct {
	Timezone        *string  `json:"timezone,omitempty"`
	LateInHour      *int     `json:"lateInHour,omitempty"`
	EarlyOutHour    *int     `json:"earlyOutHour,omitempty"`
	HalfDayMaxHours *float64 `json:"halfDayMaxHours,omitempty"`
}

func (r *UpdatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Timezone != nil && !validator.IsValidTimezone(*r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be an IANA zone name",
		})
	}
	if r.LateInHour != nil && !validator.IsClockHour(*r.LateInHour) {
		errs = append(errs, validator.ValidationError{
			Field:   "lateInHour",
			Message: "lateInHour must be between 0 and 23",
		})
	}
	if r.EarlyOutHour != nil && !validator.IsClockHour(*r.EarlyOutHour) {
		errs = append(errs, validator.ValidationError{
			Field:   "earlyOutHour",
			Message: "earlyOutHour must be between 0 and 23",
		})
	}
	if r.HalfDayMaxHours != nil && (*r.HalfDayMaxHours < 0 || *r.HalfDayMaxHours > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "halfDayMaxHours",
			Message: "halfDayMaxHours must be between 0 and 24",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func appendWeekdayErrors(errs validator.ValidationErrors, field string, days []calendar.Weekday) validator.ValidationErrors {
	seen := calendar.NewWeekdaySet()
	for _, d := range days {
		if !d.Valid() {
			return append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must contain weekdays between 0 (Sunday) and 6 (Saturday)",
			})
		}
		if seen.Has(d) {
			return append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must not repeat a weekday",
			})
		}
		seen[d] = struct{}{}
	}
	return errs
}
