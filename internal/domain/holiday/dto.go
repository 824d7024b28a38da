package holiday

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// ========================================
// HOLIDAY RULE DTOs
// ========================================

type CreateHolidayRequest struct {
	Date              string  `json:"date"` // YYYY-MM-DD
	Name              string  `json:"name"`
	Description       *string `json:"description,omitempty"`
	Recurring         bool    `json:"recurring"`
	RecurrencePattern *string `json:"recurrencePattern,omitempty"`
	IsCustomHoliday   bool    `json:"isCustomHoliday"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if r.Recurring {
		if r.RecurrencePattern == nil || !validator.IsInSlice(*r.RecurrencePattern, RecurrencePatternValues) {
			errs = append(errs, validator.ValidationError{
				Field:   "recurrencePattern",
				Message: "recurrencePattern must be one of yearly, monthly, weekly",
			})
		}
	} else if r.RecurrencePattern != nil && *r.RecurrencePattern != "" && *r.RecurrencePattern != string(RecurrenceNone) {
		errs = append(errs, validator.ValidationError{
			Field:   "recurrencePattern",
			Message: "recurrencePattern must be empty for one-off holidays",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToRule converts a validated request into a rule for companyID.
func (r *CreateHolidayRequest) ToRule(companyID string) (HolidayRule, error) {
	anchor, err := calendar.ParseDate(r.Date)
	if err != nil {
		return HolidayRule{}, err
	}
	rule := HolidayRule{
		CompanyID:       companyID,
		AnchorDate:      anchor,
		Name:            r.Name,
		Description:     r.Description,
		Recurring:       r.Recurring,
		IsCustomHoliday: r.IsCustomHoliday,
	}
	if r.RecurrencePattern != nil && *r.RecurrencePattern != "" {
		p := RecurrencePattern(*r.RecurrencePattern)
		rule.RecurrencePattern = &p
	}
	if err := rule.Validate(); err != nil {
		return HolidayRule{}, err
	}
	return rule, nil
}

type HolidayFilter struct {
	Year  *int `json:"year,omitempty"`
	Month *int `json:"month,omitempty"`
}

func (f *HolidayFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != nil {
		if *f.Month < 1 || *f.Month > 12 {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be between 1 and 12",
			})
		}
		if f.Year == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "year",
				Message: "year is required when month is given",
			})
		}
	}
	if f.Year != nil && (*f.Year < 1 || *f.Year > 9999) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 1 and 9999",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Window returns the inclusive date range covered by the filter, if any.
func (f HolidayFilter) Window() (from, to calendar.Date, ok bool) {
	if f.Year == nil {
		return calendar.Date{}, calendar.Date{}, false
	}
	if f.Month == nil {
		return calendar.NewDate(*f.Year, time.January, 1), calendar.NewDate(*f.Year, time.December, 31), true
	}
	from, to = calendar.MonthBounds(*f.Year, time.Month(*f.Month))
	return from, to, true
}

type HolidayResponse struct {
	ID                string  `json:"id"`
	Date              string  `json:"date"`
	Name              string  `json:"name"`
	Description       *string `json:"description,omitempty"`
	Recurring         bool    `json:"recurring"`
	RecurrencePattern *string `json:"recurrencePattern"`
	IsWeeklyHoliday   bool    `json:"isWeeklyHoliday"`
	IsCustomHoliday   bool    `json:"isCustomHoliday"`
	CreatedAt         string  `json:"createdAt"`
}

func NewHolidayResponse(rule HolidayRule) HolidayResponse {
	var pattern *string
	if rule.RecurrencePattern != nil {
		p := string(*rule.RecurrencePattern)
		pattern = &p
	}
	return HolidayResponse{
		ID:                rule.ID,
		Date:              rule.AnchorDate.String(),
		Name:              rule.Name,
		Description:       rule.Description,
		Recurring:         rule.Recurring,
		RecurrencePattern: pattern,
		IsWeeklyHoliday:   rule.IsWeeklyHoliday,
		IsCustomHoliday:   rule.IsCustomHoliday,
		CreatedAt:         rule.CreatedAt.Format(time.RFC3339),
	}
}

// HolidayCheckResponse is the isHoliday(businessId, date) result.
type HolidayCheckResponse struct {
	Date        string  `json:"date"`
	IsHoliday   bool    `json:"isHoliday"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	RuleID      *string `json:"ruleId,omitempty"`
	IsWeeklyOff bool    `json:"isWeeklyOff"`
}

// ========================================
// MONTH VIEWS
// ========================================

type MonthRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *MonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if r.Year < 1 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 1 and 9999, got %d", r.Year),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WeeklyHolidayDatesResponse struct {
	Year          int                `json:"year"`
	Month         int                `json:"month"`
	WeeklyOffDays []calendar.Weekday `json:"weeklyOffDays"`
	Dates         []calendar.Date    `json:"dates"`
}

type HolidayOccurrence struct {
	Date            calendar.Date `json:"date"`
	RuleID          string        `json:"ruleId"`
	Name            string        `json:"name"`
	IsWeeklyHoliday bool          `json:"isWeeklyHoliday"`
}

type MonthCalendarResponse struct {
	Year        int                 `json:"year"`
	Month       int                 `json:"month"`
	Occurrences []HolidayOccurrence `json:"occurrences"`
	Days        []DayClassification `json:"days"`
}
