package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Token errors
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, jwt.ErrCompanyClaimMissing):
		Unauthorized(w, "Token carries no company")
	case errors.Is(err, jwt.ErrAdminAccessRequired):
		Forbidden(w, "Owner or manager role required")

	// Calendar errors
	case errors.Is(err, calendar.ErrInvalidTimestamp):
		BadRequest(w, "Invalid timestamp", nil)
	case errors.Is(err, calendar.ErrInvalidTimezone):
		BadRequest(w, "Invalid timezone", nil)
	case errors.Is(err, calendar.ErrInvalidWeekday):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, report.ErrInvalidMonthSpecifier):
		BadRequest(w, "Invalid month", nil)

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrCompanyExists):
		Conflict(w, "Company already exists")
	case errors.Is(err, company.ErrConfigurationConflict):
		Conflict(w, "Working days overlap the weekly-off days")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "A one-off holiday already exists on this date")
	case errors.Is(err, holiday.ErrInvalidRecurrence):
		UnprocessableEntity(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidTimeRange):
		UnprocessableEntity(w, "Out time is before in time")
	case errors.Is(err, attendance.ErrAlreadyMarkedIn):
		Conflict(w, "Already marked in")
	case errors.Is(err, attendance.ErrAlreadyMarkedOut):
		Conflict(w, "Already marked out")
	case errors.Is(err, attendance.ErrNotMarkedIn):
		Conflict(w, "Not marked in")

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
