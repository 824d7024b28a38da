package holiday

import (
	"context"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
)

// HolidayRepository persists holiday rules. Every method is scoped by companyID.
type HolidayRepository interface {
	Create(ctx context.Context, rule HolidayRule) (HolidayRule, error)
	GetByID(ctx context.Context, id string, companyID string) (HolidayRule, error)

	// List returns all recurring rules plus the one-off rules inside the filter window.
	List(ctx context.Context, companyID string, filter HolidayFilter) ([]HolidayRule, error)

	// ExistsNonRecurring backs the one-off uniqueness check per (company, date).
	ExistsNonRecurring(ctx context.Context, companyID string, date calendar.Date) (bool, error)

	Delete(ctx context.Context, id string, companyID string) error

	// DeleteWeekly removes the rules materialised from weekly-off configuration.
	DeleteWeekly(ctx context.Context, companyID string) error
}
