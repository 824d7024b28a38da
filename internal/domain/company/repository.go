package company

import (
	"context"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
)

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)
	List(ctx context.Context) ([]Company, error)
	Create(ctx context.Context, newCompany Company) (Company, error)
	UpdateWorkWeek(ctx context.Context, id string, weeklyOff, working []calendar.Weekday) error
	UpdatePolicy(ctx context.Context, id string, req UpdatePolicyRequest) error
}
