package company

import (
	"context"
)

type CompanyService interface {
	Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	GetSettings(ctx context.Context) (CompanyResponse, error)

	// UpdateWorkWeek stores the work week and rematerialises the weekly holiday rules.
	UpdateWorkWeek(ctx context.Context, req UpdateWorkWeekRequest) (CompanyResponse, error)
	UpdatePolicy(ctx context.Context, req UpdatePolicyRequest) (CompanyResponse, error)
}
