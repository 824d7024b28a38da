package company

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaults = attendance.Thresholds{LateInHour: 9, EarlyOutHour: 17, HalfDayMaxHours: 4}

type fakeCompanyRepo struct {
	company.CompanyRepository
	companies map[string]company.Company
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (company.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return company.Company{}, pgx.ErrNoRows
	}
	return c, nil
}

func (f *fakeCompanyRepo) UpdatePolicy(_ context.Context, id string, req company.UpdatePolicyRequest) error {
	c, ok := f.companies[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if req.Timezone != nil {
		c.Timezone = req.Timezone
	}
	if req.LateInHour != nil {
		c.LateInHour = req.LateInHour
	}
	if req.EarlyOutHour != nil {
		c.EarlyOutHour = req.EarlyOutHour
	}
	if req.HalfDayMaxHours != nil {
		c.HalfDayMaxHours = req.HalfDayMaxHours
	}
	f.companies[id] = c
	return nil
}

func companyContext(t *testing.T, companyID string) context.Context {
	t.Helper()
	token, _, err := jwt.NewJWTService("test-secret").JWTAuth().Encode(map[string]interface{}{"company_id": companyID})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(companies ...company.Company) company.CompanyService {
	repo := &fakeCompanyRepo{companies: map[string]company.Company{}}
	for _, c := range companies {
		repo.companies[c.ID] = c
	}
	return NewCompanyService(nil, repo, nil, calendar.UTC, defaults)
}

func TestCompanyService_GetSettings(t *testing.T) {
	late := 10
	svc := newTestService(company.Company{
		ID:            "acme",
		Name:          "Acme",
		WeeklyOffDays: []calendar.Weekday{calendar.Sunday},
		LateInHour:    &late,
	})

	got, err := svc.GetSettings(companyContext(t, "acme"))
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, []calendar.Weekday{calendar.Sunday}, got.WeeklyOffDays)
	assert.Equal(t, []calendar.Weekday{}, got.WorkingDays)
	assert.Equal(t, company.PolicyResponse{Timezone: "UTC", LateInHour: 10, EarlyOutHour: 17, HalfDayMaxHours: 4}, got.Policy)

	_, err = svc.GetSettings(companyContext(t, "missing"))
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}

func TestCompanyService_UpdatePolicy(t *testing.T) {
	svc := newTestService(company.Company{ID: "acme", Name: "Acme"})
	ctx := companyContext(t, "acme")

	zone := "Asia/Kolkata"
	half := 3.5
	got, err := svc.UpdatePolicy(ctx, company.UpdatePolicyRequest{Timezone: &zone, HalfDayMaxHours: &half})
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", got.Policy.Timezone)
	assert.Equal(t, 3.5, got.Policy.HalfDayMaxHours)
	assert.Equal(t, 9, got.Policy.LateInHour)

	bad := 24
	_, err = svc.UpdatePolicy(ctx, company.UpdatePolicyRequest{LateInHour: &bad})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestCompanyService_UpdateWorkWeekRejectsOverlap(t *testing.T) {
	svc := newTestService(company.Company{ID: "acme", Name: "Acme"})

	_, err := svc.UpdateWorkWeek(companyContext(t, "acme"), company.UpdateWorkWeekRequest{
		WeeklyOffDays: []calendar.Weekday{calendar.Sunday},
		WorkingDays:   []calendar.Weekday{0, 1, 2, 3, 4, 5},
	})
	assert.ErrorIs(t, err, company.ErrConfigurationConflict)
}

func TestCompanyService_CreateValidatesBeforeWriting(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(companyContext(t, "acme"), company.CreateCompanyRequest{
		Name:          "Acme",
		WeeklyOffDays: []calendar.Weekday{calendar.Saturday},
		WorkingDays:   []calendar.Weekday{calendar.Saturday},
	})
	assert.ErrorIs(t, err, company.ErrConfigurationConflict)

	_, err = svc.Create(context.Background(), company.CreateCompanyRequest{Name: "Acme"})
	assert.Error(t, err, "a token with a company_id claim is required")
}
