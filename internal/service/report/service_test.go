package report

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompanyRepo struct {
	company.CompanyRepository
	c company.Company
}

func (s stubCompanyRepo) GetByID(_ context.Context, id string) (company.Company, error) {
	if id != s.c.ID {
		return company.Company{}, pgx.ErrNoRows
	}
	return s.c, nil
}

type stubHolidayRepo struct {
	holiday.HolidayRepository
	rules []holiday.HolidayRule
}

func (s stubHolidayRepo) List(context.Context, string, holiday.HolidayFilter) ([]holiday.HolidayRule, error) {
	return s.rules, nil
}

type stubAttendanceRepo struct {
	attendance.AttendanceRepository
	records  []attendance.DailyAttendanceRecord
	from, to calendar.Date
}

func (s *stubAttendanceRepo) ListRecords(_ context.Context, _ string, from, to calendar.Date) ([]attendance.DailyAttendanceRecord, error) {
	s.from, s.to = from, to
	return s.records, nil
}

func ownerContext(t *testing.T, companyID string) context.Context {
	t.Helper()
	token, _, err := jwt.NewJWTService("test-secret").JWTAuth().Encode(map[string]interface{}{"company_id": companyID})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestReportService_MonthlyAnalysis(t *testing.T) {
	c, rules := republicDayCompany()
	attendanceRepo := &stubAttendanceRepo{}
	svc := NewReportService(stubCompanyRepo{c: c}, stubHolidayRepo{rules: rules}, attendanceRepo, calendar.UTC, thresholds)

	got, err := svc.MonthlyAnalysis(ownerContext(t, "b"), report.MonthlyAnalysisRequest{YearMonth: "2025-01"})
	require.NoError(t, err)

	assert.Equal(t, 4, got.TotalHolidays)
	assert.Equal(t, 27, got.WorkingDays)
	assert.Equal(t, "UTC", got.Timezone)
	assert.Equal(t, calendar.NewDate(2025, time.January, 1), attendanceRepo.from)
	assert.Equal(t, calendar.NewDate(2025, time.January, 31), attendanceRepo.to)
}

func TestReportService_MonthlyAnalysis_YearAndMonth(t *testing.T) {
	c, rules := republicDayCompany()
	svc := NewReportService(stubCompanyRepo{c: c}, stubHolidayRepo{rules: rules}, &stubAttendanceRepo{}, calendar.UTC, thresholds)

	got, err := svc.MonthlyAnalysis(ownerContext(t, "b"), report.MonthlyAnalysisRequest{Year: 2025, Month: 2})
	require.NoError(t, err)
	assert.Equal(t, 28, got.TotalDays)
}

func TestReportService_MonthlyAnalysis_InvalidMonth(t *testing.T) {
	c, rules := republicDayCompany()
	attendanceRepo := &stubAttendanceRepo{}
	svc := NewReportService(stubCompanyRepo{c: c}, stubHolidayRepo{rules: rules}, attendanceRepo, calendar.UTC, thresholds)

	for _, req := range []report.MonthlyAnalysisRequest{
		{YearMonth: "2025-13"},
		{YearMonth: "January"},
		{Year: 2025, Month: 0},
		{Year: 2025},
	} {
		_, err := svc.MonthlyAnalysis(ownerContext(t, "b"), req)
		assert.ErrorIs(t, err, report.ErrInvalidMonthSpecifier, "%+v", req)
	}
	assert.True(t, attendanceRepo.from.IsZero(), "no data is fetched for a rejected month")
}

func TestReportService_MonthlyAnalysis_UnknownCompany(t *testing.T) {
	c, rules := republicDayCompany()
	svc := NewReportService(stubCompanyRepo{c: c}, stubHolidayRepo{rules: rules}, &stubAttendanceRepo{}, calendar.UTC, thresholds)

	_, err := svc.MonthlyAnalysis(ownerContext(t, "other"), report.MonthlyAnalysisRequest{YearMonth: "2025-01"})
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}
