//go:build integration

package postgresql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	attendanceservice "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
	companyservice "github.com/cmlabs-hris/hris-attendance-go/internal/service/company"
	holidayservice "github.com/cmlabs-hris/hris-attendance-go/internal/service/holiday"
	reportservice "github.com/cmlabs-hris/hris-attendance-go/internal/service/report"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaults = attendance.Thresholds{LateInHour: 9, EarlyOutHour: 17, HalfDayMaxHours: 4}

func tenantContext(t *testing.T, companyID string) context.Context {
	t.Helper()
	token, _, err := jwt.NewJWTService("integration-secret").JWTAuth().Encode(map[string]interface{}{
		"company_id": companyID,
		"role":       string(jwt.RoleOwner),
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func ptr[T any](v T) *T { return &v }

type services struct {
	company    company.CompanyService
	holiday    holiday.HolidayService
	attendance attendance.AttendanceService
	report     report.ReportService
}

func newServices() services {
	companyRepo := postgresql.NewCompanyRepository(testDB)
	holidayRepo := postgresql.NewHolidayRepository(testDB)
	attendanceRepo := postgresql.NewAttendanceRepository(testDB)
	return services{
		company:    companyservice.NewCompanyService(testDB, companyRepo, holidayRepo, calendar.UTC, defaults),
		holiday:    holidayservice.NewHolidayService(testDB, holidayRepo, companyRepo, calendar.UTC),
		attendance: attendanceservice.NewAttendanceService(testDB, attendanceRepo, companyRepo, calendar.UTC, defaults),
		report:     reportservice.NewReportService(companyRepo, holidayRepo, attendanceRepo, calendar.UTC, defaults),
	}
}

func TestCompanyService_CreateSeedsWeeklyRules(t *testing.T) {
	truncateAll(t)
	svc := newServices()
	ctx := tenantContext(t, "acme")

	created, err := svc.company.Create(ctx, company.CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, []calendar.Weekday{calendar.Sunday}, created.WeeklyOffDays)

	_, err = svc.company.Create(ctx, company.CreateCompanyRequest{Name: "Acme"})
	assert.ErrorIs(t, err, company.ErrCompanyExists)

	rules, err := svc.holiday.ListHolidays(ctx, holiday.HolidayFilter{})
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.True(t, rules[0].IsWeeklyHoliday)

	_, err = svc.company.UpdateWorkWeek(ctx, company.UpdateWorkWeekRequest{
		WeeklyOffDays: []calendar.Weekday{calendar.Saturday, calendar.Sunday},
		WorkingDays:   []calendar.Weekday{1, 2, 3, 4, 5},
	})
	require.NoError(t, err)

	rules, err = svc.holiday.ListHolidays(ctx, holiday.HolidayFilter{})
	require.NoError(t, err)
	assert.Len(t, rules, 2)

	_, err = svc.company.UpdateWorkWeek(ctx, company.UpdateWorkWeekRequest{
		WeeklyOffDays: []calendar.Weekday{calendar.Sunday},
		WorkingDays:   []calendar.Weekday{0, 1, 2, 3, 4, 5},
	})
	assert.ErrorIs(t, err, company.ErrConfigurationConflict)
}

func TestHolidayService_DuplicateOneOff(t *testing.T) {
	truncateAll(t)
	svc := newServices()
	ctx := tenantContext(t, "acme")
	_, err := svc.company.Create(ctx, company.CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)

	req := holiday.CreateHolidayRequest{Date: "2025-01-26", Name: "Republic Day"}
	_, err = svc.holiday.CreateHoliday(ctx, req)
	require.NoError(t, err)
	_, err = svc.holiday.CreateHoliday(ctx, req)
	assert.ErrorIs(t, err, holiday.ErrHolidayExists)

	check, err := svc.holiday.CheckHoliday(ctx, "2025-01-26")
	require.NoError(t, err)
	assert.True(t, check.IsHoliday)
	require.NotNil(t, check.Name)
	assert.Equal(t, "Republic Day", *check.Name)
}

func TestAttendanceService_MarkInOut(t *testing.T) {
	truncateAll(t)
	svc := newServices()
	ctx := tenantContext(t, "acme")
	_, err := svc.company.Create(ctx, company.CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)

	in, err := svc.attendance.MarkIn(ctx, attendance.MarkInRequest{EmployeeID: "e1", Timestamp: ptr("2025-06-02T10:15:00Z")})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, in.InStatus)
	assert.Equal(t, "2025-06-02", in.Date)

	_, err = svc.attendance.MarkIn(ctx, attendance.MarkInRequest{EmployeeID: "e1", Timestamp: ptr("2025-06-02T10:00:00Z")})
	assert.ErrorIs(t, err, attendance.ErrAlreadyMarkedIn)

	_, err = svc.attendance.MarkOut(ctx, attendance.MarkOutRequest{EmployeeID: "e2", Timestamp: ptr("2025-06-02T17:00:00Z")})
	assert.ErrorIs(t, err, attendance.ErrNotMarkedIn)

	out, err := svc.attendance.MarkOut(ctx, attendance.MarkOutRequest{EmployeeID: "e1", Timestamp: ptr("2025-06-02T17:30:00Z")})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOnTime, out.OutStatus)
	assert.Equal(t, 7.25, out.WorkHours)

	_, err = svc.attendance.MarkOut(ctx, attendance.MarkOutRequest{EmployeeID: "e1", Timestamp: ptr("2025-06-02T18:00:00Z")})
	assert.ErrorIs(t, err, attendance.ErrAlreadyMarkedOut)

	daily, err := svc.attendance.GetDailyTotals(ctx, "2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, attendance.DailyTotals{Present: 1, Late: 1}, daily.Totals)
}

func TestAttendanceService_MarkOutClosesOvernightShift(t *testing.T) {
	truncateAll(t)
	svc := newServices()
	ctx := tenantContext(t, "acme")
	_, err := svc.company.Create(ctx, company.CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)

	_, err = svc.attendance.MarkIn(ctx, attendance.MarkInRequest{EmployeeID: "e1", Timestamp: ptr("2025-06-02T22:00:00Z")})
	require.NoError(t, err)

	out, err := svc.attendance.MarkOut(ctx, attendance.MarkOutRequest{EmployeeID: "e1", Timestamp: ptr("2025-06-03T06:00:00Z")})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", out.Date)
	assert.Equal(t, 8.0, out.WorkHours)
}

func TestAttendanceService_ConcurrentMarkIn(t *testing.T) {
	truncateAll(t)
	svc := newServices()
	ctx := tenantContext(t, "acme")
	_, err := svc.company.Create(ctx, company.CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)

	employees := []string{"e1", "e2", "e3", "e4", "e5", "e6"}
	var wg sync.WaitGroup
	errs := make([]error, len(employees)*2)
	for i, id := range employees {
		for j := 0; j < 2; j++ {
			wg.Add(1)
			go func(slot int, id string) {
				defer wg.Done()
				_, errs[slot] = svc.attendance.MarkIn(ctx, attendance.MarkInRequest{EmployeeID: id, Timestamp: ptr("2025-06-02T08:00:00Z")})
			}(i*2+j, id)
		}
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, attendance.ErrAlreadyMarkedIn)
		dup++
	}
	assert.Equal(t, len(employees), ok)
	assert.Equal(t, len(employees), dup)

	daily, err := svc.attendance.GetDailyTotals(ctx, "2025-06-02")
	require.NoError(t, err)
	assert.Len(t, daily.Entries, len(employees))
	assert.Equal(t, len(employees), daily.Totals.Present)
}

func TestReportService_MonthlyAnalysisFromDatabase(t *testing.T) {
	truncateAll(t)
	svc := newServices()
	ctx := tenantContext(t, "acme")
	_, err := svc.company.Create(ctx, company.CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)
	_, err = svc.holiday.CreateHoliday(ctx, holiday.CreateHolidayRequest{Date: "2025-06-10", Name: "Company Day"})
	require.NoError(t, err)

	for _, c := range []struct{ employee, in, out string }{
		{"e1", "2025-06-02T08:00:00Z", "2025-06-02T17:00:00Z"},
		{"e2", "2025-06-02T10:00:00Z", "2025-06-02T18:00:00Z"},
		{"e1", "2025-06-10T08:00:00Z", "2025-06-10T17:00:00Z"},
	} {
		_, err := svc.attendance.CorrectEntry(ctx, attendance.CorrectEntryRequest{
			EmployeeID: c.employee, Date: c.in[:10], InTime: ptr(c.in), OutTime: ptr(c.out),
		})
		require.NoError(t, err)
	}

	got, err := svc.report.MonthlyAnalysis(ctx, report.MonthlyAnalysisRequest{YearMonth: "2025-06"})
	require.NoError(t, err)

	// June 2025 has five Sundays and one company holiday.
	assert.Equal(t, 30, got.TotalDays)
	assert.Equal(t, 5, got.WeeklyHolidays)
	assert.Equal(t, 1, got.SpecialHolidays)
	assert.Equal(t, 24, got.WorkingDays)
	assert.Equal(t, 2, got.TotalEmployees)
	assert.Equal(t, 2, got.Summary.TotalPresent)
	assert.Equal(t, 1, got.Summary.TotalLate)
	assert.Equal(t, 1, got.Summary.SkippedHolidayRecords)
	assert.Equal(t, time.June, time.Month(got.Month))
}
