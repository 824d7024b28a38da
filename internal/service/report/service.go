package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/metrics"
	"github.com/jackc/pgx/v5"
)

type ReportServiceImpl struct {
	companyRepo    company.CompanyRepository
	holidayRepo    holiday.HolidayRepository
	attendanceRepo attendance.AttendanceRepository
	normalizer     calendar.Normalizer
	thresholds     attendance.Thresholds
}

func NewReportService(
	companyRepo company.CompanyRepository,
	holidayRepo holiday.HolidayRepository,
	attendanceRepo attendance.AttendanceRepository,
	normalizer calendar.Normalizer,
	thresholds attendance.Thresholds,
) report.ReportService {
	return &ReportServiceImpl{
		companyRepo:    companyRepo,
		holidayRepo:    holidayRepo,
		attendanceRepo: attendanceRepo,
		normalizer:     normalizer,
		thresholds:     thresholds,
	}
}

// MonthlyAnalysis implements report.ReportService.
func (s *ReportServiceImpl) MonthlyAnalysis(ctx context.Context, req report.MonthlyAnalysisRequest) (report.MonthlyAnalysis, error) {
	start := time.Now()
	defer metrics.ObserveAnalysis(start)

	year, month, err := req.Resolve()
	if err != nil {
		return report.MonthlyAnalysis{}, err
	}

	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return report.MonthlyAnalysis{}, err
	}
	c, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.MonthlyAnalysis{}, company.ErrCompanyNotFound
		}
		return report.MonthlyAnalysis{}, fmt.Errorf("failed to get company: %w", err)
	}

	m := int(month)
	rules, err := s.holidayRepo.List(ctx, companyID, holiday.HolidayFilter{Year: &year, Month: &m})
	if err != nil {
		return report.MonthlyAnalysis{}, fmt.Errorf("failed to list holiday rules: %w", err)
	}
	from, to := calendar.MonthBounds(year, month)
	records, err := s.attendanceRepo.ListRecords(ctx, companyID, from, to)
	if err != nil {
		return report.MonthlyAnalysis{}, fmt.Errorf("failed to list daily records: %w", err)
	}

	return AnalyzeMonth(c, year, month, rules, records, c.Thresholds(s.thresholds), c.Normalizer(s.normalizer))
}
