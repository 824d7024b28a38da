package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/metrics"
)

// DriftReport describes how a company's weekly holiday rules disagree with
// its configured weekly-off days.
type DriftReport struct {
	CompanyID string
	Missing   []calendar.Weekday // weekly-off days without a weekly rule
	Stale     []calendar.Weekday // weekly rules on days that are no longer off
}

func (r DriftReport) Drifted() bool {
	return len(r.Missing) > 0 || len(r.Stale) > 0
}

type WeeklyDriftJobs struct {
	companyRepo company.CompanyRepository
	holidayRepo holiday.HolidayRepository
	now         func() time.Time
}

func NewWeeklyDriftJobs(companyRepo company.CompanyRepository, holidayRepo holiday.HolidayRepository) *WeeklyDriftJobs {
	return &WeeklyDriftJobs{
		companyRepo: companyRepo,
		holidayRepo: holidayRepo,
		now:         time.Now,
	}
}

func (j *WeeklyDriftJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("weekly_holiday_drift_check", interval, func(ctx context.Context) error {
		_, err := j.CheckWeeklyDrift(ctx)
		return err
	})
}

// CheckWeeklyDrift compares every company's weekly-off days with the weekdays
// its weekly holiday rules fall on. It only reports; rules are rewritten when
// the work week is updated.
func (j *WeeklyDriftJobs) CheckWeeklyDrift(ctx context.Context) ([]DriftReport, error) {
	companies, err := j.companyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	var drifted []DriftReport
	for _, c := range companies {
		if ctx.Err() != nil {
			return drifted, ctx.Err()
		}

		rules, err := j.holidayRepo.List(ctx, c.ID, holiday.HolidayFilter{})
		if err != nil {
			slog.Error("Cron: failed to list holiday rules", "company_id", c.ID, "error", err)
			continue
		}

		report := weeklyDrift(c, rules)
		metrics.RecordWeeklyDrift(c.ID, len(report.Missing)+len(report.Stale))
		if report.Drifted() {
			slog.Warn("Cron: weekly holiday rules drifted from work week",
				"company_id", c.ID,
				"missing", report.Missing,
				"stale", report.Stale,
			)
			drifted = append(drifted, report)
		}
	}

	metrics.RecordDriftCheck(j.now())
	slog.Info("Cron: weekly drift check completed", "companies", len(companies), "drifted", len(drifted))
	return drifted, nil
}

func weeklyDrift(c company.Company, rules []holiday.HolidayRule) DriftReport {
	covered := calendar.NewWeekdaySet()
	for _, r := range rules {
		if !r.IsWeeklyHoliday || !r.Recurring || r.RecurrencePattern == nil || *r.RecurrencePattern != holiday.RecurrenceWeekly {
			continue
		}
		covered[r.AnchorDate.Weekday()] = struct{}{}
	}
	off := calendar.NewWeekdaySet(c.WeeklyOffDays...)

	report := DriftReport{CompanyID: c.ID}
	for wd := calendar.Sunday; wd <= calendar.Saturday; wd++ {
		switch {
		case off.Has(wd) && !covered.Has(wd):
			report.Missing = append(report.Missing, wd)
		case covered.Has(wd) && !off.Has(wd):
			report.Stale = append(report.Stale, wd)
		}
	}
	return report
}
