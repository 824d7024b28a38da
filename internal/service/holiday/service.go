package holiday

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type HolidayServiceImpl struct {
	db *database.DB
	holiday.HolidayRepository
	companyRepo company.CompanyRepository
	normalizer  calendar.Normalizer
}

func NewHolidayService(db *database.DB, holidayRepo holiday.HolidayRepository, companyRepo company.CompanyRepository, normalizer calendar.Normalizer) holiday.HolidayService {
	return &HolidayServiceImpl{
		db:                db,
		HolidayRepository: holidayRepo,
		companyRepo:       companyRepo,
		normalizer:        normalizer,
	}
}

func (s *HolidayServiceImpl) loadCompany(ctx context.Context) (company.Company, error) {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return company.Company{}, err
	}
	c, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company: %w", err)
	}
	return c, nil
}

// CreateHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) CreateHoliday(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	rule, err := req.ToRule(companyID)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	var created holiday.HolidayRule
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)
		if !rule.Recurring {
			exists, err := s.HolidayRepository.ExistsNonRecurring(txCtx, companyID, rule.AnchorDate)
			if err != nil {
				return fmt.Errorf("failed to check existing holiday: %w", err)
			}
			if exists {
				return holiday.ErrHolidayExists
			}
		}
		created, err = s.HolidayRepository.Create(txCtx, rule)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
				return holiday.ErrHolidayExists
			}
			return fmt.Errorf("failed to create holiday: %w", err)
		}
		return nil
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return holiday.NewHolidayResponse(created), nil
}

// DeleteHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.HolidayRepository.Delete(ctx, id, companyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.ErrHolidayNotFound
		}
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	return nil
}

// ListHolidays implements holiday.HolidayService.
func (s *HolidayServiceImpl) ListHolidays(ctx context.Context, filter holiday.HolidayFilter) ([]holiday.HolidayResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	rules, err := s.HolidayRepository.List(ctx, companyID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]holiday.HolidayResponse, 0, len(rules))
	for _, rule := range rules {
		responses = append(responses, holiday.NewHolidayResponse(rule))
	}
	return responses, nil
}

// CheckHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) CheckHoliday(ctx context.Context, date string) (holiday.HolidayCheckResponse, error) {
	c, err := s.loadCompany(ctx)
	if err != nil {
		return holiday.HolidayCheckResponse{}, err
	}
	day, err := c.Normalizer(s.normalizer).ParseTimestamp(date)
	if err != nil {
		return holiday.HolidayCheckResponse{}, err
	}
	rules, err := s.monthRules(ctx, c.ID, day.Year, day.Month)
	if err != nil {
		return holiday.HolidayCheckResponse{}, err
	}

	classification := ClassifyDay(day, rules, c.WeeklyOff())
	metrics.RecordHolidayCheck(classification.IsHoliday)

	resp := holiday.HolidayCheckResponse{
		Date:        day.String(),
		IsHoliday:   classification.IsHoliday,
		Name:        classification.HolidayName,
		RuleID:      classification.MatchedRuleID,
		IsWeeklyOff: classification.IsWeeklyOff,
	}
	if rule := MatchHoliday(day, rules); rule != nil {
		resp.Description = rule.Description
	}
	return resp, nil
}

// WeeklyHolidayDates implements holiday.HolidayService.
func (s *HolidayServiceImpl) WeeklyHolidayDates(ctx context.Context, req holiday.MonthRequest) (holiday.WeeklyHolidayDatesResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.WeeklyHolidayDatesResponse{}, err
	}
	c, err := s.loadCompany(ctx)
	if err != nil {
		return holiday.WeeklyHolidayDatesResponse{}, err
	}

	weeklyOff := c.WeeklyOffDays
	if weeklyOff == nil {
		weeklyOff = []calendar.Weekday{}
	}
	return holiday.WeeklyHolidayDatesResponse{
		Year:          req.Year,
		Month:         req.Month,
		WeeklyOffDays: weeklyOff,
		Dates:         GenerateWeeklyHolidayDates(weeklyOff, req.Year, time.Month(req.Month)),
	}, nil
}

// MonthCalendar implements holiday.HolidayService.
func (s *HolidayServiceImpl) MonthCalendar(ctx context.Context, req holiday.MonthRequest) (holiday.MonthCalendarResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.MonthCalendarResponse{}, err
	}
	c, err := s.loadCompany(ctx)
	if err != nil {
		return holiday.MonthCalendarResponse{}, err
	}
	month := time.Month(req.Month)
	rules, err := s.monthRules(ctx, c.ID, req.Year, month)
	if err != nil {
		return holiday.MonthCalendarResponse{}, err
	}

	weeklyOff := c.WeeklyOff()
	resp := holiday.MonthCalendarResponse{
		Year:        req.Year,
		Month:       req.Month,
		Occurrences: BuildOccurrences(rules, req.Year, month),
	}
	for _, day := range calendar.MonthDates(req.Year, month) {
		resp.Days = append(resp.Days, ClassifyDay(day, rules, weeklyOff))
	}
	return resp, nil
}

// BuildOccurrences expands every rule over the month, ordered by date and then
// by the same precedence MatchHoliday uses.
func BuildOccurrences(rules []holiday.HolidayRule, year int, month time.Month) []holiday.HolidayOccurrence {
	type occurrence struct {
		date calendar.Date
		rule holiday.HolidayRule
	}
	var all []occurrence
	for _, rule := range rules {
		for _, date := range ExpandOccurrences(rule, year, month) {
			all = append(all, occurrence{date: date, rule: rule})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].date != all[j].date {
			return all[i].date.Before(all[j].date)
		}
		return precedes(all[i].rule, all[j].rule)
	})

	out := make([]holiday.HolidayOccurrence, 0, len(all))
	for _, o := range all {
		out = append(out, holiday.HolidayOccurrence{
			Date:            o.date,
			RuleID:          o.rule.ID,
			Name:            o.rule.Name,
			IsWeeklyHoliday: o.rule.IsWeeklyHoliday,
		})
	}
	return out
}

func (s *HolidayServiceImpl) monthRules(ctx context.Context, companyID string, year int, month time.Month) ([]holiday.HolidayRule, error) {
	m := int(month)
	rules, err := s.HolidayRepository.List(ctx, companyID, holiday.HolidayFilter{Year: &year, Month: &m})
	if err != nil {
		return nil, fmt.Errorf("failed to list holiday rules: %w", err)
	}
	return rules, nil
}
