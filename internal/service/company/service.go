package company

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/fixtures"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type CompanyServiceImpl struct {
	db *database.DB
	company.CompanyRepository
	holidayRepo holiday.HolidayRepository
	normalizer  calendar.Normalizer
	thresholds  attendance.Thresholds
}

func NewCompanyService(
	db *database.DB,
	companyRepo company.CompanyRepository,
	holidayRepo holiday.HolidayRepository,
	normalizer calendar.Normalizer,
	thresholds attendance.Thresholds,
) company.CompanyService {
	return &CompanyServiceImpl{
		db:                db,
		CompanyRepository: companyRepo,
		holidayRepo:       holidayRepo,
		normalizer:        normalizer,
		thresholds:        thresholds,
	}
}

// Create implements company.CompanyService.
// The company id is the company_id claim of the caller's token.
// Subtle: this method shadows the method (CompanyRepository).Create of CompanyServiceImpl.CompanyRepository.
func (c *CompanyServiceImpl) Create(ctx context.Context, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	weeklyOff, working := req.WeeklyOffDays, req.WorkingDays
	if weeklyOff == nil && working == nil {
		weeklyOff, working = fixtures.DefaultWeeklyOffDays(), fixtures.DefaultWorkingDays()
	}
	if err := company.ValidateWorkWeek(weeklyOff, working); err != nil {
		return company.CompanyResponse{}, err
	}

	var created company.Company
	err = postgresql.WithTransaction(ctx, c.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)
		if _, err := c.CompanyRepository.GetByID(txCtx, companyID); err == nil {
			return company.ErrCompanyExists
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to get company by ID: %w", err)
		}

		created, err = c.CompanyRepository.Create(txCtx, company.Company{
			ID:            companyID,
			Name:          req.Name,
			Timezone:      req.Timezone,
			WeeklyOffDays: weeklyOff,
			WorkingDays:   working,
		})
		if err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}
		return c.syncWeeklyRules(txCtx, created)
	})
	if err != nil {
		return company.CompanyResponse{}, err
	}

	slog.Info("Created company", "company_id", created.ID, "weekly_off", created.WeeklyOffDays)
	return c.toResponse(created), nil
}

// GetSettings implements company.CompanyService.
func (c *CompanyServiceImpl) GetSettings(ctx context.Context) (company.CompanyResponse, error) {
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	found, err := c.get(ctx, companyID)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return c.toResponse(found), nil
}

// UpdateWorkWeek implements company.CompanyService.
// An overlap between working and weekly-off days is rejected, never resolved.
func (c *CompanyServiceImpl) UpdateWorkWeek(ctx context.Context, req company.UpdateWorkWeekRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}
	if err := company.ValidateWorkWeek(req.WeeklyOffDays, req.WorkingDays); err != nil {
		return company.CompanyResponse{}, err
	}
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	var updated company.Company
	err = postgresql.WithTransaction(ctx, c.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)
		if err := c.CompanyRepository.UpdateWorkWeek(txCtx, companyID, req.WeeklyOffDays, req.WorkingDays); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return company.ErrCompanyNotFound
			}
			return fmt.Errorf("failed to update work week: %w", err)
		}
		updated, err = c.get(txCtx, companyID)
		if err != nil {
			return err
		}
		return c.syncWeeklyRules(txCtx, updated)
	})
	if err != nil {
		return company.CompanyResponse{}, err
	}

	slog.Info("Updated work week", "company_id", companyID, "weekly_off", req.WeeklyOffDays, "working", req.WorkingDays)
	return c.toResponse(updated), nil
}

// UpdatePolicy implements company.CompanyService.
func (c *CompanyServiceImpl) UpdatePolicy(ctx context.Context, req company.UpdatePolicyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}
	companyID, err := jwt.CompanyIDFromContext(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	if err := c.CompanyRepository.UpdatePolicy(ctx, companyID, req); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.CompanyResponse{}, company.ErrCompanyNotFound
		}
		return company.CompanyResponse{}, fmt.Errorf("failed to update attendance policy: %w", err)
	}
	updated, err := c.get(ctx, companyID)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return c.toResponse(updated), nil
}

// syncWeeklyRules replaces the company's weekly holiday rules with ones
// derived from its weekly-off days.
func (c *CompanyServiceImpl) syncWeeklyRules(ctx context.Context, co company.Company) error {
	if err := c.holidayRepo.DeleteWeekly(ctx, co.ID); err != nil {
		return fmt.Errorf("failed to delete weekly holiday rules: %w", err)
	}
	today := co.Normalizer(c.normalizer).Normalize(time.Now())
	for _, rule := range fixtures.WeeklyHolidayRules(co.ID, co.WeeklyOffDays, today) {
		if _, err := c.holidayRepo.Create(ctx, rule); err != nil {
			return fmt.Errorf("failed to create weekly holiday rule: %w", err)
		}
	}
	return nil
}

func (c *CompanyServiceImpl) get(ctx context.Context, id string) (company.Company, error) {
	found, err := c.CompanyRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company by ID: %w", err)
	}
	return found, nil
}

func (c *CompanyServiceImpl) toResponse(co company.Company) company.CompanyResponse {
	t := co.Thresholds(c.thresholds)
	weeklyOff, working := co.WeeklyOffDays, co.WorkingDays
	if weeklyOff == nil {
		weeklyOff = []calendar.Weekday{}
	}
	if working == nil {
		working = []calendar.Weekday{}
	}
	return company.CompanyResponse{
		ID:            co.ID,
		Name:          co.Name,
		WeeklyOffDays: weeklyOff,
		WorkingDays:   working,
		Policy: company.PolicyResponse{
			Timezone:        co.Normalizer(c.normalizer).Zone(),
			LateInHour:      t.LateInHour,
			EarlyOutHour:    t.EarlyOutHour,
			HalfDayMaxHours: t.HalfDayMaxHours,
		},
		CreatedAt: co.CreatedAt,
		UpdatedAt: co.UpdatedAt,
	}
}
