package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

const companyColumns = `
	id, name, timezone, weekly_off_days, working_days,
	late_in_hour, early_out_hour, half_day_max_hours, created_at, updated_at`

func scanCompany(row pgx.Row) (company.Company, error) {
	var (
		c                  company.Company
		weeklyOff, working []int32
	)
	err := row.Scan(
		&c.ID, &c.Name, &c.Timezone, &weeklyOff, &working,
		&c.LateInHour, &c.EarlyOutHour, &c.HalfDayMaxHours, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return company.Company{}, err
	}
	c.WeeklyOffDays = fromInt32s(weeklyOff)
	c.WorkingDays = fromInt32s(working)
	return c, nil
}

func toInt32s(days []calendar.Weekday) []int32 {
	out := make([]int32, len(days))
	for i, d := range days {
		out[i] = int32(d)
	}
	return out
}

func fromInt32s(days []int32) []calendar.Weekday {
	out := make([]calendar.Weekday, len(days))
	for i, d := range days {
		out[i] = calendar.Weekday(d)
	}
	return out
}

// Create implements company.CompanyRepository.
func (c *companyRepositoryImpl) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO companies (
			id, name, timezone, weekly_off_days, working_days,
			late_in_hour, early_out_hour, half_day_max_hours, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()
		) RETURNING ` + companyColumns

	created, err := scanCompany(q.QueryRow(ctx, query,
		newCompany.ID, newCompany.Name, newCompany.Timezone,
		toInt32s(newCompany.WeeklyOffDays), toInt32s(newCompany.WorkingDays),
		newCompany.LateInHour, newCompany.EarlyOutHour, newCompany.HalfDayMaxHours,
	))
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}
	return created, nil
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	found, err := scanCompany(q.QueryRow(ctx, query, id))
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to get company with id %s: %w", id, err)
	}
	return found, nil
}

// List implements company.CompanyRepository.
func (c *companyRepositoryImpl) List(ctx context.Context) ([]company.Company, error) {
	q := GetQuerier(ctx, c.db)

	rows, err := q.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	companies := []company.Company{}
	for rows.Next() {
		found, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, found)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate companies: %w", err)
	}
	return companies, nil
}

// UpdateWorkWeek implements company.CompanyRepository.
func (c *companyRepositoryImpl) UpdateWorkWeek(ctx context.Context, id string, weeklyOff, working []calendar.Weekday) error {
	q := GetQuerier(ctx, c.db)

	query := `
		UPDATE companies
		SET weekly_off_days = $1, working_days = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id
	`
	var updatedID string
	if err := q.QueryRow(ctx, query, toInt32s(weeklyOff), toInt32s(working), id).Scan(&updatedID); err != nil {
		return fmt.Errorf("failed to update work week of company %s: %w", id, err)
	}
	return nil
}

// UpdatePolicy implements company.CompanyRepository.
// Only the fields present in req are written.
func (c *companyRepositoryImpl) UpdatePolicy(ctx context.Context, id string, req company.UpdatePolicyRequest) error {
	q := GetQuerier(ctx, c.db)

	updates := make(map[string]interface{})

	if req.Timezone != nil {
		updates["timezone"] = *req.Timezone
	}
	if req.LateInHour != nil {
		updates["late_in_hour"] = *req.LateInHour
	}
	if req.EarlyOutHour != nil {
		updates["early_out_hour"] = *req.EarlyOutHour
	}
	if req.HalfDayMaxHours != nil {
		updates["half_day_max_hours"] = *req.HalfDayMaxHours
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	sql := "UPDATE companies SET " + strings.Join(setClauses, ", ") + fmt.Sprintf(" WHERE id = $%d", i)
	args = append(args, id)

	var updatedID string
	if err := q.QueryRow(ctx, sql+" RETURNING id", args...).Scan(&updatedID); err != nil {
		return fmt.Errorf("failed to update policy of company %s: %w", id, err)
	}
	return nil
}
