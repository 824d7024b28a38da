package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

const holidayColumns = `
	id, company_id, anchor_date, name, description, recurring, recurrence_pattern,
	is_weekly_holiday, is_custom_holiday, created_at`

func scanHoliday(row pgx.Row) (holiday.HolidayRule, error) {
	var (
		r       holiday.HolidayRule
		anchor  time.Time
		pattern *string
	)
	err := row.Scan(
		&r.ID, &r.CompanyID, &anchor, &r.Name, &r.Description, &r.Recurring, &pattern,
		&r.IsWeeklyHoliday, &r.IsCustomHoliday, &r.CreatedAt,
	)
	if err != nil {
		return holiday.HolidayRule{}, err
	}
	r.AnchorDate = calendar.FromTime(anchor.UTC())
	if pattern != nil {
		p := holiday.RecurrencePattern(*pattern)
		r.RecurrencePattern = &p
	}
	return r, nil
}

// Create implements holiday.HolidayRepository.
func (h *holidayRepositoryImpl) Create(ctx context.Context, rule holiday.HolidayRule) (holiday.HolidayRule, error) {
	q := GetQuerier(ctx, h.db)

	id, err := uuid.NewV7()
	if err != nil {
		return holiday.HolidayRule{}, fmt.Errorf("failed to generate holiday id: %w", err)
	}

	var pattern *string
	if rule.Recurring && rule.RecurrencePattern != nil {
		p := string(*rule.RecurrencePattern)
		pattern = &p
	}

	query := `
		INSERT INTO holiday_rules (
			id, company_id, anchor_date, name, description, recurring, recurrence_pattern,
			is_weekly_holiday, is_custom_holiday, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, NOW()
		) RETURNING ` + holidayColumns

	created, err := scanHoliday(q.QueryRow(ctx, query,
		id.String(), rule.CompanyID, rule.AnchorDate.Time(), rule.Name, rule.Description,
		rule.Recurring, pattern, rule.IsWeeklyHoliday, rule.IsCustomHoliday,
	))
	if err != nil {
		return holiday.HolidayRule{}, fmt.Errorf("failed to create holiday rule: %w", err)
	}
	return created, nil
}

// GetByID implements holiday.HolidayRepository.
func (h *holidayRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (holiday.HolidayRule, error) {
	q := GetQuerier(ctx, h.db)
	if uuid.Validate(id) != nil {
		return holiday.HolidayRule{}, pgx.ErrNoRows
	}

	query := `SELECT ` + holidayColumns + ` FROM holiday_rules WHERE id = $1 AND company_id = $2`
	rule, err := scanHoliday(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		return holiday.HolidayRule{}, fmt.Errorf("failed to get holiday rule with id %s: %w", id, err)
	}
	return rule, nil
}

// List implements holiday.HolidayRepository.
// Rules come back in creation order, which the matcher relies on for ties.
func (h *holidayRepositoryImpl) List(ctx context.Context, companyID string, filter holiday.HolidayFilter) ([]holiday.HolidayRule, error) {
	q := GetQuerier(ctx, h.db)

	query := `SELECT ` + holidayColumns + ` FROM holiday_rules WHERE company_id = $1`
	args := []interface{}{companyID}
	if from, to, ok := filter.Window(); ok {
		query += ` AND (recurring OR anchor_date BETWEEN $2 AND $3)`
		args = append(args, from.Time(), to.Time())
	}
	query += ` ORDER BY created_at, id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list holiday rules: %w", err)
	}
	defer rows.Close()

	rules := []holiday.HolidayRule{}
	for rows.Next() {
		rule, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday rule: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holiday rules: %w", err)
	}
	return rules, nil
}

// ExistsNonRecurring implements holiday.HolidayRepository.
func (h *holidayRepositoryImpl) ExistsNonRecurring(ctx context.Context, companyID string, date calendar.Date) (bool, error) {
	q := GetQuerier(ctx, h.db)

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM holiday_rules WHERE company_id = $1 AND anchor_date = $2 AND NOT recurring)`
	if err := q.QueryRow(ctx, query, companyID, date.Time()).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Delete implements holiday.HolidayRepository.
// A missing rule is reported as pgx.ErrNoRows.
func (h *holidayRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, h.db)
	if uuid.Validate(id) != nil {
		return pgx.ErrNoRows
	}

	commandTag, err := q.Exec(ctx, `DELETE FROM holiday_rules WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete holiday rule with id %s: %w", id, err)
	}
	if commandTag.RowsAffected() != 1 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteWeekly implements holiday.HolidayRepository.
func (h *holidayRepositoryImpl) DeleteWeekly(ctx context.Context, companyID string) error {
	q := GetQuerier(ctx, h.db)

	if _, err := q.Exec(ctx, `DELETE FROM holiday_rules WHERE company_id = $1 AND is_weekly_holiday`, companyID); err != nil {
		return fmt.Errorf("failed to delete weekly holiday rules: %w", err)
	}
	return nil
}
