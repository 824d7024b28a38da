package report

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// ========================================
// MONTHLY ANALYSIS
// ========================================

// MonthlyAnalysisRequest takes either YearMonth ("2025-01") or Year and Month.
type MonthlyAnalysisRequest struct {
	YearMonth string `json:"yearMonth,omitempty"`
	Year      int    `json:"year,omitempty"`
	Month     int    `json:"month,omitempty"`
}

// Resolve returns the requested month or ErrInvalidMonthSpecifier.
func (r *MonthlyAnalysisRequest) Resolve() (int, time.Month, error) {
	if r.YearMonth != "" {
		year, month, ok := validator.IsValidYearMonth(r.YearMonth)
		if !ok {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidMonthSpecifier, r.YearMonth)
		}
		if err := ValidateMonth(year, int(month)); err != nil {
			return 0, 0, err
		}
		return year, month, nil
	}
	if err := ValidateMonth(r.Year, r.Month); err != nil {
		return 0, 0, err
	}
	return r.Year, time.Month(r.Month), nil
}

// ValidateMonth rejects months outside 1..12 and years outside 1..9999.
func ValidateMonth(year, month int) error {
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		return fmt.Errorf("%w: year=%d month=%d", ErrInvalidMonthSpecifier, year, month)
	}
	return nil
}
