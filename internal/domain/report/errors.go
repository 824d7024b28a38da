package report

import "errors"

var (
	ErrInvalidMonthSpecifier = errors.New("month must be between 1 and 12 and year between 1 and 9999")
)
