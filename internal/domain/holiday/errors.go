package holiday

import "errors"

var (
	ErrHolidayNotFound   = errors.New("holiday not found")
	ErrHolidayExists     = errors.New("a one-off holiday already exists on this date")
	ErrInvalidRecurrence = errors.New("recurring holidays need a yearly, monthly or weekly pattern; one-off holidays take none")
)
