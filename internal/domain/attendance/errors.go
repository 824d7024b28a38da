package attendance

import "errors"

var (
	ErrInvalidTimeRange  = errors.New("out time is before in time")
	ErrInvalidThresholds = errors.New("attendance thresholds out of range")

	// Mark-in/out errors
	ErrAlreadyMarkedIn  = errors.New("employee has already marked in today")
	ErrAlreadyMarkedOut = errors.New("employee has already marked out today")
	ErrNotMarkedIn      = errors.New("employee has not marked in today")

	ErrRecordNotFound = errors.New("attendance record not found")
	ErrEntryNotFound  = errors.New("attendance entry not found")
)
