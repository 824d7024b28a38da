package company

import "errors"

var (
	ErrCompanyNotFound       = errors.New("company not found")
	ErrCompanyExists         = errors.New("company already exists")
	ErrInvalidCompanyName    = errors.New("company name cannot be empty")
	ErrConfigurationConflict = errors.New("working days overlap the weekly-off days")
)
