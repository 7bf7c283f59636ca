package domain

import "errors"

// Определение бизнес-ошибок
var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrCompensationNotFound = errors.New("compensation not found")
	ErrCompensationExists   = errors.New("compensation already exists for this employee")
	ErrInvalidEffectiveDate = errors.New("effective date must be in YYYY-MM-DD format")
	ErrInvalidEmployee      = errors.New("employee is required")
	ErrReportingCycle       = errors.New("reporting structure contains a cycle")
)
