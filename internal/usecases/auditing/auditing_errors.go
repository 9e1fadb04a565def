package auditing

import "errors"

var (
	ErrBrandIDRequired   = errors.New("brand id is required")
	ErrBrandNotFound     = errors.New("brand not found")
	ErrWorkLogIDRequired = errors.New("work log id is required")
	ErrWorkLogNotFound   = errors.New("work log not found")
	ErrEmptyInput        = errors.New("work history input is empty")
	ErrInvalidPeriod     = errors.New("invalid billing period")
	ErrInvalidIndex      = errors.New("deliverable index out of range")
	ErrMapperFailure     = errors.New("work history analysis failed")

	ErrDatabaseOperation = errors.New("database operation error")
	ErrGenerateID        = errors.New("error generating id")
)
