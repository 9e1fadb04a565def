package learning

import "errors"

var (
	ErrEmptyInvoice      = errors.New("invoice text or file is required")
	ErrInsightIDRequired = errors.New("insight id is required")
	ErrInsightNotFound   = errors.New("insight not found")
	ErrInvalidInsight    = errors.New("invalid insight")
	ErrMapperFailure     = errors.New("invoice analysis failed")

	ErrDatabaseOperation = errors.New("database operation error")
	ErrGenerateID        = errors.New("error generating id")
)
