package ratecard

import "errors"

var (
	ErrRateIDRequired  = errors.New("rate id is required")
	ErrRateNotFound    = errors.New("rate not found")
	ErrBrandNotFound   = errors.New("brand not found")
	ErrInvalidSettings = errors.New("invalid pricing settings")

	ErrDatabaseOperation = errors.New("database operation error")
	ErrGenerateID        = errors.New("error generating id")
)
