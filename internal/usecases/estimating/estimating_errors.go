package estimating

import "errors"

var (
	ErrEmptyScope        = errors.New("scope or image is required")
	ErrHistoryIDRequired = errors.New("history id is required")
	ErrHistoryNotFound   = errors.New("history item not found")
	ErrInvalidStatus     = errors.New("invalid history status")
	ErrMapperFailure     = errors.New("estimate generation failed")

	ErrDatabaseOperation = errors.New("database operation error")
	ErrGenerateID        = errors.New("error generating id")
)
