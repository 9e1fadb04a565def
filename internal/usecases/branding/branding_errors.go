package branding

import "errors"

var (
	ErrBrandIDRequired = errors.New("brand id is required")
	ErrBrandNotFound   = errors.New("brand not found")

	ErrDatabaseOperation = errors.New("database operation error")
	ErrGenerateID        = errors.New("error generating id")
)
