package apiErrors

import "fmt"

// ServiceError carries a sentinel error together with the API code it maps to.
type ServiceError struct {
	Err     error
	Code    string
	Details string
	Fields  map[string]any
}

func (e *ServiceError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func NewServiceError(err error, code string, details string) *ServiceError {
	return &ServiceError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// WithField attaches a detail that is echoed in the response envelope.
func (e *ServiceError) WithField(key string, value any) *ServiceError {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[key] = value
	return e
}
