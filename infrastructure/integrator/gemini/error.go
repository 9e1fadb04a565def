package gemini

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	// ErrorKindTransport covers network, quota and model failures.
	ErrorKindTransport ErrorKind = "transport"
	// ErrorKindEmpty is a response without any text.
	ErrorKindEmpty ErrorKind = "empty"
	// ErrorKindParse is a response that is not the expected JSON document.
	ErrorKindParse ErrorKind = "parse"
)

type MapperError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *MapperError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("gemini %s: %s failure", e.Op, e.Kind)
	}
	return fmt.Sprintf("gemini %s: %s failure: %v", e.Op, e.Kind, e.Err)
}

func (e *MapperError) Unwrap() error {
	return e.Err
}

// IsMapperError reports whether err came from a remote mapper call.
func IsMapperError(err error) bool {
	var mapperErr *MapperError
	return errors.As(err, &mapperErr)
}
