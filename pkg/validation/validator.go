package validation

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/vfg2006/agency-ratecard-api/pkg/apiErrors"
)

var ErrInvalidInput = errors.New("invalid input")

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator with the custom rules registered.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("not_blank", notBlank)
	})
	return validate
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Struct validates v and converts failures into a VAL_001 service error listing each field.
func Struct(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apiErrors.NewServiceError(ErrInvalidInput, apiErrors.ErrInvalidRequest, err.Error())
	}

	serviceErr := apiErrors.NewServiceError(ErrInvalidInput, apiErrors.ErrInvalidRequest, describe(fieldErrs))
	for _, fieldErr := range fieldErrs {
		serviceErr.WithField(fieldErr.Field(), fieldErr.Tag())
	}

	return serviceErr
}

func describe(fieldErrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		parts = append(parts, fieldErr.Field()+" failed "+fieldErr.Tag())
	}
	return strings.Join(parts, ", ")
}
