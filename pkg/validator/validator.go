package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"filmorate/internal/domain/shared"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// Init initializes the validator
func init() {
	validate = validator.New()

	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterCustomTypeFunc(dateValue, shared.Date{})

	mustRegister("notblank", notBlank)
	mustRegister("nospaces", noSpaces)
	mustRegister("notbefore", notBefore)
	mustRegister("notfuture", notFuture)
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validator: register %s: %v", tag, err))
	}
}

// Validate checks s and returns a *shared.ValidationError describing the first
// failed field in declaration order, or nil when s is valid.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		first := fieldErrors[0]
		return &shared.ValidationError{
			Field:      first.Field(),
			Message:    getErrorMessage(first),
			Violations: FormatValidationError(fieldErrors),
		}
	}

	return shared.NewValidationError("", "invalid input: %v", err)
}

// FormatValidationError formats validation errors into a readable format
func FormatValidationError(err error) []shared.FieldViolation {
	var errs []shared.FieldViolation

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			errs = append(errs, shared.FieldViolation{
				Field:   fieldError.Field(),
				Tag:     fieldError.Tag(),
				Message: getErrorMessage(fieldError),
			})
		}
	}

	return errs
}

// getErrorMessage returns a human-readable error message for validation errors
func getErrorMessage(fieldError validator.FieldError) string {
	field := fieldError.Field()

	switch fieldError.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "nospaces":
		return fmt.Sprintf("%s must not contain spaces", field)
	case "contains":
		return fmt.Sprintf("%s must contain '%s'", field, fieldError.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fieldError.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, fieldError.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fieldError.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fieldError.Param())
	case "notbefore":
		return fmt.Sprintf("%s must not be before %s", field, fieldError.Param())
	case "notfuture":
		return fmt.Sprintf("%s must not be in the future", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// dateValue lets date-only fields be checked as time.Time values.
func dateValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(shared.Date); ok {
		return d.Time
	}
	return nil
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.String {
		return strings.TrimSpace(field.String()) != ""
	}
	return field.IsValid() && !field.IsZero()
}

func noSpaces(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return !strings.Contains(field.String(), " ")
}

// notBefore accepts dates on or after the YYYY-MM-DD date given as the tag param.
func notBefore(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	bound, err := shared.ParseDate(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("validator: bad notbefore param: %v", err))
	}
	return !t.Before(bound.Time)
}

// notFuture accepts dates up to and including the current local day.
func notFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !t.After(shared.Today().Time)
}
