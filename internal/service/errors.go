package service

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

// ValidationError reports field-level input problems. Fields maps each
// offending field to its violation.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return e.Fields.Error()
}

// NewValidationError wraps the result of an ozzo validation. Non-field errors
// are reported under the "_" key.
func NewValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fields validation.Errors
	if errors.As(err, &fields) {
		return &ValidationError{Fields: fields}
	}

	return &ValidationError{Fields: validation.Errors{"_": err}}
}

func fieldError(field, message string) error {
	return &ValidationError{Fields: validation.Errors{field: errors.New(message)}}
}
