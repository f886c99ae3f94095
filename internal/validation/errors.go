package validation

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ValidationErrorType names the rule a field broke
type ValidationErrorType string

const (
	ErrorTypeRequired      ValidationErrorType = "required"
	ErrorTypeInvalidFormat ValidationErrorType = "invalid_format"
	ErrorTypeInvalidValue  ValidationErrorType = "invalid_value"
	ErrorTypeEmptyUpdate   ValidationErrorType = "empty_update"
)

// FieldError is one rejected field of a request body or path
type FieldError struct {
	Field   string
	Type    ValidationErrorType
	Message string
	Value   interface{}
}

// Error implements the error interface for FieldError
func (fe *FieldError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", fe.Field, fe.Message)
}

// ValidationError collects the field errors of one request
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError creates an empty ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{Errors: make([]FieldError, 0)}
}

// Error implements the error interface for ValidationError
func (ve *ValidationError) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "validation error"
	case 1:
		return ve.Errors[0].Error()
	}
	messages := make([]string, len(ve.Errors))
	for i := range ve.Errors {
		messages[i] = ve.Errors[i].Error()
	}
	return "multiple validation errors: " + strings.Join(messages, "; ")
}

// Message is the text shown to API callers and CLI users. Several errors
// are joined on one line so they fit an {"error": ...} body.
func (ve *ValidationError) Message() string {
	if len(ve.Errors) == 0 {
		return "invalid input"
	}
	messages := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		messages[i] = fe.Message
	}
	return strings.Join(messages, "; ")
}

// HasErrors returns true if any field was rejected
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// Field returns the first error recorded for field
func (ve *ValidationError) Field(field string) (FieldError, bool) {
	for _, fe := range ve.Errors {
		if fe.Field == field {
			return fe, true
		}
	}
	return FieldError{}, false
}

func (ve *ValidationError) add(field string, errorType ValidationErrorType, message string, value interface{}) *ValidationError {
	ve.Errors = append(ve.Errors, FieldError{
		Field:   field,
		Type:    errorType,
		Message: message,
		Value:   value,
	})
	return ve
}

// Required records a missing or blank field
func (ve *ValidationError) Required(field string) *ValidationError {
	return ve.add(field, ErrorTypeRequired, field+" is required", nil)
}

// InvalidFormat records a value that does not parse
func (ve *ValidationError) InvalidFormat(field string, value interface{}, expected string) *ValidationError {
	return ve.add(field, ErrorTypeInvalidFormat, fmt.Sprintf("%s has invalid format, expected: %s", field, expected), value)
}

// InvalidValue records a value that parses but is not acceptable
func (ve *ValidationError) InvalidValue(field string, value interface{}, reason string) *ValidationError {
	return ve.add(field, ErrorTypeInvalidValue, fmt.Sprintf("%s has invalid value: %s", field, reason), value)
}

// EmptyUpdate records an update body that names no field
func (ve *ValidationError) EmptyUpdate() *ValidationError {
	return ve.add("body", ErrorTypeEmptyUpdate, "no fields to update", nil)
}

// IsValidationError checks if an error is, or wraps, a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}
