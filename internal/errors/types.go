package errors

import (
	"fmt"
	"net/http"
)

// ErrorType represents the category of error
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeDatabase
	ErrorTypeNetwork
	ErrorTypeInternal
)

var errorTypeNames = map[ErrorType]string{
	ErrorTypeValidation: "validation",
	ErrorTypeNotFound:   "not_found",
	ErrorTypeDatabase:   "database",
	ErrorTypeNetwork:    "network",
	ErrorTypeInternal:   "internal",
}

// String returns the string representation of the error type
func (et ErrorType) String() string {
	if name, ok := errorTypeNames[et]; ok {
		return name
	}
	return "unknown"
}

// HTTPStatus is the status the API answers with for this kind of failure.
// Everything that is not the caller's fault is a 500.
func (et ErrorType) HTTPStatus() int {
	switch et {
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// IsClientFault reports whether the request itself was wrong
func (et ErrorType) IsClientFault() bool {
	return et == ErrorTypeValidation || et == ErrorTypeNotFound
}

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError with the same type and code
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Type == appErr.Type && e.Code == appErr.Code
	}
	return false
}

// GetContext retrieves context information from the error
func (e *AppError) GetContext(key string) (interface{}, bool) {
	if e.Context == nil {
		return nil, false
	}
	value, exists := e.Context[key]
	return value, exists
}

// StatusCode is the HTTP status a network error received, 0 when the
// request never got a response or the error is not a network error.
func (e *AppError) StatusCode() int {
	status, _ := e.GetContext("status")
	code, _ := status.(int)
	return code
}
