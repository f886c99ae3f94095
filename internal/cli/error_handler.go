package cli

import (
	stderrors "errors"
	"fmt"

	"todo-list/internal/errors"
	"todo-list/internal/validation"
)

// ErrorHandler turns errors into the messages shown by commands
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle prefixes the user-facing message with the failed operation
func (eh *ErrorHandler) Handle(operation string, err error) error {
	return fmt.Errorf("failed to %s: %s", operation, eh.Message(err))
}

// Message returns the user-facing text for err
func (eh *ErrorHandler) Message(err error) string {
	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.Message()
	}

	if appErr, ok := errors.AsAppError(err); ok {
		// Server rejections carry the server's own message as the cause.
		if appErr.Type == errors.ErrorTypeNetwork && appErr.Cause != nil && !errors.IsTransportFailure(err) {
			return appErr.Cause.Error()
		}
		return errors.GetUserMessage(err)
	}

	return err.Error()
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error, locally or from the server
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return true
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Type != errors.ErrorTypeNetwork {
		return false
	}
	return appErr.StatusCode() == 404
}

// IsNetworkError checks if the server could not be reached
func (eh *ErrorHandler) IsNetworkError(err error) bool {
	return errors.IsTransportFailure(err)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}

// reportedError marks an error the notifier already showed to the user
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already printed by the notifier
func IsReported(err error) bool {
	var re *reportedError
	return stderrors.As(err, &re)
}

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}
