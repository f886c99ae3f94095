package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	cause := errors.New("disk I/O error")

	tests := []struct {
		name    string
		err     *AppError
		typ     ErrorType
		code    string
		message string
		cause   error
		context map[string]interface{}
	}{
		{
			name:    "validation",
			err:     NewValidationError("texto is required", cause),
			typ:     ErrorTypeValidation,
			code:    "VALIDATION_FAILED",
			message: "texto is required",
			cause:   cause,
		},
		{
			name:    "not found",
			err:     NewNotFoundError("subtask", "8"),
			typ:     ErrorTypeNotFound,
			code:    "NOT_FOUND",
			message: "subtask not found: 8",
			context: map[string]interface{}{"resource": "subtask", "identifier": "8"},
		},
		{
			name:    "database",
			err:     NewDatabaseError("insert task", cause),
			typ:     ErrorTypeDatabase,
			code:    "DATABASE_ERROR",
			message: "database operation failed: insert task",
			cause:   cause,
			context: map[string]interface{}{"operation": "insert task"},
		},
		{
			name:    "network without response",
			err:     NewNetworkError("list tasks", 0, cause),
			typ:     ErrorTypeNetwork,
			code:    "NETWORK_ERROR",
			message: "request failed: list tasks",
			cause:   cause,
			context: map[string]interface{}{"operation": "list tasks", "status": 0},
		},
		{
			name:    "network with response",
			err:     NewNetworkError("list tasks", 503, nil),
			typ:     ErrorTypeNetwork,
			code:    "NETWORK_ERROR",
			message: "request failed: list tasks (status 503)",
			context: map[string]interface{}{"operation": "list tasks", "status": 503},
		},
		{
			name:    "internal",
			err:     NewInternalError("failed to build request", cause),
			typ:     ErrorTypeInternal,
			code:    "INTERNAL_ERROR",
			message: "failed to build request",
			cause:   cause,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Type != tt.typ {
				t.Errorf("Type = %v, want %v", tt.err.Type, tt.typ)
			}
			if tt.err.Code != tt.code {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.code)
			}
			if tt.err.Message != tt.message {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.message)
			}
			if tt.err.Cause != tt.cause {
				t.Errorf("Cause = %v, want %v", tt.err.Cause, tt.cause)
			}
			for key, want := range tt.context {
				if got, ok := tt.err.GetContext(key); !ok || got != want {
					t.Errorf("GetContext(%q) = %v, %v, want %v", key, got, ok, want)
				}
			}
		})
	}
}

func TestAsAppError_Wrapped(t *testing.T) {
	inner := NewNotFoundError("task", "3")
	wrapped := fmt.Errorf("toggle task: %w", inner)

	got, ok := AsAppError(wrapped)
	if !ok || got != inner {
		t.Errorf("AsAppError() = %v, %v, want the wrapped AppError", got, ok)
	}
	if _, ok := AsAppError(errors.New("plain")); ok {
		t.Errorf("AsAppError() should not match a plain error")
	}
	if !IsErrorType(wrapped, ErrorTypeNotFound) {
		t.Errorf("IsErrorType() should look through wrapping")
	}
	if IsErrorType(wrapped, ErrorTypeValidation) {
		t.Errorf("IsErrorType() should not match a different type")
	}
}

func TestIsTransportFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"no response", NewNetworkError("probe", 0, errors.New("connection refused")), true},
		{"wrapped no response", fmt.Errorf("reconnect: %w", NewNetworkError("probe", 0, nil)), true},
		{"server answered", NewNetworkError("probe", http.StatusInternalServerError, nil), false},
		{"other type", NewValidationError("bad", nil), false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransportFailure(tt.err); got != tt.want {
				t.Errorf("IsTransportFailure() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		userMessage string
		code        string
		status      int
		shouldLog   bool
	}{
		{
			name:        "validation",
			err:         NewValidationError("texto is required", nil),
			userMessage: "texto is required",
			code:        "VALIDATION_FAILED",
			status:      http.StatusBadRequest,
		},
		{
			name:        "not found",
			err:         NewNotFoundError("task", "123"),
			userMessage: "task not found: 123",
			code:        "NOT_FOUND",
			status:      http.StatusNotFound,
		},
		{
			name:        "database keeps the driver message",
			err:         NewDatabaseError("query", errors.New("database is locked")),
			userMessage: "database operation failed: query: database is locked",
			code:        "DATABASE_ERROR",
			status:      http.StatusInternalServerError,
			shouldLog:   true,
		},
		{
			name:        "network",
			err:         NewNetworkError("probe", 0, errors.New("connection refused")),
			userMessage: "request failed: probe: connection refused",
			code:        "NETWORK_ERROR",
			status:      http.StatusInternalServerError,
			shouldLog:   true,
		},
		{
			name:        "internal",
			err:         NewInternalError("boom", nil),
			userMessage: "An unexpected error occurred. Please try again.",
			code:        "INTERNAL_ERROR",
			status:      http.StatusInternalServerError,
			shouldLog:   true,
		},
		{
			name:        "plain error",
			err:         errors.New("regular error"),
			userMessage: "regular error",
			code:        "UNKNOWN_ERROR",
			status:      http.StatusInternalServerError,
			shouldLog:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetUserMessage(tt.err); got != tt.userMessage {
				t.Errorf("GetUserMessage() = %q, want %q", got, tt.userMessage)
			}
			if got := GetErrorCode(tt.err); got != tt.code {
				t.Errorf("GetErrorCode() = %v, want %v", got, tt.code)
			}
			if got := HTTPStatus(tt.err); got != tt.status {
				t.Errorf("HTTPStatus() = %v, want %v", got, tt.status)
			}
			if got := ShouldLogError(tt.err); got != tt.shouldLog {
				t.Errorf("ShouldLogError() = %v, want %v", got, tt.shouldLog)
			}
		})
	}
}
