package cli

import (
	"errors"
	"fmt"
	"testing"

	apperrors "todo-list/internal/errors"
	"todo-list/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "Validation error",
			operation: "add task",
			err:       apperrors.NewValidationError("texto is required", nil),
			expected:  "failed to add task: texto is required",
		},
		{
			name:      "Not found error",
			operation: "toggle task",
			err:       apperrors.NewNotFoundError("task", "123"),
			expected:  "failed to toggle task: task not found: 123",
		},
		{
			name:      "Database error",
			operation: "describe schema",
			err:       apperrors.NewDatabaseError("pragma", errors.New("disk I/O error")),
			expected:  "failed to describe schema: database operation failed: pragma: disk I/O error",
		},
		{
			name:      "Server rejection",
			operation: "remove task",
			err:       apperrors.NewNetworkError("delete task", 404, errors.New("task not found: 9")),
			expected:  "failed to remove task: task not found: 9",
		},
		{
			name:      "Server unreachable",
			operation: "list tasks",
			err:       apperrors.NewNetworkError("list tasks", 0, errors.New("connection refused")),
			expected:  "failed to list tasks: request failed: list tasks: connection refused",
		},
		{
			name:      "Regular error",
			operation: "process",
			err:       errors.New("regular error"),
			expected:  "failed to process: regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)
			if result.Error() != tt.expected {
				t.Errorf("ErrorHandler.Handle() = %v, want %v", result.Error(), tt.expected)
			}
		})
	}
}

func TestErrorHandler_FieldValidationError(t *testing.T) {
	eh := NewErrorHandler()

	ve := validation.NewValidationError()
	ve.InvalidFormat("dataVencimento", "tomorrow", "YYYY-MM-DD or RFC 3339")
	wrapped := fmt.Errorf("parse flags: %w", ve)

	if got := eh.Message(wrapped); got != ve.Message() {
		t.Errorf("ErrorHandler.Message() = %v, want %v", got, ve.Message())
	}
	if !eh.IsValidationError(wrapped) {
		t.Error("IsValidationError() should be true for a wrapped field error")
	}
}

func TestErrorHandler_Classification(t *testing.T) {
	eh := NewErrorHandler()

	notFound := apperrors.NewNotFoundError("task", "1")
	remoteNotFound := apperrors.NewNetworkError("update task", 404, errors.New("task not found: 1"))
	badRequest := apperrors.NewNetworkError("add task", 400, errors.New("texto is required"))
	offline := apperrors.NewNetworkError("check server", 0, errors.New("dial tcp: connection refused"))

	if !eh.IsNotFoundError(notFound) || !eh.IsNotFoundError(remoteNotFound) {
		t.Error("IsNotFoundError() should match local and remote not found errors")
	}
	if eh.IsNotFoundError(badRequest) {
		t.Error("IsNotFoundError() should not match a 400")
	}
	if !eh.IsNetworkError(offline) || eh.IsNetworkError(badRequest) {
		t.Error("IsNetworkError() should only match transport failures")
	}
	if eh.GetErrorCode(offline) != "NETWORK_ERROR" {
		t.Errorf("GetErrorCode() = %v, want NETWORK_ERROR", eh.GetErrorCode(offline))
	}
}

func TestReported(t *testing.T) {
	if reported(nil) != nil {
		t.Error("reported(nil) should be nil")
	}

	cause := apperrors.NewNotFoundError("task", "1")
	err := fmt.Errorf("run: %w", reported(cause))

	if !IsReported(err) {
		t.Error("IsReported() should see through wrapping")
	}
	if !errors.Is(err, cause) {
		t.Error("reported error should unwrap to its cause")
	}
	if IsReported(cause) {
		t.Error("IsReported() should be false for a plain error")
	}
}
