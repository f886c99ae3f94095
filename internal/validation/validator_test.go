package validation

import (
	"strings"
	"testing"
	"time"

	"todo-list/internal/config"
	"todo-list/internal/domain"
)

func TestValidator_IsNonEmptyString(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"Empty string", "", false},
		{"Whitespace only", "   ", false},
		{"Tab and newline", "\t\n", false},
		{"Valid string", "hello", true},
		{"String with spaces", "hello world", true},
		{"String with leading/trailing spaces", "  hello  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.IsNonEmptyString(tt.input)
			if result != tt.expected {
				t.Errorf("IsNonEmptyString(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidator_IsValidID(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		id       int64
		expected bool
	}{
		{1, true},
		{42, true},
		{0, false},
		{-1, false},
	}

	for _, tt := range tests {
		if result := validator.IsValidID(tt.id); result != tt.expected {
			t.Errorf("IsValidID(%d) = %v, expected %v", tt.id, result, tt.expected)
		}
	}
}

func TestValidator_Truncate(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"Shorter than max", "abc", 5, "abc"},
		{"Exactly max", "abcde", 5, "abcde"},
		{"Longer than max", "abcdefgh", 5, "abcde"},
		{"Counts characters not bytes", "ação çé", 3, "açã"},
		{"No cap", "abcdef", 0, "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.Truncate(tt.input, tt.max)
			if result != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, expected %q", tt.input, tt.max, result, tt.expected)
			}
		})
	}
}

func TestValidator_CleanText(t *testing.T) {
	validator := NewValidator()

	text, err := validator.CleanText("texto", "  Buy milk  ", 500)
	if err != nil {
		t.Fatalf("CleanText returned unexpected error: %v", err)
	}
	if text != "Buy milk" {
		t.Errorf("CleanText trimmed to %q, expected %q", text, "Buy milk")
	}

	_, err = validator.CleanText("texto", " \t ", 500)
	if !IsValidationError(err) {
		t.Fatalf("CleanText on blank text expected ValidationError, got %v", err)
	}
	if got := err.(*ValidationError).Errors[0].Type; got != ErrorTypeRequired {
		t.Errorf("expected required error, got %v", got)
	}
}

func TestValidator_ParseDueDate(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name        string
		input       string
		expected    *time.Time
		expectError bool
	}{
		{"Empty means none", "", nil, false},
		{"Whitespace means none", "  ", nil, false},
		{"Date only", "2025-03-10", ptrTime(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)), false},
		{"RFC 3339 converted to UTC", "2025-03-10T10:00:00-03:00", ptrTime(time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)), false},
		{"RFC 3339 with fraction", "2025-03-10T10:00:00.500Z", ptrTime(time.Date(2025, 3, 10, 10, 0, 0, 500000000, time.UTC)), false},
		{"Local datetime without seconds", "2025-03-10T08:30", ptrTime(time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)), false},
		{"Invalid month", "2025-13-01", nil, true},
		{"Not a date", "tomorrow", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := validator.ParseDueDate("dataVencimento", tt.input)
			if tt.expectError {
				if err == nil {
					t.Fatalf("ParseDueDate(%q) expected error but got nil", tt.input)
				}
				if ve := err.(*ValidationError); ve.Errors[0].Type != ErrorTypeInvalidFormat {
					t.Errorf("ParseDueDate(%q) expected invalid format, got %v", tt.input, ve.Errors[0].Type)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDueDate(%q) unexpected error: %v", tt.input, err)
			}
			if tt.expected == nil {
				if result != nil {
					t.Errorf("ParseDueDate(%q) = %v, expected nil", tt.input, result)
				}
				return
			}
			if result == nil || !result.Equal(*tt.expected) || result.Location() != time.UTC {
				t.Errorf("ParseDueDate(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidator_NormalizeCategory(t *testing.T) {
	validator := NewValidator()

	if got := validator.NormalizeCategory("  work "); got != domain.CategoryWork {
		t.Errorf("NormalizeCategory trimmed to %q, expected %q", got, domain.CategoryWork)
	}
	if got := validator.NormalizeCategory("Pessoal"); got != domain.CategoryPersonal {
		t.Errorf("NormalizeCategory(Pessoal) = %q, expected %q", got, domain.CategoryPersonal)
	}
	if got := validator.NormalizeCategory("hobby"); got != domain.Category("hobby") {
		t.Errorf("NormalizeCategory should keep free categories, got %q", got)
	}
}

func TestValidator_ConfiguredLimits(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.TaskTextMaxLength = 10
	cfg.Validation.SubtaskTextMaxLength = 4

	validator := NewValidatorWithConfig(cfg)
	if got := validator.getTaskTextMaxLength(); got != 10 {
		t.Errorf("task limit = %d, expected 10", got)
	}
	if got := validator.getSubtaskTextMaxLength(); got != 4 {
		t.Errorf("subtask limit = %d, expected 4", got)
	}

	defaults := NewValidator()
	if got := defaults.getTaskTextMaxLength(); got != 500 {
		t.Errorf("default task limit = %d, expected 500", got)
	}
	if got := defaults.getSubtaskTextMaxLength(); got != 300 {
		t.Errorf("default subtask limit = %d, expected 300", got)
	}

	text, _ := NewSubtaskValidatorWithConfig(cfg).ValidateSubtaskText(strings.Repeat("x", 9))
	if text != "xxxx" {
		t.Errorf("configured subtask cap not applied, got %q", text)
	}
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
