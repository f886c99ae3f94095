package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"todo-list/internal/config"
	"todo-list/internal/domain"
)

const (
	defaultTaskTextMaxLength    = 500
	defaultSubtaskTextMaxLength = 300
)

// dueDateLayouts are tried in order when parsing a due date.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidID checks if an identifier is valid (positive)
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// Truncate cuts s to at most max characters. A non-positive max disables the cap.
func (v *Validator) Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

// CleanText trims s and caps it at max characters. It reports a required
// error for field when nothing is left after trimming.
func (v *Validator) CleanText(field, s string, max int) (string, error) {
	trimmed := v.TrimAndValidateString(s)
	if !v.IsNonEmptyString(trimmed) {
		validationError := NewValidationError()
		validationError.Required(field)
		return "", validationError
	}
	return v.Truncate(trimmed, max), nil
}

// ParseDueDate parses a due date given as YYYY-MM-DD or an RFC 3339 timestamp.
// An empty string means no due date. Values without a zone are read as UTC.
func (v *Validator) ParseDueDate(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			utc := t.UTC()
			return &utc, nil
		}
	}
	validationError := NewValidationError()
	validationError.InvalidFormat(field, s, "YYYY-MM-DD or RFC 3339")
	return nil, validationError
}

// NormalizeCategory trims a category and stores the known ones under their
// Portuguese name. Any other value is accepted.
func (v *Validator) NormalizeCategory(s string) domain.Category {
	return domain.ParseCategory(s)
}

// getTaskTextMaxLength returns configured maximum task text length or default
func (v *Validator) getTaskTextMaxLength() int {
	if v.config != nil && v.config.Validation.TaskTextMaxLength > 0 {
		return v.config.Validation.TaskTextMaxLength
	}
	return defaultTaskTextMaxLength
}

// getSubtaskTextMaxLength returns configured maximum subtask text length or default
func (v *Validator) getSubtaskTextMaxLength() int {
	if v.config != nil && v.config.Validation.SubtaskTextMaxLength > 0 {
		return v.config.Validation.SubtaskTextMaxLength
	}
	return defaultSubtaskTextMaxLength
}
