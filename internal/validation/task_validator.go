package validation

import (
	"time"

	"todo-list/internal/config"
	"todo-list/internal/domain"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator using configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateTaskText trims and caps task text, rejecting blank text
func (tv *TaskValidator) ValidateTaskText(text string) (string, error) {
	return tv.validator.CleanText("texto", text, tv.validator.getTaskTextMaxLength())
}

// ValidateTaskForCreation returns the task to persist: cleaned text, trimmed
// category, incomplete and without subtasks.
func (tv *TaskValidator) ValidateTaskForCreation(task domain.Task) (domain.Task, error) {
	text, err := tv.ValidateTaskText(task.Text)
	if err != nil {
		return domain.Task{}, err
	}

	task.Text = text
	task.Category = tv.validator.NormalizeCategory(string(task.Category))
	task.Completed = false
	task.Subtasks = []domain.Subtask{}
	return task, nil
}

// ValidateTaskPatch rejects empty patches and blank text, and returns the
// patch with text trimmed and capped.
func (tv *TaskValidator) ValidateTaskPatch(patch domain.TaskPatch) (domain.TaskPatch, error) {
	if patch.IsEmpty() {
		validationError := NewValidationError()
		validationError.EmptyUpdate()
		return patch, validationError
	}

	if text, ok := patch.Text.Get(); ok {
		cleaned, err := tv.ValidateTaskText(text)
		if err != nil {
			return patch, err
		}
		patch.Text = domain.Some(cleaned)
	}

	if category, ok := patch.Category.Get(); ok {
		patch.Category = domain.Some(tv.validator.NormalizeCategory(string(category)))
	}

	return patch, nil
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if !tv.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.InvalidValue("id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

// ParseDueDate parses the dataVencimento field of a request
func (tv *TaskValidator) ParseDueDate(s string) (*time.Time, error) {
	return tv.validator.ParseDueDate("dataVencimento", s)
}
