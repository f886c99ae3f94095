package validation

import (
	"todo-list/internal/config"
	"todo-list/internal/domain"
)

// SubtaskValidator provides validation for Subtask-related operations
type SubtaskValidator struct {
	validator     *Validator
	taskValidator *TaskValidator
}

// NewSubtaskValidator creates a new subtask validator
func NewSubtaskValidator() *SubtaskValidator {
	return &SubtaskValidator{
		validator:     NewValidator(),
		taskValidator: NewTaskValidator(),
	}
}

// NewSubtaskValidatorWithConfig creates a subtask validator using configured limits
func NewSubtaskValidatorWithConfig(cfg *config.Config) *SubtaskValidator {
	return &SubtaskValidator{
		validator:     NewValidatorWithConfig(cfg),
		taskValidator: NewTaskValidatorWithConfig(cfg),
	}
}

// ValidateSubtaskText trims and caps subtask text, rejecting blank text
func (sv *SubtaskValidator) ValidateSubtaskText(text string) (string, error) {
	return sv.validator.CleanText("texto", text, sv.validator.getSubtaskTextMaxLength())
}

// ValidateSubtaskForCreation returns the subtask to persist under taskID
func (sv *SubtaskValidator) ValidateSubtaskForCreation(taskID int64, text string) (domain.Subtask, error) {
	validationError := NewValidationError()

	if !sv.validator.IsValidID(taskID) {
		validationError.InvalidValue("tarefaId", taskID, "must be a positive integer")
	}

	cleaned, err := sv.ValidateSubtaskText(text)
	if err != nil {
		if textErr, ok := err.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, textErr.Errors...)
		}
	}

	if validationError.HasErrors() {
		return domain.Subtask{}, validationError
	}

	return domain.NewSubtask(taskID, cleaned), nil
}

// ValidateSubtaskPatch rejects empty patches and blank text
func (sv *SubtaskValidator) ValidateSubtaskPatch(patch domain.SubtaskPatch) (domain.SubtaskPatch, error) {
	if patch.IsEmpty() {
		validationError := NewValidationError()
		validationError.EmptyUpdate()
		return patch, validationError
	}

	if text, ok := patch.Text.Get(); ok {
		cleaned, err := sv.ValidateSubtaskText(text)
		if err != nil {
			return patch, err
		}
		patch.Text = domain.Some(cleaned)
	}

	return patch, nil
}

// ValidateSubtaskID validates a subtask ID
func (sv *SubtaskValidator) ValidateSubtaskID(id int64) error {
	if !sv.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.InvalidValue("id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

// ValidateTaskID validates the parent task ID
func (sv *SubtaskValidator) ValidateTaskID(id int64) error {
	return sv.taskValidator.ValidateTaskID(id)
}
