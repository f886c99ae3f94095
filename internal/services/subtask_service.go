package services

import (
	"context"
	"strconv"
	"time"

	"todo-list/internal/domain"
	"todo-list/internal/errors"
	"todo-list/internal/repository/sqlite"
	"todo-list/internal/validation"

	"github.com/charmbracelet/log"
)

// subtaskServiceImpl implements the SubtaskService interface
type subtaskServiceImpl struct {
	repo             sqlite.Repository
	mapper           *domain.Mapper
	subtaskValidator *validation.SubtaskValidator
	propagator       CompletionPropagator
	logger           *log.Logger
	timeout          time.Duration
}

// NewSubtaskService creates a new SubtaskService instance
func NewSubtaskService(repo sqlite.Repository, subtaskValidator *validation.SubtaskValidator, propagator CompletionPropagator, logger *log.Logger, timeout time.Duration) SubtaskService {
	if subtaskValidator == nil {
		subtaskValidator = validation.NewSubtaskValidator()
	}
	if propagator == nil {
		propagator = NewCompletionPropagator(repo, logger)
	}
	return &subtaskServiceImpl{
		repo:             repo,
		mapper:           domain.NewMapper(),
		subtaskValidator: subtaskValidator,
		propagator:       propagator,
		logger:           orDiscard(logger),
		timeout:          timeout,
	}
}

// CreateSubtask adds an incomplete subtask under taskID. The parent is only
// recomputed when it already had subtasks, so a task completed on its own
// keeps its flag until the next subtask change.
func (s *subtaskServiceImpl) CreateSubtask(ctx context.Context, taskID int64, text string) (*domain.Subtask, error) {
	if err := s.subtaskValidator.ValidateTaskID(taskID); err != nil {
		return nil, errors.NewNotFoundError("task", strconv.FormatInt(taskID, 10))
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	// Check if task exists
	if _, err := s.repo.GetTask(ctx, taskID); err != nil {
		return nil, err
	}

	subtask, err := s.subtaskValidator.ValidateSubtaskForCreation(taskID, text)
	if err != nil {
		return nil, wrapValidation(err)
	}

	existing, err := s.repo.ListSubtasks(ctx, taskID)
	if err != nil {
		return nil, err
	}

	dbSubtask := s.mapper.Subtask.ToDatabase(subtask)
	if err := s.repo.CreateSubtask(ctx, &dbSubtask); err != nil {
		return nil, err
	}
	subtask.ID = dbSubtask.ID

	if len(existing) > 0 {
		if _, err := s.propagator.Recompute(ctx, taskID); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("created subtask", "task_id", taskID, "subtask_id", subtask.ID)
	return &subtask, nil
}

// UpdateSubtask writes the supplied fields and recomputes the parent task
func (s *subtaskServiceImpl) UpdateSubtask(ctx context.Context, id int64, patch domain.SubtaskPatch) error {
	if err := s.subtaskValidator.ValidateSubtaskID(id); err != nil {
		return errors.NewNotFoundError("subtask", strconv.FormatInt(id, 10))
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	// The parent is needed for propagation
	dbSubtask, err := s.repo.GetSubtask(ctx, id)
	if err != nil {
		return err
	}

	patch, err = s.subtaskValidator.ValidateSubtaskPatch(patch)
	if err != nil {
		return wrapValidation(err)
	}

	if err := s.repo.UpdateSubtask(ctx, id, s.mapper.Subtask.PatchToDatabase(patch)); err != nil {
		return err
	}

	if _, err := s.propagator.Recompute(ctx, dbSubtask.TaskID); err != nil {
		return err
	}

	s.logger.Debug("updated subtask", "task_id", dbSubtask.TaskID, "subtask_id", id)
	return nil
}

// DeleteSubtask removes a subtask and recomputes the parent task
func (s *subtaskServiceImpl) DeleteSubtask(ctx context.Context, id int64) error {
	if err := s.subtaskValidator.ValidateSubtaskID(id); err != nil {
		return errors.NewNotFoundError("subtask", strconv.FormatInt(id, 10))
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	dbSubtask, err := s.repo.GetSubtask(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteSubtask(ctx, id); err != nil {
		return err
	}

	if _, err := s.propagator.Recompute(ctx, dbSubtask.TaskID); err != nil {
		return err
	}

	s.logger.Debug("deleted subtask", "task_id", dbSubtask.TaskID, "subtask_id", id)
	return nil
}
