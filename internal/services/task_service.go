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

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          sqlite.Repository
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
	logger        *log.Logger
	now           func() time.Time
	timeout       time.Duration
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo sqlite.Repository, taskValidator *validation.TaskValidator, logger *log.Logger, now func() time.Time, timeout time.Duration) TaskService {
	if taskValidator == nil {
		taskValidator = validation.NewTaskValidator()
	}
	if now == nil {
		now = time.Now
	}
	return &taskServiceImpl{
		repo:          repo,
		mapper:        domain.NewMapper(),
		taskValidator: taskValidator,
		logger:        orDiscard(logger),
		now:           now,
		timeout:       timeout,
	}
}

// wrapValidation turns a field validation failure into an application error
func wrapValidation(err error) error {
	if ve, ok := err.(*validation.ValidationError); ok {
		return errors.NewValidationError(ve.Message(), ve)
	}
	return err
}

// ListTasks returns all tasks with their subtasks. A task whose subtasks
// cannot be read is returned with an empty list.
func (t *taskServiceImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	ctx, cancel := withTimeout(ctx, t.timeout)
	defer cancel()

	dbTasks, err := t.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	tasks := t.mapper.Task.FromDatabaseSlice(dbTasks)
	for i := range tasks {
		dbSubtasks, err := t.repo.ListSubtasks(ctx, tasks[i].ID)
		if err != nil {
			t.logger.Warn("failed to load subtasks", "task_id", tasks[i].ID, "err", err)
			continue
		}
		tasks[i].Subtasks = t.mapper.Subtask.FromDatabaseSlice(dbSubtasks)
	}

	return tasks, nil
}

// GetTask retrieves a task and its subtasks by ID
func (t *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, errors.NewNotFoundError("task", strconv.FormatInt(id, 10))
	}

	ctx, cancel := withTimeout(ctx, t.timeout)
	defer cancel()

	dbTask, err := t.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	task := t.mapper.Task.FromDatabase(*dbTask)

	dbSubtasks, err := t.repo.ListSubtasks(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Subtasks = t.mapper.Subtask.FromDatabaseSlice(dbSubtasks)

	return &task, nil
}

// CreateTask persists a new incomplete task stamped with the current time
func (t *taskServiceImpl) CreateTask(ctx context.Context, input NewTaskInput) (*domain.Task, error) {
	task, err := t.taskValidator.ValidateTaskForCreation(
		domain.NewTask(input.Text, t.now().UTC().Truncate(time.Second), input.DueDate, input.Category),
	)
	if err != nil {
		return nil, wrapValidation(err)
	}

	ctx, cancel := withTimeout(ctx, t.timeout)
	defer cancel()

	dbTask := t.mapper.Task.ToDatabase(task)
	if err := t.repo.CreateTask(ctx, &dbTask); err != nil {
		return nil, err
	}

	task.ID = dbTask.ID
	t.logger.Debug("created task", "task_id", task.ID)
	return &task, nil
}

// UpdateTask writes the supplied fields of patch onto an existing task
func (t *taskServiceImpl) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) error {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return errors.NewNotFoundError("task", strconv.FormatInt(id, 10))
	}

	ctx, cancel := withTimeout(ctx, t.timeout)
	defer cancel()

	// Check if task exists
	if _, err := t.repo.GetTask(ctx, id); err != nil {
		return err
	}

	patch, err := t.taskValidator.ValidateTaskPatch(patch)
	if err != nil {
		return wrapValidation(err)
	}

	if err := t.repo.UpdateTask(ctx, id, t.mapper.Task.PatchToDatabase(patch)); err != nil {
		return err
	}

	t.logger.Debug("updated task", "task_id", id)
	return nil
}

// DeleteTask deletes a task; its subtasks are removed with it
func (t *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return errors.NewNotFoundError("task", strconv.FormatInt(id, 10))
	}

	ctx, cancel := withTimeout(ctx, t.timeout)
	defer cancel()

	if err := t.repo.DeleteTask(ctx, id); err != nil {
		return err
	}

	t.logger.Debug("deleted task", "task_id", id)
	return nil
}
