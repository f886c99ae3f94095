package services

import (
	"context"
	"io"
	"time"

	"todo-list/internal/config"
	"todo-list/internal/domain"
	"todo-list/internal/repository/sqlite"
	"todo-list/internal/validation"

	"github.com/charmbracelet/log"
)

// NewTaskInput carries the fields accepted when creating a task
type NewTaskInput struct {
	Text     string
	DueDate  *time.Time
	Category domain.Category
}

// TaskService handles task lifecycle operations
type TaskService interface {
	// ListTasks returns every task in insertion order, each with its subtasks
	ListTasks(ctx context.Context) ([]domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	CreateTask(ctx context.Context, input NewTaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) error
	DeleteTask(ctx context.Context, id int64) error
}

// SubtaskService handles subtask operations; every mutation keeps the
// parent's completion flag in line with its subtasks
type SubtaskService interface {
	CreateSubtask(ctx context.Context, taskID int64, text string) (*domain.Subtask, error)
	UpdateSubtask(ctx context.Context, id int64, patch domain.SubtaskPatch) error
	DeleteSubtask(ctx context.Context, id int64) error
}

// CompletionPropagator recomputes a task's completion flag from its subtasks
type CompletionPropagator interface {
	Recompute(ctx context.Context, taskID int64) (bool, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TaskService    TaskService
	SubtaskService SubtaskService
	Propagator     CompletionPropagator
}

// NewServiceContainer wires the services over repo using the configured limits
func NewServiceContainer(repo sqlite.Repository, cfg *config.Config, logger *log.Logger, now func() time.Time) *ServiceContainer {
	if now == nil {
		now = time.Now
	}
	timeout := time.Duration(0)
	if cfg != nil {
		timeout = cfg.GetQueryTimeout()
	}

	propagator := NewCompletionPropagator(repo, logger)
	return &ServiceContainer{
		TaskService:    NewTaskService(repo, validation.NewTaskValidatorWithConfig(cfg), logger, now, timeout),
		SubtaskService: NewSubtaskService(repo, validation.NewSubtaskValidatorWithConfig(cfg), propagator, logger, timeout),
		Propagator:     propagator,
	}
}

// withTimeout bounds a store call when a query timeout is configured
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// orDiscard returns logger, or a logger that writes nowhere
func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}
