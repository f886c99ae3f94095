package services

import (
	"context"

	"todo-list/internal/domain"
	"todo-list/internal/repository/sqlite"

	"github.com/charmbracelet/log"
)

// completionPropagatorImpl implements the CompletionPropagator interface
type completionPropagatorImpl struct {
	repo   sqlite.Repository
	mapper *domain.Mapper
	logger *log.Logger
}

// NewCompletionPropagator creates a new CompletionPropagator instance
func NewCompletionPropagator(repo sqlite.Repository, logger *log.Logger) CompletionPropagator {
	return &completionPropagatorImpl{
		repo:   repo,
		mapper: domain.NewMapper(),
		logger: orDiscard(logger),
	}
}

// Recompute reads the current subtasks of taskID and stores the derived
// completion flag. A task left without subtasks becomes incomplete.
func (p *completionPropagatorImpl) Recompute(ctx context.Context, taskID int64) (bool, error) {
	dbSubtasks, err := p.repo.ListSubtasks(ctx, taskID)
	if err != nil {
		return false, err
	}

	completed := domain.DeriveCompletion(p.mapper.Subtask.FromDatabaseSlice(dbSubtasks))
	if err := p.repo.SetTaskCompleted(ctx, taskID, completed); err != nil {
		return false, err
	}

	p.logger.Debug("recomputed task completion", "task_id", taskID, "subtasks", len(dbSubtasks), "completed", completed)
	return completed, nil
}
