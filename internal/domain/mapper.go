package domain

import (
	"database/sql"
	"time"

	"todo-list/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task. Subtasks are not
// part of the tarefas row and are dropped.
func (m *TaskMapper) ToDatabase(domainTask Task) sqlite.Task {
	var category *string
	if domainTask.Category != CategoryNone {
		c := string(domainTask.Category)
		category = &c
	}
	return sqlite.Task{
		ID:        domainTask.ID,
		Text:      domainTask.Text,
		Completed: domainTask.Completed,
		CreatedAt: domainTask.CreatedAt,
		DueDate:   domainTask.DueDate,
		Category:  category,
	}
}

// FromDatabase converts a database Task to a domain Task with no subtasks.
func (m *TaskMapper) FromDatabase(dbTask sqlite.Task) Task {
	task := Task{
		ID:        dbTask.ID,
		Text:      dbTask.Text,
		Completed: dbTask.Completed,
		CreatedAt: dbTask.CreatedAt,
		DueDate:   dbTask.DueDate,
		Subtasks:  []Subtask{},
	}
	if dbTask.Category != nil {
		task.Category = Category(*dbTask.Category)
	}
	return task
}

// FromDatabaseSlice converts a slice of database Tasks to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqlite.Task) []Task {
	domainTasks := make([]Task, len(dbTasks))
	for i, task := range dbTasks {
		domainTasks[i] = m.FromDatabase(*task)
	}
	return domainTasks
}

// PatchToDatabase converts a TaskPatch to the column set written by the repository.
func (m *TaskMapper) PatchToDatabase(patch TaskPatch) sqlite.TaskUpdate {
	var update sqlite.TaskUpdate
	if v, ok := patch.Completed.Get(); ok {
		update.Completed = &v
	}
	if v, ok := patch.Text.Get(); ok {
		update.Text = &v
	}
	if v, ok := patch.DueDate.Get(); ok {
		due := sql.Null[time.Time]{}
		if v != nil {
			due = sql.Null[time.Time]{V: *v, Valid: true}
		}
		update.DueDate = &due
	}
	if v, ok := patch.Category.Get(); ok {
		category := sql.NullString{String: string(v), Valid: v != CategoryNone}
		update.Category = &category
	}
	return update
}

// SubtaskMapper handles conversion between domain and database Subtask models.
type SubtaskMapper struct{}

// NewSubtaskMapper creates a new SubtaskMapper instance.
func NewSubtaskMapper() *SubtaskMapper {
	return &SubtaskMapper{}
}

// ToDatabase converts a domain Subtask to a database Subtask.
func (m *SubtaskMapper) ToDatabase(domainSubtask Subtask) sqlite.Subtask {
	return sqlite.Subtask{
		ID:        domainSubtask.ID,
		TaskID:    domainSubtask.TaskID,
		Text:      domainSubtask.Text,
		Completed: domainSubtask.Completed,
	}
}

// FromDatabase converts a database Subtask to a domain Subtask.
func (m *SubtaskMapper) FromDatabase(dbSubtask sqlite.Subtask) Subtask {
	return Subtask{
		ID:        dbSubtask.ID,
		TaskID:    dbSubtask.TaskID,
		Text:      dbSubtask.Text,
		Completed: dbSubtask.Completed,
	}
}

// FromDatabaseSlice converts a slice of database Subtasks to domain Subtasks.
func (m *SubtaskMapper) FromDatabaseSlice(dbSubtasks []*sqlite.Subtask) []Subtask {
	domainSubtasks := make([]Subtask, len(dbSubtasks))
	for i, subtask := range dbSubtasks {
		domainSubtasks[i] = m.FromDatabase(*subtask)
	}
	return domainSubtasks
}

// PatchToDatabase converts a SubtaskPatch to the column set written by the repository.
func (m *SubtaskMapper) PatchToDatabase(patch SubtaskPatch) sqlite.SubtaskUpdate {
	var update sqlite.SubtaskUpdate
	if v, ok := patch.Completed.Get(); ok {
		update.Completed = &v
	}
	if v, ok := patch.Text.Get(); ok {
		update.Text = &v
	}
	return update
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task    *TaskMapper
	Subtask *SubtaskMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task:    NewTaskMapper(),
		Subtask: NewSubtaskMapper(),
	}
}
