package api

import (
	"time"

	"todo-list/internal/domain"
)

// TaskDTO is the wire form of a task
type TaskDTO struct {
	ID             int64        `json:"id"`
	Texto          string       `json:"texto"`
	Completa       bool         `json:"completa"`
	DataCriacao    time.Time    `json:"dataCriacao"`
	DataVencimento *time.Time   `json:"dataVencimento"`
	Categoria      *string      `json:"categoria"`
	Subtarefas     []SubtaskDTO `json:"subtarefas"`
}

// SubtaskDTO is the wire form of a subtask
type SubtaskDTO struct {
	ID       int64  `json:"id"`
	TarefaID int64  `json:"tarefaId"`
	Texto    string `json:"texto"`
	Completa bool   `json:"completa"`
}

// CreateTaskRequest is the body of POST /api/tarefas
type CreateTaskRequest struct {
	Texto          string  `json:"texto"`
	DataVencimento *string `json:"dataVencimento,omitempty"`
	Categoria      *string `json:"categoria,omitempty"`
}

// UpdateTaskRequest is the body of PUT /api/tarefas/{id}. Only present
// fields are written; null clears dataVencimento and categoria.
type UpdateTaskRequest struct {
	Completa       domain.Optional[bool]    `json:"completa,omitzero"`
	Texto          domain.Optional[string]  `json:"texto,omitzero"`
	DataVencimento domain.Optional[*string] `json:"dataVencimento,omitzero"`
	Categoria      domain.Optional[*string] `json:"categoria,omitzero"`
}

// CreateSubtaskRequest is the body of POST /api/tarefas/{taskId}/subtarefas
type CreateSubtaskRequest struct {
	Texto string `json:"texto"`
}

// UpdateSubtaskRequest is the body of PUT /api/subtarefas/{id}
type UpdateSubtaskRequest struct {
	Completa domain.Optional[bool]   `json:"completa,omitzero"`
	Texto    domain.Optional[string] `json:"texto,omitzero"`
}

// StatusResponse is the body of GET /api/status
type StatusResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageResponse acknowledges an update or delete
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a failure message
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewTaskDTO converts a domain task to its wire form
func NewTaskDTO(task domain.Task) TaskDTO {
	dto := TaskDTO{
		ID:             task.ID,
		Texto:          task.Text,
		Completa:       task.Completed,
		DataCriacao:    task.CreatedAt,
		DataVencimento: task.DueDate,
		Subtarefas:     make([]SubtaskDTO, len(task.Subtasks)),
	}
	if task.Category != domain.CategoryNone {
		category := string(task.Category)
		dto.Categoria = &category
	}
	for i, s := range task.Subtasks {
		dto.Subtarefas[i] = NewSubtaskDTO(s)
	}
	return dto
}

// NewTaskDTOs converts a slice of domain tasks
func NewTaskDTOs(tasks []domain.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = NewTaskDTO(task)
	}
	return dtos
}

// ToDomain converts the wire form back to a domain task
func (d TaskDTO) ToDomain() domain.Task {
	task := domain.Task{
		ID:        d.ID,
		Text:      d.Texto,
		Completed: d.Completa,
		CreatedAt: d.DataCriacao,
		DueDate:   d.DataVencimento,
		Subtasks:  make([]domain.Subtask, len(d.Subtarefas)),
	}
	if d.Categoria != nil {
		task.Category = domain.Category(*d.Categoria)
	}
	for i, s := range d.Subtarefas {
		task.Subtasks[i] = s.ToDomain()
	}
	return task
}

// NewSubtaskDTO converts a domain subtask to its wire form
func NewSubtaskDTO(subtask domain.Subtask) SubtaskDTO {
	return SubtaskDTO{
		ID:       subtask.ID,
		TarefaID: subtask.TaskID,
		Texto:    subtask.Text,
		Completa: subtask.Completed,
	}
}

// ToDomain converts the wire form back to a domain subtask
func (d SubtaskDTO) ToDomain() domain.Subtask {
	return domain.Subtask{
		ID:        d.ID,
		TaskID:    d.TarefaID,
		Text:      d.Texto,
		Completed: d.Completa,
	}
}

// NewUpdateTaskRequest builds the request body for a task patch
func NewUpdateTaskRequest(patch domain.TaskPatch) UpdateTaskRequest {
	var req UpdateTaskRequest
	req.Completa = patch.Completed
	req.Texto = patch.Text
	if due, ok := patch.DueDate.Get(); ok {
		if due == nil {
			req.DataVencimento = domain.Some[*string](nil)
		} else {
			formatted := due.UTC().Format(time.RFC3339)
			req.DataVencimento = domain.Some(&formatted)
		}
	}
	if category, ok := patch.Category.Get(); ok {
		if category == domain.CategoryNone {
			req.Categoria = domain.Some[*string](nil)
		} else {
			value := string(category)
			req.Categoria = domain.Some(&value)
		}
	}
	return req
}

// NewUpdateSubtaskRequest builds the request body for a subtask patch
func NewUpdateSubtaskRequest(patch domain.SubtaskPatch) UpdateSubtaskRequest {
	return UpdateSubtaskRequest{
		Completa: patch.Completed,
		Texto:    patch.Text,
	}
}
