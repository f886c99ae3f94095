package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"todo-list/internal/domain"
	"todo-list/internal/errors"
	"todo-list/internal/services"
	"todo-list/internal/validation"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
)

// maxBodyBytes bounds request bodies; texts are capped far below this
const maxBodyBytes = 64 << 10

// Handler serves the task and subtask endpoints
type Handler struct {
	tasks         services.TaskService
	subtasks      services.SubtaskService
	taskValidator *validation.TaskValidator
	logger        *log.Logger
	now           func() time.Time
}

// NewHandler creates a Handler over the given services
func NewHandler(container *services.ServiceContainer, taskValidator *validation.TaskValidator, logger *log.Logger, now func() time.Time) *Handler {
	if taskValidator == nil {
		taskValidator = validation.NewTaskValidator()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if now == nil {
		now = time.Now
	}
	return &Handler{
		tasks:         container.TaskService,
		subtasks:      container.SubtaskService,
		taskValidator: taskValidator,
		logger:        logger,
		now:           now,
	}
}

// Status handles GET /api/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "online", Timestamp: h.now().UTC()})
}

// ListTasks handles GET /api/tarefas
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListTasks(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, NewTaskDTOs(tasks))
}

// CreateTask handles POST /api/tarefas
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	input := services.NewTaskInput{Text: req.Texto}
	if req.DataVencimento != nil {
		due, err := h.taskValidator.ParseDueDate(*req.DataVencimento)
		if err != nil {
			h.writeError(w, r, errors.NewValidationError(validationMessage(err), err))
			return
		}
		input.DueDate = due
	}
	if req.Categoria != nil {
		input.Category = domain.Category(*req.Categoria)
	}

	task, err := h.tasks.CreateTask(r.Context(), input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, NewTaskDTO(*task))
}

// UpdateTask handles PUT /api/tarefas/{id}
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "task")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req UpdateTaskRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	patch, err := h.taskPatch(req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.tasks.UpdateTask(r.Context(), id, patch); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "task updated"})
}

// taskPatch converts the wire patch, parsing the due date
func (h *Handler) taskPatch(req UpdateTaskRequest) (domain.TaskPatch, error) {
	patch := domain.TaskPatch{
		Completed: req.Completa,
		Text:      req.Texto,
	}
	if raw, ok := req.DataVencimento.Get(); ok {
		var due *time.Time
		if raw != nil {
			parsed, err := h.taskValidator.ParseDueDate(*raw)
			if err != nil {
				return patch, errors.NewValidationError(validationMessage(err), err)
			}
			due = parsed
		}
		patch.DueDate = domain.Some(due)
	}
	if raw, ok := req.Categoria.Get(); ok {
		category := domain.CategoryNone
		if raw != nil {
			category = domain.Category(*raw)
		}
		patch.Category = domain.Some(category)
	}
	return patch, nil
}

// DeleteTask handles DELETE /api/tarefas/{id}
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "task")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "task deleted"})
}

// CreateSubtask handles POST /api/tarefas/{taskId}/subtarefas
func (h *Handler) CreateSubtask(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "taskId", "task")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req CreateSubtaskRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	subtask, err := h.subtasks.CreateSubtask(r.Context(), taskID, req.Texto)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, NewSubtaskDTO(*subtask))
}

// UpdateSubtask handles PUT /api/subtarefas/{id}
func (h *Handler) UpdateSubtask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "subtask")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req UpdateSubtaskRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	patch := domain.SubtaskPatch{Completed: req.Completa, Text: req.Texto}
	if err := h.subtasks.UpdateSubtask(r.Context(), id, patch); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "subtask updated"})
}

// DeleteSubtask handles DELETE /api/subtarefas/{id}
func (h *Handler) DeleteSubtask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "subtask")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.subtasks.DeleteSubtask(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "subtask deleted"})
}

// NotFound answers unmatched routes
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "route not found: " + r.Method + " " + r.URL.Path})
}

// pathID reads a numeric path variable. An id that does not parse cannot
// name an existing record and is reported as not found.
func pathID(r *http.Request, name, resource string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.NewNotFoundError(resource, raw)
	}
	return id, nil
}

// decodeBody decodes a JSON body into dst. An empty body decodes as {}.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	err := json.NewDecoder(body).Decode(dst)
	if err == nil || stderrors.Is(err, io.EOF) {
		return nil
	}
	return errors.NewValidationError("invalid request body", err)
}

// validationMessage extracts the user-facing text of a field validation error
func validationMessage(err error) string {
	var ve *validation.ValidationError
	if stderrors.As(err, &ve) {
		return ve.Message()
	}
	return err.Error()
}

// writeError maps err to its status and logs system failures
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if errors.ShouldLogError(err) {
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()), "err", err)
	}
	writeJSON(w, status, ErrorResponse{Error: errors.GetUserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
