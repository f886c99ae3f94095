package client

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"todo-list/internal/api"
	"todo-list/internal/config"
	"todo-list/internal/domain"
	"todo-list/internal/errors"
)

// API is the set of remote calls the sync controller depends on
type API interface {
	Status(ctx context.Context) (*api.StatusResponse, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, text string, dueDate *time.Time, category domain.Category) (*domain.Task, error)
	UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) error
	DeleteTask(ctx context.Context, id int64) error
	CreateSubtask(ctx context.Context, taskID int64, text string) (*domain.Subtask, error)
	UpdateSubtask(ctx context.Context, id int64, patch domain.SubtaskPatch) error
	DeleteSubtask(ctx context.Context, id int64) error
}

// APIClient talks to the task HTTP API
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a client for the API rooted at baseURL
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewAPIClientFromConfig creates a client from the client config section
func NewAPIClientFromConfig(cfg *config.Config) *APIClient {
	return NewAPIClient(cfg.Client.BaseURL, cfg.Client.RequestTimeout)
}

// BaseURL returns the API root the client talks to
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// Status probes GET /api/status
func (c *APIClient) Status(ctx context.Context) (*api.StatusResponse, error) {
	var status api.StatusResponse
	if err := c.do(ctx, "check server", http.MethodGet, "/api/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListTasks fetches every task with its subtasks
func (c *APIClient) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var dtos []api.TaskDTO
	if err := c.do(ctx, "list tasks", http.MethodGet, "/api/tarefas", nil, &dtos); err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, len(dtos))
	for i, dto := range dtos {
		tasks[i] = dto.ToDomain()
	}
	return tasks, nil
}

// CreateTask creates a task and returns it as stored by the server
func (c *APIClient) CreateTask(ctx context.Context, text string, dueDate *time.Time, category domain.Category) (*domain.Task, error) {
	req := api.CreateTaskRequest{Texto: text}
	if dueDate != nil {
		formatted := dueDate.UTC().Format(time.RFC3339)
		req.DataVencimento = &formatted
	}
	if category != domain.CategoryNone {
		name := string(category)
		req.Categoria = &name
	}

	var dto api.TaskDTO
	if err := c.do(ctx, "create task", http.MethodPost, "/api/tarefas", req, &dto); err != nil {
		return nil, err
	}
	task := dto.ToDomain()
	return &task, nil
}

// UpdateTask sends the fields set in patch
func (c *APIClient) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) error {
	return c.do(ctx, "update task", http.MethodPut, fmt.Sprintf("/api/tarefas/%d", id), api.NewUpdateTaskRequest(patch), nil)
}

// DeleteTask removes a task and its subtasks
func (c *APIClient) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, "delete task", http.MethodDelete, fmt.Sprintf("/api/tarefas/%d", id), nil, nil)
}

// CreateSubtask adds a subtask under taskID
func (c *APIClient) CreateSubtask(ctx context.Context, taskID int64, text string) (*domain.Subtask, error) {
	var dto api.SubtaskDTO
	path := fmt.Sprintf("/api/tarefas/%d/subtarefas", taskID)
	if err := c.do(ctx, "create subtask", http.MethodPost, path, api.CreateSubtaskRequest{Texto: text}, &dto); err != nil {
		return nil, err
	}
	subtask := dto.ToDomain()
	return &subtask, nil
}

// UpdateSubtask sends the fields set in patch
func (c *APIClient) UpdateSubtask(ctx context.Context, id int64, patch domain.SubtaskPatch) error {
	return c.do(ctx, "update subtask", http.MethodPut, fmt.Sprintf("/api/subtarefas/%d", id), api.NewUpdateSubtaskRequest(patch), nil)
}

// DeleteSubtask removes a subtask
func (c *APIClient) DeleteSubtask(ctx context.Context, id int64) error {
	return c.do(ctx, "delete subtask", http.MethodDelete, fmt.Sprintf("/api/subtarefas/%d", id), nil, nil)
}

// do performs one request. Transport failures become network errors with
// status 0; non-2xx answers carry the status and the server's message.
func (c *APIClient) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.NewInternalError("failed to encode request body", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.NewInternalError("failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewNetworkError(op, 0, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewNetworkError(op, 0, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr api.ErrorResponse
		if err := json.Unmarshal(data, &apiErr); err != nil || apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return errors.NewNetworkError(op, resp.StatusCode, stderrors.New(apiErr.Error))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.NewNetworkError(op, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
