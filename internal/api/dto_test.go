package api

import (
	"encoding/json"
	"testing"
	"time"

	"todo-list/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskDTO_WireFormat(t *testing.T) {
	due := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	task := domain.Task{
		ID:        7,
		Text:      "Buy milk",
		CreatedAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
		DueDate:   &due,
		Category:  domain.CategoryPersonal,
		Subtasks:  []domain.Subtask{{ID: 1, TaskID: 7, Text: "2% milk", Completed: true}},
	}

	data, err := json.Marshal(NewTaskDTO(task))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 7,
		"texto": "Buy milk",
		"completa": false,
		"dataCriacao": "2025-03-01T08:00:00Z",
		"dataVencimento": "2025-03-10T00:00:00Z",
		"categoria": "pessoal",
		"subtarefas": [{"id": 1, "tarefaId": 7, "texto": "2% milk", "completa": true}]
	}`, string(data))

	var decoded TaskDTO
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, task, decoded.ToDomain())
}

func TestTaskDTO_NullOptionalFields(t *testing.T) {
	data, err := json.Marshal(NewTaskDTO(domain.Task{ID: 1, Text: "x", Subtasks: []domain.Subtask{}}))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Nil(t, raw["dataVencimento"])
	assert.Nil(t, raw["categoria"])
	assert.Equal(t, []any{}, raw["subtarefas"])
}

func TestNewUpdateTaskRequest(t *testing.T) {
	due := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		patch    domain.TaskPatch
		expected string
	}{
		{"completion only", domain.TaskPatch{Completed: domain.Some(false)}, `{"completa":false}`},
		{"text only", domain.TaskPatch{Text: domain.Some("new")}, `{"texto":"new"}`},
		{"set due date", domain.TaskPatch{DueDate: domain.Some(&due)}, `{"dataVencimento":"2025-03-10T15:00:00Z"}`},
		{"clear due date and category", domain.TaskPatch{DueDate: domain.Some[*time.Time](nil), Category: domain.Some(domain.CategoryNone)}, `{"dataVencimento":null,"categoria":null}`},
		{"set category", domain.TaskPatch{Category: domain.Some(domain.CategoryStudies)}, `{"categoria":"estudos"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(NewUpdateTaskRequest(tt.patch))
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestNewUpdateSubtaskRequest(t *testing.T) {
	data, err := json.Marshal(NewUpdateSubtaskRequest(domain.SubtaskPatch{Completed: domain.Some(true)}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"completa":true}`, string(data))
}
