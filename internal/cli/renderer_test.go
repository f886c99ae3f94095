package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"todo-list/internal/domain"
	"todo-list/internal/repository/sqlite"
	"todo-list/internal/repository/sqlite/migrations"
	"todo-list/internal/view"

	"github.com/stretchr/testify/assert"
)

func TestRenderer_RenderView(t *testing.T) {
	past := fixedNow.Add(-72 * time.Hour)
	future := fixedNow.Add(10 * 24 * time.Hour)
	tasks := []domain.Task{
		{
			ID: 1, Text: "Buy milk", Completed: true, Category: domain.CategoryPersonal,
			Subtasks: []domain.Subtask{{ID: 4, TaskID: 1, Text: "2% milk", Completed: true}},
		},
		{ID: 2, Text: "Report", DueDate: &past, Category: domain.CategoryWork},
		{ID: 3, Text: "Read", DueDate: &future},
	}
	vm := view.NewProjector("pt-BR").Project(tasks, view.Options{Filter: view.FilterAll}, fixedNow)

	var buf bytes.Buffer
	NewRenderer(&buf, 20, "02/01/2006").RenderView(vm, fixedNow)
	out := buf.String()

	assert.Contains(t, out, "Tasks\n")
	assert.Contains(t, out, "[x]    1  Buy milk  #pessoal")
	assert.Contains(t, out, "        [x]    4  2% milk")
	assert.Contains(t, out, "[ ]    2  Report  #trabalho  overdue, due 28/06/2025 (3 days ago)")
	assert.Contains(t, out, "[ ]    3  Read  due 11/07/2025 (1 week from now)")
	assert.Contains(t, out, "Total: 3 | Completed: 1 | Pending: 2")
	assert.Contains(t, out, strings.Repeat("█", 7)+strings.Repeat("░", 13)+"  33% completed (1)")
	assert.Contains(t, out, strings.Repeat("█", 13)+strings.Repeat("░", 7)+"  67% pending (2)")
}

func TestRenderer_RenderTaskShowsSubtasks(t *testing.T) {
	task := domain.Task{
		ID: 1, Text: "Buy milk", Category: domain.CategoryPersonal,
		Subtasks: []domain.Subtask{
			{ID: 1, TaskID: 1, Text: "2% milk", Completed: true},
			{ID: 2, TaskID: 1, Text: "Oat milk"},
		},
	}

	var buf bytes.Buffer
	NewRenderer(&buf, 20, "02/01/2006").RenderTask("Subtask added", task, fixedNow)

	assert.Equal(t, "Subtask added\n"+
		"[ ]    1  Buy milk  #pessoal\n"+
		"        [x]    1  2% milk\n"+
		"        [ ]    2  Oat milk\n", buf.String())
}

func TestRenderer_RenderRefresh(t *testing.T) {
	tests := []struct {
		name     string
		online   bool
		expected string
	}{
		{"online", true, "\n── refreshed 12:00:00, next in 30s\n"},
		{"offline", false, "\n── server offline at 12:00:00, showing last known tasks\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewRenderer(&buf, 20, "02/01/2006").RenderRefresh(tt.online, 30*time.Second, fixedNow)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestRenderer_RenderViewEmpty(t *testing.T) {
	vm := view.NewProjector("pt-BR").Project(nil, view.Options{Filter: view.FilterActive, Sort: view.SortDate}, fixedNow)

	var buf bytes.Buffer
	NewRenderer(&buf, 20, "02/01/2006").RenderView(vm, fixedNow)
	out := buf.String()

	assert.Contains(t, out, "Tasks (active) sorted by date")
	assert.Contains(t, out, "no tasks found")
	assert.Contains(t, out, "Total: 0 | Completed: 0 | Pending: 0")
	assert.Contains(t, out, "no tasks yet")
}

func TestRenderer_RenderSchema(t *testing.T) {
	tables := []sqlite.TableInfo{
		{Name: "tarefas", Columns: []sqlite.ColumnInfo{
			{Name: "id", Type: "INTEGER", PrimaryKey: true},
			{Name: "texto", Type: "TEXT", NotNull: true},
			{Name: "categoria", Type: "TEXT"},
		}},
		{Name: "subtarefas"},
	}

	var buf bytes.Buffer
	NewRenderer(&buf, 20, "02/01/2006").RenderSchema("/tmp/tarefas.db", migrations.Status{Current: 1, Latest: 2, Dirty: []int{2}}, tables)
	out := buf.String()

	assert.Contains(t, out, "Database /tmp/tarefas.db")
	assert.Contains(t, out, "  schema version 1 of 2 (failed: [2])\n")
	assert.Contains(t, out, "id               INTEGER    primary key")
	assert.Contains(t, out, "texto            TEXT       not null")
	assert.Contains(t, out, "    categoria        TEXT\n")
	assert.Contains(t, out, "subtarefas: missing")
}

func TestRenderer_RenderError(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf, 20, "02/01/2006").RenderError("texto is required")

	assert.Equal(t, "✗ texto is required\n", buf.String())
}
