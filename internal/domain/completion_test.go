package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveCompletion(t *testing.T) {
	tests := []struct {
		name     string
		subtasks []Subtask
		expected bool
	}{
		{"no subtasks", nil, false},
		{"single incomplete", []Subtask{{ID: 1}}, false},
		{"single complete", []Subtask{{ID: 1, Completed: true}}, true},
		{"all complete", []Subtask{{ID: 1, Completed: true}, {ID: 2, Completed: true}}, true},
		{"one incomplete", []Subtask{{ID: 1, Completed: true}, {ID: 2}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveCompletion(tt.subtasks))
		})
	}
}

func TestTask_AddSubtask(t *testing.T) {
	t.Run("first subtask leaves an independently completed task alone", func(t *testing.T) {
		task := Task{ID: 1, Completed: true}
		task.AddSubtask(Subtask{ID: 10, TaskID: 1, Text: "first"})

		assert.True(t, task.Completed)
		assert.Len(t, task.Subtasks, 1)
	})

	t.Run("later subtask recomputes", func(t *testing.T) {
		task := Task{ID: 1, Completed: true, Subtasks: []Subtask{{ID: 10, Completed: true}}}
		task.AddSubtask(Subtask{ID: 11, TaskID: 1, Text: "second"})

		assert.False(t, task.Completed)
		assert.Len(t, task.Subtasks, 2)
	})
}

func TestTask_ReplaceSubtask(t *testing.T) {
	task := Task{ID: 1, Subtasks: []Subtask{{ID: 10, Text: "a"}, {ID: 11, Text: "b", Completed: true}}}

	assert.True(t, task.ReplaceSubtask(Subtask{ID: 10, Text: "a", Completed: true}))
	assert.True(t, task.Completed)

	assert.False(t, task.ReplaceSubtask(Subtask{ID: 99}))
	assert.Len(t, task.Subtasks, 2)
}

func TestTask_RemoveSubtask(t *testing.T) {
	task := Task{ID: 1, Subtasks: []Subtask{{ID: 10, Completed: true}, {ID: 11}}}

	assert.True(t, task.RemoveSubtask(11))
	assert.True(t, task.Completed)

	assert.True(t, task.RemoveSubtask(10))
	assert.False(t, task.Completed, "losing the last subtask reverts to incomplete")
	assert.Empty(t, task.Subtasks)

	assert.False(t, task.RemoveSubtask(10))
}

func TestTask_RemoveSubtaskDoesNotAliasOriginal(t *testing.T) {
	original := []Subtask{{ID: 1}, {ID: 2}, {ID: 3}}
	task := Task{Subtasks: original}

	task.RemoveSubtask(1)

	assert.Equal(t, int64(1), original[0].ID)
	assert.Equal(t, []int64{2, 3}, []int64{task.Subtasks[0].ID, task.Subtasks[1].ID})
}

func TestTask_FindSubtask(t *testing.T) {
	task := Task{Subtasks: []Subtask{{ID: 5, Text: "found"}}}

	s, ok := task.FindSubtask(5)
	assert.True(t, ok)
	assert.Equal(t, "found", s.Text)

	_, ok = task.FindSubtask(6)
	assert.False(t, ok)
}
