package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTask(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	due := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	task := NewTask("Buy milk", created, &due, CategoryPersonal)

	assert.Equal(t, "Buy milk", task.Text)
	assert.False(t, task.Completed)
	assert.Equal(t, created, task.CreatedAt)
	assert.Equal(t, &due, task.DueDate)
	assert.Equal(t, CategoryPersonal, task.Category)
	assert.NotNil(t, task.Subtasks)
	assert.Empty(t, task.Subtasks)
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name     string
		task     Task
		expected bool
	}{
		{"no due date", Task{}, false},
		{"due in the past", Task{DueDate: &past}, true},
		{"completed tasks are still flagged", Task{DueDate: &past, Completed: true}, true},
		{"due exactly now", Task{DueDate: &now}, false},
		{"due in the future", Task{DueDate: &future}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.IsOverdue(now))
		})
	}
}

func TestCategory_IsKnown(t *testing.T) {
	tests := []struct {
		category Category
		expected bool
	}{
		{CategoryPersonal, true},
		{CategoryWork, true},
		{CategoryStudies, true},
		{CategoryNone, false},
		{Category("hobby"), false},
	}

	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.category.IsKnown())
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected Category
	}{
		{"pessoal", CategoryPersonal},
		{"  Trabalho ", CategoryWork},
		{"ESTUDOS", CategoryStudies},
		{"personal", CategoryPersonal},
		{"Work", CategoryWork},
		{"studies", CategoryStudies},
		{"", CategoryNone},
		{"  Hobby ", Category("Hobby")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCategory(tt.input))
		})
	}
	assert.Equal(t, "pessoal, trabalho, estudos", CategoryNames())
}
