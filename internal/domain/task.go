package domain

import (
	"strings"
	"time"
)

// Category groups tasks. The stored values are the Portuguese names the
// browser client sends (pessoal, trabalho, estudos); any other string is
// accepted and stored as given.
type Category string

const (
	CategoryNone     Category = ""
	CategoryPersonal Category = "pessoal"
	CategoryWork     Category = "trabalho"
	CategoryStudies  Category = "estudos"
)

// KnownCategories lists the categories offered to the user.
var KnownCategories = []Category{CategoryPersonal, CategoryWork, CategoryStudies}

var categoryAliases = map[string]Category{
	"personal": CategoryPersonal,
	"work":     CategoryWork,
	"studies":  CategoryStudies,
}

// ParseCategory trims s and folds the known categories, in either
// language and any case, onto their stored value. Free categories are
// kept as typed.
func ParseCategory(s string) Category {
	trimmed := strings.TrimSpace(s)
	lower := strings.ToLower(trimmed)
	if c := Category(lower); c.IsKnown() {
		return c
	}
	if c, ok := categoryAliases[lower]; ok {
		return c
	}
	return Category(trimmed)
}

// CategoryNames joins the known categories for help texts.
func CategoryNames() string {
	names := make([]string, len(KnownCategories))
	for i, c := range KnownCategories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// IsKnown reports whether c is one of the offered categories.
func (c Category) IsKnown() bool {
	for _, known := range KnownCategories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// Task represents a to-do item in the domain model.
// This is a pure domain model without database-specific concerns.
type Task struct {
	ID        int64
	Text      string
	Completed bool
	CreatedAt time.Time
	DueDate   *time.Time
	Category  Category
	Subtasks  []Subtask
}

// NewTask creates an incomplete task with no subtasks.
func NewTask(text string, createdAt time.Time, dueDate *time.Time, category Category) Task {
	return Task{
		Text:      text,
		CreatedAt: createdAt,
		DueDate:   dueDate,
		Category:  category,
		Subtasks:  []Subtask{},
	}
}

// HasDueDate reports whether the task carries a due date.
func (t Task) HasDueDate() bool {
	return t.DueDate != nil
}

// IsOverdue reports whether the due date lies strictly before now.
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now)
}

// String returns the task text for display purposes.
func (t Task) String() string {
	return t.Text
}

// Subtask is a child item of a task, completed independently.
type Subtask struct {
	ID        int64
	TaskID    int64
	Text      string
	Completed bool
}

// NewSubtask creates an incomplete subtask under the given task.
func NewSubtask(taskID int64, text string) Subtask {
	return Subtask{
		TaskID: taskID,
		Text:   text,
	}
}
