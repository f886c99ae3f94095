package sqlite

import (
	"database/sql"
	"time"
)

// Task is a row of the tarefas table
type Task struct {
	ID        int64
	Text      string
	Completed bool
	CreatedAt time.Time
	DueDate   *time.Time // NULL when the task has no due date
	Category  *string
}

// Subtask is a row of the subtarefas table
type Subtask struct {
	ID        int64
	TaskID    int64
	Text      string
	Completed bool
}

// TaskUpdate lists the columns to write on a partial task update.
// A nil field is left untouched; a non-nil Null with Valid=false writes NULL.
type TaskUpdate struct {
	Completed *bool
	Text      *string
	DueDate   *sql.Null[time.Time]
	Category  *sql.NullString
}

// IsEmpty reports whether the update touches no column
func (u TaskUpdate) IsEmpty() bool {
	return u.Completed == nil && u.Text == nil && u.DueDate == nil && u.Category == nil
}

// SubtaskUpdate lists the columns to write on a partial subtask update
type SubtaskUpdate struct {
	Completed *bool
	Text      *string
}

// IsEmpty reports whether the update touches no column
func (u SubtaskUpdate) IsEmpty() bool {
	return u.Completed == nil && u.Text == nil
}

// ColumnInfo describes one column as reported by PRAGMA table_info
type ColumnInfo struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
}

// TableInfo describes an application table and its columns
type TableInfo struct {
	Name    string
	Columns []ColumnInfo
}
