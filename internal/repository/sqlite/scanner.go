package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*Task, error) {
	task := &Task{}
	var createdAt string
	var dueDate, category sql.NullString

	err := scanner.Scan(
		&task.ID,
		&task.Text,
		&task.Completed,
		&createdAt,
		&dueDate,
		&category,
	)
	if err != nil {
		return nil, err
	}

	task.CreatedAt, err = ParseTimeFromDB(createdAt)
	if err != nil {
		return nil, err
	}

	if dueDate.Valid && dueDate.String != "" {
		due, err := ParseTimeFromDB(dueDate.String)
		if err != nil {
			return nil, err
		}
		task.DueDate = &due
	}

	if category.Valid {
		task.Category = &category.String
	}

	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*Task, error) {
	tasks := []*Task{}
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// ScanSubtask scans a single subtask from a database row
func ScanSubtask(scanner Scanner) (*Subtask, error) {
	subtask := &Subtask{}
	err := scanner.Scan(&subtask.ID, &subtask.TaskID, &subtask.Text, &subtask.Completed)
	if err != nil {
		return nil, err
	}
	return subtask, nil
}

// ScanSubtasks scans multiple subtasks from database rows
func ScanSubtasks(rows Rows) ([]*Subtask, error) {
	subtasks := []*Subtask{}
	for rows.Next() {
		subtask, err := ScanSubtask(rows)
		if err != nil {
			return nil, err
		}
		subtasks = append(subtasks, subtask)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subtasks, nil
}
