package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"todo-list/internal/errors"
	"todo-list/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

const taskColumns = `id, texto, completa, dataCriacao, dataVencimento, categoria`

const subtaskColumns = `id, tarefaId, texto, completa`

// Repository defines the interface for database operations
type Repository interface {
	// Task operations
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id int64) (*Task, error)
	ListTasks(ctx context.Context) ([]*Task, error)
	UpdateTask(ctx context.Context, id int64, update TaskUpdate) error
	SetTaskCompleted(ctx context.Context, id int64, completed bool) error
	DeleteTask(ctx context.Context, id int64) error

	// Subtask operations
	CreateSubtask(ctx context.Context, subtask *Subtask) error
	GetSubtask(ctx context.Context, id int64) (*Subtask, error)
	ListSubtasks(ctx context.Context, taskID int64) ([]*Subtask, error)
	UpdateSubtask(ctx context.Context, id int64, update SubtaskUpdate) error
	DeleteSubtask(ctx context.Context, id int64) error

	// Utility
	DescribeSchema(ctx context.Context) ([]TableInfo, error)
	SchemaStatus(ctx context.Context) (migrations.Status, error)
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// One connection: requests are served one statement at a time, and an
	// in-memory database only lives as long as its connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("enable foreign keys", err)
	}

	// Run migrations
	if err := migrations.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateTask inserts a task and sets its ID
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	query := `
	INSERT INTO tarefas (texto, completa, dataCriacao, dataVencimento, categoria)
	VALUES (?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, "insert task", query,
		task.Text,
		task.Completed,
		FormatTimeForDB(task.CreatedAt),
		FormatTimePtrForDB(task.DueDate),
		NullableString(task.Category),
	)
	if err != nil {
		return err
	}

	task.ID = id
	return nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tarefas WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, entityTask, id)
}

// ListTasks retrieves all tasks in insertion order
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tarefas ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, entityTask)
}

// UpdateTask writes only the columns present in update
func (r *SQLiteRepository) UpdateTask(ctx context.Context, id int64, update TaskUpdate) error {
	if update.IsEmpty() {
		return errors.NewValidationError("no fields to update", nil)
	}

	var set assignments
	if update.Completed != nil {
		set.set("completa", *update.Completed)
	}
	if update.Text != nil {
		set.set("texto", *update.Text)
	}
	if update.DueDate != nil {
		set.set("dataVencimento", FormatNullTimeForDB(*update.DueDate))
	}
	if update.Category != nil {
		if update.Category.Valid {
			set.set("categoria", update.Category.String)
		} else {
			set.set("categoria", nil)
		}
	}

	query, args := set.updateByID("tarefas", id)
	return ExecuteWithRowsAffected(ctx, r.db, query, entityTask, id, args...)
}

// SetTaskCompleted overwrites the completion flag of a task
func (r *SQLiteRepository) SetTaskCompleted(ctx context.Context, id int64, completed bool) error {
	query := `UPDATE tarefas SET completa = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, entityTask, id, completed, id)
}

// DeleteTask deletes a task by ID; its subtasks go with it through the foreign key cascade
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	query := `DELETE FROM tarefas WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, entityTask, id, id)
}

// CreateSubtask inserts a subtask and sets its ID
func (r *SQLiteRepository) CreateSubtask(ctx context.Context, subtask *Subtask) error {
	query := `INSERT INTO subtarefas (tarefaId, texto, completa) VALUES (?, ?, ?)`
	id, err := ExecuteWithLastInsertID(ctx, r.db, "insert subtask", query, subtask.TaskID, subtask.Text, subtask.Completed)
	if err != nil {
		return err
	}
	subtask.ID = id
	return nil
}

// GetSubtask retrieves a subtask by ID
func (r *SQLiteRepository) GetSubtask(ctx context.Context, id int64) (*Subtask, error) {
	query := `SELECT ` + subtaskColumns + ` FROM subtarefas WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanSubtask, entitySubtask, id)
}

// ListSubtasks retrieves the subtasks of a task in insertion order
func (r *SQLiteRepository) ListSubtasks(ctx context.Context, taskID int64) ([]*Subtask, error) {
	query := `SELECT ` + subtaskColumns + ` FROM subtarefas WHERE tarefaId = ? ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanSubtasks, entitySubtask, taskID)
}

// UpdateSubtask writes only the columns present in update
func (r *SQLiteRepository) UpdateSubtask(ctx context.Context, id int64, update SubtaskUpdate) error {
	if update.IsEmpty() {
		return errors.NewValidationError("no fields to update", nil)
	}

	var set assignments
	if update.Completed != nil {
		set.set("completa", *update.Completed)
	}
	if update.Text != nil {
		set.set("texto", *update.Text)
	}

	query, args := set.updateByID("subtarefas", id)
	return ExecuteWithRowsAffected(ctx, r.db, query, entitySubtask, id, args...)
}

// DeleteSubtask deletes a subtask by ID
func (r *SQLiteRepository) DeleteSubtask(ctx context.Context, id int64) error {
	query := `DELETE FROM subtarefas WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, entitySubtask, id, id)
}

// schemaTables are the tables DescribeSchema reports on, in dependency order
var schemaTables = []string{"tarefas", "subtarefas"}

// DescribeSchema reports the columns of the application tables.
// A table that does not exist is returned with no columns.
func (r *SQLiteRepository) DescribeSchema(ctx context.Context) ([]TableInfo, error) {
	tables := make([]TableInfo, 0, len(schemaTables))
	for _, name := range schemaTables {
		rows, err := r.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", name))
		if err != nil {
			return nil, HandleDatabaseError("describe "+name, err)
		}

		info := TableInfo{Name: name, Columns: []ColumnInfo{}}
		for rows.Next() {
			var (
				cid        int
				column     ColumnInfo
				notNull    int
				defaultVal sql.NullString
				pk         int
			)
			if err := rows.Scan(&cid, &column.Name, &column.Type, &notNull, &defaultVal, &pk); err != nil {
				rows.Close()
				return nil, HandleDatabaseError("scan "+name+" columns", err)
			}
			column.NotNull = notNull != 0
			column.PrimaryKey = pk != 0
			info.Columns = append(info.Columns, column)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, HandleDatabaseError("describe "+name, err)
		}

		tables = append(tables, info)
	}
	return tables, nil
}

// SchemaStatus reports the applied and latest migration versions
func (r *SQLiteRepository) SchemaStatus(ctx context.Context) (migrations.Status, error) {
	status, err := migrations.CurrentStatus(ctx, r.db)
	if err != nil {
		return status, HandleDatabaseError("read schema version", err)
	}
	return status, nil
}
