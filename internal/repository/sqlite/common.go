package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strconv"
	"strings"

	"todo-list/internal/errors"
)

// executor is satisfied by both *sql.DB and *sql.Tx
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// entity names a table's rows in not-found errors
type entity string

const (
	entityTask    entity = "task"
	entitySubtask entity = "subtask"
)

func (e entity) notFound(id int64) error {
	return errors.NewNotFoundError(string(e), strconv.FormatInt(id, 10))
}

// HandleDatabaseError converts database errors to structured app errors
func HandleDatabaseError(operation string, err error) error {
	return errors.NewDatabaseError(operation, err)
}

// ValidateRowsAffected turns a write that matched nothing into a not-found error
func ValidateRowsAffected(result sql.Result, e entity, id int64) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return HandleDatabaseError("get rows affected", err)
	}
	if rows == 0 {
		return e.notFound(id)
	}
	return nil
}

// ExecuteWithLastInsertID executes an insert and returns the new row id
func ExecuteWithLastInsertID(ctx context.Context, db executor, operation string, query string, args ...any) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, HandleDatabaseError(operation, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, HandleDatabaseError("get last insert ID", err)
	}

	return id, nil
}

// ExecuteWithRowsAffected executes a write against one row and reports a
// missing row as not found
func ExecuteWithRowsAffected(ctx context.Context, db executor, query string, e entity, id int64, args ...any) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return HandleDatabaseError("write "+string(e), err)
	}

	return ValidateRowsAffected(result, e, id)
}

// QuerySingle loads the row with the given id
func QuerySingle[T any](ctx context.Context, db executor, query string, scanFunc func(Scanner) (*T, error), e entity, id int64) (*T, error) {
	row := db.QueryRowContext(ctx, query, id)
	result, err := scanFunc(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, e.notFound(id)
		}
		return nil, HandleDatabaseError("scan "+string(e), err)
	}
	return result, nil
}

// QueryMultiple executes a query that returns multiple rows and scans them
func QueryMultiple[T any](ctx context.Context, db executor, query string, scanFunc func(Rows) ([]*T, error), e entity, args ...any) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError("list "+string(e)+"s", err)
	}
	defer rows.Close()

	results, err := scanFunc(rows)
	if err != nil {
		return nil, HandleDatabaseError("scan "+string(e)+"s", err)
	}

	return results, nil
}

// assignments collects the SET clause of a partial update
type assignments struct {
	columns []string
	args    []any
}

func (a *assignments) set(column string, value any) {
	a.columns = append(a.columns, column+" = ?")
	a.args = append(a.args, value)
}

// updateByID builds "UPDATE table SET ... WHERE id = ?" and its arguments
func (a *assignments) updateByID(table string, id int64) (string, []any) {
	query := `UPDATE ` + table + ` SET ` + strings.Join(a.columns, ", ") + ` WHERE id = ?`
	return query, append(a.args, id)
}
