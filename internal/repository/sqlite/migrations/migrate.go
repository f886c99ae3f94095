package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"strings"
)

//go:embed *.sql
var migrationsFS embed.FS

// Migration is one numbered NNNNNN_name.up.sql / .down.sql pair
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// Status reports how far a database is behind the embedded migrations
type Status struct {
	Current int
	Latest  int
	Dirty   []int
}

// Pending reports whether migrations remain to be applied
func (s Status) Pending() bool {
	return s.Current < s.Latest
}

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS migrations (
	version INTEGER PRIMARY KEY,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	dirty BOOLEAN DEFAULT FALSE
)`

// RunMigrations applies every migration the database has not seen yet,
// each in its own transaction. A dirty database is left untouched.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	dirty, err := versions(ctx, db, "SELECT version FROM migrations WHERE dirty = TRUE ORDER BY version")
	if err != nil {
		return fmt.Errorf("failed to check migration state: %w", err)
	}
	if len(dirty) > 0 {
		return fmt.Errorf("database is in a dirty state, failed migration(s): %v", dirty)
	}

	all, err := LoadMigrations()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	applied, err := versions(ctx, db, "SELECT version FROM migrations")
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, m := range all {
		if slices.Contains(applied, m.Version) {
			continue
		}
		if err := apply(ctx, db, m); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}

// CurrentStatus compares the applied versions with the embedded ones.
// A database that was never migrated reports Current 0.
func CurrentStatus(ctx context.Context, db *sql.DB) (Status, error) {
	all, err := LoadMigrations()
	if err != nil {
		return Status{}, err
	}
	var status Status
	if len(all) > 0 {
		status.Latest = all[len(all)-1].Version
	}

	var exists int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'migrations'").Scan(&exists)
	if err != nil || exists == 0 {
		return status, err
	}

	applied, err := versions(ctx, db, "SELECT version FROM migrations WHERE dirty = FALSE ORDER BY version")
	if err != nil {
		return status, err
	}
	if len(applied) > 0 {
		status.Current = applied[len(applied)-1]
	}
	status.Dirty, err = versions(ctx, db, "SELECT version FROM migrations WHERE dirty = TRUE ORDER BY version")
	return status, err
}

// LoadMigrations reads the embedded migrations sorted by version
func LoadMigrations() ([]Migration, error) {
	ups, err := fs.Glob(migrationsFS, "*.up.sql")
	if err != nil {
		return nil, err
	}

	var all []Migration
	for _, up := range ups {
		version, name, ok := parseFilename(up)
		if !ok {
			continue
		}

		upSQL, err := migrationsFS.ReadFile(up)
		if err != nil {
			return nil, err
		}
		downSQL, err := migrationsFS.ReadFile(strings.TrimSuffix(up, ".up.sql") + ".down.sql")
		if err != nil {
			return nil, fmt.Errorf("migration %d has no down script: %w", version, err)
		}

		all = append(all, Migration{Version: version, Name: name, Up: string(upSQL), Down: string(downSQL)})
	}

	slices.SortFunc(all, func(a, b Migration) int { return a.Version - b.Version })
	return all, nil
}

func versions(ctx context.Context, db *sql.DB, query string) ([]int, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		out = append(out, version)
	}
	return out, rows.Err()
}

func apply(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.Up); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO migrations (version) VALUES (?)", m.Version); err != nil {
		return err
	}
	return tx.Commit()
}

// parseFilename splits "000002_create_subtarefas.up.sql" into 2 and "create_subtarefas"
func parseFilename(filename string) (int, string, bool) {
	base := strings.TrimSuffix(filename, ".up.sql")
	prefix, name, found := strings.Cut(base, "_")
	if !found {
		return 0, "", false
	}
	version, err := strconv.Atoi(prefix)
	if err != nil || version <= 0 {
		return 0, "", false
	}
	return version, name, true
}
