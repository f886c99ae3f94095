package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-list/internal/repository/sqlite"
)

func TestCreateRepository(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	t.Setenv("TODO_DB_DIR", dir)
	t.Setenv("TODO_CONFIG", "")

	cfg, err := NewLoader().WithEnvFile("").Load()
	require.NoError(t, err)

	repo, err := CreateRepository(cfg)
	require.NoError(t, err)
	defer repo.Close()

	_, err = os.Stat(filepath.Join(dir, "tarefas.db"))
	assert.NoError(t, err, "database file should be created")

	ctx := context.Background()
	require.NoError(t, repo.CreateTask(ctx, &sqlite.Task{Text: "Pay rent", CreatedAt: time.Now()}))
	tasks, err := repo.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestCreateRepository_InMemory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "unused")
	cfg := NewConfig()
	cfg.Database.Dir = dir
	cfg.Database.Filename = InMemoryDatabase

	repo, err := CreateRepository(cfg)
	require.NoError(t, err)
	defer repo.Close()

	assert.NoDirExists(t, dir)
	tasks, err := repo.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestCreateRepository_UnwritableDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain-file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	cfg := NewConfig()
	cfg.Database.Dir = filepath.Join(file, "db")

	_, err := CreateRepository(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create database directory")
}

func TestCreateTestRepository(t *testing.T) {
	repo, err := CreateTestRepository()
	require.NoError(t, err)
	defer repo.Close()

	status, err := repo.SchemaStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Pending())
}
