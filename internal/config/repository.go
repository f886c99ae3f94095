package config

import (
	"fmt"
	"os"
	"path/filepath"

	"todo-list/internal/repository/sqlite"
)

// InMemoryDatabase as Database.Filename keeps the store in memory
const InMemoryDatabase = ":memory:"

// CreateRepository opens the SQLite store the configuration points at,
// creating its directory first. Migrations run on open.
func CreateRepository(config *Config) (sqlite.Repository, error) {
	if config.Database.Filename == InMemoryDatabase {
		return openRepository(InMemoryDatabase)
	}

	dbPath := config.GetDatabasePath()
	if err := os.MkdirAll(filepath.Dir(dbPath), os.FileMode(config.Database.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create database directory %s: %w", filepath.Dir(dbPath), err)
	}
	return openRepository(dbPath)
}

// CreateTestRepository opens an empty in-memory store
func CreateTestRepository() (sqlite.Repository, error) {
	cfg := NewConfig()
	cfg.Database.Filename = InMemoryDatabase
	return CreateRepository(cfg)
}

func openRepository(dbPath string) (sqlite.Repository, error) {
	repo, err := sqlite.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database %s: %w", dbPath, err)
	}
	return repo, nil
}
