// Package db owns the SQLite connection, the store accessor abstraction and
// the schema migration runner.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (creating if needed) the SQLite database at path.
//
// The connection is configured with foreign keys on, WAL journaling and a
// 5-second busy timeout so a second science process waits for the writer
// instead of failing immediately. The pool holds one connection, so the
// foreign key pragma applies to every statement.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", path)
	database, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	database.SetMaxOpenConns(1)

	if err := database.Ping(); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return database, nil
}

// OpenAndMigrate opens the database and brings its schema to the latest
// version. It returns the number of migrations applied by this call.
func OpenAndMigrate(ctx context.Context, path string) (*sql.DB, int, error) {
	database, err := Open(path)
	if err != nil {
		return nil, 0, err
	}

	applied, err := NewMigrator(Migrations).Run(ctx, database)
	if err != nil {
		_ = database.Close()
		return nil, 0, err
	}

	return database, applied, nil
}
