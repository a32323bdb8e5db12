// Package sqlite provides SQLite-based persistence for correction
// results, so byte-identical sentences are never re-checked across editor
// sessions.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const schema = `
	CREATE TABLE IF NOT EXISTS check_results (
		id TEXT PRIMARY KEY,
		sentence_hash TEXT NOT NULL UNIQUE,
		sentence TEXT NOT NULL,
		language TEXT NOT NULL,
		problems TEXT NOT NULL,
		checked_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_check_results_hash ON check_results(sentence_hash);
`

// DB holds the connection to the check-result database. Use ":memory:"
// as the path for an in-memory database.
type DB struct {
	sql  *sql.DB
	path string
}

// NewDB returns an unopened DB for the given path.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the connection, applies pragmas, and ensures the schema
// exists.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	// SQLite allows a single writer; one connection avoids lock errors
	// between this process's own goroutines.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("connect to database: %w", err)
	}

	// Wait out lock contention from other processes instead of failing
	// immediately with "database is locked".
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("set busy timeout: %w", err)
	}

	// WAL is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return fmt.Errorf("create schema: %w", err)
	}

	db.sql = conn
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.sql != nil {
		return db.sql.Close()
	}
	return nil
}
