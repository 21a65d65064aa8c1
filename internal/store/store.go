// Package store persists behavior snapshots and the credit transaction
// audit log in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS behavior_snapshots (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	sequence   INTEGER NOT NULL,
	timestamp  TEXT    NOT NULL,
	data       TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_behavior_snapshots_sequence ON behavior_snapshots (sequence);

CREATE TABLE IF NOT EXISTS credit_transactions (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	amount        INTEGER NOT NULL,
	type          TEXT    NOT NULL,
	reason        TEXT    NOT NULL,
	balance_after INTEGER NOT NULL,
	created_at    TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_credit_transactions_created_at ON credit_transactions (created_at);
`

// Store holds the database handle and hands out repositories.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies the recommended
// pragmas, and creates the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// BehaviorRepo returns the snapshot + credit ledger repository backed by
// this store. It satisfies behavior.Persister.
func (s *Store) BehaviorRepo() *BehaviorRepo {
	return &BehaviorRepo{db: s.db, keep: snapshotKeep}
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. ENGAGE_DB environment variable
// 2. $XDG_DATA_HOME/engage/engage.db
// 3. ~/.local/share/engage/engage.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("ENGAGE_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "engage", "engage.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
