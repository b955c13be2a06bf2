// Package store persists the revision engine in SQLite. Rows are plain
// sqlx-mapped structs; every multi-row mutation runs in one transaction
// and card updates are guarded by an optimistic version column.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS weak_areas (
	id            TEXT PRIMARY KEY,
	child_id      TEXT NOT NULL,
	topic         TEXT NOT NULL,
	subject       TEXT NOT NULL,
	grade_level   TEXT NOT NULL,
	category      TEXT NOT NULL DEFAULT '',
	error_count   INTEGER NOT NULL DEFAULT 0,
	attempt_count INTEGER NOT NULL DEFAULT 0,
	last_error_at TIMESTAMP NOT NULL,
	is_resolved   INTEGER NOT NULL DEFAULT 0,
	resolved_at   TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_weak_areas_child ON weak_areas (child_id, is_resolved);

CREATE TABLE IF NOT EXISTS cards (
	id                 TEXT PRIMARY KEY,
	child_id           TEXT NOT NULL,
	weak_area_id       TEXT NOT NULL REFERENCES weak_areas (id),
	repetitions        INTEGER NOT NULL DEFAULT 0,
	ease_factor        REAL NOT NULL,
	interval_days      INTEGER NOT NULL DEFAULT 0,
	next_review_at     TIMESTAMP NOT NULL,
	total_reviews      INTEGER NOT NULL DEFAULT 0,
	successful_reviews INTEGER NOT NULL DEFAULT 0,
	is_mastered        INTEGER NOT NULL DEFAULT 0,
	cached_question    TEXT,
	cached_answer      TEXT,
	cached_at          TIMESTAMP,
	version            INTEGER NOT NULL DEFAULT 1,
	created_at         TIMESTAMP NOT NULL,
	updated_at         TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cards_due ON cards (child_id, is_mastered, next_review_at);
CREATE INDEX IF NOT EXISTS idx_cards_weak_area ON cards (weak_area_id, is_mastered);

CREATE TABLE IF NOT EXISTS review_logs (
	id                 TEXT PRIMARY KEY,
	card_id            TEXT NOT NULL REFERENCES cards (id),
	child_id           TEXT NOT NULL,
	question           TEXT NOT NULL,
	expected_answer    TEXT NOT NULL,
	child_answer       TEXT NOT NULL,
	quality            INTEGER NOT NULL,
	feedback           TEXT NOT NULL DEFAULT '',
	time_spent_seconds INTEGER NOT NULL DEFAULT 0,
	reviewed_at        TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_review_logs_child ON review_logs (child_id, reviewed_at);
`

// SQLiteStore implements revision.Store on SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at dsn, applies pragmas and
// creates missing tables.
func Open(dsn string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func applyPragmas(db *sqlx.DB) error {
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
// 1. SCHOOLARIS_DB environment variable
// 2. $XDG_DATA_HOME/schoolaris/revision.db
// 3. ~/.local/share/schoolaris/revision.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("SCHOOLARIS_DB"); p != "" {
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

	p := filepath.Join(dataHome, "schoolaris", "revision.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
