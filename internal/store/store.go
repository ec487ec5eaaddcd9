// Package store keeps the client's local state in a SQLite file:
// the cached current-user session that survives restarts, playing
// the role browser storage played for the web client.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// ErrNoSession indicates no user is cached locally.
var ErrNoSession = errors.New("store: no cached session")

// SessionRecord is the locally cached current user.
type SessionRecord struct {
	UserID int64
	Name   string
	Email  string
	Role   int
}

// Store wraps the SQLite handle.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS current_session (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	user_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	role INTEGER NOT NULL,
	saved_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// Open creates a Store at dsn, applying pragmas and the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSession replaces the cached current user.
func (s *Store) SaveSession(ctx context.Context, rec SessionRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO current_session (id, user_id, name, email, role)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			name = excluded.name,
			email = excluded.email,
			role = excluded.role,
			saved_at = datetime('now')
	`, rec.UserID, rec.Name, rec.Email, rec.Role)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Session returns the cached current user, or ErrNoSession.
func (s *Store) Session(ctx context.Context) (SessionRecord, error) {
	var rec SessionRecord
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, name, email, role FROM current_session WHERE id = 1
	`)
	if err := row.Scan(&rec.UserID, &rec.Name, &rec.Email, &rec.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SessionRecord{}, ErrNoSession
		}
		return SessionRecord{}, fmt.Errorf("load session: %w", err)
	}
	return rec, nil
}

// ClearSession removes the cached current user. Clearing an empty
// store is not an error.
func (s *Store) ClearSession(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM current_session`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// applyPragmas configures SQLite for single-user access.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath returns dataDir/ovaterm.db, creating dataDir when
// needed.
func DefaultDBPath(dataDir string) (string, error) {
	p := filepath.Join(dataDir, "ovaterm.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't
// exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
