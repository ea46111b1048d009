// Package sqlite provides a durable core.DocumentStore backed by a local
// SQLite database (modernc.org/sqlite, pure Go). It persists session
// documents across process restarts, which is what makes the planner
// registry a durable index rather than a per-turn scratch map.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hupe1980/deepagent/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	session_id TEXT NOT NULL,
	path       TEXT NOT NULL,
	content    TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (session_id, path)
);

CREATE INDEX IF NOT EXISTS idx_documents_session ON documents(session_id);
`

// Store implements core.DocumentStore on top of a SQLite database.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at path and ensures the schema exists.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// WAL mode for concurrent reads.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable wal mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Save upserts the full document set for a session in one transaction.
// Paths absent from docs are left untouched, matching the core's
// never-delete document lifecycle.
func (s *Store) Save(sessionID string, docs core.Documents) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO documents (session_id, path, content, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(session_id, path) DO UPDATE SET
			content = excluded.content,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, path := range docs.Keys() {
		if _, err := stmt.Exec(sessionID, path, docs[path], now); err != nil {
			return fmt.Errorf("upsert document %q: %w", path, err)
		}
	}

	return tx.Commit()
}

// Load returns all documents stored for a session. Unknown sessions yield
// an empty, non-nil set.
func (s *Store) Load(sessionID string) (core.Documents, error) {
	rows, err := s.db.Query(
		"SELECT path, content FROM documents WHERE session_id = ? ORDER BY path",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	docs := core.Documents{}
	for rows.Next() {
		var path, content string
		if err := rows.Scan(&path, &content); err != nil {
			return nil, fmt.Errorf("scan document row: %w", err)
		}
		docs[path] = content
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document rows: %w", err)
	}

	return docs, nil
}
