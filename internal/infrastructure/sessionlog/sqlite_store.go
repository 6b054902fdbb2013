// Package sessionlog persists expression/result pairs across runs so
// earlier sessions can be reviewed with the log command. The SQLite
// store is the default; the JSONL file store takes over when the
// database cannot be opened.
package sessionlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/freand76/kalkon/internal/domain"
	"github.com/freand76/kalkon/internal/ports"
)

// SQLiteStore persists the session log in a SQLite database.
type SQLiteStore struct {
	mu        sync.Mutex
	db        *sql.DB
	path      string
	sessionID string
}

var _ ports.SessionLog = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) the database at path and ensures
// the schema. The session row itself is not written until the first
// Record call, so read-only commands leave no empty sessions behind.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("create session log directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session log: %w", err)
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare session log schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL REFERENCES sessions(id),
		expression TEXT NOT NULL,
		result TEXT NOT NULL,
		at TEXT NOT NULL
	);`)
	return err
}

// Record appends one expression/result pair to the current session.
func (s *SQLiteStore) Record(expression, result string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureSession(); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`INSERT INTO entries (session_id, expression, result, at) VALUES (?, ?, ?, ?)`,
		s.sessionID, expression, result, time.Now().Format(time.RFC3339),
	)
	return err
}

func (s *SQLiteStore) ensureSession() error {
	if s.sessionID != "" {
		return nil
	}
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, started_at) VALUES (?, ?)`,
		id, time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}
	s.sessionID = id
	return nil
}

// Sessions lists recorded sessions, newest first.
func (s *SQLiteStore) Sessions(limit int) ([]domain.Session, error) {
	builder := strings.Builder{}
	builder.WriteString("SELECT id, started_at FROM sessions ORDER BY datetime(started_at) DESC, id DESC")
	var args []interface{}
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		var sess domain.Session
		var ts string
		if err := rows.Scan(&sess.ID, &ts); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			sess.StartedAt = t
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// Entries returns one session's transcript, oldest first.
func (s *SQLiteStore) Entries(sessionID string, limit int) ([]domain.SessionEntry, error) {
	builder := strings.Builder{}
	builder.WriteString("SELECT session_id, expression, result, at FROM entries WHERE session_id = ? ORDER BY id")
	args := []interface{}{sessionID}
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.SessionEntry
	for rows.Next() {
		var entry domain.SessionEntry
		var ts string
		if err := rows.Scan(&entry.SessionID, &entry.Expression, &entry.Result, &ts); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			entry.At = t
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Clear deletes every session and its entries. The current session is
// restarted by the next Record.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec("DELETE FROM entries"); err != nil {
		return err
	}
	if _, err := s.db.Exec("DELETE FROM sessions"); err != nil {
		return err
	}
	s.sessionID = ""
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the database path.
func (s *SQLiteStore) Path() string {
	return s.path
}
