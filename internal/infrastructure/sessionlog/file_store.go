package sessionlog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/freand76/kalkon/internal/domain"
	"github.com/freand76/kalkon/internal/ports"
)

// FileStore appends the session log to JSONL files under one
// directory, sessions.jsonl and entries.jsonl. It is the fallback when
// the SQLite store cannot be opened.
type FileStore struct {
	mu        sync.Mutex
	dir       string
	sessionID string
}

var _ ports.SessionLog = (*FileStore)(nil)

// NewFileStore builds a store rooted at dir. Nothing is written until
// the first Record call.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) sessionsPath() string {
	return filepath.Join(f.dir, "sessions.jsonl")
}

func (f *FileStore) entriesPath() string {
	return filepath.Join(f.dir, "entries.jsonl")
}

// Record appends one expression/result pair to the current session.
func (f *FileStore) Record(expression, result string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(f.dir, domain.DirectoryPermissions); err != nil {
		return err
	}
	if err := f.ensureSession(); err != nil {
		return err
	}
	return appendLine(f.entriesPath(), domain.SessionEntry{
		SessionID:  f.sessionID,
		Expression: expression,
		Result:     result,
		At:         time.Now(),
	})
}

func (f *FileStore) ensureSession() error {
	if f.sessionID != "" {
		return nil
	}
	sess := domain.Session{ID: uuid.NewString(), StartedAt: time.Now()}
	if err := appendLine(f.sessionsPath(), sess); err != nil {
		return err
	}
	f.sessionID = sess.ID
	return nil
}

func appendLine(path string, v interface{}) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.SecureFilePermissions)
	if err != nil {
		return err
	}
	defer file.Close()
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = file.Write(data)
	return err
}

// Sessions lists recorded sessions, newest first. Lines that do not
// parse are skipped; the log is best-effort by nature.
func (f *FileStore) Sessions(limit int) ([]domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.sessionsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var sessions []domain.Session
	for _, line := range bytes.Split(bytes.TrimSpace(data), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var sess domain.Session
		if err := json.Unmarshal(line, &sess); err == nil {
			sessions = append(sessions, sess)
		}
	}
	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

// Entries returns one session's transcript, oldest first.
func (f *FileStore) Entries(sessionID string, limit int) ([]domain.SessionEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.entriesPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.SessionEntry
	for _, line := range bytes.Split(bytes.TrimSpace(data), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var entry domain.SessionEntry
		if err := json.Unmarshal(line, &entry); err != nil || entry.SessionID != sessionID {
			continue
		}
		entries = append(entries, entry)
		if limit > 0 && len(entries) == limit {
			break
		}
	}
	return entries, nil
}

// Clear removes both log files. The current session is restarted by
// the next Record.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, path := range []string{f.sessionsPath(), f.entriesPath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	f.sessionID = ""
	return nil
}

// Close is a no-op; files are opened per write.
func (f *FileStore) Close() error {
	return nil
}

// Path returns the directory holding the log files.
func (f *FileStore) Path() string {
	return f.dir
}
