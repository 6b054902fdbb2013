// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). Following the Ports and Adapters (Hexagonal) pattern,
// these interfaces allow the application to remain independent of specific
// implementations like the expression engine, SQLite, or CLI frameworks.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., Evaluator, HistoryStore)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/freand76/kalkon/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.kalkon/config.yaml. Path names
// the source for diagnostics without touching it.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
	Path() string
}

// Evaluator turns one statement into a value. It is stateless: the
// variable scope is passed in per call and never modified, so the
// session layer stays in charge of when an assignment takes effect.
// User mistakes come back as typed errors carrying a 1-based column
// where one applies.
type Evaluator interface {
	Evaluate(expression string, scope map[string]domain.Value) (domain.Evaluation, error)
}

// HistoryStore keeps the committed expressions of the running session
// in insertion order. Append stamps the entry with its sequence number;
// a bounded store silently drops the oldest entries beyond retention.
type HistoryStore interface {
	Append(entry domain.HistoryEntry) domain.HistoryEntry
	List() []domain.HistoryEntry
	Clear()
}

// SessionLog persists committed expression/result pairs across runs.
// An implementation owns its session identity and creates the session
// record lazily on the first write, so read-only invocations never
// litter the log with empty sessions.
type SessionLog interface {
	Record(expression, result string) error
	Sessions(limit int) ([]domain.Session, error)
	Entries(sessionID string, limit int) ([]domain.SessionEntry, error)
	Clear() error
	Close() error
	Path() string
}

// ConfirmationPrompter handles interactive user confirmations for destructive
// operations, such as wiping the session log.
type ConfirmationPrompter interface {
	Confirm(question string) (bool, error)
	Enabled() bool
}

// Clipboard places rendered results on the system clipboard.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
