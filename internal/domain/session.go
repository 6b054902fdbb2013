package domain

import "time"

// Session identifies one process run in the persistent session log.
type Session struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
}

// SessionEntry is one committed expression mirrored to the session log.
// Result is the rendered text at commit time, so the log stays readable
// without replaying the expression.
type SessionEntry struct {
	SessionID  string    `json:"session_id"`
	Expression string    `json:"expression"`
	Result     string    `json:"result"`
	At         time.Time `json:"at"`
}
