// Package history keeps the calculation history of one session in
// memory. The store is append-only and insertion-ordered; a bounded
// retention evicts the oldest entries first.
package history

import (
	"sync"
	"time"

	"github.com/freand76/kalkon/internal/domain"
	"github.com/freand76/kalkon/internal/ports"
)

// MemoryStore is the in-memory history store. Safe for concurrent use.
type MemoryStore struct {
	mu        sync.Mutex
	entries   []domain.HistoryEntry
	retention int
	nextSeq   int
}

var _ ports.HistoryStore = (*MemoryStore)(nil)

// NewMemoryStore builds a store. A retention of zero keeps everything;
// a positive retention keeps only that many newest entries.
func NewMemoryStore(retention int) *MemoryStore {
	return &MemoryStore{retention: retention, nextSeq: 1}
}

// Append stores one entry, assigning it the next sequence number.
// Sequence numbers rise monotonically for the lifetime of the store,
// so they stay meaningful after eviction and Clear. A zero At is
// stamped with the current time.
func (s *MemoryStore) Append(entry domain.HistoryEntry) domain.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.Seq = s.nextSeq
	s.nextSeq++
	if entry.At.IsZero() {
		entry.At = time.Now()
	}

	s.entries = append(s.entries, entry)
	if s.retention > 0 && len(s.entries) > s.retention {
		overflow := len(s.entries) - s.retention
		s.entries = append(s.entries[:0], s.entries[overflow:]...)
	}
	return entry
}

// List returns all retained entries, oldest first. The slice is a copy;
// callers may keep or modify it.
func (s *MemoryStore) List() []domain.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Clear drops all entries. Sequence numbers keep rising afterwards.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}
