package domain

import "time"

// HistoryEntry is one committed expression together with its value.
// Seq rises monotonically for the life of the store, so it keeps
// identifying an entry even after older ones have been evicted.
type HistoryEntry struct {
	Seq        int
	Expression string
	Value      Value
	At         time.Time
}
