package sessionlog_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freand76/kalkon/internal/infrastructure/sessionlog"
)

func newSQLiteStore(t *testing.T) *sessionlog.SQLiteStore {
	t.Helper()
	store, err := sessionlog.NewSQLiteStore(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_RecordRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)

	require.NoError(t, store.Record("1+1", "2"))
	require.NoError(t, store.Record("7%3", "1"))

	sessions, err := store.Sessions(0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.NotEmpty(t, sessions[0].ID)
	assert.False(t, sessions[0].StartedAt.IsZero())

	entries, err := store.Entries(sessions[0].ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "1+1", entries[0].Expression)
	assert.Equal(t, "2", entries[0].Result)
	assert.Equal(t, "7%3", entries[1].Expression)
	assert.Equal(t, "1", entries[1].Result)
}

func TestSQLiteStore_LazySessionCreation(t *testing.T) {
	store := newSQLiteStore(t)

	sessions, err := store.Sessions(0)
	require.NoError(t, err)
	assert.Empty(t, sessions, "opening the store must not create a session")
}

func TestSQLiteStore_EntriesLimit(t *testing.T) {
	store := newSQLiteStore(t)
	for _, expr := range []string{"1", "2", "3", "4"} {
		require.NoError(t, store.Record(expr, expr))
	}

	sessions, err := store.Sessions(0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	entries, err := store.Entries(sessions[0].ID, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "1", entries[0].Expression, "transcript stays oldest first")
}

func TestSQLiteStore_Clear(t *testing.T) {
	store := newSQLiteStore(t)
	require.NoError(t, store.Record("1+1", "2"))

	require.NoError(t, store.Clear())

	sessions, err := store.Sessions(0)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	require.NoError(t, store.Record("5*5", "25"))
	sessions, err = store.Sessions(0)
	require.NoError(t, err)
	require.Len(t, sessions, 1, "a fresh session starts after Clear")
}

func TestSQLiteStore_ReopenSeesPersistedSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")

	store, err := sessionlog.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Record("1+1", "2"))
	require.NoError(t, store.Close())

	reopened, err := sessionlog.NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	sessions, err := reopened.Sessions(0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	require.NoError(t, reopened.Record("2+2", "4"))
	sessions, err = reopened.Sessions(0)
	require.NoError(t, err)
	assert.Len(t, sessions, 2, "a reopened store gets its own session")
}
