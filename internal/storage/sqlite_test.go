package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobwatch.db")
	store, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestSQLiteStoreMarkAndCheck(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	seen, err := store.IsSeen(ctx, "key-a")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, store.MarkSeen(ctx, "key-a", "Python Intern", "https://example.com/1", "feedsrc"))

	seen, err = store.IsSeen(ctx, "key-a")
	require.NoError(t, err)
	assert.True(t, seen)

	seen, err = store.IsSeen(ctx, "key-b")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestSQLiteStoreMarkIsIdempotent(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.MarkSeen(ctx, "key-a", "First Title", "https://example.com/1", "src"))
	require.NoError(t, store.MarkSeen(ctx, "key-a", "Second Title", "https://example.com/other", "src2"))

	var count int
	var title, firstSeen string
	row := store.db.QueryRow("SELECT COUNT(*) FROM seen WHERE id = ?", "key-a")
	require.NoError(t, row.Scan(&count))
	assert.Equal(t, 1, count, "re-marking must not create a second row")

	row = store.db.QueryRow("SELECT title, first_seen_utc FROM seen WHERE id = ?", "key-a")
	require.NoError(t, row.Scan(&title, &firstSeen))
	assert.Equal(t, "First Title", title, "the first sighting wins")
	assert.NotEmpty(t, firstSeen)
}

func TestSQLiteStorePersistsAcrossOpens(t *testing.T) {
	store, path := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.MarkSeen(ctx, "key-a", "t", "u", "s"))
	require.NoError(t, store.Close())

	// Reopening an existing store must be a no-op for the schema and keep
	// the rows.
	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	seen, err := reopened.IsSeen(ctx, "key-a")
	require.NoError(t, err)
	assert.True(t, seen)
}
