package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const seenSchema = `
CREATE TABLE IF NOT EXISTS seen (
    id TEXT PRIMARY KEY,
    title TEXT,
    url TEXT,
    source TEXT,
    first_seen_utc TEXT
)`

// SQLiteStore persists seen entries in a single-file SQLite database. One
// connection, one commit per insert; the watcher is the only writer.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) the store at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open seen store: %w", err)
	}
	if _, err := db.Exec(seenSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init seen store: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) IsSeen(ctx context.Context, key string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM seen WHERE id = ?", key).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query seen store: %w", err)
	}
	return true, nil
}

func (s *SQLiteStore) MarkSeen(ctx context.Context, key, title, url, source string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO seen(id, title, url, source, first_seen_utc) VALUES(?,?,?,?,?)",
		key, title, url, source, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert seen entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
