package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	supabase "github.com/nedpals/supabase-go"

	"jobwatch/internal/models"
)

// SupabaseStore keeps seen entries in a hosted Postgres table through the
// Supabase SDK. Useful when several machines share one watcher config.
type SupabaseStore struct {
	client *supabase.Client
	table  string
}

// NewSupabaseStore connects to the project at supabaseURL. The backing table
// must exist with the SeenEntry columns and a primary key on id.
func NewSupabaseStore(supabaseURL, supabaseKey string) (*SupabaseStore, error) {
	if supabaseURL == "" || supabaseKey == "" {
		return nil, fmt.Errorf("supabase URL and key must be provided via SUPABASE_URL / SUPABASE_KEY")
	}
	return &SupabaseStore{
		client: supabase.CreateClient(supabaseURL, supabaseKey),
		table:  "seen",
	}, nil
}

func (s *SupabaseStore) IsSeen(ctx context.Context, key string) (bool, error) {
	var rows []models.SeenEntry
	err := s.client.DB.From(s.table).Select("id").Eq("id", key).Execute(&rows)
	if err != nil {
		return false, fmt.Errorf("query seen store: %w", err)
	}
	return len(rows) > 0, nil
}

func (s *SupabaseStore) MarkSeen(ctx context.Context, key, title, url, source string) error {
	entry := models.SeenEntry{
		ID:        key,
		Title:     title,
		URL:       url,
		Source:    source,
		FirstSeen: time.Now().UTC(),
	}

	var inserted []models.SeenEntry
	err := s.client.DB.From(s.table).Insert(entry).Execute(&inserted)
	if err != nil {
		// Concurrent first sightings race to the same primary key; losing is
		// equivalent to having been marked already.
		if strings.Contains(err.Error(), "duplicate key") {
			return nil
		}
		return fmt.Errorf("insert seen entry: %w", err)
	}
	return nil
}

func (s *SupabaseStore) Close() error { return nil }
