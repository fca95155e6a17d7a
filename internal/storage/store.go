package storage

import "context"

// SeenStore is the durable dedup record set. Keys are the normalize.Hash of a
// posting's URL (or title when the URL is empty).
type SeenStore interface {
	// IsSeen reports whether key has ever been marked. Absence is a plain
	// false, never an error.
	IsSeen(ctx context.Context, key string) (bool, error)

	// MarkSeen inserts the entry if absent and records the first-seen time.
	// Marking an existing key is a no-op, not an error.
	MarkSeen(ctx context.Context, key, title, url, source string) error

	Close() error
}
