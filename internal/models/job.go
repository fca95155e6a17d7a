package models

import "time"

// Job is one posting as discovered from a provider. Title and Summary are
// whitespace-normalized by the adapter that produced the record; Published is
// whatever timestamp string the source supplied and is never parsed.
type Job struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Summary   string `json:"summary,omitempty"`
	Published string `json:"published,omitempty"`
	Source    string `json:"source"`
}

// SeenEntry is a durable dedup record. ID is the hash of the posting's URL,
// or of its title when the URL is empty.
type SeenEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Source    string    `json:"source"`
	FirstSeen time.Time `json:"first_seen_utc"`
}
