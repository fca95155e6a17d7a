package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"

	"jobwatch/internal/models"
	"jobwatch/internal/normalize"
	"jobwatch/pkg/httpclient"
)

// LeverSource reads a Lever postings API endpoint
// (api.lever.co/v0/postings/<org>?mode=json).
type LeverSource struct {
	url    string
	client *httpclient.Client
}

// leverPosting mirrors one entry of the top-level postings list. CreatedAt is
// an epoch-milliseconds number on the wire; it stays opaque here.
type leverPosting struct {
	Text             string      `json:"text"`
	HostedURL        string      `json:"hostedUrl"`
	DescriptionPlain string      `json:"descriptionPlain"`
	CreatedAt        json.Number `json:"createdAt"`
}

func (s *LeverSource) Name() string { return s.url }

func (s *LeverSource) Jobs(ctx context.Context) iter.Seq2[models.Job, error] {
	return func(yield func(models.Job, error) bool) {
		resp, err := get(ctx, s.client, s.url)
		if err != nil {
			yield(models.Job{}, err)
			return
		}
		defer resp.Body.Close()

		var postings []leverPosting
		if err := json.NewDecoder(resp.Body).Decode(&postings); err != nil {
			yield(models.Job{}, fmt.Errorf("parse %s: %w", s.url, err))
			return
		}

		for _, p := range postings {
			job := models.Job{
				Title:     normalize.Text(p.Text),
				URL:       p.HostedURL,
				Summary:   normalize.Text(p.DescriptionPlain),
				Published: p.CreatedAt.String(),
				Source:    s.url,
			}
			if job.Title == "" && job.URL == "" {
				continue
			}
			if !yield(job, nil) {
				return
			}
		}
	}
}
