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

// GreenhouseSource reads a Greenhouse board API endpoint
// (boards-api.greenhouse.io/v1/boards/<org>/jobs).
type GreenhouseSource struct {
	url    string
	client *httpclient.Client
}

// greenhouseJob mirrors one entry of the board's jobs list.
type greenhouseJob struct {
	Title       string `json:"title"`
	AbsoluteURL string `json:"absolute_url"`
	Content     string `json:"content"`
	UpdatedAt   string `json:"updated_at"`
}

type greenhouseResponse struct {
	Jobs []greenhouseJob `json:"jobs"`
}

func (s *GreenhouseSource) Name() string { return s.url }

func (s *GreenhouseSource) Jobs(ctx context.Context) iter.Seq2[models.Job, error] {
	return func(yield func(models.Job, error) bool) {
		resp, err := get(ctx, s.client, s.url)
		if err != nil {
			yield(models.Job{}, err)
			return
		}
		defer resp.Body.Close()

		var board greenhouseResponse
		if err := json.NewDecoder(resp.Body).Decode(&board); err != nil {
			yield(models.Job{}, fmt.Errorf("parse %s: %w", s.url, err))
			return
		}

		for _, gj := range board.Jobs {
			job := models.Job{
				Title:     normalize.Text(gj.Title),
				URL:       gj.AbsoluteURL,
				Summary:   normalize.Text(gj.Content),
				Published: gj.UpdatedAt,
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
