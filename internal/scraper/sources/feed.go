package sources

import (
	"context"
	"iter"

	"github.com/mmcdole/gofeed"

	"jobwatch/internal/models"
	"jobwatch/internal/normalize"
	"jobwatch/pkg/httpclient"
)

// FeedSource reads a syndicated feed (RSS/Atom) and emits one record per
// entry. Parsing is best-effort: a document gofeed cannot make sense of
// yields zero records instead of failing the provider.
type FeedSource struct {
	url    string
	client *httpclient.Client
}

func (s *FeedSource) Name() string { return s.url }

func (s *FeedSource) Jobs(ctx context.Context) iter.Seq2[models.Job, error] {
	return func(yield func(models.Job, error) bool) {
		resp, err := get(ctx, s.client, s.url)
		if err != nil {
			yield(models.Job{}, err)
			return
		}
		defer resp.Body.Close()

		feed, err := gofeed.NewParser().Parse(resp.Body)
		if err != nil {
			return
		}

		for _, item := range feed.Items {
			job := models.Job{
				Title:     normalize.Text(item.Title),
				URL:       item.Link,
				Summary:   normalize.Text(item.Description),
				Published: item.Published,
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
