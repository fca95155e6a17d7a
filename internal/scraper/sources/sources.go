// Package sources holds one adapter per provider type. Every adapter turns a
// provider configuration into a lazy, finite sequence of job records.
package sources

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/http"

	"jobwatch/internal/config"
	"jobwatch/internal/models"
	"jobwatch/pkg/httpclient"
)

// ErrUnknownType reports a provider type outside the closed set.
var ErrUnknownType = errors.New("unknown provider type")

// Source produces job records from one configured provider.
type Source interface {
	// Name identifies the provider in logs and in each record's Source field.
	Name() string

	// Jobs yields records one at a time. The sequence is finite, single-use
	// and single-consumer. A non-nil error ends the provider's contribution;
	// no further records follow it.
	Jobs(ctx context.Context) iter.Seq2[models.Job, error]
}

// New selects the adapter for cfg.Type.
func New(cfg config.ProviderConfig, client *httpclient.Client) (Source, error) {
	switch cfg.Type {
	case "feed":
		return &FeedSource{url: cfg.URL, client: client}, nil
	case "html":
		return &HTMLSource{
			url:           cfg.URL,
			itemSelector:  cfg.ItemSelector,
			titleSelector: cfg.TitleSelector,
			urlSelector:   cfg.URLSelector,
			client:        client,
		}, nil
	case "greenhouse":
		return &GreenhouseSource{url: cfg.URL, client: client}, nil
	case "lever":
		return &LeverSource{url: cfg.URL, client: client}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, cfg.Type)
	}
}

// get fetches url and enforces a success status. Callers own the body on a
// nil error.
func get(ctx context.Context, client *httpclient.Client, url string) (*http.Response, error) {
	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}
	return resp, nil
}
