// Package scraper drives one watcher run: providers in, digest out.
package scraper

import (
	"cmp"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"jobwatch/internal/config"
	"jobwatch/internal/models"
	"jobwatch/internal/normalize"
	"jobwatch/internal/notify"
	"jobwatch/internal/scraper/sources"
	"jobwatch/internal/storage"
	"jobwatch/pkg/httpclient"
)

// DefaultPause is the delay between processed records; keeps bursts off the
// store and the remote sources.
const DefaultPause = 100 * time.Millisecond

// Watcher orchestrates a run: every provider's records are checked against
// the seen store, filtered, and the new matches go out as one digest.
// Providers are processed sequentially and fail independently.
type Watcher struct {
	store    storage.SeenStore
	notifier notify.Notifier
	client   *httpclient.Client
	logger   *zap.Logger
	pause    time.Duration
}

func New(store storage.SeenStore, notifier notify.Notifier, client *httpclient.Client, logger *zap.Logger) *Watcher {
	return &Watcher{
		store:    store,
		notifier: notifier,
		client:   client,
		logger:   logger,
		pause:    DefaultPause,
	}
}

// Run processes every provider in cfg once and sends the digest when at
// least one new record matched. Provider failures are logged and skipped;
// only a notification failure is returned.
func (w *Watcher) Run(ctx context.Context, cfg *config.Config) error {
	filter := NewFilter(cfg)

	var matches []models.Job
	for _, provider := range cfg.Providers {
		newMatches, err := w.processProvider(ctx, provider, filter)
		matches = append(matches, newMatches...)
		if err != nil {
			w.logger.Warn("provider failed",
				zap.String("provider", cmp.Or(provider.URL, provider.Type)),
				zap.Error(err))
		}
	}

	if len(matches) == 0 {
		w.logger.Info("no new matches")
		return nil
	}

	subject := fmt.Sprintf("Job Watcher: %d new match(es)", len(matches))
	if err := w.notifier.Notify(ctx, subject, notify.BuildDigest(matches)); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	w.logger.Info("digest sent", zap.Int("matches", len(matches)))
	return nil
}

// processProvider walks one provider's records. Matches gathered before a
// failure are kept: a source that dies halfway still contributes what it
// produced.
func (w *Watcher) processProvider(ctx context.Context, provider config.ProviderConfig, filter *Filter) ([]models.Job, error) {
	src, err := sources.New(provider, w.client)
	if err != nil {
		return nil, err
	}

	var matches []models.Job
	for job, err := range src.Jobs(ctx) {
		if err != nil {
			return matches, err
		}

		key := normalize.Hash(cmp.Or(job.URL, job.Title))
		seen, err := w.store.IsSeen(ctx, key)
		if err != nil {
			return matches, err
		}
		if seen {
			continue
		}

		if filter.Match(job) {
			matches = append(matches, job)
		}

		// Marked regardless of the filter outcome: a posting sighted once is
		// never re-evaluated, even after a filter change.
		if err := w.store.MarkSeen(ctx, key, job.Title, job.URL, job.Source); err != nil {
			return matches, err
		}

		select {
		case <-ctx.Done():
			return matches, ctx.Err()
		case <-time.After(w.pause):
		}
	}
	return matches, nil
}
