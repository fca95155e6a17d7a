package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jobwatch/internal/config"
	"jobwatch/internal/normalize"
	"jobwatch/internal/storage"
	"jobwatch/pkg/httpclient"
)

type fakeNotifier struct {
	subjects []string
	bodies   []string
	err      error
}

func (f *fakeNotifier) Notify(_ context.Context, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, body)
	return nil
}

func feedServer(t *testing.T, items string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?><rss version="2.0"><channel><title>Jobs</title>` + items + `</channel></rss>`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestWatcher(t *testing.T, notifier *fakeNotifier) (*Watcher, *storage.SQLiteStore) {
	t.Helper()
	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "seen.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	w := New(store, notifier, httpclient.New("jobwatch-test", 5*time.Second), zap.NewNop())
	w.pause = time.Millisecond
	return w, store
}

func TestRunDigestsOnlyUnseenMatches(t *testing.T) {
	srv := feedServer(t, `
<item><title>Python Intern</title><link>https://example.com/a</link><description>python internship</description></item>
<item><title>React Intern</title><link>https://example.com/b</link><description>react internship</description></item>`)

	notifier := &fakeNotifier{}
	w, store := newTestWatcher(t, notifier)
	ctx := context.Background()

	// Entry B was sighted in a prior run.
	require.NoError(t, store.MarkSeen(ctx, normalize.Hash("https://example.com/b"), "React Intern", "https://example.com/b", srv.URL))

	cfg := &config.Config{
		NotifyEmail:   "me@example.com",
		LevelKeywords: []string{"intern"},
		SkillKeywords: []string{"python", "react"},
		Providers:     []config.ProviderConfig{{Type: "feed", URL: srv.URL}},
	}
	require.NoError(t, w.Run(ctx, cfg))

	require.Len(t, notifier.bodies, 1)
	assert.Equal(t, "Job Watcher: 1 new match(es)", notifier.subjects[0])
	assert.Contains(t, notifier.bodies[0], "Python Intern")
	assert.NotContains(t, notifier.bodies[0], "React Intern")

	for _, url := range []string{"https://example.com/a", "https://example.com/b"} {
		seen, err := store.IsSeen(ctx, normalize.Hash(url))
		require.NoError(t, err)
		assert.True(t, seen, "store must hold %s after the run", url)
	}
}

func TestRunMarksNonMatchingJobsSeen(t *testing.T) {
	srv := feedServer(t, `
<item><title>Senior Architect</title><link>https://example.com/nope</link></item>`)

	notifier := &fakeNotifier{}
	w, store := newTestWatcher(t, notifier)
	ctx := context.Background()

	cfg := &config.Config{
		NotifyEmail:     "me@example.com",
		IncludeKeywords: []string{"intern"},
		Providers:       []config.ProviderConfig{{Type: "feed", URL: srv.URL}},
	}
	require.NoError(t, w.Run(ctx, cfg))

	assert.Empty(t, notifier.bodies, "no matches means no notification")

	// Sighted postings are recorded even when they fail the filter, so a
	// later filter change cannot re-surface them.
	seen, err := store.IsSeen(ctx, normalize.Hash("https://example.com/nope"))
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestRunIsolatesProviderFailures(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(broken.Close)

	working := feedServer(t, `
<item><title>Python Intern</title><link>https://example.com/ok</link></item>`)

	notifier := &fakeNotifier{}
	w, _ := newTestWatcher(t, notifier)

	cfg := &config.Config{
		NotifyEmail:     "me@example.com",
		IncludeKeywords: []string{"python"},
		Providers: []config.ProviderConfig{
			{Type: "feed", URL: broken.URL},
			{Type: "feed", URL: working.URL},
		},
	}
	require.NoError(t, w.Run(context.Background(), cfg), "one dead provider must not abort the run")

	require.Len(t, notifier.bodies, 1)
	assert.Contains(t, notifier.bodies[0], "Python Intern")
}

func TestRunSkipsUnknownProviderType(t *testing.T) {
	working := feedServer(t, `
<item><title>Python Intern</title><link>https://example.com/ok2</link></item>`)

	notifier := &fakeNotifier{}
	w, _ := newTestWatcher(t, notifier)

	cfg := &config.Config{
		NotifyEmail:     "me@example.com",
		IncludeKeywords: []string{"python"},
		Providers: []config.ProviderConfig{
			{Type: "usenet", URL: "nntp://example.com"},
			{Type: "feed", URL: working.URL},
		},
	}
	require.NoError(t, w.Run(context.Background(), cfg))
	require.Len(t, notifier.bodies, 1)
}

func TestRunNotifyFailureSurfaces(t *testing.T) {
	srv := feedServer(t, `
<item><title>Python Intern</title><link>https://example.com/n1</link></item>`)

	notifier := &fakeNotifier{err: errors.New("smtp down")}
	w, _ := newTestWatcher(t, notifier)

	cfg := &config.Config{
		NotifyEmail:     "me@example.com",
		IncludeKeywords: []string{"python"},
		Providers:       []config.ProviderConfig{{Type: "feed", URL: srv.URL}},
	}
	err := w.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
}

func TestRunDedupByTitleWhenURLEmpty(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<div class="job"><h2>Title Only Intern</h2><a href="">python</a></div>`))
	}))
	t.Cleanup(page.Close)

	notifier := &fakeNotifier{}
	w, store := newTestWatcher(t, notifier)
	ctx := context.Background()

	cfg := &config.Config{
		NotifyEmail: "me@example.com",
		Providers: []config.ProviderConfig{{
			Type:          "html",
			URL:           page.URL,
			ItemSelector:  "div.job",
			TitleSelector: "h2",
			URLSelector:   "a",
		}},
	}
	require.NoError(t, w.Run(ctx, cfg))

	seen, err := store.IsSeen(ctx, normalize.Hash("Title Only Intern"))
	require.NoError(t, err)
	assert.True(t, seen, "records without a URL key on the title hash")
}
