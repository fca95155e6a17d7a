package sources

import (
	"context"
	"fmt"
	"iter"
	neturl "net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobwatch/internal/models"
	"jobwatch/internal/normalize"
	"jobwatch/pkg/httpclient"
)

// HTMLSource scrapes a listing page with three CSS selectors: one for the
// container of each posting, one for the title element inside it, and one for
// the link element. Containers missing either element are skipped.
type HTMLSource struct {
	url           string
	itemSelector  string
	titleSelector string
	urlSelector   string
	client        *httpclient.Client
}

func (s *HTMLSource) Name() string { return s.url }

func (s *HTMLSource) Jobs(ctx context.Context) iter.Seq2[models.Job, error] {
	return func(yield func(models.Job, error) bool) {
		resp, err := get(ctx, s.client, s.url)
		if err != nil {
			yield(models.Job{}, err)
			return
		}
		defer resp.Body.Close()

		doc, err := goquery.NewDocumentFromReader(resp.Body)
		if err != nil {
			yield(models.Job{}, fmt.Errorf("parse %s: %w", s.url, err))
			return
		}

		base, _ := neturl.Parse(s.url)

		doc.Find(s.itemSelector).EachWithBreak(func(_ int, item *goquery.Selection) bool {
			titleEl := item.Find(s.titleSelector).First()
			urlEl := item.Find(s.urlSelector).First()
			if titleEl.Length() == 0 || urlEl.Length() == 0 {
				return true
			}

			title := normalize.Text(titleEl.Text())
			href, _ := urlEl.Attr("href")
			href = s.resolve(base, href)

			if title == "" && href == "" {
				return true
			}
			return yield(models.Job{
				Title:  title,
				URL:    href,
				Source: s.url,
			}, nil)
		})
	}
}

// resolve turns a site-relative href into an absolute URL against the
// provider's base.
func (s *HTMLSource) resolve(base *neturl.URL, href string) string {
	if base == nil || !strings.HasPrefix(href, "/") {
		return href
	}
	ref, err := neturl.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
