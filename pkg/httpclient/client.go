package httpclient

import (
	"context"
	"net/http"
	"time"
)

// Client wraps http.Client with the watcher's declared User-Agent and a
// fixed per-request timeout shared by every network-backed source.
type Client struct {
	client    *http.Client
	userAgent string
}

func New(userAgent string, timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// Get issues a GET with the configured User-Agent. Callers own the response
// body.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	return c.client.Do(req)
}
