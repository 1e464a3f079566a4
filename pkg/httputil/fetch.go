package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxFixtureBytes bounds the size of a fetched fixture body.
const maxFixtureBytes = 64 << 20

// Fetcher downloads fixture bodies over HTTP with caching and retry.
// A nil cache disables caching; fetches then always hit the network.
type Fetcher struct {
	Client *http.Client
	Cache  *Cache
}

// NewFetcher creates a Fetcher with a 30 second request timeout and the
// given cache (which may be nil).
func NewFetcher(cache *Cache) *Fetcher {
	return &Fetcher{
		Client: &http.Client{Timeout: 30 * time.Second},
		Cache:  cache,
	}
}

// Fetch returns the body at url, from the cache when fresh. Network
// errors, 5xx responses and 429 rate limits are retried with exponential
// backoff; other non-200 responses fail immediately.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if f.Cache != nil {
		if body, ok, err := f.Cache.Get(url); err == nil && ok {
			return body, nil
		}
	}

	var body []byte
	err := RetryWithBackoff(ctx, func() error {
		var err error
		body, err = f.get(ctx, url)
		return err
	})
	if err != nil {
		return nil, err
	}

	if f.Cache != nil {
		// A failed cache write only costs a re-download next time.
		_ = f.Cache.Set(url, body)
	}
	return body, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client().Do(req)
	if err != nil {
		return nil, &RetryableError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, &RetryableError{Err: fmt.Errorf("GET %s: %s", url, resp.Status)}
	default:
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFixtureBytes))
	if err != nil {
		return nil, &RetryableError{Err: err}
	}
	return body, nil
}

func (f *Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return http.DefaultClient
}
