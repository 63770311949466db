package vinted

import (
	"context"
	"fmt"

	"github.com/gocolly/colly/v2"

	"vinted-scanner/config"
)

// httpFetcher downloads search pages with a colly collector. The base
// collector carries the shared settings; each Fetch works on a clone so
// callbacks never leak between requests.
type httpFetcher struct {
	collector *colly.Collector
}

func newHTTPFetcher(cfg *config.Config) (*httpFetcher, error) {
	collector := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
	)
	collector.SetRequestTimeout(cfg.RequestTimeout)

	return &httpFetcher{collector: collector}, nil
}

func (f *httpFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	collector := f.collector.Clone()

	var body string
	var responseErr error

	collector.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})

	collector.OnError(func(r *colly.Response, err error) {
		responseErr = fmt.Errorf("vinted: request to %s failed with status %d: %w",
			r.Request.URL, r.StatusCode, err)
	})

	if err := collector.Visit(pageURL); err != nil {
		return "", fmt.Errorf("vinted: failed to visit %s: %w", pageURL, err)
	}
	collector.Wait()

	if responseErr != nil {
		return "", responseErr
	}
	return body, nil
}
