// Package vinted fetches marketplace search pages and extracts listing
// candidates from their markup. The markup structure is assumed
// unstable across site revisions, so every field is resolved through a
// chain of fallback strategies rather than a single selector.
package vinted

import (
	"context"
	"fmt"
	"net/url"

	"vinted-scanner/config"
)

// Fetcher returns the raw markup of a search results page. A failed or
// timed-out fetch is reported as an error; the caller treats it as zero
// results for that pass, there is no retry.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// NewFetcher selects the transport from configuration: a plain HTTP
// collector by default, a headless browser when the markup only
// renders under JS.
func NewFetcher(cfg *config.Config) (Fetcher, error) {
	switch cfg.FetchMode {
	case "", "http":
		return newHTTPFetcher(cfg)
	case "browser":
		return newBrowserFetcher(cfg), nil
	default:
		return nil, fmt.Errorf("vinted: unknown fetch mode %q", cfg.FetchMode)
	}
}

// SearchURL builds the catalog search URL for one keyword, capping
// results at the given price ceiling server-side as well.
func SearchURL(baseURL, keyword string, maxPrice float64) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("vinted: parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("search_text", keyword)
	if maxPrice > 0 {
		q.Set("price_to", fmt.Sprintf("%.0f", maxPrice))
	}
	q.Set("order", "newest_first")
	u.RawQuery = q.Encode()
	return u.String(), nil
}
