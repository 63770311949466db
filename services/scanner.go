package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"vinted-scanner/config"
	"vinted-scanner/models"
	"vinted-scanner/notify"
	"vinted-scanner/scraper/vinted"
	"vinted-scanner/storage"
	"vinted-scanner/utils"
)

const (
	// notifyBatchLimit caps deliveries per query per tick. Excess
	// qualifying listings are dropped, not queued; the next tick
	// re-queries live state.
	notifyBatchLimit = 8

	// pausedPollInterval is how often a paused scanner re-checks state.
	pausedPollInterval = 2 * time.Second
)

// Scanner drives the pipeline: once per interval it walks the
// configured queries in order, fetching and processing one at a time,
// and hands qualifying listings to the notification sinks. Pause,
// resume, and interval changes take effect at the next check.
type Scanner struct {
	settings *config.Settings
	fetcher  vinted.Fetcher
	pipeline *Pipeline
	pool     *utils.WorkerPool
	sinks    []notify.Sink
	archive  storage.AlertWriter
	baseURL  string
	logger   *slog.Logger
}

// NewScanner wires the scanner. The worker pool must have exactly one
// worker: fetches stay strictly sequential across the scheduled loop
// and any concurrent ad-hoc checks. archive may be nil.
func NewScanner(settings *config.Settings, fetcher vinted.Fetcher, pipeline *Pipeline,
	pool *utils.WorkerPool, sinks []notify.Sink, archive storage.AlertWriter,
	baseURL string, logger *slog.Logger) *Scanner {
	return &Scanner{
		settings: settings,
		fetcher:  fetcher,
		pipeline: pipeline,
		pool:     pool,
		sinks:    sinks,
		archive:  archive,
		baseURL:  baseURL,
		logger:   logger,
	}
}

// Run loops until the context is cancelled. No failure of a single
// query or listing ever terminates the loop.
func (s *Scanner) Run(ctx context.Context) {
	s.logger.Info("scanner started", "interval", s.settings.Interval())

	for {
		if ctx.Err() != nil {
			s.logger.Info("scanner stopped")
			return
		}

		if s.settings.Paused() {
			select {
			case <-ctx.Done():
				return
			case <-time.After(pausedPollInterval):
			}
			continue
		}

		s.runPass(ctx)

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.settings.Interval()):
		}
	}
}

func (s *Scanner) runPass(ctx context.Context) {
	for _, keyword := range s.settings.Queries() {
		if ctx.Err() != nil {
			return
		}

		results, report, err := s.RunQuery(ctx, keyword, false)
		if err != nil {
			// Zero results for this tick; the next tick retries naturally.
			s.logger.Error("query pass failed", "keyword", keyword, "error", err)
			continue
		}

		s.logger.Debug("query pass complete",
			"keyword", keyword,
			"page_items", report.PageItems,
			"relevant", report.Relevant,
			"within_budget", report.WithinBudget,
			"new", report.New)

		s.deliver(ctx, keyword, results)
	}
}

// RunQuery fetches and processes a single keyword. With ignoreSeen the
// dedupe ledger is neither consulted nor updated, so repeated ad-hoc
// calls keep returning the full result set.
func (s *Scanner) RunQuery(ctx context.Context, keyword string, ignoreSeen bool) ([]*models.ScoredListing, models.ScanReport, error) {
	searchURL, err := vinted.SearchURL(s.baseURL, keyword, s.settings.MaxPrice())
	if err != nil {
		return nil, models.ScanReport{}, err
	}

	var markup string
	var fetchErr error
	done := make(chan struct{})
	s.pool.Submit(func() {
		defer close(done)
		markup, fetchErr = s.fetcher.Fetch(ctx, searchURL)
	})
	<-done

	if fetchErr != nil {
		return nil, models.ScanReport{SearchURL: searchURL}, fetchErr
	}

	results, report, err := s.pipeline.Run(PipelineInput{
		Markup:        markup,
		BaseURL:       s.baseURL,
		Query:         keyword,
		MaxPrice:      s.settings.MaxPrice(),
		MinProfit:     s.settings.MinProfit(),
		MinConfidence: s.settings.MinConfidenceLevel(),
		IgnoreSeen:    ignoreSeen,
	})
	report.SearchURL = searchURL
	return results, report, err
}

// deliver sends up to notifyBatchLimit listings to every sink. Each
// delivery failure is logged and the rest of the batch still runs.
func (s *Scanner) deliver(ctx context.Context, keyword string, results []*models.ScoredListing) {
	for i, item := range results {
		if i >= notifyBatchLimit {
			s.logger.Warn("batch limit reached, dropping remainder",
				"keyword", keyword, "dropped", len(results)-notifyBatchLimit)
			break
		}

		n := renderNotification(keyword, item)
		for _, sink := range s.sinks {
			if err := sink.Notify(ctx, n); err != nil {
				s.logger.Error("notification delivery failed",
					"keyword", keyword, "url", item.Listing.URL, "error", err)
			}
		}

		if s.archive != nil {
			alert := storage.Alert{
				Query:     keyword,
				Title:     item.Listing.Title,
				PriceText: item.Listing.PriceText,
				Price:     item.Listing.Price,
				URL:       item.Listing.URL,
				ImageURL:  item.Listing.ImageURL,
				Score:     item.Score.Score,
				SentAt:    time.Now(),
			}
			if err := s.archive.Write(alert); err != nil {
				s.logger.Error("alert archive write failed",
					"url", item.Listing.URL, "error", err)
			}
		}
	}
}

func renderNotification(keyword string, item *models.ScoredListing) notify.Notification {
	listing := item.Listing

	priceDisplay := listing.PriceText
	if priceDisplay == "" {
		priceDisplay = "£?"
	}

	annotations := []string{fmt.Sprintf("Score: %d/100", item.Score.Score)}
	if item.Score.ItemCount > 0 {
		line := fmt.Sprintf("%d items", item.Score.ItemCount)
		if item.Score.CountEstimated {
			line += " (est.)"
		}
		if item.Score.PricePerItem > 0 {
			line += fmt.Sprintf(" · £%.2f/item", item.Score.PricePerItem)
		}
		annotations = append(annotations, line)
	}
	if len(item.Score.Indicators) > 0 {
		annotations = append(annotations, strings.Join(item.Score.Indicators, ", "))
	}
	if item.Estimate != nil {
		annotations = append(annotations, fmt.Sprintf(
			"Est. value £%.2f · profit £%.2f · confidence %d/6",
			item.Estimate.EstimatedValue,
			item.Estimate.EstimatedProfit,
			item.Estimate.Confidence))
	}

	return notify.Notification{
		Title:        listing.Title,
		Link:         listing.URL,
		PriceDisplay: priceDisplay,
		ImageURL:     listing.ImageURL,
		Annotations:  annotations,
		ContextLabel: keyword,
	}
}
