package services

import (
	"log/slog"

	"vinted-scanner/models"
	"vinted-scanner/scraper/vinted"
	"vinted-scanner/utils"
)

// Scoring modes. ModeScore annotates a [0,100] desirability score;
// ModeEstimate additionally produces a value/profit estimate and gates
// on the configured profit and confidence minimums.
const (
	ModeScore    = "score"
	ModeEstimate = "estimate"
)

// Pipeline turns raw search-page markup into a ranked, de-duplicated
// list of qualifying listings: extract, classify, price-filter, score,
// dedupe, rank.
type Pipeline struct {
	classifier *Classifier
	scorer     *Scorer
	seen       *utils.SeenSet
	scoreMode  string
	logger     *slog.Logger
}

// PipelineInput is one invocation of the pipeline over one page of
// markup. IgnoreSeen skips both the ledger lookup and the ledger
// update, so ad-hoc queries always see the full result set.
type PipelineInput struct {
	Markup        string
	BaseURL       string
	Query         string
	MaxPrice      float64
	MinProfit     float64
	MinConfidence int
	IgnoreSeen    bool
}

// NewPipeline assembles the pipeline around a shared dedupe ledger.
func NewPipeline(classifier *Classifier, scorer *Scorer, seen *utils.SeenSet, scoreMode string, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		scorer:     scorer,
		seen:       seen,
		scoreMode:  scoreMode,
		logger:     logger,
	}
}

// Run executes every stage over the given markup and returns the ranked
// qualifying listings plus the per-stage diagnostic counts.
func (p *Pipeline) Run(in PipelineInput) ([]*models.ScoredListing, models.ScanReport, error) {
	report := models.ScanReport{}

	candidates, pageItems, err := vinted.Extract(in.Markup, in.BaseURL)
	if err != nil {
		return nil, report, err
	}
	report.PageItems = pageItems

	var results []*models.ScoredListing
	for _, listing := range candidates {
		if !p.classifier.IsRelevant(listing.Title) {
			continue
		}
		report.Relevant++

		listing.Price, listing.PriceKnown = ParsePrice(listing.PriceText)
		if !WithinBudget(listing.Price, listing.PriceKnown, in.MaxPrice) {
			continue
		}
		report.WithinBudget++

		scored := &models.ScoredListing{
			Listing: listing,
			Score:   p.scorer.Score(listing.Title, listing.Price, listing.PriceKnown),
		}

		if p.scoreMode == ModeEstimate {
			estimate := p.scorer.Estimate(listing.Title, listing.Price, listing.PriceKnown)
			scored.Estimate = &estimate

			if estimate.EstimatedProfit < in.MinProfit || estimate.Confidence < in.MinConfidence {
				p.logger.Debug("listing gated out by estimate",
					"url", listing.URL,
					"profit", estimate.EstimatedProfit,
					"confidence", estimate.Confidence)
				continue
			}
		}

		if !in.IgnoreSeen && !p.seen.Add(listing.URL) {
			continue
		}
		report.New++

		listing.Query = in.Query
		results = append(results, scored)
	}

	Rank(results)
	return results, report, nil
}
