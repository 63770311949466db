package models

import "time"

// Listing is a normalized candidate record extracted from one search
// results card. URL is always absolute and points at an item detail
// page; extraction never constructs a Listing that violates that.
type Listing struct {
	Title      string
	PriceText  string
	Price      float64
	PriceKnown bool
	URL        string
	ImageURL   string
	NewSeller  bool
	Query      string
	FoundAt    time.Time
}

// ScoreResult is the desirability score for a listing in the standard
// scoring mode. Score is always clamped to [0,100].
type ScoreResult struct {
	Score          int
	ItemCount      int
	CountEstimated bool
	PricePerItem   float64
	Indicators     []string
}

// ValueEstimate is the alternate scoring output: a rough resale value
// and profit guess with a confidence level clamped to [1,6]. These are
// ranking heuristics, not financial figures.
type ValueEstimate struct {
	EstimatedValue  float64
	EstimatedProfit float64
	Confidence      int
	Explanation     string
}

// ScoredListing pairs a listing with its score annotations, ready for
// ranking and delivery.
type ScoredListing struct {
	Listing  *Listing
	Score    ScoreResult
	Estimate *ValueEstimate
}

// ScanReport carries the diagnostic counts reported by an ad-hoc check:
// how many cards the page yielded and how many survived each stage.
type ScanReport struct {
	SearchURL    string
	PageItems    int
	Relevant     int
	WithinBudget int
	New          int
}
