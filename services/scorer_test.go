package services

import (
	"testing"

	"vinted-scanner/config"
	"vinted-scanner/models"
)

func newTestScorer() *Scorer {
	return NewScorer(config.DefaultRules())
}

func TestEstimateItemCountExplicit(t *testing.T) {
	s := newTestScorer()

	count, estimated, ok := s.EstimateItemCount("Womens clothes bundle size 10-14, 8 items")
	if !ok || estimated || count != 8 {
		t.Errorf("got (count=%d, estimated=%v, ok=%v); want (8, false, true)", count, estimated, ok)
	}
}

func TestEstimateItemCountFromWeight(t *testing.T) {
	s := newTestScorer()

	// Default tuning converts at 4 items per kilogram.
	count, estimated, ok := s.EstimateItemCount("Mixed clothing joblot 10kg")
	if !ok || !estimated || count != 40 {
		t.Errorf("got (count=%d, estimated=%v, ok=%v); want (40, true, true)", count, estimated, ok)
	}

	_, _, ok = s.EstimateItemCount("Clothes bundle")
	if ok {
		t.Error("expected no count for a title with neither quantity nor weight")
	}
}

func TestScorePricePerItem(t *testing.T) {
	s := newTestScorer()

	result := s.Score("Womens clothes bundle size 10-14, 8 items", 15, true)
	if result.ItemCount != 8 {
		t.Errorf("ItemCount = %d; want 8", result.ItemCount)
	}
	if result.PricePerItem != 1.875 {
		t.Errorf("PricePerItem = %v; want 1.875", result.PricePerItem)
	}
}

func TestScoreIndicators(t *testing.T) {
	s := newTestScorer()

	result := s.Score("Vintage Nike and Zara bundle 12 items", 10, true)
	if len(result.Indicators) != 3 {
		t.Fatalf("Indicators = %v; want nike, zara, and vintage", result.Indicators)
	}
	if result.Score <= 0 {
		t.Errorf("Score = %d; want positive for a strong bundle", result.Score)
	}
}

func TestScoreClamped(t *testing.T) {
	s := newTestScorer()

	titles := []string{
		"",
		"2 items designer vintage nike adidas zara levi bnwt new with tags",
		"Huge 999 items bundle",
		"1 items for £40",
		"Expensive 2 items",
	}
	prices := []float64{0, 1, 0.5, 40, 500}

	for _, title := range titles {
		for _, price := range prices {
			result := s.Score(title, price, price > 0)
			if result.Score < 0 || result.Score > 100 {
				t.Errorf("Score(%q, %.2f) = %d; out of [0,100]", title, price, result.Score)
			}
		}
	}
}

func TestScorePenaltyFloorsAtZero(t *testing.T) {
	s := newTestScorer()

	// Two items at £20 each: over the per-item ceiling, no other signals.
	result := s.Score("2 items", 40, true)
	if result.Score != 0 {
		t.Errorf("Score = %d; want 0 after penalty clamp", result.Score)
	}
}

func TestEstimateConfidenceClamped(t *testing.T) {
	s := newTestScorer()

	titles := []string{
		"",
		"Clothes",
		"Designer vintage nike adidas zara bundle 20 items",
		"10kg joblot",
	}
	for _, title := range titles {
		for _, price := range []float64{0, 5, 100} {
			est := s.Estimate(title, price, price > 0)
			if est.Confidence < 1 || est.Confidence > 6 {
				t.Errorf("Estimate(%q, %.2f).Confidence = %d; out of [1,6]", title, price, est.Confidence)
			}
		}
	}
}

func TestEstimateProfit(t *testing.T) {
	s := newTestScorer()

	est := s.Estimate("Designer bundle 10 items", 20, true)
	if est.EstimatedValue <= 0 {
		t.Errorf("EstimatedValue = %.2f; want positive", est.EstimatedValue)
	}
	if est.EstimatedProfit != est.EstimatedValue-20 {
		t.Errorf("EstimatedProfit = %.2f; want value minus price", est.EstimatedProfit)
	}
	if est.Explanation == "" {
		t.Error("expected a non-empty explanation")
	}
}

func TestEstimateFallbackCount(t *testing.T) {
	s := newTestScorer()
	tuning := config.DefaultRules().Scoring

	// No count in the title: the fallback count times the base value.
	est := s.Estimate("Clothes bundle", 0, false)
	want := tuning.BaseItemValue * float64(tuning.FallbackItemCount)
	if est.EstimatedValue != want {
		t.Errorf("EstimatedValue = %.2f; want %.2f", est.EstimatedValue, want)
	}
}

func TestRankNewSellerFirstThenScore(t *testing.T) {
	listings := []*models.ScoredListing{
		{Listing: &models.Listing{URL: "a"}, Score: models.ScoreResult{Score: 90}},
		{Listing: &models.Listing{URL: "b", NewSeller: true}, Score: models.ScoreResult{Score: 10}},
		{Listing: &models.Listing{URL: "c"}, Score: models.ScoreResult{Score: 50}},
		{Listing: &models.Listing{URL: "d", NewSeller: true}, Score: models.ScoreResult{Score: 70}},
	}

	Rank(listings)

	wantOrder := []string{"d", "b", "a", "c"}
	for i, want := range wantOrder {
		if listings[i].Listing.URL != want {
			t.Fatalf("rank[%d] = %s; want %s", i, listings[i].Listing.URL, want)
		}
	}
}

func TestRankStable(t *testing.T) {
	listings := []*models.ScoredListing{
		{Listing: &models.Listing{URL: "first"}, Score: models.ScoreResult{Score: 50}},
		{Listing: &models.Listing{URL: "second"}, Score: models.ScoreResult{Score: 50}},
	}

	Rank(listings)

	if listings[0].Listing.URL != "first" {
		t.Error("equal-score listings should keep extraction order")
	}
}
