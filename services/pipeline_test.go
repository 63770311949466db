package services

import (
	"io"
	"log/slog"
	"testing"

	"vinted-scanner/config"
	"vinted-scanner/utils"
)

const fixtureMarkup = `
<html><body>
<div class="feed-grid__item">
  <a href="/items/101-womens-bundle" title="Womens clothes bundle size 10-14, 8 items"></a>
  <span data-testid="price">£15.00</span>
</div>
<div class="feed-grid__item">
  <a href="/items/102-xbox-bundle" title="Xbox console and clothes bundle 10 items"></a>
  <span data-testid="price">£18.00</span>
</div>
<div class="feed-grid__item">
  <a href="/items/103-big-joblot" title="5kg mixed clothing joblot"></a>
  <span data-testid="price">£120.00</span>
</div>
<div class="feed-grid__item">
  <a href="/member/45">Seller profile</a>
</div>
</body></html>`

func newTestPipeline(t *testing.T, mode string) (*Pipeline, *utils.SeenSet) {
	t.Helper()
	rules := config.DefaultRules()
	classifier, err := NewClassifier(rules)
	if err != nil {
		t.Fatalf("NewClassifier failed: %v", err)
	}
	seen := utils.NewSeenSet()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPipeline(classifier, NewScorer(rules), seen, mode, logger), seen
}

func TestPipelineFiltersAndCounts(t *testing.T) {
	p, _ := newTestPipeline(t, ModeScore)

	results, report, err := p.Run(PipelineInput{
		Markup:   fixtureMarkup,
		BaseURL:  "https://www.vinted.co.uk",
		Query:    "clothes bundle",
		MaxPrice: 20,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Four cards on the page, one of them a bare profile link.
	if report.PageItems != 4 {
		t.Errorf("PageItems = %d; want 4", report.PageItems)
	}
	// The Xbox title is vetoed; the profile card never yields a listing.
	if report.Relevant != 2 {
		t.Errorf("Relevant = %d; want 2", report.Relevant)
	}
	// The £120 joblot is over the £20 ceiling.
	if report.WithinBudget != 1 {
		t.Errorf("WithinBudget = %d; want 1", report.WithinBudget)
	}
	if report.New != 1 {
		t.Errorf("New = %d; want 1", report.New)
	}

	if len(results) != 1 {
		t.Fatalf("got %d results; want 1", len(results))
	}
	got := results[0]
	if got.Listing.URL != "https://www.vinted.co.uk/items/101-womens-bundle" {
		t.Errorf("URL = %s", got.Listing.URL)
	}
	if got.Listing.Price != 15 || !got.Listing.PriceKnown {
		t.Errorf("Price = (%.2f, %v); want (15.00, true)", got.Listing.Price, got.Listing.PriceKnown)
	}
	if got.Listing.Query != "clothes bundle" {
		t.Errorf("Query = %q; want the input query", got.Listing.Query)
	}
	if got.Score.ItemCount != 8 || got.Score.PricePerItem != 1.875 {
		t.Errorf("Score = (count=%d, per-item=%v); want (8, 1.875)",
			got.Score.ItemCount, got.Score.PricePerItem)
	}
}

func TestPipelineSecondPassIsEmpty(t *testing.T) {
	p, _ := newTestPipeline(t, ModeScore)

	in := PipelineInput{
		Markup:   fixtureMarkup,
		BaseURL:  "https://www.vinted.co.uk",
		Query:    "clothes bundle",
		MaxPrice: 20,
	}

	first, _, err := p.Run(in)
	if err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("first pass returned %d results; want 1", len(first))
	}

	second, report, err := p.Run(in)
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second pass returned %d results; want 0, every URL already ledgered", len(second))
	}
	if report.New != 0 {
		t.Errorf("second pass New = %d; want 0", report.New)
	}
}

func TestPipelineIgnoreSeenRepeatable(t *testing.T) {
	p, seen := newTestPipeline(t, ModeScore)

	in := PipelineInput{
		Markup:     fixtureMarkup,
		BaseURL:    "https://www.vinted.co.uk",
		Query:      "clothes bundle",
		MaxPrice:   20,
		IgnoreSeen: true,
	}

	for pass := 0; pass < 3; pass++ {
		results, _, err := p.Run(in)
		if err != nil {
			t.Fatalf("pass %d failed: %v", pass, err)
		}
		if len(results) != 1 {
			t.Fatalf("pass %d returned %d results; want 1", pass, len(results))
		}
	}

	// IgnoreSeen never touches the ledger: a scheduled pass afterwards
	// still reports the listing as new.
	if seen.Size() != 0 {
		t.Errorf("ledger size = %d; want 0 after ignore-seen passes", seen.Size())
	}
}

func TestPipelineEstimateModeGates(t *testing.T) {
	p, _ := newTestPipeline(t, ModeEstimate)

	in := PipelineInput{
		Markup:        fixtureMarkup,
		BaseURL:       "https://www.vinted.co.uk",
		Query:         "clothes bundle",
		MaxPrice:      20,
		MinProfit:     10000, // unreachable
		MinConfidence: 1,
		IgnoreSeen:    true,
	}

	results, report, err := p.Run(in)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results; want 0 with an unreachable profit floor", len(results))
	}
	if report.WithinBudget != 1 {
		t.Errorf("WithinBudget = %d; gating should happen after the budget count", report.WithinBudget)
	}

	in.MinProfit = 0
	results, _, err = p.Run(in)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results; want 1 with the floor lowered", len(results))
	}
	if results[0].Estimate == nil {
		t.Fatal("estimate mode should attach a value estimate")
	}
	if results[0].Estimate.Confidence < 1 || results[0].Estimate.Confidence > 6 {
		t.Errorf("Confidence = %d; out of [1,6]", results[0].Estimate.Confidence)
	}
}
