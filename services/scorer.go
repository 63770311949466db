package services

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"vinted-scanner/config"
	"vinted-scanner/models"
)

// Price-per-item tiers for the standard scoring mode. Cheaper per-item
// bundles score higher; above the configured per-item ceiling the tier
// turns into a penalty.
const (
	ppiTierOne        = 1.0
	ppiTierTwo        = 2.0
	ppiTierThree      = 3.0
	ppiTierOneBonus   = 25
	ppiTierTwoBonus   = 15
	ppiTierThreeBonus = 5
	ppiCeilingPenalty = 15
)

// Scorer estimates how desirable a bundle is for resale. Scores are
// heuristics for ranking, not financial computations; every constant
// involved comes from the tunable Scoring config.
type Scorer struct {
	rules *config.Rules
}

// NewScorer returns a Scorer over the given rule set.
func NewScorer(rules *config.Rules) *Scorer {
	return &Scorer{rules: rules}
}

// EstimateItemCount looks for an explicit count in the title, then for
// a weight converted at the configured items-per-kilogram rate. The
// second return reports whether the count is a weight-derived estimate.
func (s *Scorer) EstimateItemCount(title string) (count int, estimated, ok bool) {
	lower := strings.ToLower(title)

	if m := quantityPattern.FindStringSubmatch(lower); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n > 0 {
			return n, false, true
		}
	}

	if m := weightPattern.FindStringSubmatch(lower); m != nil {
		kg, err := strconv.ParseFloat(m[1], 64)
		if err == nil && kg > 0 {
			return int(math.Round(kg * s.rules.Scoring.ItemsPerKg)), true, true
		}
	}

	return 0, false, false
}

// indicators collects brand and value-hint matches in vocabulary order.
func (s *Scorer) indicators(lower string) []string {
	var out []string
	for _, brand := range s.rules.Brands {
		if strings.Contains(lower, brand) {
			out = append(out, brand)
		}
	}
	for _, hint := range s.rules.ValueHints {
		if strings.Contains(lower, hint) {
			out = append(out, hint)
		}
	}
	return out
}

// Score computes the standard [0,100] desirability score for a listing.
func (s *Scorer) Score(title string, price float64, priceKnown bool) models.ScoreResult {
	tuning := s.rules.Scoring
	lower := strings.ToLower(title)

	count, estimated, countKnown := s.EstimateItemCount(title)

	var pricePerItem float64
	if countKnown && count > 0 && priceKnown {
		pricePerItem = price / float64(count)
	}

	indicators := s.indicators(lower)

	score := 0
	if countKnown {
		switch {
		case count >= tuning.BigBundleCount:
			score += tuning.BigBundleBonus
		case count >= tuning.SmallBundleCount:
			score += tuning.SmallBundleBonus
		}
	}

	if pricePerItem > 0 {
		switch {
		case pricePerItem < ppiTierOne:
			score += ppiTierOneBonus
		case pricePerItem < ppiTierTwo:
			score += ppiTierTwoBonus
		case pricePerItem < ppiTierThree:
			score += ppiTierThreeBonus
		case pricePerItem > tuning.PerItemCeiling:
			score -= ppiCeilingPenalty
		}
	}

	indicatorBonus := len(indicators) * tuning.IndicatorPoints
	if indicatorBonus > tuning.IndicatorPointsCap {
		indicatorBonus = tuning.IndicatorPointsCap
	}
	score += indicatorBonus

	return models.ScoreResult{
		Score:          clamp(score, 0, 100),
		ItemCount:      count,
		CountEstimated: estimated,
		PricePerItem:   pricePerItem,
		Indicators:     indicators,
	}
}

// Estimate computes the alternate-mode resale value, profit, and a
// confidence level in [1,6].
func (s *Scorer) Estimate(title string, price float64, priceKnown bool) models.ValueEstimate {
	tuning := s.rules.Scoring
	lower := strings.ToLower(title)

	perItem := tuning.BaseItemValue
	isDesigner := strings.Contains(lower, "designer")
	isVintage := strings.Contains(lower, "vintage")
	switch {
	case isDesigner:
		perItem = tuning.DesignerItemValue
	case isVintage:
		perItem = tuning.VintageItemValue
	}

	brandMatches := 0
	for _, brand := range s.rules.Brands {
		if strings.Contains(lower, brand) {
			brandMatches++
		}
	}
	perItem += float64(brandMatches) * tuning.BrandValueStep

	count, _, countKnown := s.EstimateItemCount(title)
	if !countKnown || count <= 0 {
		count = tuning.FallbackItemCount
	}

	value := perItem * float64(count)
	if priceKnown && price < value/2 {
		value *= tuning.CheapBundleBoost
	}

	confidence := 1
	if countKnown {
		confidence++
	}
	if brandMatches > 0 {
		confidence++
	}
	if brandMatches >= 3 {
		confidence++
	}
	if isDesigner || isVintage {
		confidence++
	}
	if priceKnown {
		confidence++
	}

	return models.ValueEstimate{
		EstimatedValue:  round2(value),
		EstimatedProfit: round2(value - price),
		Confidence:      clamp(confidence, 1, 6),
		Explanation: fmt.Sprintf("%d items at about £%.2f each (%d brand signals)",
			count, perItem, brandMatches),
	}
}

// Rank orders scored listings for delivery: new-seller listings first,
// then by score descending. The sort is stable, so extraction order
// breaks ties.
func Rank(listings []*models.ScoredListing) {
	sort.SliceStable(listings, func(i, j int) bool {
		if listings[i].Listing.NewSeller != listings[j].Listing.NewSeller {
			return listings[i].Listing.NewSeller
		}
		return listings[i].Score.Score > listings[j].Score.Score
	})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
