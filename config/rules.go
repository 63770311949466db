package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Rules is the vocabulary and tuning data consumed by the classifier
// and scorer. The decision procedure itself lives in code; these lists
// are versioned data that can be replaced wholesale from a JSON file
// without touching the pipeline.
type Rules struct {
	BannedTerms     []string `json:"banned_terms"`
	ClothingTerms   []string `json:"clothing_terms"`
	BundleTerms     []string `json:"bundle_terms"`
	ResellerTerms   []string `json:"reseller_terms"`
	SingleItemTerms []string `json:"single_item_terms"`
	ChildTerms      []string `json:"child_terms"`
	AgePatterns     []string `json:"age_patterns"`
	AdultOnly       bool     `json:"adult_only"`
	Brands          []string `json:"brands"`
	ValueHints      []string `json:"value_hints"`
	Scoring         Scoring  `json:"scoring"`
}

// Scoring holds the numeric constants of the profitability scorer.
// None of these values are authoritative; they are starting points
// meant to be tuned per niche.
type Scoring struct {
	ItemsPerKg         float64 `json:"items_per_kg"`
	BigBundleCount     int     `json:"big_bundle_count"`
	SmallBundleCount   int     `json:"small_bundle_count"`
	BigBundleBonus     int     `json:"big_bundle_bonus"`
	SmallBundleBonus   int     `json:"small_bundle_bonus"`
	PerItemCeiling     float64 `json:"per_item_ceiling"`
	IndicatorPoints    int     `json:"indicator_points"`
	IndicatorPointsCap int     `json:"indicator_points_cap"`
	BaseItemValue      float64 `json:"base_item_value"`
	DesignerItemValue  float64 `json:"designer_item_value"`
	VintageItemValue   float64 `json:"vintage_item_value"`
	BrandValueStep     float64 `json:"brand_value_step"`
	FallbackItemCount  int     `json:"fallback_item_count"`
	CheapBundleBoost   float64 `json:"cheap_bundle_boost"`
}

// DefaultRules returns the built-in vocabulary. The banned list models
// categories structurally unrelated to clothing bundles; matching is
// case-insensitive substring containment, so multi-word entries are fine.
func DefaultRules() *Rules {
	return &Rules{
		BannedTerms: []string{
			"dvd", "blu-ray", "cd ", "vinyl", "xbox", "playstation", "nintendo",
			"phone", "iphone", "samsung galaxy", "tablet", "laptop", "charger",
			"headphone", "earbud", "perfume", "aftershave", "makeup", "toiletr",
			"necklace", "bracelet", "earring", "jewellery", "jewelry",
			"nappies", "nappy", "dummies", "steriliser", "bottle warmer", "pram",
			"book bundle", "toy bundle", "lego",
		},
		ClothingTerms: []string{
			"clothes", "clothing", "garment", "wardrobe", "outfit",
			"dress", "skirt", "top", "tops", "blouse", "shirt", "t-shirt", "tee",
			"jumper", "sweater", "hoodie", "cardigan", "jeans", "trousers",
			"leggings", "shorts", "jacket", "coat", "knitwear",
		},
		BundleTerms: []string{
			"bundle", "job lot", "joblot", "lot of", "wholesale", "bulk",
			"mixed lot", "clearance",
		},
		ResellerTerms: []string{
			"reseller", "resell", "ebay lot", "carboot", "car boot",
		},
		SingleItemTerms: []string{
			"brand new", "never worn", "worn once", "new in box",
		},
		ChildTerms: []string{
			"baby", "toddler", "infant", "newborn", "boys", "girls",
			"kids", "children", "school uniform",
		},
		AgePatterns: []string{
			`\b\d{1,2}\s*-\s*\d{1,2}\s*(?:years?|yrs?|mths?|months?)\b`,
			`\bage[ds]?\s*\d{1,2}\b`,
			`\b\d{1,2}\s*years?\s*old\b`,
			`\b\d{1,2}\s*months?\b`,
		},
		AdultOnly: true,
		Brands: []string{
			"zara", "nike", "adidas", "north face", "levi", "ralph lauren",
			"tommy hilfiger", "carhartt", "lacoste", "stone island",
			"superdry", "dr martens", "new balance", "patagonia", "barbour",
		},
		ValueHints: []string{
			"designer", "vintage", "retro", "y2k", "branded",
			"new with tags", "bnwt", "deadstock",
		},
		Scoring: Scoring{
			ItemsPerKg:         4,
			BigBundleCount:     10,
			SmallBundleCount:   5,
			BigBundleBonus:     30,
			SmallBundleBonus:   15,
			PerItemCeiling:     5,
			IndicatorPoints:    5,
			IndicatorPointsCap: 20,
			BaseItemValue:      3,
			DesignerItemValue:  8,
			VintageItemValue:   6,
			BrandValueStep:     1.5,
			FallbackItemCount:  5,
			CheapBundleBoost:   1.15,
		},
	}
}

// LoadRules reads a full replacement rule set from a JSON file. An
// empty path returns the defaults.
func LoadRules(path string) (*Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rules: read %q: %w", path, err)
	}

	rules := DefaultRules()
	if err := json.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("rules: parse %q: %w", path, err)
	}
	return rules, nil
}
