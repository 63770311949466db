package services

import (
	"regexp"
	"strings"

	"vinted-scanner/config"
)

// Signal regexes are part of the classification mechanism, not the
// vocabulary: a number immediately followed by an items or weight unit.
var (
	quantityPattern = regexp.MustCompile(`\b(\d{1,3})\s*(?:items?|pieces?|pcs?)\b`)
	weightPattern   = regexp.MustCompile(`\b(\d{1,3}(?:\.\d+)?)\s*(?:kg|kilos?|kilograms?)\b`)

	// sizeTokenPattern removes garment-size tokens before age matching,
	// so "size 5" or "uk 10-12" never reads as a child age.
	sizeTokenPattern = regexp.MustCompile(`\b(?:size|uk|eu)\s*\d{1,2}(?:\s*-\s*\d{1,2})?\b`)
)

// Classifier decides whether a listing title is a candidate clothing
// bundle. It is a pure predicate: same title and rules, same verdict.
// The vocabulary comes from configuration; the ordered decision
// procedure below is fixed.
type Classifier struct {
	rules       *config.Rules
	agePatterns []*regexp.Regexp
}

// NewClassifier compiles the rule set's age patterns once up front.
func NewClassifier(rules *config.Rules) (*Classifier, error) {
	patterns := make([]*regexp.Regexp, 0, len(rules.AgePatterns))
	for _, p := range rules.AgePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, re)
	}
	return &Classifier{rules: rules, agePatterns: patterns}, nil
}

// IsRelevant evaluates the rules in order, short-circuiting on the
// first decisive match:
//
//  1. any banned term rejects outright
//  2. in adult-only mode, child demographic terms or age patterns reject
//  3. at least one bundle, quantity, or weight signal is required
//  4. single-item condition language without any of those signals rejects
//  5. accept on clothing term, weight signal, or a reseller/bundle term
//     backed by a quantity or weight signal
func (c *Classifier) IsRelevant(title string) bool {
	lower := strings.ToLower(title)

	for _, term := range c.rules.BannedTerms {
		if strings.Contains(lower, term) {
			return false
		}
	}

	if c.rules.AdultOnly {
		stripped := sizeTokenPattern.ReplaceAllString(lower, "")
		for _, term := range c.rules.ChildTerms {
			if strings.Contains(stripped, term) {
				return false
			}
		}
		for _, re := range c.agePatterns {
			if re.MatchString(stripped) {
				return false
			}
		}
	}

	hasBundle := containsAny(lower, c.rules.BundleTerms) || containsAny(lower, c.rules.ResellerTerms)
	hasQuantity := quantityPattern.MatchString(lower)
	hasWeight := weightPattern.MatchString(lower)

	if !hasBundle && !hasQuantity && !hasWeight {
		return false
	}

	if containsAny(lower, c.rules.SingleItemTerms) && !hasBundle && !hasQuantity && !hasWeight {
		return false
	}

	switch {
	case containsAny(lower, c.rules.ClothingTerms):
		return true
	case hasWeight:
		return true
	case containsAny(lower, c.rules.ResellerTerms) && (hasQuantity || hasWeight):
		return true
	case containsAny(lower, c.rules.BundleTerms) && (hasQuantity || hasWeight):
		return true
	}
	return false
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
