package services

import (
	"regexp"
	"strconv"
	"strings"
)

// pricePattern captures the first numeric token with up to two decimal
// places. Thousands-separator commas are stripped before matching.
var pricePattern = regexp.MustCompile(`\d+(?:\.\d{1,2})?`)

// ParsePrice extracts a numeric amount from a free-text price string.
// The second return value is false when the text contains no number.
func ParsePrice(text string) (float64, bool) {
	cleaned := strings.ReplaceAll(text, ",", "")
	match := pricePattern.FindString(cleaned)
	if match == "" {
		return 0, false
	}

	amount, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

// WithinBudget reports whether a parsed price passes the ceiling. An
// unparseable price fails, as does any amount above the ceiling.
func WithinBudget(amount float64, known bool, ceiling float64) bool {
	return known && amount <= ceiling
}
