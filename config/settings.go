package config

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Bounds enforced by the Settings setters. Values outside these ranges
// are rejected and leave the previous value in effect.
const (
	MinMaxPrice = 1
	MaxMaxPrice = 500

	MinScanInterval = 30 * time.Second
	MaxScanInterval = 3600 * time.Second

	MinProfitFloor   = 0
	MaxProfitCeiling = 500

	MinConfidence = 1
	MaxConfidence = 6
)

// ValidationError reports a rejected settings mutation. It is returned
// to the admin API caller verbatim; the setting keeps its prior value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Settings is the runtime-mutable scan state shared between the
// scheduler and the admin API. The scheduler reads it at the start of
// every tick; the API mutates it through the validating setters, so a
// change takes effect on the next tick rather than mid-pass.
type Settings struct {
	mu sync.RWMutex

	queries       []string
	maxPrice      float64
	scanInterval  time.Duration
	paused        bool
	minProfit     float64
	minConfidence int
}

// NewSettings returns Settings with the given defaults and an empty
// query list. The scanner starts in the running state.
func NewSettings(maxPrice float64, interval time.Duration) *Settings {
	return &Settings{
		maxPrice:      maxPrice,
		scanInterval:  interval,
		minProfit:     0,
		minConfidence: MinConfidence,
	}
}

// AddQuery appends a keyword to the scan rotation. Duplicates (case
// insensitive) are rejected.
func (s *Settings) AddQuery(q string) error {
	q = strings.TrimSpace(q)
	if q == "" {
		return &ValidationError{Field: "query", Reason: "must not be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.queries {
		if strings.EqualFold(existing, q) {
			return &ValidationError{Field: "query", Reason: fmt.Sprintf("%q is already being scanned", q)}
		}
	}
	s.queries = append(s.queries, q)
	return nil
}

// RemoveQuery deletes a keyword from the rotation.
func (s *Settings) RemoveQuery(q string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.queries {
		if strings.EqualFold(existing, q) {
			s.queries = append(s.queries[:i], s.queries[i+1:]...)
			return nil
		}
	}
	return &ValidationError{Field: "query", Reason: fmt.Sprintf("%q is not being scanned", q)}
}

// Queries returns a copy of the current query list in insertion order.
func (s *Settings) Queries() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.queries))
	copy(out, s.queries)
	return out
}

// ClearQueries empties the rotation.
func (s *Settings) ClearQueries() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = nil
}

// SetMaxPrice updates the price ceiling applied by the pipeline.
func (s *Settings) SetMaxPrice(v float64) error {
	if v < MinMaxPrice || v > MaxMaxPrice {
		return &ValidationError{
			Field:  "max_price",
			Reason: fmt.Sprintf("must be between %d and %d", MinMaxPrice, MaxMaxPrice),
		}
	}
	s.mu.Lock()
	s.maxPrice = v
	s.mu.Unlock()
	return nil
}

// MaxPrice returns the current price ceiling.
func (s *Settings) MaxPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxPrice
}

// SetInterval updates the pause between full scan passes.
func (s *Settings) SetInterval(d time.Duration) error {
	if d < MinScanInterval || d > MaxScanInterval {
		return &ValidationError{
			Field:  "interval",
			Reason: fmt.Sprintf("must be between %s and %s", MinScanInterval, MaxScanInterval),
		}
	}
	s.mu.Lock()
	s.scanInterval = d
	s.mu.Unlock()
	return nil
}

// Interval returns the current scan interval.
func (s *Settings) Interval() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scanInterval
}

// SetMinProfit updates the estimated-profit gate used in estimate mode.
func (s *Settings) SetMinProfit(v float64) error {
	if v < MinProfitFloor || v > MaxProfitCeiling {
		return &ValidationError{
			Field:  "min_profit",
			Reason: fmt.Sprintf("must be between %d and %d", MinProfitFloor, MaxProfitCeiling),
		}
	}
	s.mu.Lock()
	s.minProfit = v
	s.mu.Unlock()
	return nil
}

// MinProfit returns the current minimum-profit gate.
func (s *Settings) MinProfit() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.minProfit
}

// SetMinConfidence updates the confidence gate used in estimate mode.
func (s *Settings) SetMinConfidence(v int) error {
	if v < MinConfidence || v > MaxConfidence {
		return &ValidationError{
			Field:  "min_confidence",
			Reason: fmt.Sprintf("must be between %d and %d", MinConfidence, MaxConfidence),
		}
	}
	s.mu.Lock()
	s.minConfidence = v
	s.mu.Unlock()
	return nil
}

// MinConfidence returns the current confidence gate.
func (s *Settings) MinConfidenceLevel() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.minConfidence
}

// Pause stops the scheduler from running scan passes. The in-flight
// pass, if any, completes first.
func (s *Settings) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
}

// Resume re-enables scan passes.
func (s *Settings) Resume() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
}

// Paused reports whether scanning is currently paused.
func (s *Settings) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}
