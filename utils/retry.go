package utils

import (
	"fmt"
	"log/slog"
	"time"
)

// RetryConfig holds the parameters for the retry strategy. Scan fetches
// deliberately do not retry (the next tick re-queries anyway); this is
// for connection establishment, e.g. the Postgres archive.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Logger      *slog.Logger
}

// Do executes fn with exponential back-off retry logic.
func (r *RetryConfig) Do(operationName string, fn func() error) error {
	var lastErr error
	delay := r.BaseDelay

	for attempt := 1; attempt <= r.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt < r.MaxAttempts {
			r.Logger.Warn("retrying operation",
				"operation", operationName,
				"attempt", attempt,
				"max_attempts", r.MaxAttempts,
				"delay", delay,
				"error", lastErr)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, r.MaxAttempts, lastErr)
}
