// Package storage optionally archives emitted alerts for later
// analysis. The archive is a best-effort record of what was notified;
// pipeline state (the dedupe ledger) deliberately never touches disk.
package storage

import "time"

// Alert is one emitted notification.
type Alert struct {
	Query     string
	Title     string
	PriceText string
	Price     float64
	URL       string
	ImageURL  string
	Score     int
	SentAt    time.Time
}

// AlertWriter records emitted alerts. Write failures are logged by the
// caller and never interrupt scanning.
type AlertWriter interface {
	Write(alert Alert) error
	Close() error
}
