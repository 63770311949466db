// Package notify delivers qualifying listings to their destination
// channels. Delivery is best-effort: a failed item is logged by the
// caller and never aborts the rest of the batch.
package notify

import "context"

// Notification is one rendered listing ready for delivery.
type Notification struct {
	Title        string
	Link         string
	PriceDisplay string
	ImageURL     string
	Annotations  []string
	ContextLabel string
}

// Sink accepts a rendered listing record and attempts delivery.
type Sink interface {
	Notify(ctx context.Context, n Notification) error
}
