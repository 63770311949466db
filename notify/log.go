package notify

import (
	"context"
	"log/slog"
)

// LogSink writes notifications to the application log. It is the
// default sink when no Discord credentials are configured, so the
// scanner can run end-to-end without an external account.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (l *LogSink) Notify(_ context.Context, n Notification) error {
	l.logger.Info("listing found",
		"keyword", n.ContextLabel,
		"title", n.Title,
		"price", n.PriceDisplay,
		"link", n.Link,
		"annotations", n.Annotations)
	return nil
}
