package slog

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/webread"
)

// Ensure LoggingTier implements webread.TierFetcher.
var _ webread.TierFetcher = (*LoggingTier)(nil)

// LoggingTier wraps a TierFetcher and logs every attempt with its outcome.
type LoggingTier struct {
	next   webread.TierFetcher
	logger *slog.Logger
}

// NewLoggingTier creates a new LoggingTier.
func NewLoggingTier(next webread.TierFetcher, logger *slog.Logger) *LoggingTier {
	return &LoggingTier{next: next, logger: logger}
}

// Tier delegates to the wrapped tier.
func (t *LoggingTier) Tier() webread.Tier {
	return t.next.Tier()
}

// Fetch delegates to the wrapped tier and logs the attempt.
func (t *LoggingTier) Fetch(ctx context.Context, req webread.Request) (text string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"tier", t.next.Tier().String(),
			"url", req.URL,
			"chars", utf8.RuneCountInString(text),
			"duration", time.Since(begin),
		}
		if err != nil {
			attrs = append(attrs, "code", webread.Classify(err), "err", err)
		}
		t.logger.Info("tier attempt", attrs...)
	}(time.Now())
	return t.next.Fetch(ctx, req)
}
