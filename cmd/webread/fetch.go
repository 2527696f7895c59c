package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/webread"
	"github.com/fwojciec/webread/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Tiers []webread.TierFetcher
}

// FetchCmd reads one URL through the tier pipeline.
type FetchCmd struct {
	Request webread.Request
}

// Run fetches the request. Content goes to stdout; per-attempt diagnostics
// go to stderr.
func (c *FetchCmd) Run(deps *Dependencies) error {
	p := pipeline.New(deps.Tiers,
		pipeline.WithAttemptFunc(func(a webread.Attempt) {
			if !a.Succeeded() {
				fmt.Fprintln(deps.Stderr, a.String())
			}
		}),
	)

	begin := time.Now()
	result, err := p.Fetch(deps.Ctx, c.Request)
	if err != nil {
		deps.Logger.Info("fetch failed", "url", c.Request.URL, "duration", time.Since(begin), "err", err)
		return err
	}
	deps.Logger.Info("fetch complete",
		"url", c.Request.URL,
		"tier", result.Tier.String(),
		"hash", result.ContentHash,
		"duration", time.Since(begin),
	)

	if _, err := fmt.Fprintln(deps.Stdout, result.Content); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(deps.Stderr, "fetched via %s (%d chars, hash %s)\n",
		result.Tier, utf8.RuneCountInString(result.Content), result.ContentHash)
	return nil
}
