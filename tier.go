package webread

import (
	"context"
	"strconv"
)

// Tier identifies one of the escalating retrieval strategies.
type Tier int

// Tier constants, in escalation order.
const (
	TierStatic Tier = iota + 1
	TierRemoteRender
	TierLocalBrowser
)

// String returns the tier identifier reported to callers ("tier1", "tier2", "tier3").
func (t Tier) String() string {
	return "tier" + strconv.Itoa(int(t))
}

// Name returns a descriptive name for diagnostics.
func (t Tier) Name() string {
	switch t {
	case TierStatic:
		return "static"
	case TierRemoteRender:
		return "remote-render"
	case TierLocalBrowser:
		return "local-browser"
	default:
		return "unknown"
	}
}

// TierFetcher produces readable text for a request using one retrieval strategy.
//
// Implementations return an error instead of content when the tier could not
// produce anything (network failure, timeout, parse failure, detected bot
// challenge). The Orchestrator treats such errors as an insufficient attempt
// and never surfaces them directly.
type TierFetcher interface {
	// Tier returns the tier this fetcher implements.
	Tier() Tier

	// Fetch retrieves the URL in req and returns extracted text.
	// The context carries the per-attempt deadline.
	Fetch(ctx context.Context, req Request) (string, error)
}
