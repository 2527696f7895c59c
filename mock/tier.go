package mock

import (
	"context"

	"github.com/fwojciec/webread"
)

var _ webread.TierFetcher = (*TierFetcher)(nil)

// TierFetcher is a mock implementation of webread.TierFetcher.
type TierFetcher struct {
	TierValue webread.Tier
	FetchFn   func(ctx context.Context, req webread.Request) (string, error)
}

func (f *TierFetcher) Tier() webread.Tier {
	return f.TierValue
}

func (f *TierFetcher) Fetch(ctx context.Context, req webread.Request) (string, error) {
	return f.FetchFn(ctx, req)
}
