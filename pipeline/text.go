package pipeline

import (
	"context"

	"github.com/fwojciec/webread"
)

// Ensure TextTier implements webread.TierFetcher at compile time.
var _ webread.TierFetcher = (*TextTier)(nil)

// TextTier wraps a Fetcher whose body is already readable text, such as a
// remote rendering proxy.
type TextTier struct {
	Level   webread.Tier
	Fetcher webread.Fetcher
}

// Tier returns the tier this fetcher implements.
func (t *TextTier) Tier() webread.Tier {
	return t.Level
}

// Fetch returns the fetched body with whitespace normalised.
func (t *TextTier) Fetch(ctx context.Context, req webread.Request) (string, error) {
	body, err := t.Fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return "", err
	}
	return webread.Clean(body), nil
}
