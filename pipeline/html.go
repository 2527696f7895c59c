package pipeline

import (
	"context"
	"strings"

	"github.com/fwojciec/webread"
)

// Ensure HTMLTier implements webread.TierFetcher at compile time.
var _ webread.TierFetcher = (*HTMLTier)(nil)

// HTMLTier fetches markup and reduces it to readable text: challenge check,
// main-content extraction, then conversion.
type HTMLTier struct {
	Level     webread.Tier
	Fetcher   webread.Fetcher
	Detector  webread.ChallengeDetector // optional
	Extractor webread.Extractor
	Converter webread.Converter
}

// Tier returns the tier this fetcher implements.
func (t *HTMLTier) Tier() webread.Tier {
	return t.Level
}

// Fetch retrieves req.URL and returns "# <title>" followed by the page text.
func (t *HTMLTier) Fetch(ctx context.Context, req webread.Request) (string, error) {
	html, err := t.Fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return "", err
	}

	if t.Detector != nil && t.Detector.IsChallenge(html) {
		return "", webread.Errorf(webread.EBLOCKED, "bot challenge page at %s", req.URL)
	}

	extracted, err := t.Extractor.Extract(html, req.URL)
	if err != nil {
		return "", err
	}

	var text string
	if strings.TrimSpace(extracted.ContentHTML) != "" {
		text, err = t.Converter.Convert(extracted.ContentHTML, req.URL)
		if err != nil {
			return "", err
		}
	}

	return Compose(extracted.Title, text), nil
}

// Compose prefixes text with a Markdown title line when title is set.
func Compose(title, text string) string {
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		return webread.Clean(text)
	}
	return webread.Clean("# " + title + "\n\n" + text)
}
