package mock

import "github.com/fwojciec/webread"

var _ webread.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of webread.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*webread.ExtractResult, error)
}

func (e *Extractor) Extract(html, pageURL string) (*webread.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}

var _ webread.ChallengeDetector = (*ChallengeDetector)(nil)

// ChallengeDetector is a mock implementation of webread.ChallengeDetector.
type ChallengeDetector struct {
	IsChallengeFn func(html string) bool
}

func (d *ChallengeDetector) IsChallenge(html string) bool {
	return d.IsChallengeFn(html)
}
