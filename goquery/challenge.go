package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webread"
)

// Ensure ChallengeDetector implements webread.ChallengeDetector at compile time.
var _ webread.ChallengeDetector = (*ChallengeDetector)(nil)

// challengeSelectors match markup unique to bot-check interstitials.
// Generic captcha widgets (reCAPTCHA, hCaptcha) are excluded because they
// also appear in ordinary login and comment forms.
var challengeSelectors = []string{
	// Cloudflare managed challenge and legacy IUAM page
	"#challenge-form",
	"#challenge-running",
	"#challenge-stage",
	"#cf-challenge-running",
	".cf-browser-verification",
	`script[src*="challenges.cloudflare.com"]`,
	`form[action*="__cf_chl"]`,
	// PerimeterX / HUMAN
	"#px-captcha",
	// DataDome
	`iframe[src*="captcha-delivery.com"]`,
	// Akamai Bot Manager
	"#sec-if-cpt-container",
	// DDoS-Guard
	"#ddg-captcha",
}

// challengeTitles are lower-case fragments of interstitial page titles.
var challengeTitles = []string{
	"just a moment",
	"attention required",
	"checking your browser",
	"access denied",
	"ddos-guard",
	"pardon our interruption",
	"verify you are human",
}

// ChallengeDetector identifies bot-challenge pages from their DOM structure
// and title.
type ChallengeDetector struct {
	selectors []string
	titles    []string
}

// ChallengeOption configures a ChallengeDetector.
type ChallengeOption func(*ChallengeDetector)

// WithChallengeSelectors adds CSS selectors that mark a challenge page.
func WithChallengeSelectors(selectors ...string) ChallengeOption {
	return func(d *ChallengeDetector) {
		d.selectors = append(d.selectors, selectors...)
	}
}

// NewChallengeDetector creates a ChallengeDetector with the built-in markers.
func NewChallengeDetector(opts ...ChallengeOption) *ChallengeDetector {
	d := &ChallengeDetector{
		selectors: append([]string(nil), challengeSelectors...),
		titles:    append([]string(nil), challengeTitles...),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// IsChallenge reports whether the HTML is a bot-check interstitial.
// Unparseable HTML is not treated as a challenge.
func (d *ChallengeDetector) IsChallenge(rawHTML string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return false
	}

	for _, sel := range d.selectors {
		if d.hasSelector(doc, sel) {
			return true
		}
	}

	title := strings.ToLower(strings.TrimSpace(doc.Find("head title").First().Text()))
	if title == "" {
		return false
	}
	for _, t := range d.titles {
		if strings.Contains(title, t) {
			return true
		}
	}
	return false
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *ChallengeDetector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
