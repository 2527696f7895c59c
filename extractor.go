package webread

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (scripts, styles, navigation, footers) has been removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// pageURL is the address the HTML was fetched from; implementations use
	// it to resolve relative links and may ignore it.
	Extract(html, pageURL string) (*ExtractResult, error)
}

// ChallengeDetector recognises bot-challenge interstitials from their markup.
type ChallengeDetector interface {
	// IsChallenge reports whether the HTML is a challenge page rather than
	// the requested document.
	IsChallenge(html string) bool
}
