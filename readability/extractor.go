// Package readability provides a webread.Extractor backed by go-readability,
// a port of Mozilla's Readability.js.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/webread"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements webread.Extractor at compile time.
var _ webread.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
// pageURL lets readability resolve relative links; it may be empty.
func (e *Extractor) Extract(rawHTML, pageURL string) (*webread.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, webread.Errorf(webread.EPARSE, "empty HTML input")
	}

	var base *url.URL
	if u, err := url.Parse(pageURL); err == nil && u.IsAbs() {
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return nil, webread.Errorf(webread.EPARSE, "readability: %v", err)
	}

	return &webread.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
