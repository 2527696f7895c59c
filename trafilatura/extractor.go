// Package trafilatura provides a webread.Extractor backed by go-trafilatura,
// which scores DOM subtrees to find the main article body.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/webread"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements webread.Extractor at compile time.
var _ webread.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	fallback bool
	links    bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithFallback enables or disables trafilatura's readability and
// dom-distiller fallback extractors. Enabled by default.
func WithFallback(enabled bool) Option {
	return func(e *Extractor) {
		e.fallback = enabled
	}
}

// WithLinks keeps hyperlinks in the extracted content. Enabled by default so
// Markdown output retains link targets.
func WithLinks(enabled bool) Option {
	return func(e *Extractor) {
		e.links = enabled
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{fallback: true, links: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML, pageURL string) (*webread.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, webread.Errorf(webread.EPARSE, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback:  e.fallback,
		IncludeLinks:    e.links,
		ExcludeComments: true,
	}
	if u, err := url.Parse(pageURL); err == nil && u.IsAbs() {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, webread.Errorf(webread.EPARSE, "trafilatura: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, webread.Errorf(webread.EPARSE, "render content: %v", err)
		}
	}

	return &webread.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
