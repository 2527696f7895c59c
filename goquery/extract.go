// Package goquery implements HTML extraction, text rendering, and bot-challenge
// detection on top of github.com/PuerkitoBio/goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webread"
)

// Ensure Extractor implements webread.Extractor at compile time.
var _ webread.Extractor = (*Extractor)(nil)

// BoilerplateSelector matches elements removed before content is selected.
const BoilerplateSelector = "script, style, nav, footer, iframe, noscript, svg, template"

// mainSelectors are tried in order; the first match is the content root.
var mainSelectors = []string{"main", "article", "[role=main]", "body"}

// Extractor selects the main content of a page with a fixed selector cascade:
// the first <main>, else the first <article>, else [role=main], else <body>.
// Scripts, styles, navigation, footers and embedded frames are stripped first.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the title and main content HTML.
// Relative link and image URLs in the content are resolved against pageURL.
func (e *Extractor) Extract(rawHTML, pageURL string) (*webread.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, webread.Errorf(webread.EPARSE, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, webread.Errorf(webread.EPARSE, "failed to parse HTML: %v", err)
	}

	title := pageTitle(doc)

	doc.Find(BoilerplateSelector).Remove()

	root := mainContent(doc)
	if root == nil {
		return nil, webread.Errorf(webread.EPARSE, "document has no body")
	}

	if base, err := url.Parse(pageURL); err == nil && base.IsAbs() {
		resolveLinks(root, base)
	}

	contentHTML, err := goquery.OuterHtml(root)
	if err != nil {
		return nil, webread.Errorf(webread.EPARSE, "failed to render content: %v", err)
	}

	return &webread.ExtractResult{
		Title:       title,
		ContentHTML: contentHTML,
	}, nil
}

// pageTitle returns the document title, falling back to og:title.
func pageTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("head title").First().Text()); title != "" {
		return strings.Join(strings.Fields(title), " ")
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		return strings.TrimSpace(og)
	}
	return ""
}

func mainContent(doc *goquery.Document) *goquery.Selection {
	for _, sel := range mainSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	return nil
}

// resolveLinks rewrites relative href and src attributes to absolute URLs.
func resolveLinks(root *goquery.Selection, base *url.URL) {
	rewrite := func(attr string) func(int, *goquery.Selection) {
		return func(_ int, sel *goquery.Selection) {
			val, _ := sel.Attr(attr)
			if val == "" || isNonHTTPLink(val) {
				return
			}
			if resolved := resolveURL(base, val); resolved != "" {
				sel.SetAttr(attr, resolved)
			}
		}
	}
	root.Find("a[href]").Each(rewrite("href"))
	root.Find("img[src]").Each(rewrite("src"))
}

// resolveURL resolves a possibly relative URL against base.
// Returns empty string if the reference cannot be parsed.
func resolveURL(base *url.URL, ref string) string {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}

// isNonHTTPLink checks if a reference uses a scheme that should not be resolved.
func isNonHTTPLink(ref string) bool {
	ref = strings.ToLower(strings.TrimSpace(ref))
	return strings.HasPrefix(ref, "javascript:") ||
		strings.HasPrefix(ref, "mailto:") ||
		strings.HasPrefix(ref, "tel:") ||
		strings.HasPrefix(ref, "data:") ||
		strings.HasPrefix(ref, "#")
}
