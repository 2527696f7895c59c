package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webread"
	"golang.org/x/net/html"
)

// Ensure TextConverter implements webread.Converter at compile time.
var _ webread.Converter = (*TextConverter)(nil)

// TextConverter renders content HTML as plain text. Block-level elements start
// on a new line, paragraphs and headings are separated by a blank line, and
// whitespace inside inline runs is collapsed. Preformatted blocks are kept
// verbatim. No markup survives.
type TextConverter struct{}

// NewTextConverter creates a new TextConverter.
func NewTextConverter() *TextConverter {
	return &TextConverter{}
}

// Convert transforms content HTML into plain text. pageURL is unused.
func (c *TextConverter) Convert(contentHTML, _ string) (string, error) {
	if strings.TrimSpace(contentHTML) == "" {
		return "", webread.Errorf(webread.EPARSE, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
	if err != nil {
		return "", webread.Errorf(webread.EPARSE, "failed to parse HTML: %v", err)
	}
	doc.Find(BoilerplateSelector).Remove()

	w := &textWriter{}
	for _, n := range doc.Nodes {
		w.walk(n)
	}

	return webread.Clean(w.String()), nil
}

// Blank lines around these elements.
var paragraphElements = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"pre": true, "blockquote": true, "table": true, "ul": true, "ol": true, "dl": true,
	"figure": true, "hr": true,
}

// Line breaks around these elements.
var lineElements = map[string]bool{
	"address": true, "article": true, "aside": true, "body": true, "dd": true,
	"details": true, "div": true, "dt": true, "fieldset": true, "figcaption": true,
	"form": true, "header": true, "li": true, "main": true, "section": true,
	"summary": true, "tr": true, "caption": true,
}

var spaceRun = regexp.MustCompile(`[\s\x{00a0}]+`)

// textWriter accumulates text, deferring line breaks until the next text
// run so that consecutive block boundaries produce at most one blank line.
type textWriter struct {
	b        strings.Builder
	newlines int
}

func (w *textWriter) String() string {
	return w.b.String()
}

func (w *textWriter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.inline(n.Data)
		return
	case html.ElementNode:
	case html.DocumentNode:
		w.children(n)
		return
	default:
		return
	}

	tag := n.Data
	switch {
	case tag == "head":
		return
	case tag == "br":
		w.lineBreak(1)
		return
	case tag == "pre":
		w.lineBreak(2)
		w.raw(nodeText(n))
		w.lineBreak(2)
		return
	case tag == "td" || tag == "th":
		w.inline(" ")
		w.children(n)
		w.inline(" ")
		return
	case paragraphElements[tag]:
		w.lineBreak(2)
		w.children(n)
		w.lineBreak(2)
		return
	case lineElements[tag]:
		w.lineBreak(1)
		w.children(n)
		w.lineBreak(1)
		return
	}
	w.children(n)
}

func (w *textWriter) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func (w *textWriter) lineBreak(n int) {
	if n > w.newlines {
		w.newlines = n
	}
}

// inline writes a run of inline text with whitespace collapsed.
func (w *textWriter) inline(s string) {
	s = spaceRun.ReplaceAllString(s, " ")
	if s == "" {
		return
	}
	if w.newlines > 0 || w.b.Len() == 0 {
		s = strings.TrimLeft(s, " ")
		if s == "" {
			return
		}
	}
	if strings.HasSuffix(w.b.String(), " ") && strings.HasPrefix(s, " ") {
		s = s[1:]
		if s == "" {
			return
		}
	}
	w.flush()
	w.b.WriteString(s)
}

// raw writes text verbatim on its own lines.
func (w *textWriter) raw(s string) {
	s = strings.Trim(s, "\n")
	if strings.TrimSpace(s) == "" {
		return
	}
	w.flush()
	w.b.WriteString(s)
}

func (w *textWriter) flush() {
	if w.newlines > 0 && w.b.Len() > 0 {
		w.b.WriteString(strings.Repeat("\n", w.newlines))
	}
	w.newlines = 0
}

// nodeText returns the concatenated text of all descendants of n.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
		}
		if cur.Type == html.ElementNode && cur.Data == "br" {
			b.WriteString("\n")
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}
