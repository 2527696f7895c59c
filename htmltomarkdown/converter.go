// Package htmltomarkdown provides a webread.Converter that renders content
// HTML as CommonMark using html-to-markdown.
package htmltomarkdown

import (
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/webread"
)

// Ensure Converter implements webread.Converter at compile time.
var _ webread.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown. Relative links are made
// absolute using the scheme and host of pageURL.
func (c *Converter) Convert(html, pageURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", webread.Errorf(webread.EPARSE, "empty HTML input")
	}

	domain := ""
	if u, err := url.Parse(pageURL); err == nil && u.IsAbs() {
		domain = u.Scheme + "://" + u.Host
	}

	result, err := c.conv.ConvertString(html, converter.WithDomain(domain))
	if err != nil {
		return "", webread.Errorf(webread.EPARSE, "html-to-markdown: %v", err)
	}

	return webread.Clean(result), nil
}
