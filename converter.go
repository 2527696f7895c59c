package webread

// Converter renders extracted content HTML as output text.
type Converter interface {
	// Convert transforms content HTML (e.g., from an Extractor) into plain
	// text or Markdown. pageURL is used to resolve relative links.
	Convert(html, pageURL string) (string, error)
}
