package webread

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Clean normalizes extracted text for output. It converts line endings to
// "\n", applies Unicode NFC normalization, strips trailing whitespace from
// every line, collapses runs of blank lines into one, and trims leading and
// trailing blank lines. Leading indentation is preserved so Markdown code
// blocks and nested lists survive.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = norm.NFC.String(text)

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	prevBlank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\f\v\u00a0")
		blank := line == ""
		if blank && prevBlank {
			continue
		}
		out = append(out, line)
		prevBlank = blank
	}

	return strings.Trim(strings.Join(out, "\n"), "\n")
}
