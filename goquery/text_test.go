package goquery_test

import (
	"testing"

	"github.com/fwojciec/webread"
	"github.com/fwojciec/webread/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("separates paragraphs and headings with blank lines", func(t *testing.T) {
		t.Parallel()

		html := `<main><h1>Title</h1><p>First   paragraph
with wrapped line.</p><p>Second <b>bold</b> paragraph.</p></main>`

		text, err := goquery.NewTextConverter().Convert(html, "")

		require.NoError(t, err)
		assert.Equal(t, "Title\n\nFirst paragraph with wrapped line.\n\nSecond bold paragraph.", text)
	})

	t.Run("puts list items and divs on their own lines", func(t *testing.T) {
		t.Parallel()

		html := `<div><div>one</div><div>two</div><ul><li>alpha</li><li>beta</li></ul></div>`

		text, err := goquery.NewTextConverter().Convert(html, "")

		require.NoError(t, err)
		assert.Equal(t, "one\ntwo\n\nalpha\nbeta", text)
	})

	t.Run("keeps preformatted text verbatim", func(t *testing.T) {
		t.Parallel()

		html := "<p>Example:</p><pre>func main() {\n    fmt.Println(\"hi\")\n}</pre>"

		text, err := goquery.NewTextConverter().Convert(html, "")

		require.NoError(t, err)
		assert.Equal(t, "Example:\n\nfunc main() {\n    fmt.Println(\"hi\")\n}", text)
	})

	t.Run("honours line breaks", func(t *testing.T) {
		t.Parallel()

		text, err := goquery.NewTextConverter().Convert("<p>line one<br>line two</p>", "")

		require.NoError(t, err)
		assert.Equal(t, "line one\nline two", text)
	})

	t.Run("drops markup and scripts", func(t *testing.T) {
		t.Parallel()

		html := `<div><script>alert(1)</script><a href="/x">link text</a> and <em>emphasis</em></div>`

		text, err := goquery.NewTextConverter().Convert(html, "")

		require.NoError(t, err)
		assert.Equal(t, "link text and emphasis", text)
	})

	t.Run("renders table cells on one line per row", func(t *testing.T) {
		t.Parallel()

		html := `<table><tr><th>Name</th><th>Value</th></tr><tr><td>a</td><td>1</td></tr></table>`

		text, err := goquery.NewTextConverter().Convert(html, "")

		require.NoError(t, err)
		assert.Equal(t, "Name Value\na 1", text)
	})

	t.Run("returns parse error for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewTextConverter().Convert("", "")

		require.Error(t, err)
		assert.Equal(t, webread.EPARSE, webread.ErrorCode(err))
	})
}
