package readability_test

import (
	"testing"

	"github.com/fwojciec/webread"
	"github.com/fwojciec/webread/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements webread.Extractor at compile time.
var _ webread.Extractor = (*readability.Extractor)(nil)

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := readability.NewExtractor().Extract("\n", "")

	require.Error(t, err)
	assert.Equal(t, webread.EPARSE, webread.ErrorCode(err))
}

func TestExtractor_ExtractsTitleAndBody(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Tide Tables Explained</title></head>
<body>
<nav><a href="/">Harbour Home</a><a href="/charts">Charts Menu</a></nav>
<article>
<p>Tides are driven by the gravitational pull of the moon and, to a lesser degree, the sun acting on the oceans.</p>
<p>A tide table lists the predicted times and heights of high and low water for a specific port on each day.</p>
</article>
</body>
</html>`

	result, err := readability.NewExtractor().Extract(html, "https://harbour.example.com/guides/tides")

	require.NoError(t, err)
	assert.Equal(t, "Tide Tables Explained", result.Title)
	assert.Contains(t, result.ContentHTML, "gravitational pull of the moon")
}
