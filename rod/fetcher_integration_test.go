//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/webread/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireBrowser(t *testing.T) {
	t.Helper()
	if _, ok := rod.LookBrowser(""); !ok {
		t.Skip("no Chrome or Chromium binary available")
	}
}

const clientRenderedPage = `<!DOCTYPE html>
<html>
<head><title>Client Rendered</title></head>
<body>
<div id="app">Loading...</div>
<script>
setTimeout(function () {
	document.getElementById('app').innerHTML =
		'<article><h1>Rendered Heading</h1><p>' + 'This paragraph only exists after scripts run. '.repeat(12) + '</p></article>';
}, 100);
</script>
</body>
</html>`

func TestFetcher_Integration_RendersJavaScript(t *testing.T) {
	t.Parallel()
	requireBrowser(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(clientRenderedPage))
	}))
	defer srv.Close()

	fetcher := rod.NewFetcher()
	defer fetcher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	html, err := fetcher.Fetch(ctx, srv.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "Rendered Heading")
	assert.Contains(t, html, "only exists after scripts run")
	assert.NotContains(t, html, "Loading...")
}

func TestFetcher_Integration_SendsBrowserHeaders(t *testing.T) {
	t.Parallel()
	requireBrowser(t)

	headers := make(chan http.Header, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			headers <- r.Header.Clone()
		}
		_, _ = w.Write([]byte("<html><body><p>ok</p></body></html>"))
	}))
	defer srv.Close()

	fetcher := rod.NewFetcher(rod.WithUserAgent("webread-browser-test"))
	defer fetcher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := fetcher.Fetch(ctx, srv.URL+"/")
	require.NoError(t, err)

	got := <-headers
	assert.Equal(t, "webread-browser-test", got.Get("User-Agent"))
	assert.Contains(t, got.Get("Accept-Language"), "en-US")
}

func TestFetcher_Integration_HidesWebdriverFlag(t *testing.T) {
	t.Parallel()
	requireBrowser(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p id="out"></p>
<script>document.getElementById('out').textContent = 'webdriver=' + String(navigator.webdriver);</script>
</body></html>`))
	}))
	defer srv.Close()

	fetcher := rod.NewFetcher()
	defer fetcher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	html, err := fetcher.Fetch(ctx, srv.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "webdriver=undefined")
}

func TestFetcher_Integration_DeadlineExceeded(t *testing.T) {
	t.Parallel()
	requireBrowser(t)

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	fetcher := rod.NewFetcher()
	defer fetcher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	start := time.Now()
	_, err := fetcher.Fetch(ctx, srv.URL)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 15*time.Second, "fetch should stop soon after the deadline")
}
