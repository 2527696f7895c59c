// Package http provides net/http implementations of webread.Fetcher: a static
// page fetcher that returns raw HTML and a reader-proxy fetcher that returns
// text rendered by a remote service.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/webread"
	"golang.org/x/net/html/charset"
)

const (
	// DefaultFetchTimeout bounds a single request when the context has no
	// earlier deadline.
	DefaultFetchTimeout = 30 * time.Second

	// DefaultUserAgent mimics a desktop Chrome browser.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	// DefaultAcceptLanguage is sent with every browser-like request.
	DefaultAcceptLanguage = "en-US,en;q=0.9"

	// MaxBodySize is the largest response body read before giving up.
	MaxBodySize = 10 << 20

	// MaxRedirects is the number of redirects followed before giving up.
	MaxRedirects = 10
)

// Ensure Fetcher implements webread.Fetcher at compile time.
var _ webread.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs with a single GET request.
// It does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the client timeout for HTTP requests.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithClient replaces the underlying HTTP client. The client's redirect
// policy and timeout are used as is.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout:       f.timeout,
			CheckRedirect: checkRedirect,
		}
	}

	return f
}

// Fetch retrieves the HTML content from the given URL, decoded to UTF-8.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", webread.Errorf(webread.EINVALID, "build request: %v", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", DefaultAcceptLanguage)
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, url); err != nil {
		return "", err
	}

	body, err := readBody(resp.Body)
	if err != nil {
		return "", err
	}

	r, err := charset.NewReader(bytes.NewReader(body), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", webread.Errorf(webread.EPARSE, "decode charset: %v", err)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", webread.Errorf(webread.EPARSE, "decode charset: %v", err)
	}

	return string(decoded), nil
}

// Close releases resources. A no-op since http.Client needs no cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// checkRedirect limits redirect chains and refuses to leave http(s).
func checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= MaxRedirects {
		return fmt.Errorf("stopped after %d redirects", MaxRedirects)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return fmt.Errorf("redirect to unsupported scheme %q", req.URL.Scheme)
	}
	return nil
}

func checkStatus(resp *http.Response, url string) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return webread.Errorf(webread.ENETWORK, "HTTP %d for %s", resp.StatusCode, url)
	}
	return nil
}

// readBody reads at most MaxBodySize bytes and reports oversized bodies.
func readBody(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > MaxBodySize {
		return nil, webread.Errorf(webread.EPARSE, "response body exceeds %d bytes", MaxBodySize)
	}
	return data, nil
}
