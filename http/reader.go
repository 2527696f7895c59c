package http

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/webread"
)

const (
	// DefaultReaderEndpoint is the public Jina Reader prefix. The target URL
	// is appended to it verbatim.
	DefaultReaderEndpoint = "https://r.jina.ai/"

	// MaxReaderTimeout caps the render time requested from the proxy.
	MaxReaderTimeout = 30 * time.Second
)

// Ensure ReaderFetcher implements webread.Fetcher at compile time.
var _ webread.Fetcher = (*ReaderFetcher)(nil)

// ReaderFetcher retrieves pages through a remote rendering proxy which
// executes JavaScript and returns the page as plain text or Markdown.
type ReaderFetcher struct {
	client   *http.Client
	endpoint string
	timeout  time.Duration
}

// ReaderOption configures a ReaderFetcher.
type ReaderOption func(*ReaderFetcher)

// WithEndpoint sets the proxy prefix the target URL is appended to.
func WithEndpoint(prefix string) ReaderOption {
	return func(f *ReaderFetcher) {
		f.endpoint = prefix
	}
}

// WithReaderTimeout sets the client timeout. It bounds the whole request
// independently of the render time requested through X-Timeout.
func WithReaderTimeout(d time.Duration) ReaderOption {
	return func(f *ReaderFetcher) {
		f.timeout = d
	}
}

// WithReaderClient replaces the underlying HTTP client.
func WithReaderClient(c *http.Client) ReaderOption {
	return func(f *ReaderFetcher) {
		f.client = c
	}
}

// NewReaderFetcher creates a ReaderFetcher using DefaultReaderEndpoint.
func NewReaderFetcher(opts ...ReaderOption) *ReaderFetcher {
	f := &ReaderFetcher{
		endpoint: DefaultReaderEndpoint,
		timeout:  DefaultFetchTimeout,
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

// Endpoint returns the configured proxy prefix.
func (f *ReaderFetcher) Endpoint() string {
	return f.endpoint
}

// Fetch asks the proxy to render url and returns the text body.
func (f *ReaderFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint+url, nil)
	if err != nil {
		return "", webread.Errorf(webread.EINVALID, "build reader request: %v", err)
	}
	req.Header.Set("Accept", "text/plain, text/markdown")
	req.Header.Set("X-Timeout", strconv.Itoa(renderTimeout(ctx)))

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("reader get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, url); err != nil {
		return "", err
	}

	body, err := readBody(resp.Body)
	if err != nil {
		return "", err
	}

	return strings.ToValidUTF8(string(body), ""), nil
}

// Close releases resources. A no-op since http.Client needs no cleanup.
func (f *ReaderFetcher) Close() error {
	return nil
}

// renderTimeout is the whole number of seconds left on ctx, between 1 and
// MaxReaderTimeout.
func renderTimeout(ctx context.Context) int {
	limit := int(MaxReaderTimeout / time.Second)
	deadline, ok := ctx.Deadline()
	if !ok {
		return limit
	}
	secs := int(math.Ceil(time.Until(deadline).Seconds()))
	if secs < 1 {
		return 1
	}
	if secs > limit {
		return limit
	}
	return secs
}
