// Package rod provides a webread.Fetcher that renders pages in a local
// headless Chrome driven over the DevTools protocol.
package rod

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/webread"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

const (
	// DefaultUserAgent is sent instead of the HeadlessChrome default.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	// DefaultAcceptLanguage matches the static tier's request headers.
	DefaultAcceptLanguage = "en-US,en;q=0.9"

	// DefaultIdleWindow is how long the network must be quiet to count as idle.
	DefaultIdleWindow = 500 * time.Millisecond

	// DefaultSettleDelay gives late scripts a moment after readiness.
	DefaultSettleDelay = 500 * time.Millisecond

	// DefaultPollInterval is how often the content-ready check runs.
	DefaultPollInterval = 200 * time.Millisecond
)

// stealthScript runs before any page script and hides the most common
// automation tells.
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
Object.defineProperty(navigator, 'plugins', { get: () => [1, 2, 3, 4, 5] });
if (!window.chrome) { window.chrome = { runtime: {} }; }
`

// bodyTextLength counts code points of the rendered body text.
const bodyTextLength = `() => document.body ? Array.from(document.body.innerText || '').length : 0`

// Ensure Fetcher implements webread.Fetcher at compile time.
var _ webread.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML by launching a fresh headless browser for
// every Fetch call. The browser never outlives the call.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	bin          string
	userAgent    string
	idleWindow   time.Duration
	settleDelay  time.Duration
	pollInterval time.Duration
	readyLength  int

	closed  atomic.Bool
	lastPID atomic.Int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithBrowserBin sets the Chrome or Chromium binary to launch.
func WithBrowserBin(bin string) Option {
	return func(f *Fetcher) {
		f.bin = bin
	}
}

// WithUserAgent overrides the browser user agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithSettleDelay sets the pause between readiness and HTML capture.
func WithSettleDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settleDelay = d
	}
}

// WithIdleWindow sets the quiet period that counts as network idle.
func WithIdleWindow(d time.Duration) Option {
	return func(f *Fetcher) {
		f.idleWindow = d
	}
}

// WithReadyLength sets how much rendered body text, in characters, marks the
// page as ready without waiting for network idle.
func WithReadyLength(n int) Option {
	return func(f *Fetcher) {
		f.readyLength = n
	}
}

// NewFetcher creates a new Fetcher. No browser starts until Fetch is called.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		userAgent:    DefaultUserAgent,
		idleWindow:   DefaultIdleWindow,
		settleDelay:  DefaultSettleDelay,
		pollInterval: DefaultPollInterval,
		readyLength:  webread.MinContentLength,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch launches a browser, renders url and returns the page HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", webread.Errorf(webread.EINVALID, "browser fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	bin, ok := LookBrowser(f.bin)
	if !ok {
		return "", webread.Errorf(webread.EUNAVAILABLE, "no Chrome or Chromium binary found")
	}

	s, err := launch(ctx, bin)
	if err != nil {
		return "", webread.Errorf(webread.EUNAVAILABLE, "%v", err)
	}
	f.lastPID.Store(int64(s.pid()))
	defer func() { _ = s.close() }()

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	page = page.Context(ctx)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      f.userAgent,
		AcceptLanguage: DefaultAcceptLanguage,
	}); err != nil {
		return "", err
	}
	if _, err := page.SetExtraHeaders([]string{"Accept-Language", DefaultAcceptLanguage}); err != nil {
		return "", err
	}
	if _, err := page.EvalOnNewDocument(stealthScript); err != nil {
		return "", err
	}

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	f.waitReady(ctx, page)

	if err := sleep(ctx, f.settleDelay); err != nil {
		return "", err
	}

	return page.HTML()
}

// waitReady blocks until the network goes idle or enough body text has
// rendered, whichever happens first. Both watchers have exited on return.
func (f *Fetcher) waitReady(ctx context.Context, page *rod.Page) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{}, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		page.Context(ctx).WaitRequestIdle(f.idleWindow, nil, nil, nil)()
		done <- struct{}{}
	}()
	go func() {
		defer wg.Done()
		f.waitContent(ctx, page.Context(ctx))
		done <- struct{}{}
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
	cancel()
	wg.Wait()
}

// waitContent polls the rendered body text length until it reaches
// readyLength or ctx ends.
func (f *Fetcher) waitContent(ctx context.Context, page *rod.Page) {
	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()
	for {
		res, err := page.Eval(bodyTextLength)
		if err == nil && res.Value.Int() >= f.readyLength {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Close marks the fetcher closed. Browsers are released by each Fetch call,
// so there is nothing else to free. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	f.closed.Store(true)
	return nil
}

// LauncherPID returns the process ID of the most recently launched browser.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return int(f.lastPID.Load())
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
