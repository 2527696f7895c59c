package main

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/fwojciec/webread"
	"github.com/fwojciec/webread/goquery"
	"github.com/fwojciec/webread/htmltomarkdown"
	webhttp "github.com/fwojciec/webread/http"
	"github.com/fwojciec/webread/pipeline"
	"github.com/fwojciec/webread/readability"
	"github.com/fwojciec/webread/rod"
	webslog "github.com/fwojciec/webread/slog"
	"github.com/fwojciec/webread/trafilatura"
)

// wiring is the tier list built from flags plus the fetchers to close.
type wiring struct {
	tiers    []webread.TierFetcher
	fetchers []webread.Fetcher
}

// Close releases every fetcher.
func (w *wiring) Close() error {
	var errs []error
	for _, f := range w.fetchers {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// wire builds the tier list. The browser tier is included only when a
// browser binary is found, so the pipeline never branches on availability.
func (m *Main) wire(cli *CLI, deps *Dependencies) (*wiring, error) {
	extractor, err := newExtractor(cli.Extractor)
	if err != nil {
		return nil, err
	}
	converter, err := newConverter(cli.Format)
	if err != nil {
		return nil, err
	}
	detector := goquery.NewChallengeDetector()
	debug := cli.Debug

	w := &wiring{}
	fetcher := func(f webread.Fetcher) webread.Fetcher {
		w.fetchers = append(w.fetchers, f)
		if debug {
			return webslog.NewLoggingFetcher(f, deps.Logger)
		}
		return f
	}
	tier := func(t webread.TierFetcher) {
		if debug {
			t = webslog.NewLoggingTier(t, deps.Logger)
		}
		w.tiers = append(w.tiers, t)
	}

	tier(&pipeline.HTMLTier{
		Level:     webread.TierStatic,
		Fetcher:   fetcher(webhttp.NewFetcher(webhttp.WithTimeout(timeoutOf(cli)))),
		Detector:  detector,
		Extractor: extractor,
		Converter: converter,
	})

	tier(&pipeline.TextTier{
		Level:   webread.TierRemoteRender,
		Fetcher: fetcher(webhttp.NewReaderFetcher(
			webhttp.WithEndpoint(cli.ReaderEndpoint),
			webhttp.WithReaderTimeout(timeoutOf(cli)),
		)),
	})

	if cli.NoBrowser {
		fmt.Fprintln(deps.Stderr, "tier3 local-browser: skipped (disabled)")
		return w, nil
	}
	bin, ok := m.LookBrowser(cli.BrowserBin)
	if !ok {
		fmt.Fprintln(deps.Stderr, "tier3 local-browser: skipped (no Chrome or Chromium found)")
		return w, nil
	}
	tier(&pipeline.HTMLTier{
		Level:     webread.TierLocalBrowser,
		Fetcher:   fetcher(rod.NewFetcher(rod.WithBrowserBin(bin))),
		Detector:  detector,
		Extractor: extractor,
		Converter: converter,
	})

	return w, nil
}

func newExtractor(name string) (webread.Extractor, error) {
	switch name {
	case "", "main":
		return goquery.NewExtractor(), nil
	case "trafilatura":
		return trafilatura.NewExtractor(), nil
	case "readability":
		return readability.NewExtractor(), nil
	default:
		return nil, webread.Errorf(webread.EINVALID, "unknown extractor %q", name)
	}
}

func newConverter(format string) (webread.Converter, error) {
	switch format {
	case "", "text":
		return goquery.NewTextConverter(), nil
	case "markdown":
		return htmltomarkdown.NewConverter(), nil
	default:
		return nil, webread.Errorf(webread.EINVALID, "unknown format %q", format)
	}
}

// maxTimeoutSeconds is the largest timeout that still fits a time.Duration
// after timeoutOf adds its headroom.
const maxTimeoutSeconds = math.MaxInt64/int64(time.Second) - 1

// timeoutOf gives each HTTP client a little headroom over the tier deadline
// so the context deadline is what ends a slow request.
func timeoutOf(cli *CLI) time.Duration {
	return secondsToDuration(cli.Timeout) + time.Second
}

func secondsToDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}
