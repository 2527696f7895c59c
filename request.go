package webread

import (
	"errors"
	"fmt"
	"net/url"
	"time"
	"unicode/utf8"
)

// DefaultTimeout is the per-tier deadline used when a request does not set one.
const DefaultTimeout = 20 * time.Second

// Request describes a single URL to fetch.
type Request struct {
	URL     string
	Timeout time.Duration
}

// NewRequest returns a Request for rawURL with DefaultTimeout.
func NewRequest(rawURL string) Request {
	return Request{URL: rawURL, Timeout: DefaultTimeout}
}

// Validate returns an error if the request contains invalid fields.
func (r Request) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "url required")
	}
	u, err := url.Parse(r.URL)
	if err != nil {
		return Errorf(EINVALID, "invalid url %q: %v", r.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "url must use http or https: %q", r.URL)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "url must be absolute: %q", r.URL)
	}
	if r.Timeout <= 0 {
		return Errorf(EINVALID, "timeout must be positive")
	}
	return nil
}

// Attempt records the outcome of a single tier invocation.
type Attempt struct {
	Tier     Tier
	Content  string
	Err      error
	Verdict  Verdict
	Duration time.Duration
}

// Succeeded reports whether the attempt produced sufficient content.
func (a Attempt) Succeeded() bool {
	return a.Verdict == VerdictSufficient
}

// String summarises the attempt for diagnostics, for example
// "tier1 static: insufficient (too-short) 20 chars".
func (a Attempt) String() string {
	prefix := a.Tier.String() + " " + a.Tier.Name() + ": "
	switch {
	case a.Err != nil:
		return prefix + "failed (" + Classify(a.Err) + ") " + errorText(a.Err)
	case a.Succeeded():
		return fmt.Sprintf("%ssufficient %d chars", prefix, utf8.RuneCountInString(a.Content))
	default:
		return fmt.Sprintf("%sinsufficient (%s) %d chars", prefix, a.Verdict, utf8.RuneCountInString(a.Content))
	}
}

// errorText prefers the human message of an application error.
func errorText(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// AttemptFunc is called after each tier attempt has been classified.
type AttemptFunc func(Attempt)

// Result is the content produced by the first sufficient tier.
type Result struct {
	Content     string
	Tier        Tier
	ContentHash string
}
