package webread

import (
	"strings"
	"unicode/utf8"
)

// MinContentLength is the minimum trimmed length, in characters, of text that
// counts as real content.
const MinContentLength = 350

// DefaultBlockSignals returns the phrases that identify bot-challenge and
// JavaScript-required placeholder pages. The list is heuristic.
func DefaultBlockSignals() []string {
	return []string{
		"just a moment",
		"enable javascript",
		"checking your browser",
		"verify you are human",
		"please wait",
		"ddos protection",
		"access denied",
		"403 forbidden",
		"404 not found",
	}
}

// Verdict is the outcome of classifying an attempt's content.
type Verdict int

// Verdict constants.
const (
	VerdictSufficient Verdict = iota
	VerdictFailed
	VerdictEmpty
	VerdictTooShort
	VerdictBlocked
)

// String returns a short word for diagnostics.
func (v Verdict) String() string {
	switch v {
	case VerdictSufficient:
		return "sufficient"
	case VerdictFailed:
		return "failed"
	case VerdictEmpty:
		return "empty"
	case VerdictTooShort:
		return "too-short"
	case VerdictBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Classifier decides whether text is real content or a failed/blocked response.
// A Classifier is immutable after construction and safe for concurrent use.
type Classifier struct {
	minLength int
	signals   []string
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*classifierConfig)

type classifierConfig struct {
	minLength    int
	extra        []string
	skipDefaults bool
}

// WithMinLength sets the minimum trimmed length. Defaults to MinContentLength.
func WithMinLength(n int) ClassifierOption {
	return func(c *classifierConfig) {
		c.minLength = n
	}
}

// WithBlockSignals adds block signals to the default set.
func WithBlockSignals(signals ...string) ClassifierOption {
	return func(c *classifierConfig) {
		c.extra = append(c.extra, signals...)
	}
}

// WithoutDefaultSignals drops DefaultBlockSignals so that only signals added
// with WithBlockSignals apply.
func WithoutDefaultSignals() ClassifierOption {
	return func(c *classifierConfig) {
		c.skipDefaults = true
	}
}

// NewClassifier creates a Classifier.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	cfg := classifierConfig{minLength: MinContentLength}
	for _, opt := range opts {
		opt(&cfg)
	}

	var raw []string
	if !cfg.skipDefaults {
		raw = DefaultBlockSignals()
	}
	raw = append(raw, cfg.extra...)

	signals := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		signals = append(signals, s)
	}

	return &Classifier{minLength: cfg.minLength, signals: signals}
}

// Classify returns the verdict for text.
func (c *Classifier) Classify(text string) Verdict {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return VerdictEmpty
	}
	if utf8.RuneCountInString(trimmed) < c.minLength {
		return VerdictTooShort
	}
	if c.hasBlockSignal(trimmed) {
		return VerdictBlocked
	}
	return VerdictSufficient
}

// IsSufficient reports whether text counts as real content.
func (c *Classifier) IsSufficient(text string) bool {
	return c.Classify(text) == VerdictSufficient
}

func (c *Classifier) hasBlockSignal(text string) bool {
	lower := strings.ToLower(text)
	for _, sig := range c.signals {
		if strings.Contains(lower, sig) {
			return true
		}
	}
	return false
}

var defaultClassifier = NewClassifier()

// IsSufficient reports whether text counts as real content using the default
// threshold and block signals.
func IsSufficient(text string) bool {
	return defaultClassifier.IsSufficient(text)
}
