// Package pipeline runs retrieval tiers in escalation order and returns the
// first sufficient result.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/webread"
)

// Pipeline tries each tier in turn until one yields sufficient content.
// Tiers run strictly one after another and never see each other's output.
type Pipeline struct {
	tiers      []webread.TierFetcher
	classifier *webread.Classifier
	onAttempt  webread.AttemptFunc
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClassifier replaces the default sufficiency classifier.
func WithClassifier(c *webread.Classifier) Option {
	return func(p *Pipeline) {
		p.classifier = c
	}
}

// WithAttemptFunc registers a callback invoked after every tier attempt.
func WithAttemptFunc(fn webread.AttemptFunc) Option {
	return func(p *Pipeline) {
		p.onAttempt = fn
	}
}

// New creates a Pipeline over tiers, tried in the given order.
func New(tiers []webread.TierFetcher, opts ...Option) *Pipeline {
	p := &Pipeline{
		tiers:      tiers,
		classifier: webread.NewClassifier(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type state int

const (
	stateTry state = iota
	stateDone
	stateFailed
)

// Fetch returns content from the first tier whose output is sufficient.
// It returns an EINVALID error for a bad request, an EEXHAUSTED error when
// every tier fell short, or the context error when ctx ends first.
func (p *Pipeline) Fetch(ctx context.Context, req webread.Request) (*webread.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var (
		st       = stateTry
		next     int
		attempts = make([]webread.Attempt, 0, len(p.tiers))
		result   *webread.Result
	)
	for {
		switch st {
		case stateTry:
			if next >= len(p.tiers) {
				st = stateFailed
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			a := p.attempt(ctx, p.tiers[next], req)
			attempts = append(attempts, a)
			if p.onAttempt != nil {
				p.onAttempt(a)
			}

			if a.Succeeded() {
				result = &webread.Result{
					Content:     a.Content,
					Tier:        a.Tier,
					ContentHash: Hash(a.Content),
				}
				st = stateDone
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			next++

		case stateDone:
			return result, nil

		case stateFailed:
			return nil, exhausted(attempts)
		}
	}
}

// attempt runs one tier under its own deadline and classifies the output.
func (p *Pipeline) attempt(ctx context.Context, tier webread.TierFetcher, req webread.Request) webread.Attempt {
	ctx, cancel := context.WithTimeout(ctx, req.Timeout)
	defer cancel()

	begin := time.Now()
	content, err := tier.Fetch(ctx, req)
	a := webread.Attempt{
		Tier:     tier.Tier(),
		Duration: time.Since(begin),
	}
	if err != nil {
		a.Err = err
		a.Verdict = webread.VerdictFailed
		return a
	}

	a.Content = webread.Clean(content)
	a.Verdict = p.classifier.Classify(a.Content)
	return a
}

// Hash returns the hex xxhash64 digest of content.
func Hash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

func exhausted(attempts []webread.Attempt) error {
	if len(attempts) == 0 {
		return webread.Errorf(webread.EEXHAUSTED, "no tiers available")
	}
	parts := make([]string, len(attempts))
	for i, a := range attempts {
		parts[i] = a.String()
	}
	return webread.Errorf(webread.EEXHAUSTED, "all tiers failed: %s", strings.Join(parts, "; "))
}
