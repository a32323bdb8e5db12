// Package http provides an HTTP-based implementation of
// prosecheck.Checker for correction services exposing a JSON API.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/akarpinski/prosecheck"
	"golang.org/x/time/rate"
)

// DefaultTimeout is the default timeout for correction service requests.
const DefaultTimeout = 30 * time.Second

// Ensure Checker implements prosecheck.Checker at compile time.
var _ prosecheck.Checker = (*Checker)(nil)

// Checker submits sentence batches to a correction service over HTTP.
// It does not retry: a failed call surfaces as a single EUNAVAILABLE
// error and the caller decides what to report.
type Checker struct {
	url     string
	client  *http.Client
	timeout time.Duration
	limiter *rate.Limiter
}

// Option configures a Checker.
type Option func(*Checker)

// WithTimeout sets the timeout for service requests. Defaults to
// DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		c.timeout = d
	}
}

// WithRateLimit caps outgoing requests to the given requests per second
// with no bursting. Useful against services with strict quotas.
func WithRateLimit(rps float64) Option {
	return func(c *Checker) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewChecker creates a Checker for the correction service at url.
func NewChecker(url string, opts ...Option) *Checker {
	c := &Checker{
		url:     url,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.client = &http.Client{Timeout: c.timeout}
	return c
}

// Wire format. Highlight ranges arrive under highlighting.always,
// relative to the individual sentence's text.
type wireRequest struct {
	Sentences []string `json:"sentences"`
	Language  string   `json:"language"`
	Services  []string `json:"services"`
}

type wireHighlighting struct {
	Always []wireRange `json:"always"`
}

type wireRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type wireProblem struct {
	Category     string           `json:"category"`
	Message      string           `json:"message"`
	Highlighting wireHighlighting `json:"highlighting"`
	Fixes        []string         `json:"fixes"`
}

type wireResult struct {
	Sentence string        `json:"sentence"`
	Language string        `json:"language"`
	Problems []wireProblem `json:"problems"`
}

// Check submits the request and returns one result per sentence, aligned
// by index with the request.
func (c *Checker) Check(ctx context.Context, req prosecheck.CheckRequest) ([]prosecheck.SentenceResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	services := make([]string, 0, len(req.Services))
	for _, s := range req.Services {
		services = append(services, string(s))
	}

	body, err := json.Marshal(wireRequest{
		Sentences: req.Sentences,
		Language:  string(req.Language),
		Services:  services,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, prosecheck.Errorf(prosecheck.EUNAVAILABLE, "correction service unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, prosecheck.Errorf(prosecheck.EUNAVAILABLE, "correction service returned HTTP %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, prosecheck.Errorf(prosecheck.EUNAVAILABLE, "reading correction service response: %v", err)
	}

	var wire []wireResult
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, prosecheck.Errorf(prosecheck.EUNAVAILABLE, "malformed correction service response: %v", err)
	}
	if len(wire) != len(req.Sentences) {
		return nil, prosecheck.Errorf(prosecheck.EUNAVAILABLE, "correction service returned %d results for %d sentences", len(wire), len(req.Sentences))
	}

	results := make([]prosecheck.SentenceResult, 0, len(wire))
	for _, w := range wire {
		results = append(results, toDomain(w))
	}
	return results, nil
}

// toDomain converts a wire result into the domain representation.
func toDomain(w wireResult) prosecheck.SentenceResult {
	res := prosecheck.SentenceResult{
		Sentence: w.Sentence,
		Language: prosecheck.Language(w.Language),
	}
	for _, wp := range w.Problems {
		p := prosecheck.Problem{
			Category: prosecheck.Category(wp.Category),
			Message:  wp.Message,
			Fixes:    wp.Fixes,
		}
		for _, r := range wp.Highlighting.Always {
			p.Highlights = append(p.Highlights, prosecheck.HighlightRange{
				Start:        r.Start,
				EndExclusive: r.End,
			})
		}
		res.Problems = append(res.Problems, p)
	}
	return res
}
