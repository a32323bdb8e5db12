// Package slog provides logging decorators for prosecheck services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/akarpinski/prosecheck"
)

// Ensure LoggingChecker implements prosecheck.Checker at compile time.
var _ prosecheck.Checker = (*LoggingChecker)(nil)

// LoggingChecker wraps a Checker with structured logging of every
// correction service call.
type LoggingChecker struct {
	next   prosecheck.Checker
	logger *slog.Logger
}

// NewLoggingChecker creates a new LoggingChecker.
func NewLoggingChecker(next prosecheck.Checker, logger *slog.Logger) *LoggingChecker {
	return &LoggingChecker{next: next, logger: logger}
}

// Check delegates to the wrapped checker and logs the outcome.
func (c *LoggingChecker) Check(ctx context.Context, req prosecheck.CheckRequest) ([]prosecheck.SentenceResult, error) {
	begin := time.Now()

	chars := 0
	for _, s := range req.Sentences {
		chars += len(s)
	}

	results, err := c.next.Check(ctx, req)
	if err != nil {
		c.logger.Error("correction service call failed",
			"sentences", len(req.Sentences),
			"characters", chars,
			"language", string(req.Language),
			"duration", time.Since(begin),
			"code", prosecheck.ErrorCode(err),
			"error", prosecheck.ErrorMessage(err),
		)
		return nil, err
	}

	problems := 0
	for _, r := range results {
		problems += len(r.Problems)
	}
	c.logger.Info("correction service call",
		"sentences", len(req.Sentences),
		"characters", chars,
		"language", string(req.Language),
		"problems", problems,
		"duration", time.Since(begin),
	)
	return results, nil
}
