package mock

import (
	"context"

	"github.com/akarpinski/prosecheck"
)

var _ prosecheck.Checker = (*Checker)(nil)

// Checker is a mock implementation of prosecheck.Checker.
type Checker struct {
	CheckFn func(ctx context.Context, req prosecheck.CheckRequest) ([]prosecheck.SentenceResult, error)
}

func (c *Checker) Check(ctx context.Context, req prosecheck.CheckRequest) ([]prosecheck.SentenceResult, error) {
	return c.CheckFn(ctx, req)
}
