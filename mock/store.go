package mock

import (
	"context"

	"github.com/akarpinski/prosecheck"
)

var _ prosecheck.ResultStore = (*ResultStore)(nil)

// ResultStore is a mock implementation of prosecheck.ResultStore.
type ResultStore struct {
	GetFn func(ctx context.Context, sentence string) (*prosecheck.SentenceResult, error)
	PutFn func(ctx context.Context, sentence string, result prosecheck.SentenceResult) error
}

func (s *ResultStore) Get(ctx context.Context, sentence string) (*prosecheck.SentenceResult, error) {
	return s.GetFn(ctx, sentence)
}

func (s *ResultStore) Put(ctx context.Context, sentence string, result prosecheck.SentenceResult) error {
	return s.PutFn(ctx, sentence, result)
}

var _ prosecheck.SeenFilter = (*SeenFilter)(nil)

// SeenFilter is a mock implementation of prosecheck.SeenFilter.
type SeenFilter struct {
	AddFn  func(sentence string)
	TestFn func(sentence string) bool
}

func (f *SeenFilter) Add(sentence string) {
	f.AddFn(sentence)
}

func (f *SeenFilter) Test(sentence string) bool {
	return f.TestFn(sentence)
}
