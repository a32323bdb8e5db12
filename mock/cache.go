package mock

import "github.com/akarpinski/prosecheck"

var _ prosecheck.ResultCache = (*ResultCache)(nil)

// ResultCache is a mock implementation of prosecheck.ResultCache.
type ResultCache struct {
	GetFn func(sentence string) (prosecheck.SentenceResult, bool)
	SetFn func(sentence string, result prosecheck.SentenceResult)
}

func (c *ResultCache) Get(sentence string) (prosecheck.SentenceResult, bool) {
	return c.GetFn(sentence)
}

func (c *ResultCache) Set(sentence string, result prosecheck.SentenceResult) {
	c.SetFn(sentence, result)
}
