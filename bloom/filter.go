// Package bloom provides a probabilistic seen-sentence filter using Bloom
// filters, used to skip persistent-store lookups for sentences that were
// never stored.
package bloom

import (
	"sync"

	"github.com/akarpinski/prosecheck"
	"github.com/bits-and-blooms/bloom/v3"
)

// Ensure Filter implements prosecheck.SeenFilter at compile time.
var _ prosecheck.SeenFilter = (*Filter)(nil)

// Filter wraps a Bloom filter keyed by sentence text. Test may return
// false positives (a harmless extra store lookup) but never false
// negatives. The underlying filter is not safe for concurrent use, so
// access is serialized; one Filter is shared across check workers.
type Filter struct {
	mu sync.RWMutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Filter sized for n expected sentences with the
// given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records that a sentence has been stored.
func (f *Filter) Add(sentence string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(sentence)
}

// Test reports whether the sentence might have been stored.
func (f *Filter) Test(sentence string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.f.TestString(sentence)
}
