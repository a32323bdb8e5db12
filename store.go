package prosecheck

import "context"

// ResultStore persists correction results across sessions, keyed by
// sentence content. Unlike ResultCache it is durable and unbounded;
// implementations live in subpackages (e.g. sqlite/).
type ResultStore interface {
	// Get retrieves the stored result for the exact sentence text.
	// Returns ENOTFOUND if the sentence has never been stored.
	Get(ctx context.Context, sentence string) (*SentenceResult, error)

	// Put stores the result for the exact sentence text, replacing any
	// previous result for the same text.
	Put(ctx context.Context, sentence string, result SentenceResult) error
}

// SeenFilter is a probabilistic pre-filter in front of a ResultStore.
// Test may return false positives but never false negatives, so a false
// Test result safely skips the store lookup.
type SeenFilter interface {
	// Add records that a sentence has been stored.
	Add(sentence string)

	// Test reports whether the sentence might have been stored.
	Test(sentence string) bool
}
