package prosecheck

// DefaultCacheCapacity is the default bound for sentence-result caches.
const DefaultCacheCapacity = 200

// ResultCache is a bounded cache of correction results keyed by sentence
// content. It exists purely to avoid resending byte-identical sentences
// to the correction service: the key is the sentence's own text, not a
// document position, so edits elsewhere in the document produce free
// hits. A miss simply means "not yet known"; the cache cannot fail.
type ResultCache interface {
	// Get returns the cached result for the exact sentence text and
	// refreshes its recency. The second return value is false on a miss.
	Get(sentence string) (SentenceResult, bool)

	// Set stores the result for the exact sentence text, evicting the
	// least-recently-used entry when the cache is at capacity.
	Set(sentence string, result SentenceResult)
}
