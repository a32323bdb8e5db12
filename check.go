package prosecheck

import (
	"context"
	"strings"
)

// Pipeline wires the extraction, segmentation, caching, and mapping
// stages around a Checker. Cache, Store, and Seen are optional: a nil
// Cache disables in-memory caching, a nil Store disables persistence, and
// a nil Seen disables the probabilistic store pre-filter.
type Pipeline struct {
	Checker  Checker
	Cache    ResultCache
	Store    ResultStore
	Seen     SeenFilter
	Language Language
	Services []Service
}

// CheckResult is the outcome of checking one document or sub-range.
// RangeStart and RangeEnd are the document bounds actually checked; for a
// sub-range check they reflect the expansion to line boundaries.
type CheckResult struct {
	Problems   []ProblemWithPosition
	Sentences  []string
	Processed  *ProcessedText
	RangeStart int
	RangeEnd   int
}

// CheckDocument checks a whole document: excluded regions are removed,
// the remaining prose is split into sentences, cached results are reused,
// only unseen sentences are submitted to the correction service, and the
// returned sentence-relative ranges are mapped back to absolute offsets
// in the original document.
func (p *Pipeline) CheckDocument(ctx context.Context, document string) (*CheckResult, error) {
	exclusions := ScanExclusions(document)
	pt := Extract(document, exclusions)
	sentences := SplitSentences(pt.ExtractedText)

	if len(sentences) == 0 {
		return &CheckResult{Processed: pt, RangeEnd: len(document)}, nil
	}

	results, err := p.checkSentences(ctx, sentences)
	if err != nil {
		return nil, err
	}

	return &CheckResult{
		Problems:   MapProblems(results, sentences, pt),
		Sentences:  sentences,
		Processed:  pt,
		RangeStart: 0,
		RangeEnd:   len(document),
	}, nil
}

// CheckRange checks the sub-range [offset, offset+length) of the
// document, expanded outward to line boundaries, and returns problems
// shifted into whole-document coordinates, ready for
// DecorationSet.MergeRange.
func (p *Pipeline) CheckRange(ctx context.Context, document string, offset, length int) (*CheckResult, error) {
	if offset < 0 || length < 0 || offset+length > len(document) {
		return nil, Errorf(EINVALID, "range [%d,%d) out of bounds for document of length %d", offset, offset+length, len(document))
	}

	start := offset
	if i := strings.LastIndexByte(document[:start], '\n'); i >= 0 {
		start = i + 1
	} else {
		start = 0
	}
	end := offset + length
	if i := strings.IndexByte(document[end:], '\n'); i >= 0 {
		end += i
	} else {
		end = len(document)
	}

	result, err := p.CheckDocument(ctx, document[start:end])
	if err != nil {
		return nil, err
	}

	shifted := make([]ProblemWithPosition, 0, len(result.Problems))
	for _, prob := range result.Problems {
		prob.From += start
		prob.To += start
		shifted = append(shifted, prob)
	}
	result.Problems = shifted
	result.RangeStart = start
	result.RangeEnd = end

	return result, nil
}

// checkSentences resolves each sentence through the cache and store, then
// submits the remaining misses to the correction service in one request.
// The returned slice is aligned by index with sentences.
func (p *Pipeline) checkSentences(ctx context.Context, sentences []string) ([]SentenceResult, error) {
	req := CheckRequest{Sentences: sentences, Language: p.Language, Services: p.Services}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	results := make([]SentenceResult, len(sentences))
	var misses []string
	var missIdx []int

	for i, sentence := range sentences {
		if res, ok := p.lookup(ctx, sentence); ok {
			results[i] = res
			continue
		}
		misses = append(misses, sentence)
		missIdx = append(missIdx, i)
	}

	if len(misses) == 0 {
		return results, nil
	}

	fresh, err := p.Checker.Check(ctx, CheckRequest{
		Sentences: misses,
		Language:  p.Language,
		Services:  p.Services,
	})
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(misses) {
		return nil, Errorf(EUNAVAILABLE, "correction service returned %d results for %d sentences", len(fresh), len(misses))
	}

	for j, res := range fresh {
		results[missIdx[j]] = res
		p.remember(ctx, misses[j], res)
	}

	return results, nil
}

// lookup consults the in-memory cache first, then the persistent store
// behind the seen filter. A store hit is promoted into the cache.
func (p *Pipeline) lookup(ctx context.Context, sentence string) (SentenceResult, bool) {
	if p.Cache != nil {
		if res, ok := p.Cache.Get(sentence); ok {
			return res, true
		}
	}
	if p.Store == nil {
		return SentenceResult{}, false
	}
	if p.Seen != nil && !p.Seen.Test(sentence) {
		return SentenceResult{}, false
	}
	res, err := p.Store.Get(ctx, sentence)
	if err != nil {
		return SentenceResult{}, false
	}
	if p.Cache != nil {
		p.Cache.Set(sentence, *res)
	}
	return *res, true
}

// remember records a fresh service result in the cache and store. Store
// failures are not fatal to the check.
func (p *Pipeline) remember(ctx context.Context, sentence string, res SentenceResult) {
	if p.Cache != nil {
		p.Cache.Set(sentence, res)
	}
	if p.Store != nil {
		if err := p.Store.Put(ctx, sentence, res); err == nil && p.Seen != nil {
			p.Seen.Add(sentence)
		}
	}
}
