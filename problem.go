package prosecheck

import "strings"

// Category classifies a correction problem.
type Category string

// Category constants for Problem.
const (
	CategoryGrammar     Category = "grammar"
	CategorySpelling    Category = "spelling"
	CategoryPunctuation Category = "punctuation"
	CategoryStyle       Category = "style"
)

// HighlightRange is a half-open [Start,EndExclusive) range relative to a
// single sentence's own text, as returned by the correction service.
type HighlightRange struct {
	Start        int `json:"start"`
	EndExclusive int `json:"endExclusive"`
}

// Problem is one issue the correction service found in a sentence.
// Highlights are relative to the sentence text; Fixes are ordered
// replacement suggestions.
type Problem struct {
	Category   Category         `json:"category"`
	Message    string           `json:"message"`
	Highlights []HighlightRange `json:"highlights"`
	Fixes      []string         `json:"fixes"`
}

// ProblemWithPosition is a problem whose highlight has been resolved to
// absolute offsets in the original document: 0 <= From < To <= document
// length. SentenceOffset is the sentence's start offset within the
// extracted text.
type ProblemWithPosition struct {
	Problem        Problem `json:"problem"`
	From           int     `json:"from"`
	To             int     `json:"to"`
	SentenceIndex  int     `json:"sentenceIndex"`
	SentenceOffset int     `json:"sentenceOffset"`
}

// MapProblems converts sentence-relative correction results into
// original-document offsets, one positioned problem per highlight range.
// A problem whose mapped offsets are negative or inverted cannot be
// displayed safely and is silently dropped, never defaulted to a wrong
// position. The function is stateless and idempotent: it never mutates
// its inputs and identical inputs yield identical output.
func MapProblems(results []SentenceResult, sentences []string, pt *ProcessedText) []ProblemWithPosition {
	var positioned []ProblemWithPosition

	docLen := pt.DocumentLength()
	searchFrom := 0

	for idx, sentence := range sentences {
		if idx >= len(results) {
			break
		}

		offset := locateSentence(pt.ExtractedText, sentence, searchFrom)
		if offset < 0 {
			continue
		}
		searchFrom = offset + len(sentence)
		if searchFrom > len(pt.ExtractedText) {
			searchFrom = len(pt.ExtractedText)
		}

		for _, problem := range results[idx].Problems {
			for _, h := range problem.Highlights {
				from := MapToOriginal(offset+h.Start, pt)
				to := mapEndExclusive(offset+h.EndExclusive, pt)
				if from < 0 || to < 0 || from >= to || to > docLen {
					continue
				}
				positioned = append(positioned, ProblemWithPosition{
					Problem:        problem,
					From:           from,
					To:             to,
					SentenceIndex:  idx,
					SentenceOffset: offset,
				})
			}
		}
	}

	return positioned
}

// mapEndExclusive maps an end-exclusive extracted offset into document
// coordinates. The end is anchored to the last highlighted character:
// mapping the end offset itself can land on the far side of an excluded
// region when an exclusion directly abuts the highlighted text, because
// the segment-join space maps to the start of the next retained segment.
func mapEndExclusive(end int, pt *ProcessedText) int {
	if end <= 0 {
		return -1
	}
	if end-1 < len(pt.ExtractedText) && !isCollapsibleSpace(pt.ExtractedText[end-1]) {
		last := MapToOriginal(end-1, pt)
		if last < 0 {
			return -1
		}
		return last + 1
	}
	return MapToOriginal(end, pt)
}

// locateSentence finds the sentence's exact text inside the extracted
// text, searching forward from the previous sentence's end. Sentences
// gain a terminal "." during segmentation; when the exact text is not
// found, the variant without that appended period is tried before giving
// up.
func locateSentence(extracted, sentence string, from int) int {
	if from > len(extracted) {
		return -1
	}
	if i := strings.Index(extracted[from:], sentence); i >= 0 {
		return from + i
	}
	trimmed := strings.TrimSuffix(sentence, ".")
	if trimmed != sentence {
		if i := strings.Index(extracted[from:], trimmed); i >= 0 {
			return from + i
		}
	}
	return -1
}
