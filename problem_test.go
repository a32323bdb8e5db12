package prosecheck_test

import (
	"strings"
	"testing"

	"github.com/akarpinski/prosecheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapProblems(t *testing.T) {
	t.Parallel()

	t.Run("maps sentence-relative highlight to document offsets", func(t *testing.T) {
		t.Parallel()

		doc := "Hello  my firend?"
		pt := prosecheck.Extract(doc, prosecheck.ScanExclusions(doc))
		sentences := prosecheck.SplitSentences(pt.ExtractedText)
		require.Len(t, sentences, 1)

		results := []prosecheck.SentenceResult{{
			Sentence: sentences[0],
			Problems: []prosecheck.Problem{{
				Category:   prosecheck.CategorySpelling,
				Message:    "possible spelling mistake",
				Highlights: []prosecheck.HighlightRange{{Start: 9, EndExclusive: 15}},
				Fixes:      []string{"friend"},
			}},
		}}

		positioned := prosecheck.MapProblems(results, sentences, pt)

		require.Len(t, positioned, 1)
		assert.Equal(t, 10, positioned[0].From)
		assert.Equal(t, 16, positioned[0].To)
		assert.Equal(t, "firend", doc[positioned[0].From:positioned[0].To])
		assert.Equal(t, 0, positioned[0].SentenceIndex)
	})

	t.Run("maps highlights across an exclusion", func(t *testing.T) {
		t.Parallel()

		doc := "Use the `console.log` function to debugg output."
		pt := prosecheck.Extract(doc, prosecheck.ScanExclusions(doc))
		sentences := prosecheck.SplitSentences(pt.ExtractedText)
		require.Len(t, sentences, 1)

		// "debugg" inside the extracted sentence.
		start := indexOf(t, sentences[0], "debugg")
		results := []prosecheck.SentenceResult{{
			Sentence: sentences[0],
			Problems: []prosecheck.Problem{{
				Category:   prosecheck.CategorySpelling,
				Message:    "possible spelling mistake",
				Highlights: []prosecheck.HighlightRange{{Start: start, EndExclusive: start + 6}},
			}},
		}}

		positioned := prosecheck.MapProblems(results, sentences, pt)

		require.Len(t, positioned, 1)
		assert.Equal(t, "debugg", doc[positioned[0].From:positioned[0].To])
	})

	t.Run("keeps highlight ends anchored before an abutting exclusion", func(t *testing.T) {
		t.Parallel()

		// No whitespace between the flagged word and the inline code, so
		// the highlight's end-exclusive offset falls on the join between
		// two retained segments. The mapped range must stop at the last
		// highlighted character, not extend over the excluded region.
		doc := "Use teh`code`more words here."
		pt := prosecheck.Extract(doc, prosecheck.ScanExclusions(doc))
		sentences := prosecheck.SplitSentences(pt.ExtractedText)
		require.Len(t, sentences, 1)
		require.Equal(t, "Use teh more words here.", sentences[0])

		results := []prosecheck.SentenceResult{{
			Sentence: sentences[0],
			Problems: []prosecheck.Problem{{
				Category:   prosecheck.CategorySpelling,
				Message:    "possible spelling mistake",
				Highlights: []prosecheck.HighlightRange{{Start: 4, EndExclusive: 7}},
				Fixes:      []string{"the"},
			}},
		}}

		positioned := prosecheck.MapProblems(results, sentences, pt)

		require.Len(t, positioned, 1)
		assert.Equal(t, 4, positioned[0].From)
		assert.Equal(t, 7, positioned[0].To)
		assert.Equal(t, "teh", doc[positioned[0].From:positioned[0].To])
	})

	t.Run("drops problems for sentences reshaped by markdown cleanup", func(t *testing.T) {
		t.Parallel()

		// Bold and italic wrappers are stripped during sentence splitting
		// but stay in the extracted text, so such a sentence cannot be
		// located and its problems are dropped rather than misplaced.
		doc := "This is **bold** and *italic* and plain."
		pt := prosecheck.Extract(doc, prosecheck.ScanExclusions(doc))
		sentences := prosecheck.SplitSentences(pt.ExtractedText)
		require.Len(t, sentences, 1)
		require.Equal(t, "This is bold and italic and plain.", sentences[0])

		results := []prosecheck.SentenceResult{{
			Sentence: sentences[0],
			Problems: []prosecheck.Problem{{
				Category:   prosecheck.CategoryStyle,
				Message:    "weak phrasing",
				Highlights: []prosecheck.HighlightRange{{Start: 0, EndExclusive: 4}},
			}},
		}}

		assert.Empty(t, prosecheck.MapProblems(results, sentences, pt))
	})

	t.Run("emits one positioned problem per highlight range", func(t *testing.T) {
		t.Parallel()

		doc := "Thiss is a badd sentence."
		pt := prosecheck.Extract(doc, nil)
		sentences := prosecheck.SplitSentences(pt.ExtractedText)
		require.Len(t, sentences, 1)

		results := []prosecheck.SentenceResult{{
			Sentence: sentences[0],
			Problems: []prosecheck.Problem{{
				Category: prosecheck.CategorySpelling,
				Message:  "two spelling mistakes",
				Highlights: []prosecheck.HighlightRange{
					{Start: 0, EndExclusive: 5},
					{Start: 11, EndExclusive: 15},
				},
			}},
		}}

		positioned := prosecheck.MapProblems(results, sentences, pt)

		require.Len(t, positioned, 2)
		assert.Equal(t, "Thiss", doc[positioned[0].From:positioned[0].To])
		assert.Equal(t, "badd", doc[positioned[1].From:positioned[1].To])
	})

	t.Run("drops problems whose mapped range is invalid", func(t *testing.T) {
		t.Parallel()

		doc := "A short sentence here."
		pt := prosecheck.Extract(doc, nil)
		sentences := prosecheck.SplitSentences(pt.ExtractedText)
		require.Len(t, sentences, 1)

		results := []prosecheck.SentenceResult{{
			Sentence: sentences[0],
			Problems: []prosecheck.Problem{{
				Category:   prosecheck.CategoryGrammar,
				Message:    "inverted range",
				Highlights: []prosecheck.HighlightRange{{Start: 5, EndExclusive: 5}},
			}},
		}}

		assert.Empty(t, prosecheck.MapProblems(results, sentences, pt))
	})

	t.Run("drops problems for sentences not found in extracted text", func(t *testing.T) {
		t.Parallel()

		doc := "Some document text here."
		pt := prosecheck.Extract(doc, nil)

		results := []prosecheck.SentenceResult{{
			Sentence: "Completely unrelated sentence.",
			Problems: []prosecheck.Problem{{
				Category:   prosecheck.CategoryGrammar,
				Message:    "should be dropped",
				Highlights: []prosecheck.HighlightRange{{Start: 0, EndExclusive: 5}},
			}},
		}}

		assert.Empty(t, prosecheck.MapProblems(results, []string{"Completely unrelated sentence."}, pt))
	})

	t.Run("locates sentences whose terminal period was appended", func(t *testing.T) {
		t.Parallel()

		doc := "First para without punctuation\n\nSecond para with a period."
		pt := prosecheck.Extract(doc, nil)
		sentences := prosecheck.SplitSentences(pt.ExtractedText)
		require.Len(t, sentences, 2)
		require.Equal(t, "First para without punctuation.", sentences[0])

		results := []prosecheck.SentenceResult{{
			Sentence: sentences[0],
			Problems: []prosecheck.Problem{{
				Category:   prosecheck.CategoryStyle,
				Message:    "wordy opener",
				Highlights: []prosecheck.HighlightRange{{Start: 0, EndExclusive: 5}},
			}},
		}}

		positioned := prosecheck.MapProblems(results, sentences, pt)

		require.Len(t, positioned, 1)
		assert.Equal(t, "First", doc[positioned[0].From:positioned[0].To])
	})

	t.Run("is idempotent for identical inputs", func(t *testing.T) {
		t.Parallel()

		doc := "Hello  my firend?"
		pt := prosecheck.Extract(doc, nil)
		sentences := prosecheck.SplitSentences(pt.ExtractedText)

		results := []prosecheck.SentenceResult{{
			Sentence: sentences[0],
			Problems: []prosecheck.Problem{{
				Category:   prosecheck.CategorySpelling,
				Highlights: []prosecheck.HighlightRange{{Start: 9, EndExclusive: 15}},
			}},
		}}

		first := prosecheck.MapProblems(results, sentences, pt)
		second := prosecheck.MapProblems(results, sentences, pt)

		assert.Equal(t, first, second)
	})
}

func indexOf(t *testing.T, s, sub string) int {
	t.Helper()
	i := strings.Index(s, sub)
	require.GreaterOrEqual(t, i, 0)
	return i
}
