package prosecheck

import (
	"regexp"
	"strings"
)

// TextSegment is a contiguous slice of the original document, either
// excluded from checking or retained.
type TextSegment struct {
	Text             string `json:"text"`
	OriginalPosition int    `json:"originalPosition"`
	OriginalLength   int    `json:"originalLength"`
	IsExcluded       bool   `json:"isExcluded"`
}

// ProcessedText is the output of Extract. Segments exactly partition
// [0, len(document)) in document order; ExtractedText is the
// whitespace-normalized concatenation of all retained segments.
// A ProcessedText is owned by the check that produced it and is never
// mutated after creation.
type ProcessedText struct {
	Segments      []TextSegment   `json:"segments"`
	ExtractedText string          `json:"extractedText"`
	Exclusions    []TextExclusion `json:"exclusions"`
}

// DocumentLength returns the length of the original document the
// ProcessedText was built from.
func (pt *ProcessedText) DocumentLength() int {
	n := 0
	for _, seg := range pt.Segments {
		n += seg.OriginalLength
	}
	return n
}

var whitespaceRunRe = regexp.MustCompile(`\s+`)

// asciiWhitespace is the cutset matched by the \s regexp class. Trimming
// must use the same class as run-collapsing or BuildPositionMap would see
// characters the normalization never removed.
const asciiWhitespace = " \t\n\f\r"

// NormalizeWhitespace collapses every whitespace run to a single space
// and trims leading and trailing whitespace. No other characters are
// substituted; this is the only transformation BuildPositionMap reverses.
func NormalizeWhitespace(s string) string {
	return strings.Trim(whitespaceRunRe.ReplaceAllString(s, " "), asciiWhitespace)
}

// Extract walks the document once, alternating gap segments (between
// exclusions) and exclusion segments, and builds the normalized extracted
// text from the retained gaps. The exclusions must be sorted and
// non-overlapping, as produced by ScanExclusions.
func Extract(document string, exclusions []TextExclusion) *ProcessedText {
	var segments []TextSegment
	pos := 0

	for _, excl := range exclusions {
		if excl.Start > pos {
			segments = append(segments, TextSegment{
				Text:             document[pos:excl.Start],
				OriginalPosition: pos,
				OriginalLength:   excl.Start - pos,
				IsExcluded:       false,
			})
		}
		segments = append(segments, TextSegment{
			Text:             excl.OriginalText,
			OriginalPosition: excl.Start,
			OriginalLength:   excl.End - excl.Start,
			IsExcluded:       true,
		})
		pos = excl.End
	}

	if pos < len(document) {
		segments = append(segments, TextSegment{
			Text:             document[pos:],
			OriginalPosition: pos,
			OriginalLength:   len(document) - pos,
			IsExcluded:       false,
		})
	}

	var parts []string
	for _, seg := range segments {
		if !seg.IsExcluded {
			parts = append(parts, seg.Text)
		}
	}

	return &ProcessedText{
		Segments:      segments,
		ExtractedText: NormalizeWhitespace(strings.Join(parts, " ")),
		Exclusions:    exclusions,
	}
}

// retainedSegments returns the non-excluded segments in document order.
func (pt *ProcessedText) retainedSegments() []TextSegment {
	var retained []TextSegment
	for _, seg := range pt.Segments {
		if !seg.IsExcluded {
			retained = append(retained, seg)
		}
	}
	return retained
}
