package prosecheck

import "strings"

// isCollapsibleSpace reports whether c belongs to the whitespace class
// collapsed by NormalizeWhitespace (the regexp \s class).
func isCollapsibleSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

// BuildPositionMap aligns a normalized string against the raw string it
// was derived from and returns, for every byte position in the normalized
// string, the corresponding byte position in the raw string.
//
// The normalized form differs from the raw form only by whitespace runs
// collapsed to a single space and trimmed ends. The two strings are
// walked simultaneously: matching non-whitespace bytes advance both
// pointers 1:1; a collapsed space in the normalized string advances the
// raw pointer past the entire whitespace run it replaced. A space in the
// normalized string with no whitespace counterpart in the raw string (the
// separator inserted between extracted segments) advances the normalized
// pointer only.
//
// This is the only place where the "one space replaced many characters"
// asymmetry introduced by extraction is reversed. A one-byte error here
// shifts every highlight downstream of it, so keep it exact.
func BuildPositionMap(raw, normalized string) []int {
	posMap := make([]int, 0, len(normalized))

	i := 0
	for i < len(raw) && isCollapsibleSpace(raw[i]) {
		i++
	}

	for j := 0; j < len(normalized); j++ {
		posMap = append(posMap, i)
		if normalized[j] == ' ' {
			for i < len(raw) && isCollapsibleSpace(raw[i]) {
				i++
			}
			continue
		}
		i++
	}

	return posMap
}

// lookupRawPosition resolves a normalized-text position through a
// position map. A position exactly equal to the normalized length maps to
// the raw length; positions beyond the table extrapolate linearly from
// the last known mapping.
func lookupRawPosition(posMap []int, normPos, rawLen int) int {
	if normPos < 0 {
		return -1
	}
	if normPos < len(posMap) {
		return posMap[normPos]
	}
	if normPos == len(posMap) {
		return rawLen
	}
	if len(posMap) == 0 {
		return normPos
	}
	last := posMap[len(posMap)-1]
	return last + (normPos - (len(posMap) - 1))
}

// MapToOriginal resolves an offset in the normalized extracted text to
// the corresponding offset in the original document, reversing whitespace
// collapsing, trimming, and exclusion removal. An offset past the end of
// all retained text maps to the end of the last retained segment. Returns
// -1 when the document has no retained text.
func MapToOriginal(extractedOffset int, pt *ProcessedText) int {
	if extractedOffset < 0 {
		return -1
	}

	retained := pt.retainedSegments()
	if len(retained) == 0 {
		return -1
	}

	// Single retained segment: identity when no whitespace was collapsed,
	// otherwise a straight alignment of the segment text.
	if len(retained) == 1 {
		seg := retained[0]
		if len(seg.Text) == len(pt.ExtractedText) {
			return seg.OriginalPosition + extractedOffset
		}
		posMap := BuildPositionMap(seg.Text, pt.ExtractedText)
		return seg.OriginalPosition + lookupRawPosition(posMap, extractedOffset, len(seg.Text))
	}

	// Multiple segments: align against the raw concatenation of retained
	// texts, then walk segments to find the owner of the raw offset.
	var sb strings.Builder
	for _, seg := range retained {
		sb.WriteString(seg.Text)
	}
	raw := sb.String()

	posMap := BuildPositionMap(raw, pt.ExtractedText)
	rawOffset := lookupRawPosition(posMap, extractedOffset, len(raw))

	acc := 0
	for _, seg := range retained {
		if rawOffset < acc+len(seg.Text) {
			return seg.OriginalPosition + (rawOffset - acc)
		}
		acc += len(seg.Text)
	}

	last := retained[len(retained)-1]
	return last.OriginalPosition + last.OriginalLength
}
