package prosecheck

import (
	"regexp"
	"sort"
)

// ExclusionKind classifies a region of a document that must not be sent
// for checking.
type ExclusionKind string

// ExclusionKind constants for TextExclusion.
const (
	KindCodeBlock   ExclusionKind = "code_block"
	KindInlineCode  ExclusionKind = "inline_code"
	KindLink        ExclusionKind = "link"
	KindImage       ExclusionKind = "image"
	KindHTMLTag     ExclusionKind = "html_tag"
	KindFrontmatter ExclusionKind = "frontmatter"
	KindMath        ExclusionKind = "math"
	KindHeader      ExclusionKind = "header"
)

// TextExclusion is a half-open [Start,End) byte range in the original
// document that must be omitted from checking, with its classification.
type TextExclusion struct {
	Start        int           `json:"start"`
	End          int           `json:"end"`
	Kind         ExclusionKind `json:"kind"`
	OriginalText string        `json:"originalText"`
}

// Detector patterns, in priority order. Later detectors must not re-match
// text already claimed by an earlier one (e.g. link detection skips ranges
// claimed by image detection so ![alt](url) is not re-split as a link).
var (
	fencedCodeRe   = regexp.MustCompile("(?s)```.*?```")
	indentedCodeRe = regexp.MustCompile(`(?m)^(?:[ ]{4}|\t).*\n?`)
	inlineCodeRe   = regexp.MustCompile("`[^`\n]+`")
	frontmatterRe  = regexp.MustCompile(`(?s)\A---\n.*?\n---[ \t]*(?:\n|\z)`)
	blockMathRe    = regexp.MustCompile(`(?s)\$\$.*?\$\$`)
	inlineMathRe   = regexp.MustCompile(`\$[^$\n]+\$`)
	imageRe        = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRe         = regexp.MustCompile(`\[[^\]]*\]\([^)]*\)`)
	htmlTagRe      = regexp.MustCompile(`</?[a-zA-Z][^>\n]*>`)
	headerRe       = regexp.MustCompile(`(?m)^#{1,6}[ \t].*$`)
)

// detector pairs a pattern with the exclusion kind it produces.
type detector struct {
	re   *regexp.Regexp
	kind ExclusionKind
}

// detectors run in a fixed priority order: code fences and indented code,
// inline code, front-matter, math, images, links, HTML tags, headers.
var detectors = []detector{
	{fencedCodeRe, KindCodeBlock},
	{indentedCodeRe, KindCodeBlock},
	{inlineCodeRe, KindInlineCode},
	{frontmatterRe, KindFrontmatter},
	{blockMathRe, KindMath},
	{inlineMathRe, KindMath},
	{imageRe, KindImage},
	{linkRe, KindLink},
	{htmlTagRe, KindHTMLTag},
	{headerRe, KindHeader},
}

// ScanExclusions finds all regions of the document that must not be sent
// for checking and returns them sorted by Start, coalesced so that the
// result is mutually non-overlapping. Overlapping or adjacent ranges are
// merged keeping the first range's kind. An empty document yields an
// empty list.
func ScanExclusions(document string) []TextExclusion {
	if document == "" {
		return nil
	}

	var exclusions []TextExclusion
	for _, d := range detectors {
		for _, loc := range d.re.FindAllStringIndex(document, -1) {
			if overlapsAny(exclusions, loc[0], loc[1]) {
				continue
			}
			exclusions = append(exclusions, TextExclusion{
				Start:        loc[0],
				End:          loc[1],
				Kind:         d.kind,
				OriginalText: document[loc[0]:loc[1]],
			})
		}
	}

	return mergeExclusions(document, exclusions)
}

// overlapsAny reports whether [start,end) intersects any already-claimed
// exclusion.
func overlapsAny(claimed []TextExclusion, start, end int) bool {
	for _, c := range claimed {
		if start < c.End && end > c.Start {
			return true
		}
	}
	return false
}

// mergeExclusions sorts exclusions by Start and coalesces overlapping or
// adjacent ranges in a single left-to-right sweep. Two exclusions merge
// when the next one's Start is <= the current one's End; the merged range
// keeps the first range's kind.
func mergeExclusions(document string, exclusions []TextExclusion) []TextExclusion {
	if len(exclusions) == 0 {
		return nil
	}

	sort.SliceStable(exclusions, func(i, j int) bool {
		return exclusions[i].Start < exclusions[j].Start
	})

	merged := make([]TextExclusion, 0, len(exclusions))
	cur := exclusions[0]
	for _, next := range exclusions[1:] {
		if next.Start <= cur.End {
			if next.End > cur.End {
				cur.End = next.End
			}
			cur.OriginalText = document[cur.Start:cur.End]
			continue
		}
		merged = append(merged, cur)
		cur = next
	}
	merged = append(merged, cur)

	return merged
}
