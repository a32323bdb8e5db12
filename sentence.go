package prosecheck

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sentence extraction tunables. The bare-space paragraph-break heuristic
// is inherently approximate and can both over-split and under-split; the
// thresholds below are long-standing behavior, do not tweak them without
// a product decision.
const (
	minSentenceLength      = 4
	paragraphBreakMinChars = 20
)

// continuationWords are common sentence continuations; a capitalized word
// following a bare space does not start a new sentence when it matches
// one of these (case-insensitively).
var continuationWords = map[string]bool{
	"and": true, "or": true, "the": true, "a": true, "an": true,
	"in": true, "on": true, "at": true, "to": true, "for": true,
	"of": true, "with": true,
}

// Cosmetic markdown removed before boundary detection. These patterns are
// content-preserving in the sense that they operate on already-extracted
// text, before any sentence is located back in it.
var (
	headerMarkerRe   = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	boldRe           = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe         = regexp.MustCompile(`\*([^*]+)\*`)
	boldUnderscoreRe = regexp.MustCompile(`__([^_]+)__`)
	italicUnderRe    = regexp.MustCompile(`_([^_]+)_`)
	strikethroughRe  = regexp.MustCompile(`~~([^~]+)~~`)
	blockquoteRe     = regexp.MustCompile(`(?m)^>\s?`)
	bulletMarkerRe   = regexp.MustCompile(`(?m)^[-*+]\s+`)
	numberMarkerRe   = regexp.MustCompile(`(?m)^\d+\.\s+`)
	horizontalRuleRe = regexp.MustCompile(`(?m)^(?:\*{3,}|-{3,}|_{3,})$`)
)

// cleanMarkdown strips cosmetic markdown residue (header markers,
// bold/italic/strikethrough wrappers, blockquote markers, list markers,
// horizontal rules) from extracted text before sentence detection.
func cleanMarkdown(text string) string {
	text = headerMarkerRe.ReplaceAllString(text, "")
	text = boldRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")
	text = boldUnderscoreRe.ReplaceAllString(text, "$1")
	text = italicUnderRe.ReplaceAllString(text, "$1")
	text = strikethroughRe.ReplaceAllString(text, "$1")
	text = blockquoteRe.ReplaceAllString(text, "")
	text = bulletMarkerRe.ReplaceAllString(text, "")
	text = numberMarkerRe.ReplaceAllString(text, "")
	text = horizontalRuleRe.ReplaceAllString(text, "")
	return text
}

// SplitSentences splits extracted text into checkable sentences. Every
// returned sentence ends in '.', '!' or '?', contains at least one letter
// and is longer than 3 characters; the slice order matches submission
// order to the correction service.
func SplitSentences(extracted string) []string {
	text := cleanMarkdown(extracted)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var sentences []string
	var cur strings.Builder

	flush := func() {
		if s, ok := finishSentence(cur.String()); ok {
			sentences = append(sentences, s)
		}
		cur.Reset()
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		cur.WriteByte(c)

		if c == '.' || c == '!' || c == '?' {
			if i+1 >= len(text) {
				flush()
				continue
			}
			if isCollapsibleSpace(text[i+1]) && upperFollowsWhitespace(text, i+1) {
				flush()
			}
			continue
		}

		// A bare space can be a markdown paragraph break that extraction
		// collapsed to a single space. Split conservatively so ordinary
		// mid-sentence capitalization (proper nouns, title case) does not
		// trigger it.
		if c == ' ' {
			if isParagraphBreak(cur.String(), text[i+1:]) {
				flush()
			}
		}
	}

	flush()

	return sentences
}

// upperFollowsWhitespace reports whether the first non-whitespace rune at
// or after pos is an uppercase letter.
func upperFollowsWhitespace(text string, pos int) bool {
	for pos < len(text) && isCollapsibleSpace(text[pos]) {
		pos++
	}
	if pos >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[pos:])
	return unicode.IsUpper(r)
}

// isParagraphBreak decides whether a bare space ends a sentence that was
// originally a paragraph break. It fires only when the accumulated text
// does not already end in sentence punctuation, is longer than
// paragraphBreakMinChars, the next character is uppercase, and the next
// word is not a common continuation word.
func isParagraphBreak(accumulated, rest string) bool {
	trimmed := strings.TrimSpace(accumulated)
	if trimmed == "" || len(trimmed) <= paragraphBreakMinChars {
		return false
	}
	if strings.ContainsAny(trimmed[len(trimmed)-1:], ".!?") {
		return false
	}
	r, _ := utf8.DecodeRuneInString(rest)
	if !unicode.IsUpper(r) {
		return false
	}
	word := rest
	if sp := strings.IndexByte(word, ' '); sp >= 0 {
		word = word[:sp]
	}
	word = strings.ToLower(strings.TrimRight(word, ".,;:!?"))
	return !continuationWords[word]
}

// finishSentence strips residual markdown wrappers, trims, guarantees
// terminal punctuation, and drops fragments too short or letter-free to
// be worth checking.
func finishSentence(s string) (string, bool) {
	s = strings.Trim(s, "*_~")
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if !strings.ContainsAny(s[len(s)-1:], ".!?") {
		s += "."
	}
	if len(s) < minSentenceLength || !containsLetter(s) {
		return "", false
	}
	return s, true
}

// containsLetter reports whether s contains at least one letter.
func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
