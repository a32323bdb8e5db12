package prosecheck

import (
	"fmt"
	"strings"
)

// LineColumn converts a byte offset into 1-based line and column numbers
// for display.
func LineColumn(document string, offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(document) {
		offset = len(document)
	}
	line = 1 + strings.Count(document[:offset], "\n")
	if i := strings.LastIndexByte(document[:offset], '\n'); i >= 0 {
		col = offset - i
	} else {
		col = offset + 1
	}
	return line, col
}

// FormatProblems formats positioned problems for display. Each problem is
// rendered on one line with its location, category, message, the flagged
// document text, and the first suggested fix if any. Problems are listed
// in document order as given.
func FormatProblems(document string, problems []ProblemWithPosition) string {
	if len(problems) == 0 {
		return ""
	}

	parts := make([]string, 0, len(problems))
	for _, p := range problems {
		line, col := LineColumn(document, p.From)
		flagged := ""
		if p.From >= 0 && p.To <= len(document) && p.From < p.To {
			flagged = document[p.From:p.To]
		}
		s := fmt.Sprintf("%d:%d [%s] %s: %q", line, col, p.Problem.Category, p.Problem.Message, flagged)
		if len(p.Problem.Fixes) > 0 {
			s += fmt.Sprintf(" -> %q", p.Problem.Fixes[0])
		}
		parts = append(parts, s)
	}

	return strings.Join(parts, "\n")
}
