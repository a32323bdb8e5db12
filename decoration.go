package prosecheck

// Edit describes a single edit applied to a document: RemovedLength bytes
// at InsertedAt were replaced by InsertedLength inserted bytes. A pure
// insert has RemovedLength 0; a pure delete has InsertedLength 0.
type Edit struct {
	InsertedAt     int `json:"insertedAt"`
	RemovedLength  int `json:"removedLength"`
	InsertedLength int `json:"insertedLength"`
}

// delta is the document length change caused by the edit.
func (e Edit) delta() int {
	return e.InsertedLength - e.RemovedLength
}

// MapPos maps a position across the edit. The second return value is
// false when the position fell inside the removed span and no longer
// exists.
func (e Edit) MapPos(pos int) (int, bool) {
	if pos <= e.InsertedAt {
		return pos, true
	}
	if pos < e.InsertedAt+e.RemovedLength {
		return -1, false
	}
	return pos + e.delta(), true
}

// DecorationSet owns the live set of positioned problems tracked against
// a mutating document. It is the only long-lived mutable structure in the
// pipeline; the tracked slice is replaced, never mutated in place.
type DecorationSet struct {
	problems []ProblemWithPosition
	docLen   int
}

// NewDecorationSet creates an empty DecorationSet for a document of the
// given length.
func NewDecorationSet(docLen int) *DecorationSet {
	return &DecorationSet{docLen: docLen}
}

// Problems returns the current renderable set. Consumers must re-query
// after any document mutation rather than reuse stale offsets.
func (d *DecorationSet) Problems() []ProblemWithPosition {
	return d.problems
}

// Len returns the number of tracked problems.
func (d *DecorationSet) Len() int {
	return len(d.problems)
}

// Replace fully replaces the tracked problems, dropping any whose range
// is invalid for the current document.
func (d *DecorationSet) Replace(problems []ProblemWithPosition) {
	next := make([]ProblemWithPosition, 0, len(problems))
	for _, p := range problems {
		if p.From < 0 || p.To <= p.From || p.To > d.docLen {
			continue
		}
		next = append(next, p)
	}
	d.problems = next
}

// MergeRange merges the results of a sub-range re-check: every existing
// problem whose range lies entirely outside [offset, offset+length) is
// kept, and the newly mapped problems (already in document coordinates)
// are appended.
func (d *DecorationSet) MergeRange(offset, length int, mapped []ProblemWithPosition) {
	end := offset + length
	next := make([]ProblemWithPosition, 0, len(d.problems)+len(mapped))
	for _, p := range d.problems {
		if p.To <= offset || p.From >= end {
			next = append(next, p)
		}
	}
	for _, p := range mapped {
		if p.From < 0 || p.To <= p.From || p.To > d.docLen {
			continue
		}
		next = append(next, p)
	}
	d.problems = next
}

// ApplyEdit transforms every tracked range through the edit, dropping
// ranges the edit invalidated: ranges overlapping removed text, ranges a
// pure insert split open, and ranges that map outside the new document.
// It reports whether the tracked set actually changed, so callers can
// skip re-rendering when nothing moved.
func (d *DecorationSet) ApplyEdit(e Edit) bool {
	newLen := d.docLen + e.delta()
	changed := false

	next := make([]ProblemWithPosition, 0, len(d.problems))
	for _, p := range d.problems {
		removedEnd := e.InsertedAt + e.RemovedLength
		if e.RemovedLength > 0 && e.InsertedAt < p.To && removedEnd > p.From {
			changed = true
			continue
		}
		if e.RemovedLength == 0 && e.InsertedLength > 0 && e.InsertedAt > p.From && e.InsertedAt < p.To {
			changed = true
			continue
		}

		from, okFrom := e.MapPos(p.From)
		to, okTo := e.MapPos(p.To)
		if !okFrom || !okTo || from < 0 || to <= from || to > newLen {
			changed = true
			continue
		}
		if from != p.From || to != p.To {
			changed = true
		}
		p.From, p.To = from, to
		next = append(next, p)
	}

	d.problems = next
	d.docLen = newLen
	return changed
}
