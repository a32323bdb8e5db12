package prosecheck

import (
	"context"
	"sync"
	"time"
)

// View is the host editor's read surface for one document view.
// Implementations are supplied by the editor integration.
type View interface {
	// Text returns the current document text.
	Text() string
}

// DispatchFunc delivers a freshly reconciled problem set to the host
// editor's transactional state. It is called from the session's check
// goroutine after every completed check.
type DispatchFunc func(problems []ProblemWithPosition)

// DefaultDebounce is the delay between the last edit and the scheduled
// re-check of the edited range.
const DefaultDebounce = 500 * time.Millisecond

// Session ties a live editor view to the check pipeline. Edits are
// reported through NoteEdit, which transforms tracked decorations
// immediately and debounces a re-check of the range spanning all
// coalesced edits. A pending scheduled check is cancelled and rescheduled
// on every new edit; a stale check that fires after the session moved to
// a different view is a no-op.
//
// The source editor model is single-threaded, but Go timers fire on their
// own goroutine, so the session serializes access with a mutex.
type Session struct {
	mu          sync.Mutex
	pipeline    *Pipeline
	view        View
	dispatch    DispatchFunc
	decorations *DecorationSet
	debounce    time.Duration

	pending      *time.Timer
	pendingFrom  int
	pendingTo    int
	havePending  bool
	checkContext func() context.Context
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithDebounce sets the debounce delay. Defaults to DefaultDebounce.
func WithDebounce(d time.Duration) SessionOption {
	return func(s *Session) {
		s.debounce = d
	}
}

// NewSession creates a Session for the given view. The dispatch function
// receives the renderable problem set after every completed check; it may
// be nil when the caller polls Problems instead.
func NewSession(pipeline *Pipeline, view View, dispatch DispatchFunc, opts ...SessionOption) *Session {
	s := &Session{
		pipeline:     pipeline,
		view:         view,
		dispatch:     dispatch,
		decorations:  NewDecorationSet(len(view.Text())),
		debounce:     DefaultDebounce,
		checkContext: context.Background,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Problems returns the current renderable problem set. Offsets are valid
// only for the document state at call time.
func (s *Session) Problems() []ProblemWithPosition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.decorations.Problems()
}

// CheckNow runs a full-document check immediately, replacing the tracked
// problem set. Any pending debounced check is cancelled.
func (s *Session) CheckNow(ctx context.Context) error {
	s.mu.Lock()
	s.cancelPendingLocked()
	view := s.view
	s.mu.Unlock()

	document := view.Text()
	result, err := s.pipeline.CheckDocument(ctx, document)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view != view {
		// The session moved on while the check was in flight.
		return nil
	}
	s.decorations = NewDecorationSet(len(document))
	s.decorations.Replace(result.Problems)
	s.dispatchLocked()
	return nil
}

// NoteEdit transforms tracked decorations through the edit and schedules
// a debounced re-check of the range spanning all edits seen since the
// last completed check.
func (s *Session) NoteEdit(e Edit) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.decorations.ApplyEdit(e)
	s.extendPendingLocked(e)

	if s.pending != nil {
		s.pending.Stop()
	}
	view := s.view
	s.pending = time.AfterFunc(s.debounce, func() {
		s.runPending(view)
	})
}

// SetView switches the session to a new view, invalidating any pending
// check scheduled against the old one.
func (s *Session) SetView(view View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelPendingLocked()
	s.view = view
	s.decorations = NewDecorationSet(len(view.Text()))
}

// extendPendingLocked widens the coalesced dirty range to cover the edit,
// in post-edit coordinates.
func (s *Session) extendPendingLocked(e Edit) {
	from := e.InsertedAt
	to := e.InsertedAt + e.InsertedLength

	if !s.havePending {
		s.pendingFrom, s.pendingTo = from, to
		s.havePending = true
		return
	}

	// Shift the previously tracked range through this edit so both are in
	// the same coordinate space before widening.
	if mapped, ok := e.MapPos(s.pendingFrom); ok {
		s.pendingFrom = mapped
	} else {
		s.pendingFrom = e.InsertedAt
	}
	if mapped, ok := e.MapPos(s.pendingTo); ok {
		s.pendingTo = mapped
	} else {
		s.pendingTo = to
	}

	if from < s.pendingFrom {
		s.pendingFrom = from
	}
	if to > s.pendingTo {
		s.pendingTo = to
	}
}

// cancelPendingLocked stops and clears any scheduled check.
func (s *Session) cancelPendingLocked() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.havePending = false
}

// runPending executes the debounced range check. It is a no-op when the
// session has moved to a different view since the check was scheduled.
func (s *Session) runPending(scheduledView View) {
	s.mu.Lock()
	if s.view != scheduledView || !s.havePending {
		s.mu.Unlock()
		return
	}
	from, to := s.pendingFrom, s.pendingTo
	s.havePending = false
	s.pending = nil
	view := s.view
	s.mu.Unlock()

	document := view.Text()
	if from < 0 {
		from = 0
	}
	if to > len(document) {
		to = len(document)
	}
	if to < from {
		to = from
	}

	result, err := s.pipeline.CheckRange(s.checkContext(), document, from, to-from)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view != view {
		return
	}
	s.decorations.MergeRange(result.RangeStart, result.RangeEnd-result.RangeStart, result.Problems)
	s.dispatchLocked()
}

// dispatchLocked pushes the renderable set to the host editor.
func (s *Session) dispatchLocked() {
	if s.dispatch != nil {
		s.dispatch(s.decorations.Problems())
	}
}
