package prosecheck_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/akarpinski/prosecheck"
	"github.com/akarpinski/prosecheck/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testView is a mutable in-memory document view.
type testView struct {
	mu   sync.Mutex
	text string
}

func (v *testView) Text() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.text
}

func (v *testView) apply(e prosecheck.Edit, inserted string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.text = v.text[:e.InsertedAt] + inserted + v.text[e.InsertedAt+e.RemovedLength:]
}

// misspellingChecker flags every occurrence of "firend" in the submitted
// sentences.
func misspellingChecker(calls *int) *mock.Checker {
	var mu sync.Mutex
	return &mock.Checker{
		CheckFn: func(_ context.Context, req prosecheck.CheckRequest) ([]prosecheck.SentenceResult, error) {
			mu.Lock()
			if calls != nil {
				*calls++
			}
			mu.Unlock()
			results := make([]prosecheck.SentenceResult, len(req.Sentences))
			for i, s := range req.Sentences {
				results[i] = prosecheck.SentenceResult{Sentence: s}
				if idx := strings.Index(s, "firend"); idx >= 0 {
					results[i].Problems = []prosecheck.Problem{{
						Category:   prosecheck.CategorySpelling,
						Highlights: []prosecheck.HighlightRange{{Start: idx, EndExclusive: idx + 6}},
					}}
				}
			}
			return results, nil
		},
	}
}

func TestSession_CheckNow(t *testing.T) {
	t.Parallel()

	view := &testView{text: "Hello my firend out there."}
	p := &prosecheck.Pipeline{Checker: misspellingChecker(nil), Language: prosecheck.LanguageEnglish}

	var dispatched [][]prosecheck.ProblemWithPosition
	s := prosecheck.NewSession(p, view, func(problems []prosecheck.ProblemWithPosition) {
		dispatched = append(dispatched, problems)
	})

	require.NoError(t, s.CheckNow(context.Background()))

	problems := s.Problems()
	require.Len(t, problems, 1)
	assert.Equal(t, "firend", view.Text()[problems[0].From:problems[0].To])
	require.Len(t, dispatched, 1)
}

func TestSession_NoteEdit(t *testing.T) {
	t.Parallel()

	t.Run("shifts decorations immediately", func(t *testing.T) {
		t.Parallel()

		view := &testView{text: "Hello my firend out there."}
		p := &prosecheck.Pipeline{Checker: misspellingChecker(nil), Language: prosecheck.LanguageEnglish}
		s := prosecheck.NewSession(p, view, nil, prosecheck.WithDebounce(time.Hour))

		require.NoError(t, s.CheckNow(context.Background()))
		before := s.Problems()
		require.Len(t, before, 1)

		edit := prosecheck.Edit{InsertedAt: 0, RemovedLength: 0, InsertedLength: 4}
		view.apply(edit, "Oh! ")
		s.NoteEdit(edit)

		after := s.Problems()
		require.Len(t, after, 1)
		assert.Equal(t, before[0].From+4, after[0].From)
		assert.Equal(t, "firend", view.Text()[after[0].From:after[0].To])
	})

	t.Run("drops decorations the edit removed", func(t *testing.T) {
		t.Parallel()

		view := &testView{text: "Hello my firend out there."}
		p := &prosecheck.Pipeline{Checker: misspellingChecker(nil), Language: prosecheck.LanguageEnglish}
		s := prosecheck.NewSession(p, view, nil, prosecheck.WithDebounce(time.Hour))

		require.NoError(t, s.CheckNow(context.Background()))
		require.Len(t, s.Problems(), 1)

		from := strings.Index(view.Text(), "firend")
		edit := prosecheck.Edit{InsertedAt: from, RemovedLength: 6, InsertedLength: 6}
		view.apply(edit, "friend")
		s.NoteEdit(edit)

		assert.Empty(t, s.Problems())
	})

	t.Run("debounced re-check reconciles the edited range", func(t *testing.T) {
		t.Parallel()

		view := &testView{text: "Hello my friend out there."}
		calls := 0
		p := &prosecheck.Pipeline{Checker: misspellingChecker(&calls), Language: prosecheck.LanguageEnglish}

		done := make(chan struct{}, 4)
		s := prosecheck.NewSession(p, view, func([]prosecheck.ProblemWithPosition) {
			done <- struct{}{}
		}, prosecheck.WithDebounce(5*time.Millisecond))

		// Introduce a typo: friend -> firend.
		from := strings.Index(view.Text(), "friend")
		edit := prosecheck.Edit{InsertedAt: from, RemovedLength: 6, InsertedLength: 6}
		view.apply(edit, "firend")
		s.NoteEdit(edit)

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("debounced check never dispatched")
		}

		problems := s.Problems()
		require.Len(t, problems, 1)
		assert.Equal(t, "firend", view.Text()[problems[0].From:problems[0].To])
	})

	t.Run("coalesces rapid edits into one check", func(t *testing.T) {
		t.Parallel()

		view := &testView{text: "Hello my friend out there."}
		calls := 0
		p := &prosecheck.Pipeline{Checker: misspellingChecker(&calls), Language: prosecheck.LanguageEnglish}

		done := make(chan struct{}, 4)
		s := prosecheck.NewSession(p, view, func([]prosecheck.ProblemWithPosition) {
			done <- struct{}{}
		}, prosecheck.WithDebounce(20*time.Millisecond))

		for i := 0; i < 3; i++ {
			edit := prosecheck.Edit{InsertedAt: 0, RemovedLength: 0, InsertedLength: 4}
			view.apply(edit, "Oh! ")
			s.NoteEdit(edit)
		}

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("debounced check never dispatched")
		}

		assert.Equal(t, 1, calls)
	})
}

func TestSession_SetView(t *testing.T) {
	t.Parallel()

	t.Run("invalidates a pending check for the old view", func(t *testing.T) {
		t.Parallel()

		oldView := &testView{text: "Hello my friend out there."}
		calls := 0
		p := &prosecheck.Pipeline{Checker: misspellingChecker(&calls), Language: prosecheck.LanguageEnglish}
		s := prosecheck.NewSession(p, oldView, nil, prosecheck.WithDebounce(5*time.Millisecond))

		edit := prosecheck.Edit{InsertedAt: 0, RemovedLength: 0, InsertedLength: 4}
		oldView.apply(edit, "Oh! ")
		s.NoteEdit(edit)

		s.SetView(&testView{text: "A different document."})

		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, 0, calls)
		assert.Empty(t, s.Problems())
	})
}
