package prosecheck

import "context"

// Language identifies the language a document is checked against.
type Language string

// Language constants for CheckRequest.
const (
	LanguageEnglish Language = "en"
	LanguageGerman  Language = "de"
	LanguageFrench  Language = "fr"
	LanguageSpanish Language = "es"
	LanguagePolish  Language = "pl"
)

// Service identifies a correction service capability to apply.
type Service string

// Service constants for CheckRequest.
const (
	ServiceGrammar     Service = "grammar"
	ServiceSpelling    Service = "spelling"
	ServicePunctuation Service = "punctuation"
	ServiceStyle       Service = "style"
)

// Check size limits. Oversized input is rejected locally; the correction
// service is never called.
const (
	MaxSentencesPerCheck  = 100
	MaxCharactersPerCheck = 50000
)

// CheckRequest is a batch of sentences submitted to the correction
// service in one call.
type CheckRequest struct {
	Sentences []string  `json:"sentences"`
	Language  Language  `json:"language"`
	Services  []Service `json:"services"`
}

// Validate returns an error if the request contains invalid fields or
// exceeds the per-check size limits.
func (r *CheckRequest) Validate() error {
	if len(r.Sentences) == 0 {
		return Errorf(EINVALID, "at least one sentence required")
	}
	if r.Language == "" {
		return Errorf(EINVALID, "language required")
	}
	if len(r.Sentences) > MaxSentencesPerCheck {
		return Errorf(ETOOBIG, "too many sentences: %d exceeds limit of %d", len(r.Sentences), MaxSentencesPerCheck)
	}
	total := 0
	for _, s := range r.Sentences {
		total += len(s)
	}
	if total > MaxCharactersPerCheck {
		return Errorf(ETOOBIG, "too much text: %d characters exceeds limit of %d", total, MaxCharactersPerCheck)
	}
	return nil
}

// SentenceResult is the correction service's verdict for one sentence,
// aligned by index with the request's Sentences.
type SentenceResult struct {
	Sentence string    `json:"sentence"`
	Language Language  `json:"language"`
	Problems []Problem `json:"problems"`
}

// Checker submits sentences to a correction service and returns one
// result per sentence, in request order. Implementations do not retry;
// a failed call surfaces as a single typed error.
type Checker interface {
	Check(ctx context.Context, req CheckRequest) ([]SentenceResult, error)
}
