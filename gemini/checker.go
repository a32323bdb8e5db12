// Package gemini provides a prosecheck.Checker backed by Google Gemini,
// for use when no dedicated correction service is available.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/akarpinski/prosecheck"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Checker implements prosecheck.Checker at compile time.
var _ prosecheck.Checker = (*Checker)(nil)

// Checker implements prosecheck.Checker by prompting Gemini for a
// strict-JSON problem report per sentence.
type Checker struct {
	client *genai.Client
}

// NewChecker creates a new Checker.
func NewChecker(client *genai.Client) *Checker {
	return &Checker{client: client}
}

// Check submits the sentences and parses the model's JSON verdicts.
// Results align by index with the request's sentences.
func (c *Checker) Check(ctx context.Context, req prosecheck.CheckRequest) ([]prosecheck.SentenceResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt := BuildUserPrompt(req)
	config := BuildConfig()

	result, err := c.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, prosecheck.Errorf(prosecheck.EUNAVAILABLE, "gemini request failed: %v", err)
	}
	if result == nil {
		return nil, prosecheck.Errorf(prosecheck.EINTERNAL, "gemini returned nil result")
	}

	return ParseResponse(result.Text(), req)
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a grammar and spelling checker. For each input sentence, report problems as JSON. Respond with a JSON array, one element per sentence, in input order. Each element has the shape {\"problems\": [{\"category\": \"grammar\"|\"spelling\"|\"punctuation\"|\"style\", \"message\": string, \"start\": int, \"end\": int, \"fixes\": [string]}]}. start and end are byte offsets into the sentence; end is exclusive. Report no problems as an empty array. Output only JSON, no prose.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildUserPrompt builds the user prompt listing the sentences to check.
func BuildUserPrompt(req prosecheck.CheckRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Language: %s\n", req.Language)
	if len(req.Services) > 0 {
		parts := make([]string, 0, len(req.Services))
		for _, s := range req.Services {
			parts = append(parts, string(s))
		}
		fmt.Fprintf(&sb, "Check for: %s\n", strings.Join(parts, ", "))
	}
	sb.WriteString("<sentences>\n")
	for i, s := range req.Sentences {
		fmt.Fprintf(&sb, "<sentence index=\"%d\">%s</sentence>\n", i, s)
	}
	sb.WriteString("</sentences>\n")
	return sb.String()
}

// modelProblem is the JSON shape the model is instructed to emit.
type modelProblem struct {
	Category string   `json:"category"`
	Message  string   `json:"message"`
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Fixes    []string `json:"fixes"`
}

type modelVerdict struct {
	Problems []modelProblem `json:"problems"`
}

// ParseResponse parses the model's JSON output into sentence results
// aligned with the request. A malformed payload is an EUNAVAILABLE error;
// this checker never guesses positions.
func ParseResponse(text string, req prosecheck.CheckRequest) ([]prosecheck.SentenceResult, error) {
	var verdicts []modelVerdict
	if err := json.Unmarshal([]byte(text), &verdicts); err != nil {
		return nil, prosecheck.Errorf(prosecheck.EUNAVAILABLE, "malformed gemini response: %v", err)
	}
	if len(verdicts) != len(req.Sentences) {
		return nil, prosecheck.Errorf(prosecheck.EUNAVAILABLE, "gemini returned %d verdicts for %d sentences", len(verdicts), len(req.Sentences))
	}

	results := make([]prosecheck.SentenceResult, 0, len(verdicts))
	for i, v := range verdicts {
		res := prosecheck.SentenceResult{
			Sentence: req.Sentences[i],
			Language: req.Language,
		}
		for _, mp := range v.Problems {
			res.Problems = append(res.Problems, prosecheck.Problem{
				Category: prosecheck.Category(mp.Category),
				Message:  mp.Message,
				Highlights: []prosecheck.HighlightRange{
					{Start: mp.Start, EndExclusive: mp.End},
				},
				Fixes: mp.Fixes,
			})
		}
		results = append(results, res)
	}
	return results, nil
}
