package gemini_test

import (
	"testing"

	"github.com/akarpinski/prosecheck"
	"github.com/akarpinski/prosecheck/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUserPrompt(t *testing.T) {
	t.Parallel()

	t.Run("lists sentences with stable indices", func(t *testing.T) {
		t.Parallel()

		prompt := gemini.BuildUserPrompt(prosecheck.CheckRequest{
			Sentences: []string{"First sentence.", "Second sentence."},
			Language:  prosecheck.LanguageEnglish,
			Services:  []prosecheck.Service{prosecheck.ServiceGrammar, prosecheck.ServiceSpelling},
		})

		assert.Contains(t, prompt, "Language: en")
		assert.Contains(t, prompt, "Check for: grammar, spelling")
		assert.Contains(t, prompt, `<sentence index="0">First sentence.</sentence>`)
		assert.Contains(t, prompt, `<sentence index="1">Second sentence.</sentence>`)
	})

	t.Run("omits services line when none requested", func(t *testing.T) {
		t.Parallel()

		prompt := gemini.BuildUserPrompt(prosecheck.CheckRequest{
			Sentences: []string{"Only sentence."},
			Language:  prosecheck.LanguageGerman,
		})

		assert.Contains(t, prompt, "Language: de")
		assert.NotContains(t, prompt, "Check for:")
	})
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.Temperature)
	assert.Equal(t, float32(0.0), *config.Temperature)
	assert.Equal(t, "application/json", config.ResponseMIMEType)
	require.NotNil(t, config.SystemInstruction)
}

func TestParseResponse(t *testing.T) {
	t.Parallel()

	req := prosecheck.CheckRequest{
		Sentences: []string{"Hello my firend.", "This one is fine."},
		Language:  prosecheck.LanguageEnglish,
	}

	t.Run("parses verdicts aligned with sentences", func(t *testing.T) {
		t.Parallel()

		text := `[
			{"problems": [{"category": "spelling", "message": "possible spelling mistake", "start": 9, "end": 15, "fixes": ["friend"]}]},
			{"problems": []}
		]`

		results, err := gemini.ParseResponse(text, req)

		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.Equal(t, "Hello my firend.", results[0].Sentence)
		require.Len(t, results[0].Problems, 1)
		p := results[0].Problems[0]
		assert.Equal(t, prosecheck.CategorySpelling, p.Category)
		require.Len(t, p.Highlights, 1)
		assert.Equal(t, 9, p.Highlights[0].Start)
		assert.Equal(t, 15, p.Highlights[0].EndExclusive)
		assert.Equal(t, []string{"friend"}, p.Fixes)

		assert.Empty(t, results[1].Problems)
	})

	t.Run("returns EUNAVAILABLE for malformed JSON", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.ParseResponse("not json at all", req)

		assert.Equal(t, prosecheck.EUNAVAILABLE, prosecheck.ErrorCode(err))
	})

	t.Run("returns EUNAVAILABLE on verdict count mismatch", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.ParseResponse(`[{"problems": []}]`, req)

		assert.Equal(t, prosecheck.EUNAVAILABLE, prosecheck.ErrorCode(err))
	})
}
