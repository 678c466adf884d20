package gemini_test

import (
	"context"
	"testing"

	"github.com/sheikhomar/paraglide"
	"github.com/sheikhomar/paraglide/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []paraglide.SearchResult {
	return []paraglide.SearchResult{
		{
			Passage: &paraglide.Passage{
				GUID:          "guid-1",
				Kind:          paraglide.PassageParagraph,
				Reference:     "§ 6",
				ChapterNumber: 4,
				ChapterTitle:  "Ret til fravær ved graviditet, fødsel og adoption",
				Content:       "En mor har ret til fravær fra 4 uger før forventet fødsel.\n",
			},
			Score: 0.9,
		},
	}
}

func TestAnswerer_Answer_ReturnsErrorWhenQuestionEmpty(t *testing.T) {
	t.Parallel()

	answerer := gemini.NewAnswerer(nil) // nil client ok for this test

	_, err := answerer.Answer(context.Background(), "", sampleResults())

	require.Error(t, err)
	assert.Equal(t, paraglide.EINVALID, paraglide.ErrorCode(err))
	assert.Contains(t, paraglide.ErrorMessage(err), "question required")
}

func TestAnswerer_Answer_ReturnsErrorWhenNoPassages(t *testing.T) {
	t.Parallel()

	answerer := gemini.NewAnswerer(nil)

	_, err := answerer.Answer(context.Background(), "Hvornår kan jeg gå på barsel?", nil)

	require.Error(t, err)
	assert.Equal(t, paraglide.EINVALID, paraglide.ErrorCode(err))
	assert.Contains(t, paraglide.ErrorMessage(err), "passage required")
}

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "barselslov")
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "juridisk rådgivning")
}

func TestBuildConfig_SetsTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.2, *config.Temperature, 0.001)
}

func TestBuildUserPrompt_ContainsPassages(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildUserPrompt(sampleResults(), "Hvornår kan jeg gå på barsel?")

	assert.Contains(t, prompt, "<uddrag>")
	assert.Contains(t, prompt, "Kapitel 4: Ret til fravær ved graviditet, fødsel og adoption")
	assert.Contains(t, prompt, "<reference>§ 6</reference>")
	assert.Contains(t, prompt, "En mor har ret til fravær")
	assert.Contains(t, prompt, "</uddrag>")
}

func TestBuildUserPrompt_ContainsQuestion(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildUserPrompt(sampleResults(), "Hvornår kan jeg gå på barsel?")

	assert.Contains(t, prompt, "Spørgsmål: Hvornår kan jeg gå på barsel?")
}

func TestBuildUserPrompt_DoesNotContainSystemInstruction(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildUserPrompt(sampleResults(), "spørgsmål")

	assert.NotContains(t, prompt, "Du er en hjælpsom assistent")
}
