// Package gemini provides Gemini-backed answer synthesis and token
// counting.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/sheikhomar/paraglide"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Answerer implements paraglide.Answerer at compile time.
var _ paraglide.Answerer = (*Answerer)(nil)

// Answerer implements paraglide.Answerer using Google Gemini. Answers
// are grounded in the retrieved statute passages only.
type Answerer struct {
	client *genai.Client
}

// NewAnswerer creates a new Answerer.
func NewAnswerer(client *genai.Client) *Answerer {
	return &Answerer{client: client}
}

// Answer produces a Danish answer to the question based only on the
// given passages.
func (a *Answerer) Answer(ctx context.Context, question string, results []paraglide.SearchResult) (string, error) {
	if question == "" {
		return "", paraglide.Errorf(paraglide.EINVALID, "question required")
	}
	if len(results) == 0 {
		return "", paraglide.Errorf(paraglide.EINVALID, "at least one passage required")
	}

	prompt := BuildUserPrompt(results, question)
	config := BuildConfig()

	result, err := a.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", paraglide.Errorf(paraglide.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "Du er en hjælpsom assistent, der besvarer spørgsmål om den danske barselslov. " +
					"Svar på dansk og kun ud fra de vedlagte uddrag af loven. " +
					"Henvis til paragraf og stykke, når du svarer. " +
					"Hvis svaret ikke fremgår af uddragene, så sig det, og opfind aldrig regler. " +
					"Gør opmærksom på, at svaret ikke er juridisk rådgivning.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing statute passages and
// the question.
func BuildUserPrompt(results []paraglide.SearchResult, question string) string {
	var sb strings.Builder
	sb.WriteString("<uddrag>\n")
	for i, r := range results {
		p := r.Passage
		sb.WriteString("<afsnit>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<kapitel>Kapitel %d: %s</kapitel>\n", p.ChapterNumber, p.ChapterTitle)
		fmt.Fprintf(&sb, "<reference>%s</reference>\n", p.Reference)
		fmt.Fprintf(&sb, "<tekst>%s</tekst>\n", p.Content)
		sb.WriteString("</afsnit>\n")
	}
	sb.WriteString("</uddrag>\n\n")
	fmt.Fprintf(&sb, "Spørgsmål: %s", question)
	return sb.String()
}
