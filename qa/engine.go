// Package qa composes retrieval results into conversational Danish
// responses about the parental leave statute.
package qa

import (
	"context"
	"fmt"
	"strings"

	"github.com/sheikhomar/paraglide"
)

// Ensure Engine implements paraglide.QAService at compile time.
var _ paraglide.QAService = (*Engine)(nil)

// DefaultTopK is the number of passages retrieved per question.
const DefaultTopK = 4

// Danish response fragments emitted around the retrieved passages.
const (
	msgSearching = "Jeg kigger først lige i barselsloven. Hæng på...\n\n"
	msgFound     = "Jeg har fundet flg. afsnit som kunne indeholde svar på dit spørgsmål:\n\n"
	msgNotFound  = "Jeg kunne desværre ikke finde noget relevant i barselsloven. Prøv evt. at omformulere dit spørgsmål.\n"
)

// Engine answers statute questions by retrieving the most relevant
// passages and, when an Answerer is configured, synthesizing a grounded
// answer from them.
type Engine struct {
	search   paraglide.SearchService
	answerer paraglide.Answerer // optional
	topK     int
}

// Option configures an Engine.
type Option func(*Engine)

// WithAnswerer enables answer synthesis on top of retrieval.
func WithAnswerer(a paraglide.Answerer) Option {
	return func(e *Engine) {
		e.answerer = a
	}
}

// WithTopK sets the number of passages retrieved per question.
func WithTopK(k int) Option {
	return func(e *Engine) {
		e.topK = k
	}
}

// NewEngine creates a new Engine on top of the given search service.
func NewEngine(search paraglide.SearchService, opts ...Option) *Engine {
	e := &Engine{
		search: search,
		topK:   DefaultTopK,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Respond retrieves passages relevant to the query and emits a Danish
// response built from them.
func (e *Engine) Respond(ctx context.Context, query paraglide.StatuteQuery, emit func(text string)) error {
	if err := query.Validate(); err != nil {
		return err
	}

	emit(msgSearching)

	results, err := e.search.Search(ctx, query.RetrieverQuery(), paraglide.SearchOptions{Limit: e.topK})
	if err != nil {
		return err
	}

	if len(results) == 0 {
		emit(msgNotFound)
		return nil
	}

	emit(msgFound)
	for _, r := range results {
		emit(formatHeader(r.Passage))
		emit(strings.TrimSpace(r.Passage.Content) + "\n\n")
	}

	if e.answerer != nil {
		answer, err := e.answerer.Answer(ctx, query.RetrieverQuery(), results)
		if err != nil {
			return err
		}
		emit("\n" + answer + "\n")
	}

	return nil
}

// formatHeader renders the chapter and reference line shown above each
// retrieved passage. Only paragraphs carry the "Paragraf:" label;
// subsections are referenced by their "Stk." number alone.
func formatHeader(p *paraglide.Passage) string {
	if p.Kind == paraglide.PassageParagraph {
		return fmt.Sprintf("**Kapitel %d: %s. Paragraf: %s**\n\n", p.ChapterNumber, p.ChapterTitle, p.Reference)
	}
	return fmt.Sprintf("**Kapitel %d: %s. %s**\n\n", p.ChapterNumber, p.ChapterTitle, p.Reference)
}
