package mock

import (
	"context"

	"github.com/sheikhomar/paraglide"
)

var _ paraglide.Answerer = (*Answerer)(nil)

// Answerer is a mock implementation of paraglide.Answerer.
type Answerer struct {
	AnswerFn func(ctx context.Context, question string, results []paraglide.SearchResult) (string, error)
}

func (a *Answerer) Answer(ctx context.Context, question string, results []paraglide.SearchResult) (string, error) {
	return a.AnswerFn(ctx, question, results)
}
