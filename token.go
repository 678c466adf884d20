package paraglide

import "context"

// TokenCounter counts tokens in text. Used to keep embedded chunks
// within the model's context budget.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
