package mock

import (
	"context"

	"github.com/sheikhomar/paraglide"
)

var _ paraglide.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of paraglide.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, opts paraglide.SearchOptions) ([]paraglide.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, query string, opts paraglide.SearchOptions) ([]paraglide.SearchResult, error) {
	return s.SearchFn(ctx, query, opts)
}
