package index

import (
	"context"
	"strings"

	"github.com/sheikhomar/paraglide"
)

// Ensure Searcher implements paraglide.SearchService at compile time.
var _ paraglide.SearchService = (*Searcher)(nil)

// DefaultLimit is the number of results returned when the caller does
// not set one.
const DefaultLimit = 10

// overfetchFactor widens the knn query so that window chunks collapsing
// onto the same passage still leave enough distinct passages.
const overfetchFactor = 4

// Searcher implements paraglide.SearchService over a vector index and a
// passage store.
type Searcher struct {
	embedder paraglide.Embedder
	index    paraglide.VectorIndex
	passages paraglide.PassageService
}

// NewSearcher creates a new Searcher.
func NewSearcher(embedder paraglide.Embedder, index paraglide.VectorIndex, passages paraglide.PassageService) *Searcher {
	return &Searcher{embedder: embedder, index: index, passages: passages}
}

// Search embeds the query, finds the nearest chunks, and hydrates the
// matching passages ordered by descending similarity.
func (s *Searcher) Search(ctx context.Context, query string, opts paraglide.SearchOptions) ([]paraglide.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, paraglide.Errorf(paraglide.EINVALID, "query required")
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	vector, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	matches, err := s.index.Search(ctx, vector, limit*overfetchFactor)
	if err != nil {
		return nil, err
	}

	results := make([]paraglide.SearchResult, 0, limit)
	seen := make(map[string]bool)

	for _, match := range matches {
		if match.Score < opts.MinScore {
			break // matches are ordered by descending score
		}

		guid := PassageGUID(match.ID)
		if seen[guid] {
			continue
		}
		seen[guid] = true

		passage, err := s.passages.FindPassageByGUID(ctx, guid)
		if err != nil {
			if paraglide.ErrorCode(err) == paraglide.ENOTFOUND {
				// Vector without a stored passage; stale index entry.
				continue
			}
			return nil, err
		}

		results = append(results, paraglide.SearchResult{Passage: passage, Score: match.Score})
		if len(results) == limit {
			break
		}
	}

	return results, nil
}
