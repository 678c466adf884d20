package paraglide

import "context"

// VectorMatch represents a nearest-neighbor match from a vector index.
type VectorMatch struct {
	ID    string  `json:"id"`
	Score float32 `json:"score"` // similarity in [0,1], higher is better
}

// VectorIndex stores embeddings and supports nearest-neighbor search.
type VectorIndex interface {
	// Add inserts vectors with their IDs. Existing IDs are replaced.
	Add(ctx context.Context, ids []string, vectors [][]float32) error

	// Search returns the k nearest neighbors to the query vector,
	// ordered by descending similarity.
	Search(ctx context.Context, query []float32, k int) ([]VectorMatch, error)

	// Count returns the number of vectors in the index.
	Count() int

	// Save persists the index to the given path atomically.
	Save(path string) error

	// Load restores the index from the given path.
	// Returns ENOTFOUND if no index exists at the path.
	Load(path string) error

	// Close releases index resources.
	Close() error
}

// SearchOptions configures search behavior.
type SearchOptions struct {
	// Maximum number of results to return.
	Limit int `json:"limit,omitempty"`

	// Minimum similarity score (0-1).
	MinScore float32 `json:"minScore,omitempty"`
}

// SearchResult represents a search match hydrated with its passage.
type SearchResult struct {
	Passage *Passage `json:"passage"`
	Score   float32  `json:"score"`
}

// SearchService provides semantic search over statute passages.
type SearchService interface {
	// Search embeds the query and returns passages ordered by relevance.
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
}
