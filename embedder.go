package paraglide

import "context"

// Embedder produces vector embeddings for texts.
//
// Document and query embeddings are separate operations because
// embedding models distinguish the two input types; mixing them up
// degrades retrieval quality silently.
type Embedder interface {
	// EmbedDocuments embeds passage texts for indexing.
	// Returns one vector per input text, in input order.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery embeds a search query.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding dimensionality.
	Dimensions() int
}
