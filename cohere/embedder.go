// Package cohere provides an Embedder backed by the Cohere embed API.
package cohere

import (
	"context"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	"github.com/cohere-ai/cohere-go/v2/option"
	"github.com/sheikhomar/paraglide"
	"golang.org/x/time/rate"
)

// Ensure Embedder implements paraglide.Embedder at compile time.
var _ paraglide.Embedder = (*Embedder)(nil)

// Model is the embedding model used for statute passages. Multilingual
// because the statute text and the queries are Danish.
const Model = "embed-multilingual-v3.0"

// dimensions of embed-multilingual-v3.0 vectors.
const dimensions = 1024

// maxBatchSize is the Cohere embed API limit on texts per request.
const maxBatchSize = 96

// embedAPI is the part of the Cohere client the Embedder uses.
type embedAPI interface {
	Embed(ctx context.Context, request *cohere.EmbedRequest, opts ...option.RequestOption) (*cohere.EmbedResponse, error)
}

// Ensure the SDK client satisfies embedAPI at compile time.
var _ embedAPI = (*cohereclient.Client)(nil)

// Embedder implements paraglide.Embedder using the Cohere embed API.
// Requests are rate limited so index builds stay inside the API quota.
type Embedder struct {
	client  embedAPI
	limiter *rate.Limiter
}

// Option configures an Embedder.
type Option func(*Embedder)

// WithRequestsPerSecond sets the API request rate limit. Defaults to 1.
func WithRequestsPerSecond(rps float64) Option {
	return func(e *Embedder) {
		e.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// withClient replaces the API client. Used by tests.
func withClient(c embedAPI) Option {
	return func(e *Embedder) {
		e.client = c
	}
}

// NewEmbedder creates a new Embedder authenticated with the given API key.
func NewEmbedder(apiKey string, opts ...Option) (*Embedder, error) {
	if apiKey == "" {
		return nil, paraglide.Errorf(paraglide.EINVALID, "Cohere API key required")
	}

	e := &Embedder{
		client:  cohereclient.NewClient(cohereclient.WithToken(apiKey)),
		limiter: rate.NewLimiter(rate.Limit(1), 1),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// EmbedDocuments embeds passage texts for indexing, batching requests
// to the API limit.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += maxBatchSize {
		end := min(start+maxBatchSize, len(texts))

		batch, err := e.embed(ctx, texts[start:end], cohere.EmbedInputTypeSearchDocument)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)
	}

	return vectors, nil
}

// EmbedQuery embeds a search query.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, paraglide.Errorf(paraglide.EINVALID, "query text required")
	}

	vectors, err := e.embed(ctx, []string{text}, cohere.EmbedInputTypeSearchQuery)
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, paraglide.Errorf(paraglide.EINTERNAL,
			"expected 1 embedding, got %d", len(vectors))
	}

	return vectors[0], nil
}

// Dimensions returns the embedding dimensionality.
func (e *Embedder) Dimensions() int {
	return dimensions
}

func (e *Embedder) embed(ctx context.Context, texts []string, inputType cohere.EmbedInputType) ([][]float32, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := e.client.Embed(ctx, &cohere.EmbedRequest{
		Texts:     texts,
		Model:     cohere.String(Model),
		InputType: inputType.Ptr(),
	})
	if err != nil {
		return nil, paraglide.Errorf(paraglide.EUNAVAILABLE, "cohere embed request failed: %v", err)
	}
	if resp == nil || resp.EmbeddingsFloats == nil {
		return nil, paraglide.Errorf(paraglide.EINTERNAL, "cohere returned no embeddings")
	}

	embeddings := resp.EmbeddingsFloats.Embeddings
	if len(embeddings) != len(texts) {
		return nil, paraglide.Errorf(paraglide.EINTERNAL,
			"expected %d embeddings, got %d", len(texts), len(embeddings))
	}

	vectors := make([][]float32, len(embeddings))
	for i, emb := range embeddings {
		vec := make([]float32, len(emb))
		for j, v := range emb {
			vec[j] = float32(v)
		}
		vectors[i] = vec
	}

	return vectors, nil
}
