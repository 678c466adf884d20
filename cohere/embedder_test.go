package cohere

import (
	"context"
	"testing"

	cohereapi "github.com/cohere-ai/cohere-go/v2"
	"github.com/cohere-ai/cohere-go/v2/option"
	"github.com/sheikhomar/paraglide"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// fakeClient records embed requests and returns canned vectors.
type fakeClient struct {
	requests []*cohereapi.EmbedRequest
	embedFn  func(req *cohereapi.EmbedRequest) (*cohereapi.EmbedResponse, error)
}

func (f *fakeClient) Embed(_ context.Context, req *cohereapi.EmbedRequest, _ ...option.RequestOption) (*cohereapi.EmbedResponse, error) {
	f.requests = append(f.requests, req)
	return f.embedFn(req)
}

// vectorsFor returns one distinct embedding per input text.
func vectorsFor(req *cohereapi.EmbedRequest) (*cohereapi.EmbedResponse, error) {
	embeddings := make([][]float64, len(req.Texts))
	for i := range req.Texts {
		embeddings[i] = []float64{float64(i), 1.0}
	}
	return &cohereapi.EmbedResponse{
		EmbeddingsFloats: &cohereapi.EmbedFloatsResponse{Embeddings: embeddings},
	}, nil
}

func newTestEmbedder(t *testing.T, client embedAPI) *Embedder {
	t.Helper()

	e, err := NewEmbedder("test-key", withClient(client))
	require.NoError(t, err)
	// Tests should not wait on the production rate limit.
	e.limiter = rate.NewLimiter(rate.Inf, 1)
	return e
}

func TestNewEmbedder_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := NewEmbedder("")
	require.Error(t, err)
	assert.Equal(t, paraglide.EINVALID, paraglide.ErrorCode(err))
}

func TestEmbedder_EmbedDocuments(t *testing.T) {
	t.Parallel()

	t.Run("uses the document input type", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{embedFn: vectorsFor}
		e := newTestEmbedder(t, client)

		vectors, err := e.EmbedDocuments(context.Background(), []string{"§ 1. Formål", "§ 2. Ret til fravær"})
		require.NoError(t, err)
		require.Len(t, vectors, 2)
		assert.Equal(t, []float32{0, 1}, vectors[0])
		assert.Equal(t, []float32{1, 1}, vectors[1])

		require.Len(t, client.requests, 1)
		req := client.requests[0]
		assert.Equal(t, Model, *req.Model)
		assert.Equal(t, cohereapi.EmbedInputTypeSearchDocument, *req.InputType)
	})

	t.Run("splits large inputs into batches", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{embedFn: vectorsFor}
		e := newTestEmbedder(t, client)

		texts := make([]string, 200)
		for i := range texts {
			texts[i] = "passage"
		}

		vectors, err := e.EmbedDocuments(context.Background(), texts)
		require.NoError(t, err)
		assert.Len(t, vectors, 200)

		require.Len(t, client.requests, 3)
		assert.Len(t, client.requests[0].Texts, 96)
		assert.Len(t, client.requests[1].Texts, 96)
		assert.Len(t, client.requests[2].Texts, 8)
	})

	t.Run("no texts means no API calls", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{embedFn: vectorsFor}
		e := newTestEmbedder(t, client)

		vectors, err := e.EmbedDocuments(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, vectors)
		assert.Empty(t, client.requests)
	})

	t.Run("embedding count mismatch is an internal error", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{embedFn: func(_ *cohereapi.EmbedRequest) (*cohereapi.EmbedResponse, error) {
			return &cohereapi.EmbedResponse{
				EmbeddingsFloats: &cohereapi.EmbedFloatsResponse{Embeddings: [][]float64{{1, 2}}},
			}, nil
		}}
		e := newTestEmbedder(t, client)

		_, err := e.EmbedDocuments(context.Background(), []string{"a", "b"})
		require.Error(t, err)
		assert.Equal(t, paraglide.EINTERNAL, paraglide.ErrorCode(err))
	})
}

func TestEmbedder_EmbedQuery(t *testing.T) {
	t.Parallel()

	t.Run("uses the query input type", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{embedFn: vectorsFor}
		e := newTestEmbedder(t, client)

		vector, err := e.EmbedQuery(context.Background(), "Hvor lang tid har jeg ret til orlov?")
		require.NoError(t, err)
		assert.Equal(t, []float32{0, 1}, vector)

		require.Len(t, client.requests, 1)
		assert.Equal(t, cohereapi.EmbedInputTypeSearchQuery, *client.requests[0].InputType)
	})

	t.Run("empty query is invalid", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{embedFn: vectorsFor}
		e := newTestEmbedder(t, client)

		_, err := e.EmbedQuery(context.Background(), "")
		require.Error(t, err)
		assert.Equal(t, paraglide.EINVALID, paraglide.ErrorCode(err))
		assert.Empty(t, client.requests)
	})
}
