package index_test

import (
	"context"
	"testing"

	"github.com/sheikhomar/paraglide"
	"github.com/sheikhomar/paraglide/index"
	"github.com/sheikhomar/paraglide/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passageStore(passages map[string]*paraglide.Passage) *mock.PassageService {
	return &mock.PassageService{
		FindPassageByGUIDFn: func(_ context.Context, guid string) (*paraglide.Passage, error) {
			p, ok := passages[guid]
			if !ok {
				return nil, paraglide.Errorf(paraglide.ENOTFOUND, "no passage with GUID %q", guid)
			}
			return p, nil
		},
	}
}

func queryEmbedder() *mock.Embedder {
	return &mock.Embedder{
		EmbedQueryFn: func(context.Context, string) ([]float32, error) {
			return []float32{1, 0, 0}, nil
		},
	}
}

func TestSearcher_Search(t *testing.T) {
	t.Parallel()

	t.Run("returns passages ordered by score", func(t *testing.T) {
		t.Parallel()

		idx := &mock.VectorIndex{
			SearchFn: func(_ context.Context, _ []float32, k int) ([]paraglide.VectorMatch, error) {
				return []paraglide.VectorMatch{
					{ID: "id-p2", Score: 0.92},
					{ID: "id-p1", Score: 0.81},
				}, nil
			},
		}
		store := passageStore(map[string]*paraglide.Passage{
			"id-p1": {GUID: "id-p1", Reference: "§ 1"},
			"id-p2": {GUID: "id-p2", Reference: "§ 2"},
		})

		s := index.NewSearcher(queryEmbedder(), idx, store)
		results, err := s.Search(context.Background(), "ret til orlov", paraglide.SearchOptions{Limit: 4})
		require.NoError(t, err)

		require.Len(t, results, 2)
		assert.Equal(t, "§ 2", results[0].Passage.Reference)
		assert.InDelta(t, 0.92, results[0].Score, 0.001)
		assert.Equal(t, "§ 1", results[1].Passage.Reference)
	})

	t.Run("collapses window chunks onto one passage", func(t *testing.T) {
		t.Parallel()

		idx := &mock.VectorIndex{
			SearchFn: func(context.Context, []float32, int) ([]paraglide.VectorMatch, error) {
				return []paraglide.VectorMatch{
					{ID: "id-p1@0", Score: 0.9},
					{ID: "id-p1@1", Score: 0.88},
					{ID: "id-p2", Score: 0.7},
				}, nil
			},
		}
		store := passageStore(map[string]*paraglide.Passage{
			"id-p1": {GUID: "id-p1"},
			"id-p2": {GUID: "id-p2"},
		})

		s := index.NewSearcher(queryEmbedder(), idx, store)
		results, err := s.Search(context.Background(), "orlov", paraglide.SearchOptions{Limit: 4})
		require.NoError(t, err)

		require.Len(t, results, 2)
		assert.Equal(t, "id-p1", results[0].Passage.GUID)
		assert.InDelta(t, 0.9, results[0].Score, 0.001)
		assert.Equal(t, "id-p2", results[1].Passage.GUID)
	})

	t.Run("applies MinScore", func(t *testing.T) {
		t.Parallel()

		idx := &mock.VectorIndex{
			SearchFn: func(context.Context, []float32, int) ([]paraglide.VectorMatch, error) {
				return []paraglide.VectorMatch{
					{ID: "id-p1", Score: 0.9},
					{ID: "id-p2", Score: 0.4},
				}, nil
			},
		}
		store := passageStore(map[string]*paraglide.Passage{
			"id-p1": {GUID: "id-p1"},
			"id-p2": {GUID: "id-p2"},
		})

		s := index.NewSearcher(queryEmbedder(), idx, store)
		results, err := s.Search(context.Background(), "orlov", paraglide.SearchOptions{Limit: 4, MinScore: 0.5})
		require.NoError(t, err)

		require.Len(t, results, 1)
		assert.Equal(t, "id-p1", results[0].Passage.GUID)
	})

	t.Run("truncates to the limit", func(t *testing.T) {
		t.Parallel()

		idx := &mock.VectorIndex{
			SearchFn: func(context.Context, []float32, int) ([]paraglide.VectorMatch, error) {
				return []paraglide.VectorMatch{
					{ID: "id-p1", Score: 0.9},
					{ID: "id-p2", Score: 0.8},
				}, nil
			},
		}
		store := passageStore(map[string]*paraglide.Passage{
			"id-p1": {GUID: "id-p1"},
			"id-p2": {GUID: "id-p2"},
		})

		s := index.NewSearcher(queryEmbedder(), idx, store)
		results, err := s.Search(context.Background(), "orlov", paraglide.SearchOptions{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("overfetches to cover dedup losses", func(t *testing.T) {
		t.Parallel()

		var gotK int
		idx := &mock.VectorIndex{
			SearchFn: func(_ context.Context, _ []float32, k int) ([]paraglide.VectorMatch, error) {
				gotK = k
				return nil, nil
			},
		}

		s := index.NewSearcher(queryEmbedder(), idx, passageStore(nil))
		_, err := s.Search(context.Background(), "orlov", paraglide.SearchOptions{Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, 20, gotK)
	})

	t.Run("skips stale index entries", func(t *testing.T) {
		t.Parallel()

		idx := &mock.VectorIndex{
			SearchFn: func(context.Context, []float32, int) ([]paraglide.VectorMatch, error) {
				return []paraglide.VectorMatch{
					{ID: "id-gone", Score: 0.9},
					{ID: "id-p1", Score: 0.8},
				}, nil
			},
		}
		store := passageStore(map[string]*paraglide.Passage{
			"id-p1": {GUID: "id-p1"},
		})

		s := index.NewSearcher(queryEmbedder(), idx, store)
		results, err := s.Search(context.Background(), "orlov", paraglide.SearchOptions{Limit: 4})
		require.NoError(t, err)

		require.Len(t, results, 1)
		assert.Equal(t, "id-p1", results[0].Passage.GUID)
	})

	t.Run("rejects an empty query", func(t *testing.T) {
		t.Parallel()

		embedder := &mock.Embedder{
			EmbedQueryFn: func(context.Context, string) ([]float32, error) {
				t.Fatal("EmbedQuery should not be called")
				return nil, nil
			},
		}

		s := index.NewSearcher(embedder, &mock.VectorIndex{}, passageStore(nil))
		_, err := s.Search(context.Background(), "   ", paraglide.SearchOptions{})
		require.Error(t, err)
		assert.Equal(t, paraglide.EINVALID, paraglide.ErrorCode(err))
	})

	t.Run("propagates embedding errors", func(t *testing.T) {
		t.Parallel()

		embedder := &mock.Embedder{
			EmbedQueryFn: func(context.Context, string) ([]float32, error) {
				return nil, paraglide.Errorf(paraglide.EUNAVAILABLE, "embedding service unavailable")
			},
		}

		s := index.NewSearcher(embedder, &mock.VectorIndex{}, passageStore(nil))
		_, err := s.Search(context.Background(), "orlov", paraglide.SearchOptions{})
		require.Error(t, err)
		assert.Equal(t, paraglide.EUNAVAILABLE, paraglide.ErrorCode(err))
	})
}
