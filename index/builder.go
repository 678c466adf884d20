// Package index provides indexing and retrieval orchestration. It
// coordinates chunking, embedding, vector index population, and passage
// storage for statute documents.
package index

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/sheikhomar/paraglide"
	"golang.org/x/sync/errgroup"
)

// Embedding batch sizing. Batches are embedded concurrently; the limit
// keeps the number of in-flight embedding requests bounded.
const (
	defaultConcurrency = 4
	embedBatchSize     = 96
)

// Builder builds a searchable index from a parsed statute.
type Builder struct {
	Embedder     paraglide.Embedder
	TokenCounter paraglide.TokenCounter
	Index        paraglide.VectorIndex
	Statutes     paraglide.StatuteService
	Passages     paraglide.PassageService
	Concurrency  int

	// IndexPath is where the vector index is saved after building.
	// Empty means the index is left in memory.
	IndexPath string
}

// Result holds the outcome of an index build.
type Result struct {
	Passages int
	Chunks   int
	Failed   int
}

// ProgressEvent reports progress during an index build.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting build progress. Completed
// and Total count chunks.
type ProgressFunc func(event ProgressEvent)

// BuildStatute indexes a statute: flattens it into passages, chunks and
// embeds them, populates the vector index, and persists the passages
// and statute record. The progress callback, if provided, receives
// events as embedding proceeds.
func (b *Builder) BuildStatute(ctx context.Context, statute *paraglide.Statute, progress ProgressFunc) (*Result, error) {
	if err := statute.Validate(); err != nil {
		return nil, err
	}

	rec := &paraglide.StatuteRecord{
		Number:      statute.Number,
		Date:        statute.Date,
		Title:       statute.Title,
		ContentHash: contentHash(statute),
		IndexedAt:   time.Now().UTC(),
	}
	if err := b.Statutes.CreateStatute(ctx, rec); err != nil {
		return nil, fmt.Errorf("storing statute record: %w", err)
	}

	passages := paraglide.FlattenPassages(statute)
	for _, p := range passages {
		p.StatuteID = rec.ID
	}

	var chunks []Chunk
	for _, p := range passages {
		pc, err := ChunkPassage(ctx, b.TokenCounter, p)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, pc...)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: len(chunks)})
	}

	failed, err := b.embedChunks(ctx, chunks, progress)
	if err != nil {
		return nil, err
	}

	if err := b.Passages.CreatePassages(ctx, passages); err != nil {
		return nil, fmt.Errorf("storing passages: %w", err)
	}

	if b.IndexPath != "" {
		if err := b.Index.Save(b.IndexPath); err != nil {
			return nil, fmt.Errorf("saving vector index: %w", err)
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: len(chunks), Total: len(chunks)})
	}

	return &Result{
		Passages: len(passages),
		Chunks:   len(chunks),
		Failed:   failed,
	}, nil
}

// embedChunks embeds chunk batches concurrently and adds the vectors to
// the index. Returns the number of chunks that failed to embed.
func (b *Builder) embedChunks(ctx context.Context, chunks []Chunk, progress ProgressFunc) (int, error) {
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	type batchResult struct {
		size int
		err  error
	}
	resultCh := make(chan batchResult, len(chunks)/embedBatchSize+1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for start := 0; start < len(chunks); start += embedBatchSize {
			batch := chunks[start:min(start+embedBatchSize, len(chunks))]
			g.Go(func() error {
				err := b.embedBatch(gctx, batch)
				resultCh <- batchResult{size: len(batch), err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed, failed int
	for result := range resultCh {
		completed += result.size
		if result.err != nil {
			failed += result.size
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: completed,
					Total:     len(chunks),
					Error:     result.err,
				})
			}
			continue
		}
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: completed,
				Total:     len(chunks),
			})
		}
	}

	if err := ctx.Err(); err != nil {
		return failed, err
	}
	return failed, nil
}

func (b *Builder) embedBatch(ctx context.Context, batch []Chunk) error {
	texts := make([]string, len(batch))
	ids := make([]string, len(batch))
	for i, c := range batch {
		texts[i] = c.Text
		ids[i] = c.ID
	}

	vectors, err := b.Embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return err
	}

	return b.Index.Add(ctx, ids, vectors)
}

// contentHash computes an xxhash of the statute's canonical JSON form,
// used to detect whether a statute changed since it was last indexed.
func contentHash(statute *paraglide.Statute) string {
	data, err := json.Marshal(statute)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%x", xxhash.Sum64(data))
}
