package index

import (
	"context"
	"fmt"
	"strings"

	"github.com/sheikhomar/paraglide"
)

// Chunking limits. Passages longer than MaxChunkTokens are split into
// word windows that share OverlapWords words with their predecessor, so
// no sentence fragment is stranded at a window boundary.
const (
	MaxChunkTokens = 512
	OverlapWords   = 10
)

// Chunk is one embeddable unit derived from a passage. Most passages
// fit in a single chunk; long ones are split into windows.
type Chunk struct {
	// ID is the vector index key: the passage GUID, with an "@n"
	// window suffix when the passage was split.
	ID string

	// PassageGUID is the GUID of the source passage.
	PassageGUID string

	// Text is the metadata-prefixed text that gets embedded.
	Text string
}

// ChunkPassage splits a passage into embeddable chunks. The token count
// of the full embed text decides whether splitting is needed at all;
// window sizes are derived from the passage's measured tokens-per-word
// ratio.
func ChunkPassage(ctx context.Context, counter paraglide.TokenCounter, p *paraglide.Passage) ([]Chunk, error) {
	text := p.EmbedText()

	tokens, err := counter.CountTokens(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("counting tokens for %s: %w", p.GUID, err)
	}

	if tokens <= MaxChunkTokens {
		return []Chunk{{ID: p.GUID, PassageGUID: p.GUID, Text: text}}, nil
	}

	words := strings.Fields(p.Content)
	if len(words) <= 1 {
		// A single huge word cannot be windowed; embed as-is.
		return []Chunk{{ID: p.GUID, PassageGUID: p.GUID, Text: text}}, nil
	}

	windowSize := len(words) * MaxChunkTokens / tokens
	if windowSize < OverlapWords+1 {
		windowSize = OverlapWords + 1
	}
	step := windowSize - OverlapWords

	var chunks []Chunk
	for start := 0; start < len(words); start += step {
		end := min(start+windowSize, len(words))

		window := *p
		window.Content = strings.Join(words[start:end], " ")

		chunks = append(chunks, Chunk{
			ID:          fmt.Sprintf("%s@%d", p.GUID, len(chunks)),
			PassageGUID: p.GUID,
			Text:        window.EmbedText(),
		})

		if end == len(words) {
			break
		}
	}

	return chunks, nil
}

// PassageGUID returns the passage GUID for a vector index key, stripping
// the window suffix if present.
func PassageGUID(chunkID string) string {
	if i := strings.LastIndex(chunkID, "@"); i >= 0 {
		return chunkID[:i]
	}
	return chunkID
}
