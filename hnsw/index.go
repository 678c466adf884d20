// Package hnsw provides a vector index backed by an in-memory HNSW
// graph with gob-encoded persistence.
package hnsw

import (
	"bufio"
	"context"
	"encoding/gob"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/coder/hnsw"
	"github.com/sheikhomar/paraglide"
)

// Ensure Index implements paraglide.VectorIndex at compile time.
var _ paraglide.VectorIndex = (*Index)(nil)

// Default HNSW graph parameters.
const (
	defaultM        = 16
	defaultEfSearch = 20
)

// Index implements paraglide.VectorIndex using an HNSW graph with
// cosine similarity over normalized vectors.
// Index is safe for concurrent use.
type Index struct {
	mu         sync.RWMutex
	graph      *hnsw.Graph[uint64]
	dimensions int

	// String IDs map to internal uint64 keys. Replaced IDs are lazily
	// deleted: the old node stays in the graph but loses its key
	// mapping, so it can never surface in results.
	idMap   map[string]uint64
	keyMap  map[uint64]string
	nextKey uint64

	closed bool
}

// metadata is the gob-encoded sidecar persisted next to the graph.
type metadata struct {
	IDMap      map[string]uint64
	NextKey    uint64
	Dimensions int
}

// NewIndex creates a new empty Index for vectors of the given
// dimensionality.
func NewIndex(dimensions int) (*Index, error) {
	if dimensions <= 0 {
		return nil, paraglide.Errorf(paraglide.EINVALID, "dimensions must be positive")
	}

	return &Index{
		graph:      newGraph(),
		dimensions: dimensions,
		idMap:      make(map[string]uint64),
		keyMap:     make(map[uint64]string),
	}, nil
}

func newGraph() *hnsw.Graph[uint64] {
	graph := hnsw.NewGraph[uint64]()
	graph.Distance = hnsw.CosineDistance
	graph.M = defaultM
	graph.EfSearch = defaultEfSearch
	graph.Ml = 0.25
	return graph
}

// Add inserts vectors with their IDs. Existing IDs are replaced.
func (idx *Index) Add(ctx context.Context, ids []string, vectors [][]float32) error {
	if len(ids) != len(vectors) {
		return paraglide.Errorf(paraglide.EINVALID,
			"ids and vectors length mismatch: %d vs %d", len(ids), len(vectors))
	}
	if len(ids) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.closed {
		return paraglide.Errorf(paraglide.EINTERNAL, "index is closed")
	}

	for _, v := range vectors {
		if len(v) != idx.dimensions {
			return paraglide.Errorf(paraglide.EINVALID,
				"vector dimension mismatch: expected %d, got %d", idx.dimensions, len(v))
		}
	}

	for i, id := range ids {
		if existingKey, exists := idx.idMap[id]; exists {
			delete(idx.keyMap, existingKey)
			delete(idx.idMap, id)
		}

		key := idx.nextKey
		idx.nextKey++

		vec := make([]float32, len(vectors[i]))
		copy(vec, vectors[i])
		normalize(vec)

		idx.graph.Add(hnsw.MakeNode(key, vec))
		idx.idMap[id] = key
		idx.keyMap[key] = id
	}

	return nil
}

// Search returns the k nearest neighbors to the query vector, ordered
// by descending similarity.
func (idx *Index) Search(ctx context.Context, query []float32, k int) ([]paraglide.VectorMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.closed {
		return nil, paraglide.Errorf(paraglide.EINTERNAL, "index is closed")
	}
	if len(query) != idx.dimensions {
		return nil, paraglide.Errorf(paraglide.EINVALID,
			"query dimension mismatch: expected %d, got %d", idx.dimensions, len(query))
	}
	if idx.graph.Len() == 0 {
		return []paraglide.VectorMatch{}, nil
	}

	normalized := make([]float32, len(query))
	copy(normalized, query)
	normalize(normalized)

	nodes := idx.graph.Search(normalized, k)

	matches := make([]paraglide.VectorMatch, 0, len(nodes))
	for _, node := range nodes {
		id, exists := idx.keyMap[node.Key]
		if !exists {
			// Lazily deleted node; skip.
			continue
		}

		distance := idx.graph.Distance(normalized, node.Value)
		matches = append(matches, paraglide.VectorMatch{
			ID: id,
			// Cosine distance ranges 0..2; map to a 0..1 similarity.
			Score: 1.0 - distance/2.0,
		})
	}

	return matches, nil
}

// Count returns the number of live vectors in the index.
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.closed {
		return 0
	}
	return len(idx.idMap)
}

// Save persists the graph and its metadata sidecar atomically
// (temp file + rename).
func (idx *Index) Save(path string) error {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.closed {
		return paraglide.Errorf(paraglide.EINTERNAL, "index is closed")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	tmpPath := path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating index file: %w", err)
	}

	if err := idx.graph.Export(file); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("exporting graph: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing index file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming index file: %w", err)
	}

	return idx.saveMetadata(path + ".meta")
}

func (idx *Index) saveMetadata(path string) error {
	tmpPath := path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating metadata file: %w", err)
	}

	meta := metadata{
		IDMap:      idx.idMap,
		NextKey:    idx.nextKey,
		Dimensions: idx.dimensions,
	}

	if err := gob.NewEncoder(file).Encode(meta); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("encoding metadata: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing metadata file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Load restores the graph and metadata from disk.
// Returns ENOTFOUND if no index exists at the path.
func (idx *Index) Load(path string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.closed {
		return paraglide.Errorf(paraglide.EINTERNAL, "index is closed")
	}

	if err := idx.loadMetadata(path + ".meta"); err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return paraglide.Errorf(paraglide.ENOTFOUND, "no vector index at %q", path)
		}
		return fmt.Errorf("opening index file: %w", err)
	}
	defer file.Close()

	// Import requires an io.ByteReader.
	if err := idx.graph.Import(bufio.NewReader(file)); err != nil {
		return fmt.Errorf("importing graph: %w", err)
	}

	return nil
}

func (idx *Index) loadMetadata(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return paraglide.Errorf(paraglide.ENOTFOUND, "no vector index metadata at %q", path)
		}
		return fmt.Errorf("opening metadata file: %w", err)
	}
	defer file.Close()

	var meta metadata
	if err := gob.NewDecoder(file).Decode(&meta); err != nil {
		return fmt.Errorf("decoding metadata: %w", err)
	}

	idx.idMap = meta.IDMap
	idx.nextKey = meta.NextKey
	idx.dimensions = meta.Dimensions
	idx.keyMap = make(map[uint64]string, len(meta.IDMap))
	for id, key := range meta.IDMap {
		idx.keyMap[key] = id
	}

	return nil
}

// Dimensions returns the dimensionality of indexed vectors.
func (idx *Index) Dimensions() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.dimensions
}

// Close releases index resources. Close is safe to call multiple times.
func (idx *Index) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.closed {
		return nil
	}
	idx.closed = true
	idx.graph = nil
	return nil
}

// normalize scales a vector to unit length in place.
func normalize(v []float32) {
	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}
	if sumSquares == 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(sumSquares))
	for i := range v {
		v[i] *= inv
	}
}
