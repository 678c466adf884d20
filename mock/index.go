package mock

import (
	"context"

	"github.com/sheikhomar/paraglide"
)

var _ paraglide.VectorIndex = (*VectorIndex)(nil)

// VectorIndex is a mock implementation of paraglide.VectorIndex.
type VectorIndex struct {
	AddFn    func(ctx context.Context, ids []string, vectors [][]float32) error
	SearchFn func(ctx context.Context, query []float32, k int) ([]paraglide.VectorMatch, error)
	CountFn  func() int
	SaveFn   func(path string) error
	LoadFn   func(path string) error
	CloseFn  func() error
}

func (i *VectorIndex) Add(ctx context.Context, ids []string, vectors [][]float32) error {
	return i.AddFn(ctx, ids, vectors)
}

func (i *VectorIndex) Search(ctx context.Context, query []float32, k int) ([]paraglide.VectorMatch, error) {
	return i.SearchFn(ctx, query, k)
}

func (i *VectorIndex) Count() int {
	return i.CountFn()
}

func (i *VectorIndex) Save(path string) error {
	return i.SaveFn(path)
}

func (i *VectorIndex) Load(path string) error {
	return i.LoadFn(path)
}

func (i *VectorIndex) Close() error {
	return i.CloseFn()
}
