package mock

import (
	"context"

	"github.com/sheikhomar/paraglide"
)

var _ paraglide.PassageService = (*PassageService)(nil)

// PassageService is a mock implementation of paraglide.PassageService.
type PassageService struct {
	CreatePassagesFn    func(ctx context.Context, passages []*paraglide.Passage) error
	FindPassageByGUIDFn func(ctx context.Context, guid string) (*paraglide.Passage, error)
	FindPassagesFn      func(ctx context.Context, filter paraglide.PassageFilter) ([]*paraglide.Passage, error)
	CountPassagesFn     func(ctx context.Context) (int, error)
}

func (s *PassageService) CreatePassages(ctx context.Context, passages []*paraglide.Passage) error {
	return s.CreatePassagesFn(ctx, passages)
}

func (s *PassageService) FindPassageByGUID(ctx context.Context, guid string) (*paraglide.Passage, error) {
	return s.FindPassageByGUIDFn(ctx, guid)
}

func (s *PassageService) FindPassages(ctx context.Context, filter paraglide.PassageFilter) ([]*paraglide.Passage, error) {
	return s.FindPassagesFn(ctx, filter)
}

func (s *PassageService) CountPassages(ctx context.Context) (int, error) {
	return s.CountPassagesFn(ctx)
}
