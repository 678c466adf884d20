package mock

import (
	"context"

	"github.com/sheikhomar/paraglide"
)

var _ paraglide.StatuteService = (*StatuteService)(nil)

// StatuteService is a mock implementation of paraglide.StatuteService.
type StatuteService struct {
	CreateStatuteFn   func(ctx context.Context, rec *paraglide.StatuteRecord) error
	FindStatuteByIDFn func(ctx context.Context, id string) (*paraglide.StatuteRecord, error)
	FindStatutesFn    func(ctx context.Context) ([]*paraglide.StatuteRecord, error)
}

func (s *StatuteService) CreateStatute(ctx context.Context, rec *paraglide.StatuteRecord) error {
	return s.CreateStatuteFn(ctx, rec)
}

func (s *StatuteService) FindStatuteByID(ctx context.Context, id string) (*paraglide.StatuteRecord, error) {
	return s.FindStatuteByIDFn(ctx, id)
}

func (s *StatuteService) FindStatutes(ctx context.Context) ([]*paraglide.StatuteRecord, error) {
	return s.FindStatutesFn(ctx)
}
