package mock

import (
	"context"

	"github.com/sheikhomar/paraglide"
)

var _ paraglide.QAService = (*QAService)(nil)

// QAService is a mock implementation of paraglide.QAService.
type QAService struct {
	RespondFn func(ctx context.Context, query paraglide.StatuteQuery, emit func(text string)) error
}

func (s *QAService) Respond(ctx context.Context, query paraglide.StatuteQuery, emit func(text string)) error {
	return s.RespondFn(ctx, query, emit)
}
