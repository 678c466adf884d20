package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/sheikhomar/paraglide"
)

// Ensure LoggingSearchService implements paraglide.SearchService.
var _ paraglide.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with debug logging.
type LoggingSearchService struct {
	next   paraglide.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next paraglide.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the operation. The
// query text itself is not logged; questions can contain personal
// details about the asker's situation.
func (s *LoggingSearchService) Search(ctx context.Context, query string, opts paraglide.SearchOptions) (results []paraglide.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"query_len", len(query),
			"limit", opts.Limit,
			"results", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, opts)
}
