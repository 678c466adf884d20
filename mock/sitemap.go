package mock

import (
	"context"

	"github.com/sheikhomar/paraglide"
)

var _ paraglide.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of paraglide.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *paraglide.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *paraglide.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
