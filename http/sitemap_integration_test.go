//go:build integration

package http_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/sheikhomar/paraglide"
	paraglidehttp "github.com/sheikhomar/paraglide/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapService_Integration_Retsinformation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	svc := paraglidehttp.NewSitemapService(nil)

	// Restrict to consolidation acts ("lovbekendtgørelser").
	filter := &paraglide.URLFilter{
		Include: []*regexp.Regexp{regexp.MustCompile(`/eli/lta/`)},
	}

	urls, err := svc.DiscoverURLs(ctx, "https://www.retsinformation.dk", filter)
	require.NoError(t, err)

	assert.NotEmpty(t, urls, "expected at least some /eli/lta/ URLs from retsinformation.dk")
	t.Logf("Found %d /eli/lta/ URLs from retsinformation.dk sitemap", len(urls))

	for _, u := range urls[:min(5, len(urls))] {
		t.Logf("  - %s", u)
	}
}
