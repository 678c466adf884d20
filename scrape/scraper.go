// Package scrape orchestrates fetching statute documents: rate limited,
// retried, and named for on-disk storage.
package scrape

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/sheikhomar/paraglide"
)

// DefaultRequestsPerSecond is the per-domain request rate. Statute
// registers are public infrastructure; scrape politely.
const DefaultRequestsPerSecond = 1.0

// Result is one scraped document.
type Result struct {
	// URL is the source URL.
	URL string

	// Name is the artifact name derived from the URL path,
	// e.g. "eli-lta-2023-1180".
	Name string

	// HTML is the rendered page HTML.
	HTML string
}

// Scraper fetches rendered statute pages with per-domain rate limiting
// and retry with backoff.
type Scraper struct {
	fetcher paraglide.Fetcher
	limiter *DomainLimiter
	delays  []time.Duration
	logf    LogFunc
}

// ScraperOption configures a Scraper.
type ScraperOption func(*Scraper)

// WithRequestsPerSecond sets the per-domain request rate.
func WithRequestsPerSecond(rps float64) ScraperOption {
	return func(s *Scraper) {
		s.limiter = NewDomainLimiter(rps)
	}
}

// WithRetryDelays sets the backoff delays between fetch attempts.
func WithRetryDelays(delays []time.Duration) ScraperOption {
	return func(s *Scraper) {
		s.delays = delays
	}
}

// WithLogFunc sets the progress logging function.
func WithLogFunc(logf LogFunc) ScraperOption {
	return func(s *Scraper) {
		s.logf = logf
	}
}

// NewScraper creates a new Scraper using the given fetcher.
func NewScraper(fetcher paraglide.Fetcher, opts ...ScraperOption) *Scraper {
	s := &Scraper{
		fetcher: fetcher,
		limiter: NewDomainLimiter(DefaultRequestsPerSecond),
		delays:  DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape fetches each URL in order and passes the result to handle.
// Scraping stops at the first fetch that fails all retries or the first
// handle error.
func (s *Scraper) Scrape(ctx context.Context, urls []string, handle func(Result) error) error {
	for _, rawURL := range urls {
		name, err := OutputName(rawURL)
		if err != nil {
			return err
		}

		u, _ := url.Parse(rawURL) // already validated by OutputName
		if err := s.limiter.Wait(ctx, u.Host); err != nil {
			return err
		}

		html, err := FetchWithRetryDelays(ctx, rawURL, s.fetcher.Fetch, s.logf, s.delays)
		if err != nil {
			return paraglide.Errorf(paraglide.EUNAVAILABLE, "failed to fetch %s: %v", rawURL, err)
		}

		if err := handle(Result{URL: rawURL, Name: name, HTML: html}); err != nil {
			return err
		}
	}

	return nil
}

// OutputName derives the artifact name for a document URL: the
// non-empty path segments joined with "-". For example,
// https://www.retsinformation.dk/eli/lta/2023/1180 becomes
// "eli-lta-2023-1180".
func OutputName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", paraglide.Errorf(paraglide.EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	var segments []string
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return "", paraglide.Errorf(paraglide.EINVALID, "URL %q has no path to derive a name from", rawURL)
	}

	return strings.Join(segments, "-"), nil
}
