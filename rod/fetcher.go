// Package rod provides a Chrome-based implementation of paraglide.Fetcher.
// retsinformation.dk renders document content client-side, so scraping
// requires a real browser rather than plain HTTP.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/sheikhomar/paraglide"
)

// Ensure Fetcher implements paraglide.Fetcher at compile time.
var _ paraglide.Fetcher = (*Fetcher)(nil)

// DefaultFetchTimeout bounds a single page fetch, including the wait
// for client-side rendering.
const DefaultFetchTimeout = 60 * time.Second

// DefaultWaitSelector is the element whose presence signals that a
// retsinformation.dk document has finished rendering. The footnote
// block is rendered last, after the document body.
const DefaultWaitSelector = "p.Fodnote"

// Fetcher retrieves rendered HTML from URLs using Chrome browser
// automation. The underlying browser is recycled periodically via
// BrowserManager to keep memory bounded on long scrape runs.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	waitSelector string
	fetchTimeout time.Duration
	closed       atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-fetch timeout. Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithWaitSelector sets the CSS selector the fetcher waits for after
// page load. An empty selector disables the wait.
func WithWaitSelector(sel string) Option {
	return func(f *Fetcher) {
		f.waitSelector = sel
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		waitSelector: DefaultWaitSelector,
		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL, waits for the document to render, and
// returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", paraglide.Errorf(paraglide.EINVALID, "fetcher is closed")
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	// Wait for client-side rendering to finish. Element blocks until
	// the selector appears or the context expires.
	if f.waitSelector != "" {
		if _, err := page.Element(f.waitSelector); err != nil {
			return "", err
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()

	return html, nil
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}
