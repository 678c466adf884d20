package mock

import "github.com/sheikhomar/paraglide"

var _ paraglide.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of paraglide.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*paraglide.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*paraglide.ExtractResult, error) {
	return e.ExtractFn(html)
}
