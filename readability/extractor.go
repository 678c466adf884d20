package readability

import (
	"strings"

	"github.com/sheikhomar/paraglide"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements paraglide.Extractor at compile time.
var _ paraglide.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*paraglide.ExtractResult, error) {
	if rawHTML == "" {
		return nil, paraglide.Errorf(paraglide.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &paraglide.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
