package mock

import "github.com/sheikhomar/paraglide"

var _ paraglide.Converter = (*Converter)(nil)

// Converter is a mock implementation of paraglide.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
