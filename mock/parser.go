package mock

import "github.com/sheikhomar/paraglide"

var _ paraglide.StatuteParser = (*StatuteParser)(nil)

// StatuteParser is a mock implementation of paraglide.StatuteParser.
type StatuteParser struct {
	ParseFn func(html string) (*paraglide.Statute, error)
}

func (p *StatuteParser) Parse(html string) (*paraglide.Statute, error) {
	return p.ParseFn(html)
}
