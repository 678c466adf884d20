package paraglide

// StatuteParser parses scraped statute HTML into a structured statute.
type StatuteParser interface {
	// Parse processes the rendered HTML of a statute page and returns
	// the chapter/paragraph/subsection tree.
	// Returns EINVALID if the markup does not have the expected shape.
	Parse(html string) (*Statute, error)
}
