package main

import (
	"fmt"
	"strings"

	"github.com/sheikhomar/paraglide"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Search.Search(deps.Ctx, c.Query, paraglide.SearchOptions{
		Limit:    c.Limit,
		MinScore: c.MinScore,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", paraglide.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results.")
		return nil
	}

	for _, r := range results {
		p := r.Passage
		fmt.Fprintf(deps.Stdout, "%.3f  %s (Kapitel %d: %s)\n", r.Score, p.Reference, p.ChapterNumber, p.ChapterTitle)
		fmt.Fprintf(deps.Stdout, "       %s\n", strings.TrimSpace(p.Content))
	}

	return nil
}
