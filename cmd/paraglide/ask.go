package main

import (
	"fmt"

	"github.com/sheikhomar/paraglide"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	query := paraglide.StatuteQuery{Question: c.Question}
	if c.Situation != "" {
		query.SituationalContext = map[string]string{"arbejdsforhold": c.Situation}
	}

	err := deps.QA.Respond(deps.Ctx, query, func(text string) {
		fmt.Fprint(deps.Stdout, text)
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", paraglide.ErrorMessage(err))
		return err
	}

	return nil
}
