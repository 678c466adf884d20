package main

import (
	"fmt"

	"github.com/sheikhomar/paraglide"
	"github.com/sheikhomar/paraglide/fs"
	"github.com/sheikhomar/paraglide/index"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	statute, err := fs.ReadStatute(c.StatutePath)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", paraglide.ErrorMessage(err))
		return err
	}

	progress := func(event index.ProgressEvent) {
		switch event.Type {
		case index.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Embedding %d chunks\n", event.Total)
		case index.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  %d/%d\n", event.Completed, event.Total)
		case index.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  embed failed: %v\n", event.Error)
		}
	}

	result, err := deps.Builder.BuildStatute(deps.Ctx, statute, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", paraglide.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %q: %d passages, %d chunks, %d failed\n",
		statute.Title, result.Passages, result.Chunks, result.Failed)

	if result.Failed > 0 {
		return paraglide.Errorf(paraglide.EUNAVAILABLE, "%d chunks failed to embed, rerun with --force to rebuild", result.Failed)
	}
	return nil
}
