package main

import (
	"fmt"

	"github.com/sheikhomar/paraglide"
	"github.com/sheikhomar/paraglide/fs"
)

// Run executes the refs command.
func (c *RefsCmd) Run(deps *Dependencies) error {
	statute, err := fs.ReadStatute(c.StatutePath)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", paraglide.ErrorMessage(err))
		return err
	}

	if fs.Exists(c.OutputPath) && !c.Force {
		err := paraglide.Errorf(paraglide.ECONFLICT, "%s already exists, use --force to overwrite", c.OutputPath)
		fmt.Fprintf(deps.Stderr, "error: %s\n", paraglide.ErrorMessage(err))
		return err
	}

	refs := statute.ParagraphRefs()
	if err := fs.WriteRefs(c.OutputPath, refs); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", paraglide.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d paragraph references to %s\n", len(refs), c.OutputPath)
	return nil
}
