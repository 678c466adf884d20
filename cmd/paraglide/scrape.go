package main

import (
	"fmt"
	"path/filepath"

	"github.com/sheikhomar/paraglide"
	"github.com/sheikhomar/paraglide/fs"
	"github.com/sheikhomar/paraglide/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	outPath := c.OutputPath
	if outPath == "" {
		name, err := scrape.OutputName(c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", paraglide.ErrorMessage(err))
			return err
		}
		outPath = filepath.Join("data", name+".html")
	}

	if fs.Exists(outPath) && !c.Force {
		err := paraglide.Errorf(paraglide.ECONFLICT, "%s already exists, use --force to overwrite", outPath)
		fmt.Fprintf(deps.Stderr, "error: %s\n", paraglide.ErrorMessage(err))
		return err
	}

	scraper := scrape.NewScraper(deps.Fetcher, scrape.WithLogFunc(func(format string, args ...any) {
		fmt.Fprintf(deps.Stderr, "  "+format+"\n", args...)
	}))

	err := scraper.Scrape(deps.Ctx, []string{c.URL}, func(r scrape.Result) error {
		if err := fs.WriteFile(outPath, []byte(r.HTML)); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved %s (%d bytes)\n", outPath, len(r.HTML))
		return nil
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", paraglide.ErrorMessage(err))
		return err
	}

	return nil
}
