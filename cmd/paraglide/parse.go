package main

import (
	"fmt"
	"time"

	"github.com/sheikhomar/paraglide"
	"github.com/sheikhomar/paraglide/fs"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	html, err := fs.ReadFile(c.InputPath)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", paraglide.ErrorMessage(err))
		return err
	}

	if fs.Exists(c.OutputPath) && !c.Force {
		err := paraglide.Errorf(paraglide.ECONFLICT, "%s already exists, use --force to overwrite", c.OutputPath)
		fmt.Fprintf(deps.Stderr, "error: %s\n", paraglide.ErrorMessage(err))
		return err
	}

	statute, err := deps.Parser.Parse(string(html))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", paraglide.ErrorMessage(err))
		return err
	}

	if err := fs.WriteStatute(c.OutputPath, statute); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", paraglide.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Parsed %q (LBK nr %d): %d chapters, %d passages\n",
		statute.Title, statute.Number, len(statute.Chapters), len(paraglide.FlattenPassages(statute)))

	if c.MarkdownPath != "" {
		if err := c.exportMarkdown(deps, string(html)); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", paraglide.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote markdown export to %s\n", c.MarkdownPath)
	}

	return nil
}

// exportMarkdown extracts the page's main content and writes it as
// markdown with frontmatter. The fallback extractor is tried when the
// primary one finds no content.
func (c *ParseCmd) exportMarkdown(deps *Dependencies, html string) error {
	extracted, err := deps.Extractor.Extract(html)
	if err != nil && deps.Fallback != nil {
		extracted, err = deps.Fallback.Extract(html)
	}
	if err != nil {
		return err
	}

	markdown, err := deps.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return err
	}

	doc := fs.FormatMarkdown(c.SourceURL, extracted.Title, markdown, time.Now().UTC())
	return fs.WriteFile(c.MarkdownPath, []byte(doc))
}
