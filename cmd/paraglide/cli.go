package main

import (
	"context"
	"io"

	"github.com/sheikhomar/paraglide"
	phttp "github.com/sheikhomar/paraglide/http"
	"github.com/sheikhomar/paraglide/index"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Sitemaps  paraglide.SitemapService
	Fetcher   paraglide.Fetcher
	Parser    paraglide.StatuteParser
	Extractor paraglide.Extractor
	// Fallback is tried when the primary extractor cannot find content.
	Fallback  paraglide.Extractor
	Converter paraglide.Converter
	Builder   *index.Builder
	Search    paraglide.SearchService
	QA        paraglide.QAService
	Server    *phttp.Server
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging to stderr"`

	Discover DiscoverCmd `cmd:"" help:"Discover statute URLs from the retsinformation.dk sitemap"`
	Scrape   ScrapeCmd   `cmd:"" help:"Scrape a statute page and save the rendered HTML"`
	Parse    ParseCmd    `cmd:"" help:"Parse scraped HTML into a structured statute document"`
	Refs     RefsCmd     `cmd:"" help:"Export a flat paragraph reference listing"`
	Index    IndexCmd    `cmd:"" help:"Build a searchable index from a parsed statute"`
	Search   SearchCmd   `cmd:"" help:"Search a built index"`
	Ask      AskCmd      `cmd:"" help:"Ask a question about the statute"`
	UI       UICmd       `cmd:"" name:"ui" help:"Serve the question-answering web UI"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	URL    string   `default:"https://www.retsinformation.dk" help:"Site to discover URLs from"`
	Filter []string `short:"F" name:"filter" help:"Filter URLs by regex (repeatable)"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL        string `default:"https://www.retsinformation.dk/eli/lta/2023/1180" help:"Statute page URL"`
	OutputPath string `type:"path" help:"Output file path. Leave blank to derive one from the URL under data/"`
	Force      bool   `short:"f" help:"Overwrite an existing output file"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	InputPath    string `required:"" type:"path" help:"Scraped HTML file to parse"`
	OutputPath   string `required:"" type:"path" help:"File to write the parsed statute JSON to"`
	Force        bool   `short:"f" help:"Overwrite an existing output file"`
	MarkdownPath string `type:"path" help:"Also export the page content as markdown to this file"`
	SourceURL    string `default:"https://www.retsinformation.dk/eli/lta/2023/1180" help:"Source URL recorded in the markdown export"`
}

// RefsCmd is the "refs" subcommand.
type RefsCmd struct {
	StatutePath string `required:"" type:"path" help:"Parsed statute JSON file"`
	OutputPath  string `required:"" type:"path" help:"File to write the reference listing to"`
	Force       bool   `short:"f" help:"Overwrite an existing output file"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	StatutePath  string `required:"" type:"path" help:"Parsed statute JSON file"`
	IndexDir     string `required:"" type:"path" help:"Directory to build the index in"`
	CohereAPIKey string `env:"COHERE_API_KEY" help:"Cohere API key for embeddings"`
	Concurrency  int    `short:"c" default:"4" help:"Concurrent embedding request limit"`
	Force        bool   `short:"f" help:"Rebuild over an existing index"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query        string  `arg:"" help:"Search query"`
	IndexDir     string  `required:"" type:"path" help:"Directory containing a built index"`
	CohereAPIKey string  `env:"COHERE_API_KEY" help:"Cohere API key for embeddings"`
	Limit        int     `default:"4" help:"Maximum number of results"`
	MinScore     float32 `help:"Minimum similarity score (0-1)"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question     string `arg:"" help:"Question about the statute"`
	IndexDir     string `required:"" type:"path" help:"Directory containing a built index"`
	Situation    string `short:"s" help:"Work situation, e.g. lønmodtager or selvstændig"`
	TopK         int    `default:"4" help:"Number of passages to retrieve"`
	CohereAPIKey string `env:"COHERE_API_KEY" help:"Cohere API key for embeddings"`
	GeminiAPIKey string `env:"GEMINI_API_KEY" help:"Gemini API key; enables synthesized answers"`
}

// UICmd is the "ui" subcommand.
type UICmd struct {
	IndexDir     string `required:"" type:"path" help:"Directory containing a built index"`
	Addr         string `default:":8080" help:"Bind address"`
	CohereAPIKey string `env:"COHERE_API_KEY" help:"Cohere API key for embeddings"`
	GeminiAPIKey string `env:"GEMINI_API_KEY" help:"Gemini API key; enables synthesized answers"`
}
