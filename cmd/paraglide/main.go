package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/sheikhomar/paraglide"
	"github.com/sheikhomar/paraglide/cohere"
	"github.com/sheikhomar/paraglide/fs"
	"github.com/sheikhomar/paraglide/gemini"
	"github.com/sheikhomar/paraglide/goquery"
	"github.com/sheikhomar/paraglide/hnsw"
	phttp "github.com/sheikhomar/paraglide/http"
	"github.com/sheikhomar/paraglide/htmltomarkdown"
	"github.com/sheikhomar/paraglide/index"
	"github.com/sheikhomar/paraglide/qa"
	"github.com/sheikhomar/paraglide/readability"
	"github.com/sheikhomar/paraglide/rod"
	pslog "github.com/sheikhomar/paraglide/slog"
	"github.com/sheikhomar/paraglide/sqlite"
	"github.com/sheikhomar/paraglide/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()
	defer m.Close()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Index directory layout.
const (
	indexFileName = "vectors.hnsw"
	dbFileName    = "passages.db"
)

// tokenizerModel is used for token counting when chunking passages.
const tokenizerModel = "gemini-2.5-flash"

// Main represents the program.
type Main struct {
	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program, closing wired resources in
// reverse order of creation.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("paraglide"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'paraglide --help' to see available commands")
	}

	if first := args[0]; first == "help" || first == "--help" || first == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Resolve the bare command name from the parse result rather than
	// args[0]: global flags like --verbose may precede the subcommand.
	// kong reports the command with its positionals, e.g. "ask <question>".
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// Wire command-specific dependencies based on command.
	switch cmd {
	case "discover":
		deps.Sitemaps = phttp.NewSitemapService(nil)
		if logger != nil {
			deps.Sitemaps = pslog.NewLoggingSitemapService(deps.Sitemaps, logger)
		}

	case "scrape":
		fetcher, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		m.closers = append(m.closers, fetcher)
		deps.Fetcher = fetcher
		if logger != nil {
			deps.Fetcher = pslog.NewLoggingFetcher(deps.Fetcher, logger)
		}

	case "parse":
		deps.Parser = goquery.NewRetsinformationParser()
		deps.Extractor = trafilatura.NewExtractor()
		deps.Fallback = readability.NewExtractor()
		deps.Converter = htmltomarkdown.NewConverter()

	case "index":
		if !cli.Index.Force && fs.Exists(filepath.Join(cli.Index.IndexDir, indexFileName)) {
			return fmt.Errorf("index already exists in %q, use --force to rebuild", cli.Index.IndexDir)
		}

		embedder, err := cohere.NewEmbedder(cli.Index.CohereAPIKey)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Set COHERE_API_KEY or pass --cohere-api-key")
			return err
		}

		tokenCounter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}

		idx, err := hnsw.NewIndex(embedder.Dimensions())
		if err != nil {
			return err
		}
		m.closers = append(m.closers, idx)

		db := sqlite.NewDB(filepath.Join(cli.Index.IndexDir, dbFileName))
		if err := os.MkdirAll(cli.Index.IndexDir, 0755); err != nil {
			return fmt.Errorf("creating index directory: %w", err)
		}
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open passage store: %w", err)
		}
		m.closers = append(m.closers, db)

		deps.Builder = &index.Builder{
			Embedder:     embedder,
			TokenCounter: tokenCounter,
			Index:        idx,
			Statutes:     sqlite.NewStatuteService(db),
			Passages:     sqlite.NewPassageService(db),
			Concurrency:  cli.Index.Concurrency,
			IndexPath:    filepath.Join(cli.Index.IndexDir, indexFileName),
		}

	case "search":
		searcher, err := m.openSearcher(cli.Search.IndexDir, cli.Search.CohereAPIKey, stderr)
		if err != nil {
			return err
		}
		deps.Search = searcher
		if logger != nil {
			deps.Search = pslog.NewLoggingSearchService(deps.Search, logger)
		}

	case "ask", "ui":
		indexDir, cohereKey, geminiKey := cli.Ask.IndexDir, cli.Ask.CohereAPIKey, cli.Ask.GeminiAPIKey
		if cmd == "ui" {
			indexDir, cohereKey, geminiKey = cli.UI.IndexDir, cli.UI.CohereAPIKey, cli.UI.GeminiAPIKey
		}

		searcher, err := m.openSearcher(indexDir, cohereKey, stderr)
		if err != nil {
			return err
		}
		var search paraglide.SearchService = searcher
		if logger != nil {
			search = pslog.NewLoggingSearchService(search, logger)
		}

		var opts []qa.Option
		if cmd == "ask" && cli.Ask.TopK > 0 {
			opts = append(opts, qa.WithTopK(cli.Ask.TopK))
		}
		if geminiKey != "" {
			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  geminiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
				return fmt.Errorf("failed to connect to Gemini API: %w", err)
			}
			opts = append(opts, qa.WithAnswerer(gemini.NewAnswerer(client)))
		}

		deps.QA = qa.NewEngine(search, opts...)

		if cmd == "ui" {
			server := phttp.NewServer()
			server.Addr = cli.UI.Addr
			server.QAService = deps.QA
			deps.Server = server
		}
	}

	return kongCtx.Run(deps)
}

// openSearcher loads a built index and wires a Searcher over it. The
// underlying resources are closed by Main.Close.
func (m *Main) openSearcher(indexDir, cohereAPIKey string, stderr io.Writer) (*index.Searcher, error) {
	embedder, err := cohere.NewEmbedder(cohereAPIKey)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Set COHERE_API_KEY or pass --cohere-api-key")
		return nil, err
	}

	idx, err := hnsw.NewIndex(embedder.Dimensions())
	if err != nil {
		return nil, err
	}
	m.closers = append(m.closers, idx)

	if err := idx.Load(filepath.Join(indexDir, indexFileName)); err != nil {
		fmt.Fprintln(stderr, "Hint: Build an index first with 'paraglide index'")
		return nil, err
	}

	db := sqlite.NewDB(filepath.Join(indexDir, dbFileName))
	if err := db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open passage store: %w", err)
	}
	m.closers = append(m.closers, db)

	return index.NewSearcher(embedder, idx, sqlite.NewPassageService(db)), nil
}
