package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mgirard/ecoute"
	"github.com/mgirard/ecoute/crawl"
	"github.com/mgirard/ecoute/goquery"
	"github.com/mgirard/ecoute/htmltomarkdown"
	ecohttp "github.com/mgirard/ecoute/http"
	ecoslog "github.com/mgirard/ecoute/slog"
	"github.com/mgirard/ecoute/sqlite"
	"github.com/mgirard/ecoute/trafilatura"
)

// defaultBaseURL is the source site root. Overridable with --base-url or
// ECOUTE_BASE_URL for testing against a local copy.
const defaultBaseURL = "https://francaisfacile.rfi.fr"

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ExerciseService ecoute.ExerciseService
	CrawlRunService ecoute.CrawlRunService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
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
		kong.Name("ecoute"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ecoute --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	rules := ecoute.DefaultRules()
	if cli.Rules != "" {
		if rules, err = ecoute.LoadRules(cli.Rules); err != nil {
			return fmt.Errorf("failed to load scrape rules: %w", err)
		}
	}
	deps.Rules = rules

	deps.BaseURL = cli.BaseURL
	if deps.BaseURL == "" {
		deps.BaseURL = defaultBaseURL
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set ECOUTE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ExerciseService = sqlite.NewExerciseService(m.DB)
	m.CrawlRunService = sqlite.NewCrawlRunService(m.DB)
	deps.DB = m.DB
	deps.Exercises = m.ExerciseService
	deps.Runs = m.CrawlRunService
	deps.Sitemaps = ecoslog.NewLoggingSitemapService(ecohttp.NewSitemapService(nil), deps.Logger)

	fetcher := ecoslog.NewLoggingFetcher(ecohttp.NewFetcher(), deps.Logger)
	defer fetcher.Close()
	deps.Fetcher = fetcher

	converter := htmltomarkdown.NewConverter()
	deps.Details = ecoslog.NewLoggingDetailParser(goquery.NewDetailParser(rules, converter), deps.Logger)
	deps.Extractor = trafilatura.NewExtractor()

	deps.Categories, err = goquery.NewCategoryDiscoverer(deps.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", deps.BaseURL, err)
	}

	deps.Crawler = &crawl.Crawler{
		Fetcher:    deps.Fetcher,
		Categories: deps.Categories,
		Listings:   goquery.NewListingParser(rules),
		Details:    deps.Details,
		Exercises:  deps.Exercises,
		Runs:       deps.Runs,
		Rules:      rules,
		BaseURL:    deps.BaseURL,
		Pacer:      crawl.NewPacer(time.Duration(cli.Sync.Delay) * time.Millisecond),
		MaxPages:   cli.Sync.MaxPages,
		Logger:     deps.Logger,
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("ECOUTE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "ecoute.db"
	}
	dir := filepath.Join(home, ".ecoute")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "ecoute.db")
}
