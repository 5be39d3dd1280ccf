package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/mgirard/ecoute"
	"github.com/mgirard/ecoute/crawl"
	"github.com/mgirard/ecoute/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	DB         *sqlite.DB
	Exercises  ecoute.ExerciseService
	Runs       ecoute.CrawlRunService
	Sitemaps   ecoute.SitemapService
	Fetcher    ecoute.Fetcher
	Categories ecoute.CategoryDiscoverer
	Details    ecoute.DetailParser
	Extractor  ecoute.Extractor
	Crawler    *crawl.Crawler
	Rules      ecoute.ScrapeRules
	BaseURL    string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log every fetch and parse"`
	Rules   string `help:"Path to a scrape rules YAML file" type:"path"`
	BaseURL string `help:"Source site root URL" env:"ECOUTE_BASE_URL"`

	Sync       SyncCmd       `cmd:"" help:"Crawl one or all site sections into the store"`
	Categories CategoriesCmd `cmd:"" help:"List the categories discovered on a section index"`
	Discover   DiscoverCmd   `cmd:"" help:"Compare sitemap URLs against stored exercises"`
	List       ListCmd       `cmd:"" help:"List stored exercises"`
	Show       ShowCmd       `cmd:"" help:"Show one exercise in full"`
	Export     ExportCmd     `cmd:"" help:"Export stored exercises as markdown files"`
	Peek       PeekCmd       `cmd:"" help:"Diagnose what the parsers see on a single page"`
	Runs       RunsCmd       `cmd:"" help:"Show recent sync runs"`
}

// SyncCmd is the "sync" subcommand.
type SyncCmd struct {
	Section  string `arg:"" optional:"" help:"Section to sync (default: all sections)"`
	Delay    int    `default:"500" help:"Politeness delay between requests in milliseconds"`
	MaxPages int    `default:"50" help:"Pagination cap per category"`
}

// CategoriesCmd is the "categories" subcommand.
type CategoriesCmd struct {
	Section string `arg:"" help:"Section index to inspect"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	Filter []string `short:"F" name:"filter" help:"Filter URLs by regex (repeatable)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Section  string `help:"Filter by section"`
	Level    string `help:"Filter by level (A1, A2, B1, B2, C1C2)"`
	Category string `help:"Filter by category tag"`
	Limit    int    `default:"50" help:"Maximum number of exercises"`
	Offset   int    `help:"Number of exercises to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Exercise short ID"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir string `arg:"" help:"Directory to export into" type:"path"`
}

// PeekCmd is the "peek" subcommand.
type PeekCmd struct {
	URL string `arg:"" help:"Exercise detail page URL"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Limit int `default:"10" help:"Number of runs to show"`
}
