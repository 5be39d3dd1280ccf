// Package crawl orchestrates exercise synchronization: category discovery,
// paginated listing walks, detail enrichment, identity resolution and
// persistence. Crawls are deliberately sequential with a politeness delay
// between requests to the source site.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mgirard/ecoute"
)

// DefaultMaxPages caps pagination per category against runaway loops.
const DefaultMaxPages = 50

// Crawler composes the parsers, the fetcher and the store into full or
// incremental syncs.
type Crawler struct {
	Fetcher    ecoute.Fetcher
	Categories ecoute.CategoryDiscoverer
	Listings   ecoute.ListingParser
	Details    ecoute.DetailParser
	Exercises  ecoute.ExerciseService
	Runs       ecoute.CrawlRunService // optional sync history
	Rules      ecoute.ScrapeRules

	// BaseURL is the site root; section index pages live at
	// BaseURL/<section>/.
	BaseURL string

	Pacer       *Pacer
	RetryDelays []time.Duration
	MaxPages    int
	Logger      *slog.Logger
}

// CrawlSection discovers the section's categories and syncs each of them.
// Per-item failures (one category page, one detail page) become error
// strings in the result; the only fatal failure is being unable to reach
// the section index at all.
func (c *Crawler) CrawlSection(ctx context.Context, section ecoute.Section) (*ecoute.SyncResult, error) {
	if !ecoute.ValidSection(section) {
		return nil, ecoute.Errorf(ecoute.EINVALID, "unknown section %q", section)
	}

	started := time.Now().UTC()

	indexURL := strings.TrimSuffix(c.BaseURL, "/") + "/" + string(section) + "/"
	html, err := c.fetch(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("section index %s: %w", indexURL, err)
	}

	refs, err := c.Categories.DiscoverCategories(html, section)
	if err != nil {
		return nil, fmt.Errorf("discover categories: %w", err)
	}

	assigned, err := c.Exercises.ListIDsAndSourceURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed identity map: %w", err)
	}

	result := &ecoute.SyncResult{}
	seen := make(map[string]bool)
	seenCategories := make(map[string]bool)

	for _, ref := range refs {
		if seenCategories[ref.URL] {
			continue
		}
		seenCategories[ref.URL] = true

		if ctx.Err() != nil {
			break
		}
		c.syncCategory(ctx, ref, seen, assigned, result)
	}

	c.recordRun(ctx, section, started, result)
	return result, nil
}

// CrawlCategory syncs a single category listing, for incremental use.
// The identity map is seeded from persistence. Returns every record the
// crawl finished, created and refreshed alike.
func (c *Crawler) CrawlCategory(ctx context.Context, ref ecoute.CategoryRef) ([]*ecoute.Exercise, error) {
	assigned, err := c.Exercises.ListIDsAndSourceURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed identity map: %w", err)
	}

	result := &ecoute.SyncResult{}
	return c.syncCategory(ctx, ref, make(map[string]bool), assigned, result), nil
}

// syncCategory pages through one category, then syncs each newly-seen
// stub. The seen set spans the whole crawl so the same exercise listed
// under two categories is processed once.
func (c *Crawler) syncCategory(ctx context.Context, ref ecoute.CategoryRef, seen map[string]bool, assigned map[string]string, result *ecoute.SyncResult) []*ecoute.Exercise {
	stubs := c.collectStubs(ctx, ref, seen, result)

	var finished []*ecoute.Exercise
	for _, stub := range stubs {
		if ctx.Err() != nil {
			break
		}
		if ex := c.syncStub(ctx, stub, assigned, result); ex != nil {
			finished = append(finished, ex)
		}
	}
	return finished
}

// collectStubs walks the category's pages until no more pages remain or
// the page cap is reached, deduplicating by source URL across the crawl.
func (c *Crawler) collectStubs(ctx context.Context, ref ecoute.CategoryRef, seen map[string]bool, result *ecoute.SyncResult) []ecoute.ExerciseStub {
	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	var stubs []ecoute.ExerciseStub
	for page := 1; page <= maxPages; page++ {
		pageURL := c.Rules.Listing.PageURL(ref.URL, page)

		html, err := c.fetch(ctx, pageURL)
		if err != nil {
			c.recordError(result, "listing %s: %v", pageURL, err)
			break
		}

		listing, err := c.Listings.ParsePage(html, ref, page)
		if err != nil {
			c.recordError(result, "parse listing %s: %v", pageURL, err)
			break
		}

		for _, stub := range listing.Stubs {
			if seen[stub.SourceURL] {
				continue
			}
			seen[stub.SourceURL] = true
			stubs = append(stubs, stub)
		}

		if !listing.HasMore {
			break
		}
	}
	return stubs
}

// syncStub creates a record for a new source URL or refreshes the
// existing one. Returns nil when the stub failed or produced no action.
func (c *Crawler) syncStub(ctx context.Context, stub ecoute.ExerciseStub, assigned map[string]string, result *ecoute.SyncResult) *ecoute.Exercise {
	existing, err := c.Exercises.FindExerciseBySourceURL(ctx, stub.SourceURL)
	switch {
	case err == nil:
		return c.refreshExercise(ctx, stub, existing, result)
	case ecoute.ErrorCode(err) == ecoute.ENOTFOUND:
		return c.createExercise(ctx, stub, assigned, result)
	default:
		c.recordError(result, "lookup %s: %v", stub.SourceURL, err)
		return nil
	}
}

// createExercise enriches a new stub from its detail page, resolves its
// short ID and persists it.
func (c *Crawler) createExercise(ctx context.Context, stub ecoute.ExerciseStub, assigned map[string]string, result *ecoute.SyncResult) *ecoute.Exercise {
	html, err := c.fetch(ctx, stub.SourceURL)
	if err != nil {
		c.recordError(result, "detail %s: %v", stub.SourceURL, err)
		return nil
	}

	detail, err := c.Details.ParseDetail(html)
	if err != nil {
		c.recordError(result, "parse detail %s: %v", stub.SourceURL, err)
		return nil
	}

	ex := detail.Merge(stub)

	id, err := ecoute.ResolveShortID(ex.SourceURL, assigned)
	if err != nil {
		c.recordError(result, "resolve id %s: %v", ex.SourceURL, err)
		return nil
	}
	ex.ID = id

	if err := c.Exercises.CreateExercise(ctx, ex); err != nil {
		c.recordError(result, "create %s: %v", ex.SourceURL, err)
		return nil
	}

	result.Added++
	if c.Logger != nil {
		c.Logger.Info("exercise created", "id", ex.ID, "url", ex.SourceURL)
	}
	return ex
}

// refreshExercise refreshes mutable listing fields on an existing record
// and attaches the category tag when missing. The short ID is never
// reassigned.
func (c *Crawler) refreshExercise(ctx context.Context, stub ecoute.ExerciseStub, existing *ecoute.Exercise, result *ecoute.SyncResult) *ecoute.Exercise {
	upd := ecoute.ExerciseUpdate{}
	if stub.Title != "" {
		upd.Title = &stub.Title
	}
	if stub.ThumbnailURL != "" {
		upd.ThumbnailURL = &stub.ThumbnailURL
	}
	if stub.PublishedAt != nil {
		upd.PublishedAt = stub.PublishedAt
	}

	updated, err := c.Exercises.UpdateExercise(ctx, existing.ID, upd)
	if err != nil {
		c.recordError(result, "update %s: %v", stub.SourceURL, err)
		return nil
	}

	if stub.Category != "" && !existing.HasCategory(stub.Category) {
		if err := c.Exercises.AddCategoryTag(ctx, existing.ID, stub.Category); err != nil {
			c.recordError(result, "tag %s: %v", stub.SourceURL, err)
			return nil
		}
		updated.Categories = append(updated.Categories, stub.Category)
	}

	result.Updated++
	if c.Logger != nil {
		c.Logger.Info("exercise refreshed", "id", existing.ID, "url", stub.SourceURL)
	}
	return updated
}

// fetch waits out the politeness delay, then fetches with retries.
func (c *Crawler) fetch(ctx context.Context, url string) (string, error) {
	if c.Pacer != nil {
		if err := c.Pacer.Wait(ctx); err != nil {
			return "", err
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, url, c.Fetcher.Fetch, c.Logger, delays)
}

func (c *Crawler) recordError(result *ecoute.SyncResult, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	result.Errors = append(result.Errors, msg)
	if c.Logger != nil {
		c.Logger.Warn("crawl item failed", "err", msg)
	}
}

// recordRun stores sync history when a run service is configured.
func (c *Crawler) recordRun(ctx context.Context, section ecoute.Section, started time.Time, result *ecoute.SyncResult) {
	if c.Runs == nil {
		return
	}
	run := &ecoute.CrawlRun{
		Section:    section,
		Added:      result.Added,
		Updated:    result.Updated,
		ErrorCount: len(result.Errors),
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
	}
	if err := c.Runs.CreateCrawlRun(ctx, run); err != nil && c.Logger != nil {
		c.Logger.Warn("record crawl run", "err", err)
	}
}
