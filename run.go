package ecoute

import (
	"context"
	"time"
)

// CrawlRun records one sync invocation for later inspection.
type CrawlRun struct {
	ID         string    `json:"id"`
	Section    Section   `json:"section"`
	Added      int       `json:"added"`
	Updated    int       `json:"updated"`
	ErrorCount int       `json:"errorCount"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// CrawlRunService persists crawl-run history.
type CrawlRunService interface {
	// CreateCrawlRun records a completed sync invocation.
	CreateCrawlRun(ctx context.Context, run *CrawlRun) error

	// FindCrawlRuns returns the most recent runs, newest first.
	FindCrawlRuns(ctx context.Context, limit int) ([]*CrawlRun, error)
}
