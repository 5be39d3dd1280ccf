package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mgirard/ecoute"
)

// Compile-time interface verification.
var _ ecoute.CrawlRunService = (*CrawlRunService)(nil)

// CrawlRunService implements ecoute.CrawlRunService using SQLite.
type CrawlRunService struct {
	db *DB
}

// NewCrawlRunService creates a new CrawlRunService.
func NewCrawlRunService(db *DB) *CrawlRunService {
	return &CrawlRunService{db: db}
}

// CreateCrawlRun records a completed sync invocation.
func (s *CrawlRunService) CreateCrawlRun(ctx context.Context, run *ecoute.CrawlRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crawl_runs (id, section, added, updated, error_count, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, string(run.Section), run.Added, run.Updated, run.ErrorCount,
		run.StartedAt.Format(time.RFC3339), run.FinishedAt.Format(time.RFC3339))

	return err
}

// FindCrawlRuns returns the most recent runs, newest first.
func (s *CrawlRunService) FindCrawlRuns(ctx context.Context, limit int) ([]*ecoute.CrawlRun, error) {
	query := "SELECT id, section, added, updated, error_count, started_at, finished_at FROM crawl_runs ORDER BY started_at DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*ecoute.CrawlRun
	for rows.Next() {
		var run ecoute.CrawlRun
		var section, startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &section, &run.Added, &run.Updated, &run.ErrorCount,
			&startedAt, &finishedAt); err != nil {
			return nil, err
		}

		run.Section = ecoute.Section(section)
		if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}
	return runs, rows.Err()
}
