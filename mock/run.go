package mock

import (
	"context"

	"github.com/mgirard/ecoute"
)

var _ ecoute.CrawlRunService = (*CrawlRunService)(nil)

// CrawlRunService is a mock implementation of ecoute.CrawlRunService.
type CrawlRunService struct {
	CreateCrawlRunFn func(ctx context.Context, run *ecoute.CrawlRun) error
	FindCrawlRunsFn  func(ctx context.Context, limit int) ([]*ecoute.CrawlRun, error)
}

func (s *CrawlRunService) CreateCrawlRun(ctx context.Context, run *ecoute.CrawlRun) error {
	return s.CreateCrawlRunFn(ctx, run)
}

func (s *CrawlRunService) FindCrawlRuns(ctx context.Context, limit int) ([]*ecoute.CrawlRun, error) {
	return s.FindCrawlRunsFn(ctx, limit)
}
