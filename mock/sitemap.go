package mock

import (
	"context"

	"github.com/mgirard/ecoute"
)

var _ ecoute.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of ecoute.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *ecoute.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *ecoute.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
