package mock

import "github.com/mgirard/ecoute"

var (
	_ ecoute.CategoryDiscoverer = (*CategoryDiscoverer)(nil)
	_ ecoute.ListingParser      = (*ListingParser)(nil)
	_ ecoute.DetailParser       = (*DetailParser)(nil)
)

// CategoryDiscoverer is a mock implementation of ecoute.CategoryDiscoverer.
type CategoryDiscoverer struct {
	DiscoverCategoriesFn func(html string, section ecoute.Section) ([]ecoute.CategoryRef, error)
}

func (d *CategoryDiscoverer) DiscoverCategories(html string, section ecoute.Section) ([]ecoute.CategoryRef, error) {
	return d.DiscoverCategoriesFn(html, section)
}

// ListingParser is a mock implementation of ecoute.ListingParser.
type ListingParser struct {
	ParsePageFn func(html string, ref ecoute.CategoryRef, pageNumber int) (*ecoute.ListingPage, error)
}

func (p *ListingParser) ParsePage(html string, ref ecoute.CategoryRef, pageNumber int) (*ecoute.ListingPage, error) {
	return p.ParsePageFn(html, ref, pageNumber)
}

// DetailParser is a mock implementation of ecoute.DetailParser.
type DetailParser struct {
	ParseDetailFn func(html string) (*ecoute.ExerciseDetail, error)
}

func (p *DetailParser) ParseDetail(html string) (*ecoute.ExerciseDetail, error) {
	return p.ParseDetailFn(html)
}
