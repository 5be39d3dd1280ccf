package ecoute

// CategoryRef identifies one paginated category listing within a section.
type CategoryRef struct {
	URL      string  `json:"url"`
	Section  Section `json:"section"`
	Level    Level   `json:"level"`
	Category string  `json:"category"`
}

// UnknownCategory is the sentinel category used when a category link's
// path does not match the expected category/level pattern.
const UnknownCategory = "Unknown"

// ListingPage holds the outcome of parsing one category listing page.
type ListingPage struct {
	// Stubs are the exercises found on the page, deduplicated by source
	// URL within the page (image link and title link commonly point to
	// the same exercise).
	Stubs []ExerciseStub

	// HasMore is true when the page carries a next-page indicator.
	HasMore bool
}

// CategoryDiscoverer parses a section's index page into the category
// listings to crawl.
type CategoryDiscoverer interface {
	// DiscoverCategories returns one CategoryRef per matching link in
	// document order. Duplicates are not removed at this layer; the
	// crawler deduplicates by full URL downstream.
	DiscoverCategories(html string, section Section) ([]CategoryRef, error)
}

// ListingParser parses one category listing page into exercise stubs.
type ListingParser interface {
	// ParsePage extracts stubs from the page numbered pageNumber (1-based).
	// Level, category and section on each stub come from ref, not from
	// the page markup.
	ParsePage(html string, ref CategoryRef, pageNumber int) (*ListingPage, error)
}

// DetailParser parses an exercise detail page into enrichment fields.
// Every field degrades independently to absent; a parse miss is not
// an error.
type DetailParser interface {
	ParseDetail(html string) (*ExerciseDetail, error)
}
