package ecoute

// ExtractResult holds the main content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML with boilerplate
	// (nav, footer, sidebar) removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
// Used by drift-diagnosis tooling to show what a selector-independent
// extraction sees when the rules stop matching.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
