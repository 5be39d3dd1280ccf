package ecoute

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch returns the page body for the URL. Implementations fail with
	// a transport error on non-success HTTP status; timeouts are the
	// implementation's responsibility via the context.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
