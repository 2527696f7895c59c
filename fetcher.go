package webread

import "context"

// Fetcher retrieves a document body from a URL.
// HTML fetchers return markup; reader-style fetchers return extracted text.
type Fetcher interface {
	// Fetch retrieves the URL and returns the response body as a string.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases resources held by the Fetcher.
	Close() error
}
