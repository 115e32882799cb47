package pipgrab

import "context"

// Fetcher retrieves page HTML from URLs.
type Fetcher interface {
	// Fetch performs a single request for the URL and returns the HTML.
	// Transport failures and non-2xx responses return an EFETCH error.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
