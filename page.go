package epollo

import "context"

// Page is the outcome of fetching a URL.
type Page struct {
	// URL is the address that was requested.
	URL string

	// FinalURL is the address after following redirects.
	FinalURL string

	// StatusCode is the HTTP status of the final response, or zero when
	// the request never produced a response.
	StatusCode int

	// HTML is the response body. Non-HTML responses are wrapped in a
	// minimal HTML document by the fetcher.
	HTML string
}

// PageFetcher retrieves pages over the network.
//
// Fetch applies the fetcher's URL, timeout, size, and content-type
// policies. Failures are reported with application error codes
// (ETIMEOUT, ETOOLARGE, EINVALID, EUNAVAILABLE) so callers can degrade
// them into displayable substitutes instead of propagating.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)

	// Close releases any resources held by the fetcher.
	Close() error
}
