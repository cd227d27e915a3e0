// Package http provides the network-facing implementations of
// epollo.PageFetcher and epollo.SitemapService.
package http

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/epollo/epollo"
)

// DefaultFetchTimeout bounds a single page fetch.
const DefaultFetchTimeout = 30 * time.Second

// DefaultMaxBytes caps the response body size (10 MiB).
const DefaultMaxBytes int64 = 10 << 20

// defaultUserAgent is sent with every request. Some sites serve reduced
// or blocked content to unknown agents.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Ensure Fetcher implements epollo.PageFetcher at compile time.
var _ epollo.PageFetcher = (*Fetcher)(nil)

// Fetcher retrieves pages over plain HTTP. It follows redirects,
// enforces timeout and size caps, and wraps non-HTML responses in a
// minimal HTML document. It does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	maxBytes  int64
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the request timeout.
// Defaults to DefaultFetchTimeout (30s).
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBytes sets the response body size cap.
// Defaults to DefaultMaxBytes (10 MiB).
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		maxBytes:  DefaultMaxBytes,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// NormalizeURL validates rawURL and defaults its scheme to https.
// Returns EINVALID for empty input or input without a resolvable host.
func NormalizeURL(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", epollo.Errorf(epollo.EINVALID, "URL cannot be empty")
	}

	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "https://" + trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" {
		return "", epollo.Errorf(epollo.EINVALID, "invalid URL: %s", rawURL)
	}

	return trimmed, nil
}

// Fetch retrieves the page at rawURL. Failures carry application error
// codes: EINVALID for malformed URLs, ETIMEOUT for deadline overruns,
// ETOOLARGE for oversized bodies, EHTTP for error statuses, and
// EUNAVAILABLE for connection failures.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*epollo.Page, error) {
	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, normalized, nil)
	if err != nil {
		return nil, epollo.Errorf(epollo.EINVALID, "invalid URL: %s", rawURL)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, epollo.Errorf(epollo.ETIMEOUT, "request timed out while loading %s", normalized)
		}
		return nil, epollo.Errorf(epollo.EUNAVAILABLE, "could not connect to %s", normalized)
	}
	defer resp.Body.Close()

	finalURL := normalized
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	if resp.StatusCode >= 400 {
		return nil, epollo.Errorf(epollo.EHTTP, "HTTP %d while loading %s", resp.StatusCode, normalized)
	}

	if resp.ContentLength > f.maxBytes {
		return nil, epollo.Errorf(epollo.ETOOLARGE,
			"content too large (%.1fMB), maximum %dMB supported",
			float64(resp.ContentLength)/(1<<20), f.maxBytes>>20)
	}

	// Read one byte past the cap so undeclared oversized bodies are
	// detected without buffering them whole.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		if isTimeout(err) {
			return nil, epollo.Errorf(epollo.ETIMEOUT, "request timed out while loading %s", normalized)
		}
		return nil, epollo.Errorf(epollo.EUNAVAILABLE, "error reading response from %s", normalized)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, epollo.Errorf(epollo.ETOOLARGE,
			"content too large, maximum %dMB supported", f.maxBytes>>20)
	}

	page := &epollo.Page{
		URL:        rawURL,
		FinalURL:   finalURL,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if contentType != "" && !strings.Contains(contentType, "html") {
		page.HTML = fmt.Sprintf("<html><body><pre>%s</pre></body></html>", html.EscapeString(string(body)))
	}

	return page, nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
