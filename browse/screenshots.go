package browse

import (
	"context"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/epollo/epollo"
	"github.com/epollo/epollo/bloom"
	"golang.org/x/sync/errgroup"
)

// BatchRunner captures screenshots for every URL a site's sitemap
// exposes, skipping URLs already seen within the run.
type BatchRunner struct {
	Sitemaps    epollo.SitemapService
	Renderer    epollo.Renderer
	Store       epollo.ScreenshotStore
	RateLimiter epollo.DomainLimiter
	Render      epollo.RenderOptions
	Concurrency int
	RetryDelays []time.Duration
}

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Saved   int
	Failed  int
	Skipped int
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Path      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// captureResult holds the outcome of capturing a single URL.
type captureResult struct {
	url  string
	path string
	err  error
}

// Run discovers URLs for baseURL and captures each one. The progress
// callback, if provided, receives events as the run proceeds.
func (r *BatchRunner) Run(ctx context.Context, baseURL string, filter *epollo.URLFilter, progress ProgressFunc) (*BatchResult, error) {
	urls, err := r.Sitemaps.DiscoverURLs(ctx, baseURL, filter)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{}

	// A Bloom filter keeps dedup memory bounded on very large
	// sitemaps. A false positive only costs one skipped capture.
	seen := bloom.NewSet(uint(len(urls))+1, 0.001)
	var pending []string
	for _, u := range urls {
		if seen.Seen(u) {
			result.Skipped++
			continue
		}
		pending = append(pending, u)
	}

	if len(pending) == 0 {
		if progress != nil {
			progress(ProgressEvent{Type: ProgressFinished})
		}
		return result, nil
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: len(pending)})
	}

	resultCh := make(chan captureResult, len(pending))
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, target := range pending {
			g.Go(func() error {
				resultCh <- r.capture(gctx, i, target, delays)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	for res := range resultCh {
		done := int(completed.Add(1))
		if res.err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: done,
					Total:     len(pending),
					URL:       res.url,
					Error:     res.err,
				})
			}
			continue
		}

		result.Saved++
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: done,
				Total:     len(pending),
				URL:       res.url,
				Path:      res.path,
			})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: len(pending), Total: len(pending)})
	}

	return result, ctx.Err()
}

// capture renders one URL with rate limiting and retry, then stores
// the image.
func (r *BatchRunner) capture(ctx context.Context, index int, target string, delays []time.Duration) captureResult {
	if r.RateLimiter != nil {
		if err := r.RateLimiter.Wait(ctx, domainOf(target)); err != nil {
			return captureResult{url: target, err: err}
		}
	}

	data, err := CaptureWithRetryDelays(ctx, target, func(ctx context.Context, u string) ([]byte, error) {
		return r.Renderer.RenderURL(ctx, u, r.Render)
	}, nil, delays)
	if err != nil {
		return captureResult{url: target, err: err}
	}

	format := r.Render.Format
	if format == "" {
		format = epollo.FormatPNG
	}
	path, err := r.Store.Save(target, index, data, format)
	return captureResult{url: target, path: path, err: err}
}

// domainOf extracts the host for rate limiting, falling back to the
// raw string when parsing fails.
func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
