package browse_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/epollo/epollo"
	"github.com/epollo/epollo/browse"
	"github.com/epollo/epollo/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore collects saved screenshots in memory.
type memoryStore struct {
	mu    sync.Mutex
	saved map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{saved: make(map[string][]byte)}
}

func (s *memoryStore) Save(url string, index int, data []byte, format string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	path := fmt.Sprintf("%d.%s", index, format)
	s.saved[url] = data
	return path, nil
}

func (s *memoryStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

func sitemapOf(urls ...string) *mock.SitemapService {
	return &mock.SitemapService{
		DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *epollo.URLFilter) ([]string, error) {
			return urls, nil
		},
	}
}

func okRenderer() *mock.Renderer {
	return &mock.Renderer{
		RenderURLFn: func(ctx context.Context, url string, opts epollo.RenderOptions) ([]byte, error) {
			return []byte("image:" + url), nil
		},
	}
}

func TestBatchRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("captures every discovered URL", func(t *testing.T) {
		t.Parallel()

		store := newMemoryStore()
		runner := &browse.BatchRunner{
			Sitemaps:    sitemapOf("https://example.com/a", "https://example.com/b", "https://example.com/c"),
			Renderer:    okRenderer(),
			Store:       store,
			RetryDelays: zeroDelays,
		}

		result, err := runner.Run(context.Background(), "https://example.com", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, result.Saved)
		assert.Zero(t, result.Failed)
		assert.Equal(t, 3, store.count())
	})

	t.Run("skips duplicate URLs", func(t *testing.T) {
		t.Parallel()

		store := newMemoryStore()
		runner := &browse.BatchRunner{
			Sitemaps:    sitemapOf("https://example.com/a", "https://example.com/a", "https://example.com/b"),
			Renderer:    okRenderer(),
			Store:       store,
			RetryDelays: zeroDelays,
		}

		result, err := runner.Run(context.Background(), "https://example.com", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Saved)
		assert.Equal(t, 1, result.Skipped)
	})

	t.Run("counts failed captures without aborting the run", func(t *testing.T) {
		t.Parallel()

		store := newMemoryStore()
		runner := &browse.BatchRunner{
			Sitemaps: sitemapOf("https://example.com/good", "https://example.com/bad"),
			Renderer: &mock.Renderer{
				RenderURLFn: func(ctx context.Context, url string, opts epollo.RenderOptions) ([]byte, error) {
					if url == "https://example.com/bad" {
						return nil, epollo.Errorf(epollo.EUNAVAILABLE, "navigation failed")
					}
					return []byte("image"), nil
				},
			},
			Store:       store,
			RetryDelays: zeroDelays,
		}

		result, err := runner.Run(context.Background(), "https://example.com", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("retries transient capture failures", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		attempts := 0
		store := newMemoryStore()
		runner := &browse.BatchRunner{
			Sitemaps: sitemapOf("https://example.com/flaky"),
			Renderer: &mock.Renderer{
				RenderURLFn: func(ctx context.Context, url string, opts epollo.RenderOptions) ([]byte, error) {
					mu.Lock()
					defer mu.Unlock()
					attempts++
					if attempts == 1 {
						return nil, epollo.Errorf(epollo.EUNAVAILABLE, "hiccup")
					}
					return []byte("image"), nil
				},
			},
			Store:       store,
			RetryDelays: zeroDelays,
		}

		result, err := runner.Run(context.Background(), "https://example.com", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 2, attempts)
	})

	t.Run("reports progress events", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var events []browse.ProgressType
		runner := &browse.BatchRunner{
			Sitemaps:    sitemapOf("https://example.com/a", "https://example.com/b"),
			Renderer:    okRenderer(),
			Store:       newMemoryStore(),
			RetryDelays: zeroDelays,
		}

		_, err := runner.Run(context.Background(), "https://example.com", nil, func(event browse.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, event.Type)
		})
		require.NoError(t, err)

		require.Len(t, events, 4, "started, two completions, finished")
		assert.Equal(t, browse.ProgressStarted, events[0])
		assert.Equal(t, browse.ProgressFinished, events[len(events)-1])
	})

	t.Run("waits on the domain limiter", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var domains []string
		runner := &browse.BatchRunner{
			Sitemaps: sitemapOf("https://a.example.com/x", "https://b.example.com/y"),
			Renderer: okRenderer(),
			Store:    newMemoryStore(),
			RateLimiter: &mock.DomainLimiter{
				WaitFn: func(ctx context.Context, domain string) error {
					mu.Lock()
					defer mu.Unlock()
					domains = append(domains, domain)
					return nil
				},
			},
			RetryDelays: zeroDelays,
		}

		_, err := runner.Run(context.Background(), "https://example.com", nil, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a.example.com", "b.example.com"}, domains)
	})

	t.Run("propagates sitemap discovery errors", func(t *testing.T) {
		t.Parallel()

		runner := &browse.BatchRunner{
			Sitemaps: &mock.SitemapService{
				DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *epollo.URLFilter) ([]string, error) {
					return nil, epollo.Errorf(epollo.EUNAVAILABLE, "robots.txt unreachable")
				},
			},
			Renderer: okRenderer(),
			Store:    newMemoryStore(),
		}

		_, err := runner.Run(context.Background(), "https://example.com", nil, nil)
		require.Error(t, err)
		assert.Equal(t, epollo.EUNAVAILABLE, epollo.ErrorCode(err))
	})

	t.Run("handles an empty sitemap", func(t *testing.T) {
		t.Parallel()

		runner := &browse.BatchRunner{
			Sitemaps:    sitemapOf(),
			Renderer:    okRenderer(),
			Store:       newMemoryStore(),
			RetryDelays: []time.Duration{},
		}

		result, err := runner.Run(context.Background(), "https://example.com", nil, nil)
		require.NoError(t, err)
		assert.Zero(t, result.Saved)
	})
}

func TestReader_Digest(t *testing.T) {
	t.Parallel()

	t.Run("runs the full pipeline", func(t *testing.T) {
		t.Parallel()

		reader := &browse.Reader{
			Fetcher: okFetcher("<html><body><article><p>News body</p></article></body></html>"),
			Extractor: &mock.Extractor{
				ExtractFn: func(html string) (*epollo.ExtractResult, error) {
					return &epollo.ExtractResult{Title: "News", ContentHTML: "<p>News body</p>"}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(html string) (string, error) {
					assert.Equal(t, "<p>News body</p>", html)
					return "News body", nil
				},
			},
			Digester: &mock.Digester{
				DigestFn: func(ctx context.Context, markdown string) (string, error) {
					assert.Equal(t, "News body", markdown)
					return "1. Title: News", nil
				},
			},
		}

		out, err := reader.Digest(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, "1. Title: News", out)
	})

	t.Run("reports when extraction finds nothing", func(t *testing.T) {
		t.Parallel()

		reader := &browse.Reader{
			Fetcher: okFetcher("<html></html>"),
			Extractor: &mock.Extractor{
				ExtractFn: func(html string) (*epollo.ExtractResult, error) {
					return &epollo.ExtractResult{}, nil
				},
			},
		}

		_, err := reader.Digest(context.Background(), "https://example.com")
		require.Error(t, err)
		assert.Equal(t, epollo.ENOTFOUND, epollo.ErrorCode(err))
	})

	t.Run("propagates fetch errors", func(t *testing.T) {
		t.Parallel()

		reader := &browse.Reader{
			Fetcher: &mock.PageFetcher{
				FetchFn: func(ctx context.Context, url string) (*epollo.Page, error) {
					return nil, epollo.Errorf(epollo.ETIMEOUT, "timed out")
				},
			},
		}

		_, err := reader.Digest(context.Background(), "https://example.com")
		require.Error(t, err)
		assert.Equal(t, epollo.ETIMEOUT, epollo.ErrorCode(err))
	})
}
