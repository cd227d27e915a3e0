// Package slog provides logging decorators for epollo services using
// the standard library structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/epollo/epollo"
)

// Ensure LoggingFetcher implements epollo.PageFetcher.
var _ epollo.PageFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a PageFetcher with request logging.
type LoggingFetcher struct {
	next   epollo.PageFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next epollo.PageFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (page *epollo.Page, err error) {
	defer func(begin time.Time) {
		var bytes, status int
		if page != nil {
			bytes = len(page.HTML)
			status = page.StatusCode
		}
		f.logger.Info("fetch",
			"url", url,
			"status", status,
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
