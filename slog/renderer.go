package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/epollo/epollo"
)

// Ensure LoggingRenderer implements epollo.Renderer.
var _ epollo.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with capture logging.
type LoggingRenderer struct {
	next   epollo.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next epollo.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// RenderHTML logs the capture and delegates to the wrapped renderer.
func (r *LoggingRenderer) RenderHTML(ctx context.Context, html string, opts epollo.RenderOptions) (data []byte, err error) {
	defer func(begin time.Time) {
		r.logger.Info("render html",
			"input_bytes", len(html),
			"output_bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.RenderHTML(ctx, html, opts)
}

// RenderURL logs the capture and delegates to the wrapped renderer.
func (r *LoggingRenderer) RenderURL(ctx context.Context, url string, opts epollo.RenderOptions) (data []byte, err error) {
	defer func(begin time.Time) {
		r.logger.Info("render url",
			"url", url,
			"output_bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.RenderURL(ctx, url, opts)
}

// Close delegates to the wrapped renderer.
func (r *LoggingRenderer) Close() error {
	return r.next.Close()
}
