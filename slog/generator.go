package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/epollo/epollo"
)

// Ensure LoggingGenerator implements epollo.Generator.
var _ epollo.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with call logging. Prompts and
// completions are logged by size only, never by content.
type LoggingGenerator struct {
	next   epollo.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next epollo.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate logs the call and delegates to the wrapped generator.
func (g *LoggingGenerator) Generate(ctx context.Context, prompt string, opts *epollo.GenerateOptions) (out string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"prompt_len", len(prompt),
			"response_len", len(out),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, prompt, opts)
}

// Ping delegates to the wrapped generator.
func (g *LoggingGenerator) Ping(ctx context.Context) error {
	return g.next.Ping(ctx)
}
