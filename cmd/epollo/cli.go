package main

import (
	"context"
	"io"
	"time"

	"github.com/epollo/epollo"
	"github.com/epollo/epollo/browse"
)

// HeadlineReader extracts news headlines from a page screenshot.
type HeadlineReader interface {
	ExtractHeadlines(ctx context.Context, image []byte) (string, error)
}

// TextRecognizer runs OCR over an image.
type TextRecognizer interface {
	ExtractText(ctx context.Context, imageData []byte, prompt string) (string, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Config epollo.Config

	Visits    epollo.VisitService
	Sitemaps  epollo.SitemapService
	Renderer  epollo.Renderer
	Digester  epollo.Digester
	Headlines HeadlineReader
	OCR       TextRecognizer
	Loader    *browse.Loader
	Reader    *browse.Reader
	Store     epollo.ScreenshotStore

	// RetryDelays overrides the batch capture backoff schedule; nil
	// keeps the default.
	RetryDelays []time.Duration
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Browse      BrowseCmd      `cmd:"" help:"Fetch and process a page"`
	Summary     SummaryCmd     `cmd:"" help:"Render a summary view of a page"`
	Digest      DigestCmd      `cmd:"" help:"List the articles on a news page"`
	Screenshot  ScreenshotCmd  `cmd:"" help:"Capture a screenshot of a page"`
	Screenshots ScreenshotsCmd `cmd:"" help:"Capture screenshots of a site via its sitemap"`
	Ocr         OcrCmd         `cmd:"" help:"Extract text from an image"`
	Headlines   HeadlinesCmd   `cmd:"" help:"Read headlines from a page screenshot"`
	History     HistoryCmd     `cmd:"" help:"Inspect or clear visit history"`
}

// BrowseCmd is the "browse" subcommand.
type BrowseCmd struct {
	URL      string `arg:"" help:"Page URL"`
	Output   string `short:"o" help:"Write HTML to file instead of stdout"`
	NoFilter bool   `help:"Skip topic filtering"`
	NoMedia  bool   `help:"Strip media elements"`
}

// SummaryCmd is the "summary" subcommand.
type SummaryCmd struct {
	URL    string `arg:"" help:"Page URL"`
	Output string `short:"o" help:"Write HTML to file instead of stdout"`
}

// DigestCmd is the "digest" subcommand. Pass "-" to digest markdown
// from stdin instead of fetching a URL.
type DigestCmd struct {
	URL string `arg:"" help:"News page URL, or - for markdown on stdin"`
}

// ScreenshotCmd is the "screenshot" subcommand.
type ScreenshotCmd struct {
	URL      string `arg:"" help:"Page URL"`
	Output   string `short:"o" default:"screenshots" help:"Output directory"`
	Width    int    `help:"Viewport width (default from config)"`
	Height   int    `help:"Viewport height (default from config)"`
	FullPage bool   `negatable:"" default:"true" help:"Capture the full scroll height"`
}

// ScreenshotsCmd is the "screenshots" subcommand.
type ScreenshotsCmd struct {
	URL         string   `arg:"" help:"Site URL (sitemap is discovered automatically)"`
	Output      string   `short:"o" default:"screenshots" help:"Output directory"`
	Filter      []string `short:"F" name:"filter" help:"Include URLs matching regex (repeatable)"`
	Exclude     []string `short:"X" name:"exclude" help:"Exclude URLs matching regex (repeatable)"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent capture limit"`
	Rate        float64  `default:"1.0" help:"Requests per second per domain"`
}

// OcrCmd is the "ocr" subcommand.
type OcrCmd struct {
	Image  string `arg:"" type:"existingfile" help:"Image file"`
	Prompt string `short:"p" help:"Custom extraction prompt"`
}

// HeadlinesCmd is the "headlines" subcommand.
type HeadlinesCmd struct {
	URL string `arg:"" help:"News page URL"`
}

// HistoryCmd groups the history subcommands.
type HistoryCmd struct {
	List  HistoryListCmd  `cmd:"" default:"1" help:"List recorded visits"`
	Clear HistoryClearCmd `cmd:"" help:"Delete all recorded visits"`
}

// HistoryListCmd is the "history list" subcommand.
type HistoryListCmd struct {
	URL   string `help:"Only visits of this URL"`
	Limit int    `short:"n" default:"20" help:"Maximum number of visits"`
}

// HistoryClearCmd is the "history clear" subcommand.
type HistoryClearCmd struct {
	Force bool `help:"Confirm deletion"`
}
