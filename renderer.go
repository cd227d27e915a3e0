package epollo

import (
	"context"
	"time"
)

// Image formats supported by Renderer implementations.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

// RenderOptions controls a screenshot capture.
type RenderOptions struct {
	// Width and Height override the renderer's viewport when non-zero.
	Width  int
	Height int

	// FullPage captures the entire scrollable page instead of the
	// viewport.
	FullPage bool

	// Format is FormatPNG or FormatJPEG. Defaults to FormatPNG.
	Format string

	// Quality applies to JPEG output (1-100).
	Quality int

	// SettleDelay is how long to wait after load before capturing, to
	// let late-arriving content paint. Defaults to one second.
	SettleDelay time.Duration

	// HideOverlays removes fixed-position overlay elements (paywall
	// prompts, cookie banners) before capturing.
	HideOverlays bool
}

// Renderer captures screenshots of rendered pages.
type Renderer interface {
	// RenderHTML loads the given HTML into a fresh page and captures it.
	RenderHTML(ctx context.Context, html string, opts RenderOptions) ([]byte, error)

	// RenderURL navigates to the URL, waits for the page to become
	// ready, and captures it.
	RenderURL(ctx context.Context, url string, opts RenderOptions) ([]byte, error)

	// Close releases browser resources.
	Close() error
}

// ScreenshotStore persists captured screenshots.
type ScreenshotStore interface {
	// Save writes the screenshot data for the given page URL and
	// returns the path it was written to. index distinguishes
	// multiple captures of the same URL within a run.
	Save(url string, index int, data []byte, format string) (path string, err error)
}
