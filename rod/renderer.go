// Package rod implements page rendering and screenshot capture using
// headless Chrome via the go-rod browser automation library.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/epollo/epollo"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Default viewport used when RenderOptions leaves Width or Height zero.
const (
	DefaultWidth  = 1200
	DefaultHeight = 800
)

// DefaultSettleDelay is how long a loaded page is given to finish
// painting late content before capture.
const DefaultSettleDelay = time.Second

// hideOverlaysJS hides fixed and sticky elements with a high stacking
// order: cookie banners, paywall prompts, floating video players. Run
// after load, before capture.
const hideOverlaysJS = `() => {
	document.querySelectorAll('*').forEach(el => {
		const style = window.getComputedStyle(el);
		if ((style.position === 'fixed' || style.position === 'sticky') &&
			parseInt(style.zIndex, 10) >= 100) {
			el.style.setProperty('display', 'none', 'important');
		}
	});
	document.documentElement.style.overflow = 'auto';
	document.body.style.overflow = 'auto';
}`

// Ensure Renderer implements epollo.Renderer at compile time.
var _ epollo.Renderer = (*Renderer)(nil)

// Renderer captures screenshots of web pages using a managed headless
// Chrome browser. Renderer is safe for concurrent use by multiple
// goroutines.
type Renderer struct {
	manager *Manager
	closed  atomic.Bool
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer) error

// WithManagerOptions forwards options to the underlying Manager.
func WithManagerOptions(opts ...ManagerOption) RendererOption {
	return func(r *Renderer) error {
		manager, err := NewManager(opts...)
		if err != nil {
			return err
		}
		_ = r.manager.Close()
		r.manager = manager
		return nil
	}
}

// NewRenderer creates a new Renderer backed by a headless Chrome
// browser. Close must be called when the Renderer is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	manager, err := NewManager()
	if err != nil {
		return nil, err
	}

	r := &Renderer{manager: manager}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			_ = r.manager.Close()
			return nil, err
		}
	}
	return r, nil
}

// RenderHTML loads the given HTML into a fresh page and captures it.
func (r *Renderer) RenderHTML(ctx context.Context, html string, opts epollo.RenderOptions) ([]byte, error) {
	page, err := r.newPage(ctx, opts)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if err := page.SetDocumentContent(html); err != nil {
		return nil, err
	}

	return r.capture(ctx, page, opts)
}

// RenderURL navigates to the URL, waits for the page to become ready,
// and captures it.
func (r *Renderer) RenderURL(ctx context.Context, url string, opts epollo.RenderOptions) ([]byte, error) {
	page, err := r.newPage(ctx, opts)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if err := page.Navigate(url); err != nil {
		return nil, epollo.Errorf(epollo.EUNAVAILABLE, "navigating to %s: %v", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	return r.capture(ctx, page, opts)
}

// Close releases browser resources. Close is safe to call multiple times.
func (r *Renderer) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	return r.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (r *Renderer) LauncherPID() int {
	return r.manager.LauncherPID()
}

// newPage opens a page with the viewport from opts applied.
func (r *Renderer) newPage(ctx context.Context, opts epollo.RenderOptions) (*rod.Page, error) {
	if r.closed.Load() {
		return nil, epollo.Errorf(epollo.EINVALID, "renderer is closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := r.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	page = page.Context(ctx)

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
	}); err != nil {
		page.Close()
		return nil, err
	}

	return page, nil
}

// capture waits for the page to settle, optionally hides overlays, and
// takes the screenshot.
func (r *Renderer) capture(ctx context.Context, page *rod.Page, opts epollo.RenderOptions) ([]byte, error) {
	delay := opts.SettleDelay
	if delay == 0 {
		delay = DefaultSettleDelay
	}
	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if opts.HideOverlays {
		if _, err := page.Eval(hideOverlaysJS); err != nil {
			return nil, err
		}
	}

	req := &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	}
	if opts.Format == epollo.FormatJPEG {
		req.Format = proto.PageCaptureScreenshotFormatJpeg
		if opts.Quality > 0 {
			quality := opts.Quality
			req.Quality = &quality
		}
	}

	data, err := page.Screenshot(opts.FullPage, req)
	if err != nil {
		return nil, err
	}

	r.manager.PageDone()
	return data, nil
}
