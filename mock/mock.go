// Package mock provides hand-written mocks of the epollo service
// interfaces for testing.
package mock

import (
	"context"

	"github.com/epollo/epollo"
)

var _ epollo.PageFetcher = (*PageFetcher)(nil)

// PageFetcher is a mock implementation of epollo.PageFetcher.
type PageFetcher struct {
	FetchFn func(ctx context.Context, url string) (*epollo.Page, error)
	CloseFn func() error
}

func (f *PageFetcher) Fetch(ctx context.Context, url string) (*epollo.Page, error) {
	return f.FetchFn(ctx, url)
}

func (f *PageFetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ epollo.Generator = (*Generator)(nil)

// Generator is a mock implementation of epollo.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, prompt string, opts *epollo.GenerateOptions) (string, error)
	PingFn     func(ctx context.Context) error
}

func (g *Generator) Generate(ctx context.Context, prompt string, opts *epollo.GenerateOptions) (string, error) {
	return g.GenerateFn(ctx, prompt, opts)
}

func (g *Generator) Ping(ctx context.Context) error {
	if g.PingFn == nil {
		return nil
	}
	return g.PingFn(ctx)
}

var _ epollo.ContentFilter = (*ContentFilter)(nil)

// ContentFilter is a mock implementation of epollo.ContentFilter.
type ContentFilter struct {
	FilterFn func(ctx context.Context, html string, topics []string) (string, error)
}

func (f *ContentFilter) Filter(ctx context.Context, html string, topics []string) (string, error) {
	return f.FilterFn(ctx, html, topics)
}

var _ epollo.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of epollo.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, title, content string) (string, error)
}

func (s *Summarizer) Summarize(ctx context.Context, title, content string) (string, error) {
	return s.SummarizeFn(ctx, title, content)
}

var _ epollo.Digester = (*Digester)(nil)

// Digester is a mock implementation of epollo.Digester.
type Digester struct {
	DigestFn func(ctx context.Context, markdown string) (string, error)
}

func (d *Digester) Digest(ctx context.Context, markdown string) (string, error) {
	return d.DigestFn(ctx, markdown)
}

var _ epollo.MediaStripper = (*MediaStripper)(nil)

// MediaStripper is a mock implementation of epollo.MediaStripper.
type MediaStripper struct {
	StripFn func(html string) (string, error)
}

func (m *MediaStripper) Strip(html string) (string, error) {
	return m.StripFn(html)
}

var _ epollo.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of epollo.Renderer.
type Renderer struct {
	RenderHTMLFn func(ctx context.Context, html string, opts epollo.RenderOptions) ([]byte, error)
	RenderURLFn  func(ctx context.Context, url string, opts epollo.RenderOptions) ([]byte, error)
	CloseFn      func() error
}

func (r *Renderer) RenderHTML(ctx context.Context, html string, opts epollo.RenderOptions) ([]byte, error) {
	return r.RenderHTMLFn(ctx, html, opts)
}

func (r *Renderer) RenderURL(ctx context.Context, url string, opts epollo.RenderOptions) ([]byte, error) {
	return r.RenderURLFn(ctx, url, opts)
}

func (r *Renderer) Close() error {
	if r.CloseFn == nil {
		return nil
	}
	return r.CloseFn()
}

var _ epollo.Vision = (*Vision)(nil)

// Vision is a mock implementation of epollo.Vision.
type Vision struct {
	QueryFn func(ctx context.Context, image []byte, prompt string) (string, error)
	PingFn  func(ctx context.Context) error
}

func (v *Vision) Query(ctx context.Context, image []byte, prompt string) (string, error) {
	return v.QueryFn(ctx, image, prompt)
}

func (v *Vision) Ping(ctx context.Context) error {
	if v.PingFn == nil {
		return nil
	}
	return v.PingFn(ctx)
}

var _ epollo.VisitService = (*VisitService)(nil)

// VisitService is a mock implementation of epollo.VisitService.
type VisitService struct {
	CreateVisitFn   func(ctx context.Context, visit *epollo.Visit) error
	FindVisitByIDFn func(ctx context.Context, id string) (*epollo.Visit, error)
	FindVisitsFn    func(ctx context.Context, filter epollo.VisitFilter) ([]*epollo.Visit, error)
	DeleteVisitsFn  func(ctx context.Context) (int, error)
}

func (s *VisitService) CreateVisit(ctx context.Context, visit *epollo.Visit) error {
	return s.CreateVisitFn(ctx, visit)
}

func (s *VisitService) FindVisitByID(ctx context.Context, id string) (*epollo.Visit, error) {
	return s.FindVisitByIDFn(ctx, id)
}

func (s *VisitService) FindVisits(ctx context.Context, filter epollo.VisitFilter) ([]*epollo.Visit, error) {
	return s.FindVisitsFn(ctx, filter)
}

func (s *VisitService) DeleteVisits(ctx context.Context) (int, error) {
	return s.DeleteVisitsFn(ctx)
}

var _ epollo.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of epollo.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*epollo.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*epollo.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ epollo.Converter = (*Converter)(nil)

// Converter is a mock implementation of epollo.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ epollo.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of epollo.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *epollo.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *epollo.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

var _ epollo.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of epollo.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}
