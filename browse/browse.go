// Package browse provides page loading orchestration. It coordinates
// fetching, media stripping, LLM content filtering, summarization, and
// visit history into the HTML that is ultimately displayed.
package browse

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/epollo/epollo"
	"github.com/epollo/epollo/view"
)

// titleRe pulls the document title for visit history.
var titleRe = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// View is the outcome of loading a URL: HTML that can always be
// displayed, plus the error that produced it when loading failed.
type View struct {
	// HTML is the page to display. On failure it holds an error page.
	HTML string

	// FinalURL is the address after redirects, when known.
	FinalURL string

	// Err is the underlying failure, nil on success.
	Err error

	// FilterErr is set when topic filtering was requested but the
	// model call failed; HTML then holds the unfiltered page.
	FilterErr error
}

// Loader turns a URL into a displayable page. Fetcher is required; the
// remaining collaborators are consulted according to Config and may be
// nil when their feature is disabled.
type Loader struct {
	Fetcher   epollo.PageFetcher
	Media     epollo.MediaStripper
	Filter    epollo.ContentFilter
	Summaries *SummaryPipeline
	Visits    epollo.VisitService
	Config    epollo.Config
}

// Load fetches and processes the URL. Failures never propagate as bare
// errors: the returned View always carries displayable HTML, with an
// error page standing in for the content when something went wrong.
func (l *Loader) Load(ctx context.Context, url string) *View {
	page, err := l.Fetcher.Fetch(ctx, url)
	if err != nil {
		return &View{HTML: view.ErrorPage(err, url), Err: err}
	}

	html := page.HTML

	if l.Config.Display.RemoveMedia && l.Media != nil {
		if stripped, err := l.Media.Strip(html); err == nil {
			html = stripped
		}
	}

	var filterErr error
	if l.Config.Filtering.Enabled && l.Filter != nil && len(l.Config.Topics) > 0 {
		// An unreachable model falls back to the unfiltered page
		// rather than blocking browsing; the failure is reported on
		// the view so callers can tell the user filtering is off.
		filtered, err := l.Filter.Filter(ctx, html, l.Config.Topics)
		if err != nil {
			filterErr = err
		} else {
			html = filtered
		}
	}

	l.recordVisit(ctx, page, html)

	if l.Config.Display.SummaryView {
		v := l.summaryView(ctx, html, page.FinalURL)
		v.FilterErr = filterErr
		return v
	}

	return &View{HTML: html, FinalURL: page.FinalURL, FilterErr: filterErr}
}

// summaryView replaces the page with per-section summaries.
func (l *Loader) summaryView(ctx context.Context, html, url string) *View {
	sections := epollo.ExtractSections(html)
	if len(sections) == 0 {
		return &View{HTML: view.NoContentPage(url), FinalURL: url}
	}

	if l.Summaries != nil {
		sections = l.Summaries.Summarize(ctx, sections)
	}

	page, err := view.SummaryPage(sections, url)
	if err != nil {
		return &View{HTML: view.ErrorPage(err, url), FinalURL: url, Err: err}
	}
	return &View{HTML: page, FinalURL: url}
}

// recordVisit appends the page to visit history. History failures are
// deliberately swallowed: they must not interfere with browsing.
func (l *Loader) recordVisit(ctx context.Context, page *epollo.Page, html string) {
	if l.Visits == nil {
		return
	}
	_ = l.Visits.CreateVisit(ctx, &epollo.Visit{
		URL:         page.URL,
		FinalURL:    page.FinalURL,
		Title:       pageTitle(page.HTML),
		StatusCode:  page.StatusCode,
		ContentHash: hashContent(html),
	})
}

// pageTitle extracts the document title, empty when absent.
func pageTitle(html string) string {
	m := titleRe.FindStringSubmatch(html)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(epollo.ExtractText(m[1]))
}

// hashContent computes the xxHash of displayed content as a hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}
