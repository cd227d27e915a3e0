// Package readability implements article extraction using the
// go-readability port of Mozilla's Readability.
package readability

import (
	"strings"

	"github.com/epollo/epollo"
	readability "github.com/go-shiori/go-readability"
)

// minArticleRunes is the smallest text length treated as a real
// article. Readability happily returns a cookie banner or a lone
// byline from pages it cannot parse; anything this short is reported
// as no content so a fallback extractor can take over.
const minArticleRunes = 80

// Ensure Extractor implements epollo.Extractor at compile time.
var _ epollo.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to pull the main article out of a
// page, dropping navigation, sidebars, and footers.
type Extractor struct {
	minRunes int
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithMinArticleRunes overrides the minimum text length below which an
// extraction is reported as no content.
func WithMinArticleRunes(n int) ExtractorOption {
	return func(e *Extractor) {
		e.minRunes = n
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{minRunes: minArticleRunes}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the main content. A page with
// no article, or one whose extracted text is shorter than the minimum,
// yields an empty ContentHTML rather than an error.
func (e *Extractor) Extract(rawHTML string) (*epollo.ExtractResult, error) {
	if rawHTML == "" {
		return nil, epollo.Errorf(epollo.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, epollo.Errorf(epollo.EINTERNAL, "readability extraction failed: %s", err)
	}

	result := &epollo.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: strings.TrimSpace(article.Content),
	}

	if len([]rune(strings.TrimSpace(article.TextContent))) < e.minRunes {
		result.ContentHTML = ""
	}
	return result, nil
}
