// Package trafilatura implements article extraction using the
// go-trafilatura content extraction library.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/epollo/epollo"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements epollo.Extractor at compile time.
var _ epollo.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to pull the main article out of a
// page. Compared to readability it keeps less boilerplate on news
// sites, at the cost of occasionally trimming too much.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*epollo.ExtractResult, error) {
	if rawHTML == "" {
		return nil, epollo.Errorf(epollo.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &epollo.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
