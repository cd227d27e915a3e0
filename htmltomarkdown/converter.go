// Package htmltomarkdown implements HTML to Markdown conversion using
// the html-to-markdown library.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/epollo/epollo"
)

// blankRunRe matches runs of three or more newlines left behind by
// stripped page chrome.
var blankRunRe = regexp.MustCompile(`\n{3,}`)

// Ensure Converter implements epollo.Converter at compile time.
var _ epollo.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to turn extracted article HTML into
// Markdown suitable for feeding to a language model.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown. The output is
// compacted: model prompts downstream are truncated by length, so
// blank-line padding would crowd out article text.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", epollo.Errorf(epollo.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", epollo.Errorf(epollo.EINTERNAL, "markdown conversion failed: %s", err)
	}

	result = blankRunRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result), nil
}
