package browse

import (
	"context"

	"github.com/epollo/epollo"
)

// Reader turns a URL into a clean news digest: fetch, extract the main
// article, convert it to Markdown, and have the model discard ads and
// boilerplate.
type Reader struct {
	Fetcher   epollo.PageFetcher
	Extractor epollo.Extractor
	Converter epollo.Converter
	Digester  epollo.Digester
}

// Digest fetches the URL and returns a numbered list of the real
// articles it contains.
func (r *Reader) Digest(ctx context.Context, url string) (string, error) {
	page, err := r.Fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	extracted, err := r.Extractor.Extract(page.HTML)
	if err != nil {
		return "", err
	}
	if extracted.ContentHTML == "" {
		return "", epollo.Errorf(epollo.ENOTFOUND, "no article content found at %s", url)
	}

	markdown, err := r.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return "", err
	}

	return r.Digester.Digest(ctx, markdown)
}
