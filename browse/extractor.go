package browse

import "github.com/epollo/epollo"

// Ensure FallbackExtractor implements epollo.Extractor at compile time.
var _ epollo.Extractor = (*FallbackExtractor)(nil)

// FallbackExtractor tries Primary first and falls back to Fallback when
// the primary fails or extracts nothing. Trafilatura backed by
// readability covers news sites where either alone trims too much.
type FallbackExtractor struct {
	Primary  epollo.Extractor
	Fallback epollo.Extractor
}

// Extract processes raw HTML and returns the main content.
func (e *FallbackExtractor) Extract(rawHTML string) (*epollo.ExtractResult, error) {
	result, err := e.Primary.Extract(rawHTML)
	if err == nil && result.ContentHTML != "" {
		return result, nil
	}
	if e.Fallback == nil {
		return result, err
	}
	return e.Fallback.Extract(rawHTML)
}
