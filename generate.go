package epollo

import "context"

// GenerateOptions controls a single text-generation call.
// Zero values leave the model's defaults in place.
type GenerateOptions struct {
	Temperature float64
	TopP        float64
	MaxTokens   int

	// Images holds raw image bytes for vision-capable models.
	Images [][]byte
}

// Generator produces text from a prompt using a local LLM.
type Generator interface {
	// Generate returns the model's completion for the prompt.
	Generate(ctx context.Context, prompt string, opts *GenerateOptions) (string, error)

	// Ping verifies that the LLM service is reachable and the
	// configured model is available. Returns EUNAVAILABLE otherwise.
	Ping(ctx context.Context) error
}

// ContentFilter rewrites HTML with content related to the given topics
// removed, keeping the remaining document structurally intact.
type ContentFilter interface {
	// Filter returns the filtered HTML. When topics is empty the input
	// is returned unchanged. Returns EUNAVAILABLE when the LLM cannot
	// be reached; callers should fall back to the unfiltered HTML.
	Filter(ctx context.Context, html string, topics []string) (string, error)
}

// Summarizer condenses a section into a short bullet-point digest.
type Summarizer interface {
	// Summarize returns bullet points, one per line, each starting
	// with "- ". An empty string means no summary could be produced.
	Summarize(ctx context.Context, title, content string) (string, error)
}

// Digester converts messy markdown into a clean numbered news list,
// discarding advertisements and promotional material.
type Digester interface {
	Digest(ctx context.Context, markdown string) (string, error)
}
