package ollama

import (
	"context"

	"github.com/epollo/epollo"
)

// DefaultVisionPrompt is used when the caller supplies no prompt.
const DefaultVisionPrompt = "Please read the image and extract the content"

// headlinesPrompt targets news pages specifically.
const headlinesPrompt = "Please read the image and extract news content"

// Ensure Vision implements epollo.Vision at compile time.
var _ epollo.Vision = (*Vision)(nil)

// Vision answers prompts about images using a vision-capable model.
// The wrapped client must be configured with a vision model.
type Vision struct {
	client *Client
}

// NewVision creates a Vision service on top of the given client.
func NewVision(client *Client) *Vision {
	return &Vision{client: client}
}

// Query sends the image and prompt to the model.
func (v *Vision) Query(ctx context.Context, image []byte, prompt string) (string, error) {
	if len(image) == 0 {
		return "", epollo.Errorf(epollo.EINVALID, "image required")
	}
	if prompt == "" {
		prompt = DefaultVisionPrompt
	}

	opts := &epollo.GenerateOptions{
		MaxTokens: 2048,
		Images:    [][]byte{image},
	}
	return v.client.Generate(ctx, prompt, opts)
}

// ExtractHeadlines reads news headlines from a page screenshot.
func (v *Vision) ExtractHeadlines(ctx context.Context, image []byte) (string, error) {
	return v.Query(ctx, image, headlinesPrompt)
}

// Ping verifies the vision model is available.
func (v *Vision) Ping(ctx context.Context) error {
	return v.client.Ping(ctx)
}
