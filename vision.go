package epollo

import "context"

// Vision answers prompts about images using a local vision model.
type Vision interface {
	// Query sends the image and prompt to the model and returns its
	// text response.
	Query(ctx context.Context, image []byte, prompt string) (string, error)

	// Ping verifies the vision model is available.
	Ping(ctx context.Context) error
}
