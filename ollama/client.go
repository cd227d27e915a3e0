// Package ollama implements the LLM-backed services (generation, topic
// filtering, summarization, and vision queries) against a local Ollama
// HTTP API.
package ollama

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/epollo/epollo"
)

// DefaultBaseURL is the standard local Ollama endpoint.
const DefaultBaseURL = "http://localhost:11434"

// DefaultTimeout bounds a single generation call. Local models can be
// slow on long prompts.
const DefaultTimeout = 120 * time.Second

// Ensure Client implements epollo.Generator at compile time.
var _ epollo.Generator = (*Client)(nil)

// Client talks to a local Ollama server for one configured model.
// Client is safe for concurrent use.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL sets the Ollama API base URL.
// Defaults to DefaultBaseURL.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithTimeout sets the HTTP timeout for generation calls.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a Client for the given model name.
func NewClient(model string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		model:      model,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Images  []string       `json:"images,omitempty"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Generate returns the model's completion for the prompt.
func (c *Client) Generate(ctx context.Context, prompt string, opts *epollo.GenerateOptions) (string, error) {
	if prompt == "" {
		return "", epollo.Errorf(epollo.EINVALID, "prompt required")
	}

	reqBody := generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	}
	if opts != nil {
		options := make(map[string]any)
		if opts.Temperature != 0 {
			options["temperature"] = opts.Temperature
		}
		if opts.TopP != 0 {
			options["top_p"] = opts.TopP
		}
		if opts.MaxTokens != 0 {
			options["num_predict"] = opts.MaxTokens
		}
		if len(options) > 0 {
			reqBody.Options = options
		}
		for _, img := range opts.Images {
			reqBody.Images = append(reqBody.Images, base64.StdEncoding.EncodeToString(img))
		}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", epollo.Errorf(epollo.EINTERNAL, "encoding request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", epollo.Errorf(epollo.EINTERNAL, "building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", epollo.Errorf(epollo.EUNAVAILABLE, "could not reach Ollama at %s: %v", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", epollo.Errorf(epollo.EUNAVAILABLE, "Ollama returned HTTP %d", resp.StatusCode)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", epollo.Errorf(epollo.EINTERNAL, "decoding response: %v", err)
	}

	return result.Response, nil
}

// Ping verifies the server is reachable and the configured model is
// pulled. Returns EUNAVAILABLE otherwise.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return epollo.Errorf(epollo.EINTERNAL, "building request: %v", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return epollo.Errorf(epollo.EUNAVAILABLE, "could not reach Ollama at %s", c.baseURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return epollo.Errorf(epollo.EUNAVAILABLE, "Ollama returned HTTP %d", resp.StatusCode)
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return epollo.Errorf(epollo.EINTERNAL, "decoding response: %v", err)
	}

	for _, m := range tags.Models {
		if strings.Contains(strings.ToLower(m.Name), strings.ToLower(c.model)) {
			return nil
		}
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return epollo.Errorf(epollo.EUNAVAILABLE,
		"model %q not found, available models: %s", c.model, fmt.Sprintf("%v", names))
}
