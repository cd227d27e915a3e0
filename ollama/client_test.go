package ollama_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/epollo/epollo"
	"github.com/epollo/epollo/ollama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Generate(t *testing.T) {
	t.Parallel()

	t.Run("sends prompt and returns response", func(t *testing.T) {
		t.Parallel()

		var got map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/generate", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"response": "generated text"}`))
		}))
		defer server.Close()

		client := ollama.NewClient("test-model", ollama.WithBaseURL(server.URL))

		out, err := client.Generate(context.Background(), "hello", nil)
		require.NoError(t, err)
		assert.Equal(t, "generated text", out)
		assert.Equal(t, "test-model", got["model"])
		assert.Equal(t, "hello", got["prompt"])
		assert.Equal(t, false, got["stream"])
	})

	t.Run("maps generation options", func(t *testing.T) {
		t.Parallel()

		var got map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"response": "ok"}`))
		}))
		defer server.Close()

		client := ollama.NewClient("m", ollama.WithBaseURL(server.URL))

		opts := &epollo.GenerateOptions{Temperature: 0.3, TopP: 0.9, MaxTokens: 64}
		_, err := client.Generate(context.Background(), "p", opts)
		require.NoError(t, err)

		options, ok := got["options"].(map[string]any)
		require.True(t, ok)
		assert.InDelta(t, 0.3, options["temperature"], 0.001)
		assert.InDelta(t, 0.9, options["top_p"], 0.001)
		assert.EqualValues(t, 64, options["num_predict"])
	})

	t.Run("encodes image attachments as base64", func(t *testing.T) {
		t.Parallel()

		var got map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"response": "ok"}`))
		}))
		defer server.Close()

		client := ollama.NewClient("m", ollama.WithBaseURL(server.URL))

		opts := &epollo.GenerateOptions{Images: [][]byte{[]byte("img")}}
		_, err := client.Generate(context.Background(), "p", opts)
		require.NoError(t, err)

		images, ok := got["images"].([]any)
		require.True(t, ok)
		require.Len(t, images, 1)
		assert.Equal(t, "aW1n", images[0]) // "img" in base64
	})

	t.Run("rejects empty prompts", func(t *testing.T) {
		t.Parallel()

		client := ollama.NewClient("m")

		_, err := client.Generate(context.Background(), "", nil)
		require.Error(t, err)
		assert.Equal(t, epollo.EINVALID, epollo.ErrorCode(err))
	})

	t.Run("returns EUNAVAILABLE when server is down", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()

		client := ollama.NewClient("m", ollama.WithBaseURL(server.URL))

		_, err := client.Generate(context.Background(), "p", nil)
		require.Error(t, err)
		assert.Equal(t, epollo.EUNAVAILABLE, epollo.ErrorCode(err))
	})

	t.Run("returns EUNAVAILABLE on server errors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := ollama.NewClient("m", ollama.WithBaseURL(server.URL))

		_, err := client.Generate(context.Background(), "p", nil)
		require.Error(t, err)
		assert.Equal(t, epollo.EUNAVAILABLE, epollo.ErrorCode(err))
	})
}

func TestClient_Ping(t *testing.T) {
	t.Parallel()

	t.Run("succeeds when model is listed", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/tags", r.URL.Path)
			_, _ = w.Write([]byte(`{"models": [{"name": "qwen2.5:1.5b"}, {"name": "other"}]}`))
		}))
		defer server.Close()

		client := ollama.NewClient("qwen2.5:1.5b", ollama.WithBaseURL(server.URL))

		assert.NoError(t, client.Ping(context.Background()))
	})

	t.Run("returns EUNAVAILABLE when model is missing", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"models": [{"name": "other"}]}`))
		}))
		defer server.Close()

		client := ollama.NewClient("qwen2.5:1.5b", ollama.WithBaseURL(server.URL))

		err := client.Ping(context.Background())
		require.Error(t, err)
		assert.Equal(t, epollo.EUNAVAILABLE, epollo.ErrorCode(err))
		assert.Contains(t, epollo.ErrorMessage(err), "qwen2.5:1.5b")
	})

	t.Run("returns EUNAVAILABLE when server is unreachable", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()

		client := ollama.NewClient("m", ollama.WithBaseURL(server.URL))

		err := client.Ping(context.Background())
		require.Error(t, err)
		assert.Equal(t, epollo.EUNAVAILABLE, epollo.ErrorCode(err))
	})
}
