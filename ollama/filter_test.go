package ollama_test

import (
	"context"
	"strings"
	"testing"

	"github.com/epollo/epollo"
	"github.com/epollo/epollo/mock"
	"github.com/epollo/epollo/ollama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	t.Run("returns filtered HTML from the model", func(t *testing.T) {
		t.Parallel()

		filtered := "<html><body><p>" + strings.Repeat("clean content ", 10) + "</p></body></html>"
		gen := &mock.Generator{
			GenerateFn: func(ctx context.Context, prompt string, opts *epollo.GenerateOptions) (string, error) {
				assert.Contains(t, prompt, `"advertising"`)
				assert.Contains(t, prompt, "<p>dirty</p>")
				return filtered, nil
			},
		}

		out, err := ollama.NewFilter(gen).Filter(context.Background(), "<p>dirty</p>", []string{"advertising"})
		require.NoError(t, err)
		assert.Equal(t, filtered, out)
	})

	t.Run("passes input through when no topics are set", func(t *testing.T) {
		t.Parallel()

		gen := &mock.Generator{
			GenerateFn: func(ctx context.Context, prompt string, opts *epollo.GenerateOptions) (string, error) {
				t.Fatal("generator should not be called")
				return "", nil
			},
		}

		out, err := ollama.NewFilter(gen).Filter(context.Background(), "<p>hi</p>", nil)
		require.NoError(t, err)
		assert.Equal(t, "<p>hi</p>", out)
	})

	t.Run("strips markdown code fences", func(t *testing.T) {
		t.Parallel()

		body := "<html><body>" + strings.Repeat("<p>keep</p>", 10) + "</body></html>"
		gen := &mock.Generator{
			GenerateFn: func(ctx context.Context, prompt string, opts *epollo.GenerateOptions) (string, error) {
				return "```html\n" + body + "\n```", nil
			},
		}

		out, err := ollama.NewFilter(gen).Filter(context.Background(), "<p>in</p>", []string{"ads"})
		require.NoError(t, err)
		assert.Equal(t, body, out)
	})

	t.Run("keeps original when the model response is too short", func(t *testing.T) {
		t.Parallel()

		gen := &mock.Generator{
			GenerateFn: func(ctx context.Context, prompt string, opts *epollo.GenerateOptions) (string, error) {
				return "I cannot do that.", nil
			},
		}

		out, err := ollama.NewFilter(gen).Filter(context.Background(), "<p>original</p>", []string{"ads"})
		require.NoError(t, err)
		assert.Equal(t, "<p>original</p>", out)
	})

	t.Run("propagates generator errors", func(t *testing.T) {
		t.Parallel()

		gen := &mock.Generator{
			GenerateFn: func(ctx context.Context, prompt string, opts *epollo.GenerateOptions) (string, error) {
				return "", epollo.Errorf(epollo.EUNAVAILABLE, "model is down")
			},
		}

		_, err := ollama.NewFilter(gen).Filter(context.Background(), "<p>x</p>", []string{"ads"})
		require.Error(t, err)
		assert.Equal(t, epollo.EUNAVAILABLE, epollo.ErrorCode(err))
	})
}
