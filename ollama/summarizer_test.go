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

func TestSummarizer(t *testing.T) {
	t.Parallel()

	t.Run("includes title and content in the prompt", func(t *testing.T) {
		t.Parallel()

		gen := &mock.Generator{
			GenerateFn: func(ctx context.Context, prompt string, opts *epollo.GenerateOptions) (string, error) {
				assert.Contains(t, prompt, "Title: Release Notes")
				assert.Contains(t, prompt, "Version 2 is out.")
				return "- Version 2 released", nil
			},
		}

		out, err := ollama.NewSummarizer(gen).Summarize(context.Background(), "Release Notes", "Version 2 is out.")
		require.NoError(t, err)
		assert.Equal(t, "- Version 2 released", out)
	})

	t.Run("truncates long content before prompting", func(t *testing.T) {
		t.Parallel()

		var gotPrompt string
		gen := &mock.Generator{
			GenerateFn: func(ctx context.Context, prompt string, opts *epollo.GenerateOptions) (string, error) {
				gotPrompt = prompt
				return "- ok", nil
			},
		}

		long := strings.Repeat("a", 5000)
		_, err := ollama.NewSummarizer(gen).Summarize(context.Background(), "t", long)
		require.NoError(t, err)
		assert.NotContains(t, gotPrompt, strings.Repeat("a", 2001))
	})

	t.Run("normalizes unprefixed lines into bullets", func(t *testing.T) {
		t.Parallel()

		gen := &mock.Generator{
			GenerateFn: func(ctx context.Context, prompt string, opts *epollo.GenerateOptions) (string, error) {
				return "First point\n- Second point\n• Third point\n\n", nil
			},
		}

		out, err := ollama.NewSummarizer(gen).Summarize(context.Background(), "t", "c")
		require.NoError(t, err)
		assert.Equal(t, "- First point\n- Second point\n• Third point", out)
	})

	t.Run("keeps at most five bullets", func(t *testing.T) {
		t.Parallel()

		gen := &mock.Generator{
			GenerateFn: func(ctx context.Context, prompt string, opts *epollo.GenerateOptions) (string, error) {
				return "- a\n- b\n- c\n- d\n- e\n- f\n- g", nil
			},
		}

		out, err := ollama.NewSummarizer(gen).Summarize(context.Background(), "t", "c")
		require.NoError(t, err)
		assert.Len(t, strings.Split(out, "\n"), 5)
	})

	t.Run("propagates generator errors", func(t *testing.T) {
		t.Parallel()

		gen := &mock.Generator{
			GenerateFn: func(ctx context.Context, prompt string, opts *epollo.GenerateOptions) (string, error) {
				return "", epollo.Errorf(epollo.ETIMEOUT, "model timed out")
			},
		}

		_, err := ollama.NewSummarizer(gen).Summarize(context.Background(), "t", "c")
		require.Error(t, err)
		assert.Equal(t, epollo.ETIMEOUT, epollo.ErrorCode(err))
	})
}
