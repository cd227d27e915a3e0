package browse_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/epollo/epollo"
	"github.com/epollo/epollo/browse"
	"github.com/epollo/epollo/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestSummaryPipeline_Summarize(t *testing.T) {
	t.Parallel()

	t.Run("preserves section order under concurrency", func(t *testing.T) {
		t.Parallel()

		var sections []epollo.Section
		for i := 0; i < 10; i++ {
			sections = append(sections, epollo.Section{
				Title:   fmt.Sprintf("Section %d", i),
				Content: fmt.Sprintf("Content %d", i),
			})
		}

		pipeline := &browse.SummaryPipeline{
			Summarizer: &mock.Summarizer{
				SummarizeFn: func(ctx context.Context, title, content string) (string, error) {
					return "- summary of " + title, nil
				},
			},
			Concurrency: 4,
		}

		out := pipeline.Summarize(context.Background(), sections)
		require.Len(t, out, 10)
		for i, section := range out {
			assert.Equal(t, fmt.Sprintf("Section %d", i), section.Title)
			assert.Equal(t, fmt.Sprintf("- summary of Section %d", i), section.Summary)
		}
	})

	t.Run("failed sections keep an empty summary", func(t *testing.T) {
		t.Parallel()

		sections := []epollo.Section{
			{Title: "Good", Content: "a"},
			{Title: "Bad", Content: "b"},
		}

		pipeline := &browse.SummaryPipeline{
			Summarizer: &mock.Summarizer{
				SummarizeFn: func(ctx context.Context, title, content string) (string, error) {
					if title == "Bad" {
						return "", epollo.Errorf(epollo.ETIMEOUT, "model timed out")
					}
					return "- ok", nil
				},
			},
		}

		out := pipeline.Summarize(context.Background(), sections)
		require.Len(t, out, 2)
		assert.Equal(t, "- ok", out[0].Summary)
		assert.Empty(t, out[1].Summary)
	})

	t.Run("does not mutate the input slice", func(t *testing.T) {
		t.Parallel()

		sections := []epollo.Section{{Title: "T", Content: "c"}}

		pipeline := &browse.SummaryPipeline{
			Summarizer: &mock.Summarizer{
				SummarizeFn: func(ctx context.Context, title, content string) (string, error) {
					return "- s", nil
				},
			},
		}

		_ = pipeline.Summarize(context.Background(), sections)
		assert.Empty(t, sections[0].Summary)
	})

	t.Run("honors the rate limiter", func(t *testing.T) {
		t.Parallel()

		pipeline := &browse.SummaryPipeline{
			Summarizer: &mock.Summarizer{
				SummarizeFn: func(ctx context.Context, title, content string) (string, error) {
					return "- s", nil
				},
			},
			Limiter: rate.NewLimiter(rate.Inf, 1),
		}

		out := pipeline.Summarize(context.Background(), []epollo.Section{{Title: "T", Content: "c"}})
		require.Len(t, out, 1)
		assert.Equal(t, "- s", out[0].Summary)
	})
}
