package browse

import (
	"context"

	"github.com/epollo/epollo"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultSummaryConcurrency bounds concurrent LLM calls. Local models
// serialize poorly beyond a couple of in-flight requests.
const DefaultSummaryConcurrency = 2

// SummaryPipeline summarizes sections concurrently while preserving
// their order.
type SummaryPipeline struct {
	Summarizer  epollo.Summarizer
	Concurrency int

	// Limiter throttles calls to the model when set.
	Limiter *rate.Limiter
}

// Summarize fills in Summary for each section. A section whose
// summarization fails keeps an empty summary; one bad section never
// fails the whole page.
func (p *SummaryPipeline) Summarize(ctx context.Context, sections []epollo.Section) []epollo.Section {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultSummaryConcurrency
	}

	out := make([]epollo.Section, len(sections))
	copy(out, sections)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range out {
		g.Go(func() error {
			if p.Limiter != nil {
				if err := p.Limiter.Wait(gctx); err != nil {
					return nil
				}
			}

			summary, err := p.Summarizer.Summarize(gctx, out[i].Title, out[i].Content)
			if err != nil {
				return nil
			}
			out[i].Summary = summary
			return nil
		})
	}
	_ = g.Wait()

	return out
}
