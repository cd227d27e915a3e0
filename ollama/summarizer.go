package ollama

import (
	"context"
	"fmt"
	"strings"

	"github.com/epollo/epollo"
)

// maxSummaryInput truncates section content sent to the model.
const maxSummaryInput = 2000

// maxBullets caps the bullet points kept per summary.
const maxBullets = 5

// Ensure Summarizer implements epollo.Summarizer at compile time.
var _ epollo.Summarizer = (*Summarizer)(nil)

// Summarizer condenses a section into bullet points using a local LLM.
type Summarizer struct {
	gen epollo.Generator
}

// NewSummarizer creates a new Summarizer backed by the given generator.
func NewSummarizer(gen epollo.Generator) *Summarizer {
	return &Summarizer{gen: gen}
}

// Summarize returns 3-5 bullet points for the section, one per line,
// each starting with "- ".
func (s *Summarizer) Summarize(ctx context.Context, title, content string) (string, error) {
	if r := []rune(content); len(r) > maxSummaryInput {
		content = string(r[:maxSummaryInput])
	}

	out, err := s.gen.Generate(ctx, buildSummaryPrompt(title, content), nil)
	if err != nil {
		return "", err
	}

	return normalizeBullets(out), nil
}

// buildSummaryPrompt builds the per-section summarization instruction.
func buildSummaryPrompt(title, content string) string {
	var sb strings.Builder
	sb.WriteString("Given the following content section, provide 3-5 concise bullet points summarizing the key information.\n\n")
	fmt.Fprintf(&sb, "Title: %s\n\n", title)
	fmt.Fprintf(&sb, "Content:\n%s\n\n", content)
	sb.WriteString(`Provide only the bullet points, one per line, starting with "- ". Do not include the title or any other text.`)
	return sb.String()
}

// normalizeBullets cleans model output into uniform "- " bullets,
// keeping at most maxBullets lines.
func normalizeBullets(out string) string {
	var bullets []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "-"), strings.HasPrefix(line, "•"), strings.HasPrefix(line, "*"):
			bullets = append(bullets, line)
		default:
			bullets = append(bullets, "- "+line)
		}
		if len(bullets) == maxBullets {
			break
		}
	}
	return strings.Join(bullets, "\n")
}
