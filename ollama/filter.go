package ollama

import (
	"context"
	"fmt"
	"strings"

	"github.com/epollo/epollo"
)

// minFilteredLen guards against the model answering with an apology or
// error message instead of HTML. Shorter responses are discarded and
// the original document is kept.
const minFilteredLen = 50

// Ensure Filter implements epollo.ContentFilter at compile time.
var _ epollo.ContentFilter = (*Filter)(nil)

// Filter rewrites HTML with topic-related content removed, using a
// local LLM.
type Filter struct {
	gen epollo.Generator
}

// NewFilter creates a new Filter backed by the given generator.
func NewFilter(gen epollo.Generator) *Filter {
	return &Filter{gen: gen}
}

// Filter returns the HTML with sections related to the topics removed.
// When topics is empty the input is returned unchanged. When the model
// responds with something that cannot be HTML, the original document is
// returned rather than a broken one.
func (f *Filter) Filter(ctx context.Context, html string, topics []string) (string, error) {
	if len(topics) == 0 {
		return html, nil
	}

	out, err := f.gen.Generate(ctx, buildFilterPrompt(html, topics), nil)
	if err != nil {
		return "", err
	}

	filtered := stripCodeFences(strings.TrimSpace(out))
	if len(filtered) < minFilteredLen {
		return html, nil
	}

	return filtered, nil
}

// buildFilterPrompt builds the instruction for topic removal.
func buildFilterPrompt(html string, topics []string) string {
	quoted := make([]string, 0, len(topics))
	for _, topic := range topics {
		quoted = append(quoted, fmt.Sprintf("%q", topic))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a web content filter. Your task is to remove any content from the HTML that is related to these topics: %s.\n\n", strings.Join(quoted, ", "))
	sb.WriteString(`Instructions:
1. Remove entire paragraphs, sections, divs, or elements that contain content related to any of these topics
2. Maintain the overall structure and flow of the document
3. Ensure the remaining content reads naturally and fluidly
4. Preserve all HTML structure, CSS classes, and formatting
5. Do not add any comments or explanations - only return the modified HTML
6. If a section header is removed, ensure the document flow still makes sense

Return ONLY the modified HTML, nothing else.

HTML to filter:
`)
	sb.WriteString(html)
	return sb.String()
}

// stripCodeFences removes a surrounding markdown code block, which some
// models add despite instructions.
func stripCodeFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}

	lines := strings.Split(s, "\n")
	if strings.HasPrefix(lines[0], "```") {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
