package ollama

import (
	"context"
	"strings"

	"github.com/epollo/epollo"
)

// promoWords flags lines the model let through despite instructions.
var promoWords = []string{
	"advertisement", "ad:", "sponsored", "promotion", "buy now",
	"subscribe", "newsletter", "follow us", "social",
}

// Ensure Digester implements epollo.Digester at compile time.
var _ epollo.Digester = (*Digester)(nil)

// Digester turns messy markdown into a clean numbered news list.
type Digester struct {
	gen epollo.Generator
}

// NewDigester creates a new Digester backed by the given generator.
func NewDigester(gen epollo.Generator) *Digester {
	return &Digester{gen: gen}
}

// Digest extracts real news articles from the markdown, discarding ads
// and promotional material. Returns "No news content found." when
// nothing survives.
func (d *Digester) Digest(ctx context.Context, markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", epollo.Errorf(epollo.EINVALID, "no input provided")
	}

	opts := &epollo.GenerateOptions{Temperature: 0.3, TopP: 0.9}
	out, err := d.gen.Generate(ctx, buildDigestPrompt(markdown), opts)
	if err != nil {
		return "", err
	}

	var kept []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if !containsPromo(line) {
			kept = append(kept, line)
		}
	}

	result := strings.TrimSpace(strings.Join(kept, "\n"))
	if result == "" {
		return "No news content found.", nil
	}
	return result, nil
}

// buildDigestPrompt builds the news extraction instruction.
func buildDigestPrompt(markdown string) string {
	var sb strings.Builder
	sb.WriteString(`Extract ONLY real news articles from the text below.

REMOVE these completely:
- Advertisements, ads, sponsored content
- Promotional content, "Buy now" messages
- Newsletter signup prompts
- Social media links and follow buttons
- Footer links, sidebar content

Format as a clean numbered list:
1. Title: [headline]
2. Summary: [1-2 sentence summary]
3. Source: [source name and date if available]

Skip anything that is not a real news article.

Text:
`)
	sb.WriteString(markdown)
	sb.WriteString("\n\nOutput:")
	return sb.String()
}

func containsPromo(line string) bool {
	lower := strings.ToLower(line)
	for _, word := range promoWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
