package epollo

import (
	"html"
	"regexp"
	"strings"
)

// Heading marks the position of a heading element in raw HTML.
// Start and End span the full element, open tag through close tag.
type Heading struct {
	Level int    `json:"level"`
	Title string `json:"title"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Section is a (title, content) unit extracted from a document for
// independent summarization. Summary is filled in by a Summarizer after
// extraction; it is empty when summarization failed or was skipped.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Summary string `json:"summary,omitempty"`
}

// SectionOptions tunes the section extraction heuristics. The fallback
// constants (MinParagraphLen, FallbackStride, FallbackScan) have no
// documented rationale beyond matching observed behavior, so they are
// exposed here rather than hard-coded.
type SectionOptions struct {
	// MaxSections caps the total number of sections returned.
	MaxSections int

	// MaxParagraphs caps the paragraphs kept in each section's content.
	MaxParagraphs int

	// MinParagraphLen is the fallback path's noise filter: paragraphs
	// this short or shorter are discarded.
	MinParagraphLen int

	// TitleLimit truncates fallback-synthesized titles to this many
	// characters, with an ellipsis marker appended when truncated.
	TitleLimit int

	// FallbackStride is how many paragraphs the fallback path advances
	// between synthesized sections.
	FallbackStride int

	// FallbackScan bounds how far into the paragraph list the fallback
	// path walks when synthesizing sections.
	FallbackScan int
}

// DefaultSectionOptions returns the standard extraction parameters:
// at most 10 sections of 6 paragraphs each, 50-character noise filter,
// 100-character synthesized titles, stride 2 over the first 5 paragraphs.
func DefaultSectionOptions() SectionOptions {
	return SectionOptions{
		MaxSections:     10,
		MaxParagraphs:   6,
		MinParagraphLen: 50,
		TitleLimit:      100,
		FallbackStride:  2,
		FallbackScan:    5,
	}
}

func (o SectionOptions) withDefaults() SectionOptions {
	def := DefaultSectionOptions()
	if o.MaxSections <= 0 {
		o.MaxSections = def.MaxSections
	}
	if o.MaxParagraphs <= 0 {
		o.MaxParagraphs = def.MaxParagraphs
	}
	if o.MinParagraphLen <= 0 {
		o.MinParagraphLen = def.MinParagraphLen
	}
	if o.TitleLimit <= 0 {
		o.TitleLimit = def.TitleLimit
	}
	if o.FallbackStride <= 0 {
		o.FallbackStride = def.FallbackStride
	}
	if o.FallbackScan <= 0 {
		o.FallbackScan = def.FallbackScan
	}
	return o
}

var (
	scriptRe  = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe   = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	tagRe     = regexp.MustCompile(`<[^>]+>`)
	spaceRe   = regexp.MustCompile(`\s+`)
	headingRe = regexp.MustCompile(`(?is)<h([1-6])[^>]*>(.*?)</h[1-6]>`)
	articleRe = regexp.MustCompile(`(?is)<article[^>]*>(.*?)</article>`)
	mainRe    = regexp.MustCompile(`(?is)<main[^>]*>(.*?)</main>`)
	bodyRe    = regexp.MustCompile(`(?is)<body[^>]*>(.*?)</body>`)
)

// ExtractText converts HTML to plain text. Script and style blocks are
// removed entirely, remaining tags are replaced with single spaces, HTML
// entities are decoded, and whitespace is normalized: runs collapse to a
// single space, blank-line runs collapse to exactly one blank line.
//
// ExtractText is pure and total: any input, including malformed HTML,
// produces a string without error.
func ExtractText(rawHTML string) string {
	text := scriptRe.ReplaceAllString(rawHTML, "")
	text = styleRe.ReplaceAllString(text, "")
	text = tagRe.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)

	// A whitespace run containing a blank line becomes a paragraph
	// boundary; any other run becomes a single space.
	text = spaceRe.ReplaceAllStringFunc(text, func(ws string) string {
		if strings.Count(ws, "\n") >= 2 {
			return "\n\n"
		}
		return " "
	})

	return strings.TrimSpace(text)
}

// FindHeadings locates every h1-h6 element in document order, recording
// its level, decoded and tag-stripped title, and byte offsets in the
// source HTML.
func FindHeadings(rawHTML string) []Heading {
	matches := headingRe.FindAllStringSubmatchIndex(rawHTML, -1)
	if len(matches) == 0 {
		return nil
	}

	headings := make([]Heading, 0, len(matches))
	for _, m := range matches {
		title := tagRe.ReplaceAllString(rawHTML[m[4]:m[5]], "")
		title = strings.TrimSpace(html.UnescapeString(title))
		headings = append(headings, Heading{
			Level: int(rawHTML[m[2]] - '0'),
			Title: title,
			Start: m[0],
			End:   m[1],
		})
	}
	return headings
}

// ExtractSections segments HTML into an ordered list of sections using
// the default options. See ExtractSectionsOptions.
func ExtractSections(rawHTML string) []Section {
	return ExtractSectionsOptions(rawHTML, DefaultSectionOptions())
}

// ExtractSectionsOptions segments HTML into at most opts.MaxSections
// sections in document order. The primary path pairs each heading with
// the text between it and the next heading. When no heading yields a
// section, a fallback path synthesizes sections from the paragraphs of
// the first article, main, or body element.
//
// A section is emitted only when both its title and content are
// non-empty. Malformed or empty input degrades to fewer or zero
// sections, never to an error.
func ExtractSectionsOptions(rawHTML string, opts SectionOptions) []Section {
	opts = opts.withDefaults()

	sections := headingSections(rawHTML, opts)
	if len(sections) == 0 {
		sections = fallbackSections(rawHTML, opts)
	}

	if len(sections) > opts.MaxSections {
		sections = sections[:opts.MaxSections]
	}
	return sections
}

// headingSections implements the primary, heading-based segmentation.
func headingSections(rawHTML string, opts SectionOptions) []Section {
	headings := FindHeadings(rawHTML)

	var sections []Section
	for i, h := range headings {
		end := len(rawHTML)
		if i+1 < len(headings) {
			end = headings[i+1].Start
		}

		content := joinParagraphs(splitParagraphs(ExtractText(rawHTML[h.End:end])), opts.MaxParagraphs)
		if h.Title == "" || content == "" {
			continue
		}

		sections = append(sections, Section{Title: h.Title, Content: content})
	}
	return sections
}

// fallbackSections synthesizes sections from the first article, main, or
// body element when the document has no usable heading structure.
func fallbackSections(rawHTML string, opts SectionOptions) []Section {
	var inner string
	for _, re := range []*regexp.Regexp{articleRe, mainRe, bodyRe} {
		if m := re.FindStringSubmatch(rawHTML); m != nil {
			inner = m[1]
			break
		}
	}
	if inner == "" {
		return nil
	}

	var paragraphs []string
	for _, p := range splitParagraphs(ExtractText(inner)) {
		if len(p) > opts.MinParagraphLen {
			paragraphs = append(paragraphs, p)
		}
	}

	scan := min(len(paragraphs), opts.FallbackScan)

	var sections []Section
	for i := 0; i < scan; i += opts.FallbackStride {
		title := paragraphs[i]
		if r := []rune(title); len(r) > opts.TitleLimit {
			title = string(r[:opts.TitleLimit]) + "..."
		}

		content := joinParagraphs(paragraphs[i:], opts.MaxParagraphs)
		if content == "" {
			continue
		}

		sections = append(sections, Section{Title: title, Content: content})
	}
	return sections
}

// splitParagraphs splits plain text on blank-line boundaries, dropping
// empty entries.
func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// joinParagraphs rejoins at most max paragraphs with blank-line
// separators.
func joinParagraphs(paragraphs []string, max int) string {
	if len(paragraphs) > max {
		paragraphs = paragraphs[:max]
	}
	return strings.Join(paragraphs, "\n\n")
}
