// Package view renders the HTML pages epollo displays: summary views,
// error pages, and the no-content fallback. All user-controlled values
// pass through html/template escaping.
package view

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/epollo/epollo"
)

var summaryTmpl = template.Must(template.New("summary").Parse(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Summary View</title>
	<style>
		* {
			margin: 0;
			padding: 0;
			box-sizing: border-box;
		}
		body {
			font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Arial, sans-serif;
			line-height: 1.6;
			color: #333;
			background: #fff;
			padding: 20px;
			max-width: 900px;
			margin: 0 auto;
		}
		h1 {
			font-size: 24px;
			margin-bottom: 30px;
			padding-bottom: 10px;
			border-bottom: 2px solid #eee;
		}
		.section {
			margin-bottom: 40px;
			padding: 20px;
			background: #f9f9f9;
			border-radius: 8px;
			border-left: 4px solid #007AFF;
		}
		.section-title {
			font-size: 20px;
			font-weight: 600;
			margin-bottom: 15px;
			color: #000;
		}
		.summary {
			margin-bottom: 15px;
			padding-left: 20px;
		}
		.summary ul {
			list-style: none;
			padding: 0;
		}
		.summary li {
			margin-bottom: 8px;
			padding-left: 20px;
			position: relative;
		}
		.summary li:before {
			content: "\2022";
			position: absolute;
			left: 0;
			color: #007AFF;
			font-weight: bold;
		}
		.original-content {
			background: #fff;
			padding: 15px;
			border-radius: 4px;
			border: 1px solid #e0e0e0;
			font-size: 14px;
			line-height: 1.7;
			white-space: pre-wrap;
		}
		.url-info {
			font-size: 12px;
			color: #666;
			margin-bottom: 20px;
			padding: 10px;
			background: #f0f0f0;
			border-radius: 4px;
		}
	</style>
</head>
<body>
	<div class="url-info">Source: <a href="{{.URL}}" target="_blank">{{.URL}}</a></div>
	<h1>Content Summary</h1>
{{range .Sections}}	<div class="section">
		<div class="section-title">{{.Title}}</div>
{{if .Bullets}}		<div class="summary">
			<ul>
{{range .Bullets}}				<li>{{.}}</li>
{{end}}			</ul>
		</div>
{{end}}		<div class="original-content">{{.Content}}</div>
	</div>
{{end}}</body>
</html>`))

var errorTmpl = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>{{.Heading}}</title>
</head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
	<h2>{{.Heading}}</h2>
{{if .URL}}	<p>Could not load {{.URL}}</p>
{{end}}	<p style="color: #666;">{{.Detail}}</p>
</body>
</html>`))

var noContentTmpl = template.Must(template.New("nocontent").Parse(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>No Content Found</title>
</head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
	<h1>No Content Found</h1>
	<p>Could not extract meaningful content from this page.</p>
	<p><a href="{{.}}">View original page</a></p>
</body>
</html>`))

// summarySection is a Section prepared for templating, with the
// summary split into individual bullets.
type summarySection struct {
	Title   string
	Content string
	Bullets []string
}

// SummaryPage renders the section summaries as a standalone HTML page.
func SummaryPage(sections []epollo.Section, url string) (string, error) {
	data := struct {
		URL      string
		Sections []summarySection
	}{URL: url}

	for _, section := range sections {
		data.Sections = append(data.Sections, summarySection{
			Title:   section.Title,
			Content: section.Content,
			Bullets: splitBullets(section.Summary),
		})
	}

	var sb strings.Builder
	if err := summaryTmpl.Execute(&sb, data); err != nil {
		return "", epollo.Errorf(epollo.EINTERNAL, "rendering summary page: %v", err)
	}
	return sb.String(), nil
}

// ErrorPage renders an error as a displayable HTML page, choosing the
// heading from the application error code.
func ErrorPage(err error, url string) string {
	var heading, detail string
	switch epollo.ErrorCode(err) {
	case epollo.ETIMEOUT:
		heading = "Timeout Error"
		detail = "The request took too long. Please try again or check your connection."
	case epollo.EUNAVAILABLE:
		heading = "Connection Error"
		detail = "Please check your internet connection and try again."
	case epollo.EHTTP:
		heading = "HTTP Error"
		detail = epollo.ErrorMessage(err)
	case epollo.EINVALID:
		heading = "Invalid URL"
		detail = epollo.ErrorMessage(err)
		url = "" // nothing meaningful to link to
	case epollo.ETOOLARGE:
		heading = "Content Too Large"
		detail = epollo.ErrorMessage(err)
	default:
		heading = "Error loading page"
		detail = epollo.ErrorMessage(err)
	}

	var sb strings.Builder
	if tmplErr := errorTmpl.Execute(&sb, struct {
		Heading string
		URL     string
		Detail  string
	}{heading, url, detail}); tmplErr != nil {
		// template over plain strings cannot fail at execution, but
		// keep the page renderable regardless
		return fmt.Sprintf("<html><body><h2>%s</h2></body></html>", template.HTMLEscapeString(heading))
	}
	return sb.String()
}

// NoContentPage renders the fallback shown when section extraction
// finds nothing.
func NoContentPage(url string) string {
	var sb strings.Builder
	if err := noContentTmpl.Execute(&sb, url); err != nil {
		return "<html><body><h1>No Content Found</h1></body></html>"
	}
	return sb.String()
}

// splitBullets breaks a bullet-per-line summary into clean bullet
// texts, dropping the leading markers.
func splitBullets(summary string) []string {
	var bullets []string
	for _, line := range strings.Split(summary, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-•* ")
		if line != "" {
			bullets = append(bullets, line)
		}
	}
	return bullets
}
