// internal/app/system/htmlsanitize/htmlsanitize.go
//
// Package htmlsanitize cleans user-authored rich text (comments,
// candidate summaries) before storage and display. It is a thin layer
// over bluemonday's UGC policy with table/formatting extensions.
package htmlsanitize

import (
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	// Tables with presentation attributes.
	p.AllowAttrs("class", "style").OnElements("table", "thead", "tbody", "tfoot", "tr", "th", "td")
	p.AllowAttrs("colspan", "rowspan").OnElements("th", "td")

	// Inline formatting beyond the UGC defaults.
	p.AllowElements("u", "s", "sub", "sup", "mark")

	return p
}

// Sanitize returns input with dangerous HTML removed. Safe markup
// (paragraphs, formatting, lists, tables, links, images) is preserved.
func Sanitize(input string) string {
	if input == "" {
		return ""
	}
	return policy.Sanitize(input)
}

// SanitizeToHTML sanitizes and wraps the result in template.HTML so it
// can be rendered without re-escaping.
func SanitizeToHTML(input string) template.HTML {
	return template.HTML(Sanitize(input))
}

// IsPlainText reports whether input contains no HTML tags.
func IsPlainText(input string) bool {
	return !(strings.Contains(input, "<") && strings.Contains(input, ">"))
}

// PlainTextToHTML escapes plain text and converts newlines to <br>,
// wrapping the whole thing in a paragraph.
func PlainTextToHTML(input string) string {
	if input == "" {
		return ""
	}
	escaped := template.HTMLEscapeString(input)
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return "<p>" + escaped + "</p>"
}

// PrepareForDisplay renders stored text for HTML display: plain text is
// escaped and paragraph-wrapped, HTML is sanitized.
func PrepareForDisplay(input string) template.HTML {
	if input == "" {
		return ""
	}
	if IsPlainText(input) {
		return template.HTML(PlainTextToHTML(input))
	}
	return SanitizeToHTML(input)
}
