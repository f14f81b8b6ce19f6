// Package markdown renders markdown text to ANSI-styled terminal output
// using goldmark for parsing and lipgloss for styling.
//
// The renderer targets LLM chat prose: paragraphs, headings, lists, code
// blocks and inline links. Restaurant cards use [RenderInline] for single
// fields like the info link.
package markdown

import "github.com/forestxieCode/a2ui"

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs and list items are word-wrapped to width. Code blocks are
// rendered at full width without reflow.
func Render(source string, width int, theme a2ui.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := newRenderer(theme)
	return r.render([]byte(source), width)
}

// RenderInline styles a single line of markdown without block layout or
// wrapping. A link like "[Jade Garden](https://…)" comes back as the
// underlined name followed by the muted URL.
func RenderInline(source string, theme a2ui.Theme) string {
	if source == "" {
		return ""
	}
	r := newRenderer(theme)
	return r.renderInlineOnly([]byte(source))
}
