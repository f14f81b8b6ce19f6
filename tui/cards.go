package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/forestxieCode/a2ui"
	"github.com/forestxieCode/a2ui/markdown"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const (
	maxCardWidth = 60
	minCardWidth = 24
)

// renderCards renders restaurant entries as bordered cards stacked
// vertically. Width is the available terminal width; cards cap out at
// maxCardWidth so they stay readable on wide terminals.
func renderCards(restaurants []a2ui.Restaurant, width int, theme a2ui.Theme, styles Styles) string {
	cardWidth := width - 4 // border + padding
	if cardWidth > maxCardWidth {
		cardWidth = maxCardWidth
	}
	if cardWidth < minCardWidth {
		cardWidth = minCardWidth
	}

	cards := make([]string, 0, len(restaurants))
	for _, r := range restaurants {
		cards = append(cards, renderCard(r, cardWidth, theme, styles))
	}
	return strings.Join(cards, "\n")
}

func renderCard(r a2ui.Restaurant, cardWidth int, theme a2ui.Theme, styles Styles) string {
	var lines []string

	title := styles.Accent.Render(truncateCell(r.Name, cardWidth))
	if r.Rating != "" {
		rating := styles.Rating.Render(r.Rating)
		gap := cardWidth - cellWidth(r.Name) - cellWidth(r.Rating)
		if gap >= 1 {
			title += strings.Repeat(" ", gap) + rating
		} else {
			lines = append(lines, title)
			title = rating
		}
	}
	lines = append(lines, title)

	if r.Detail != "" {
		lines = append(lines, lipgloss.NewStyle().Width(cardWidth).Render(r.Detail))
	}
	if r.Address != "" {
		lines = append(lines, styles.Muted.Render(truncateCell(r.Address, cardWidth)))
	}
	if r.InfoLink != "" {
		lines = append(lines, markdown.RenderInline(r.InfoLink, theme))
	}

	return styles.CardBorder.Width(cardWidth).Render(strings.Join(lines, "\n"))
}

// cellWidth returns the display width of s in terminal cells, walking
// grapheme clusters so star glyphs and emoji measure correctly.
func cellWidth(s string) int {
	width := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		width += runewidth.StringWidth(g.Str())
	}
	return width
}

// truncateCell shortens s to max display cells, appending an ellipsis when
// anything was cut. Truncation happens at grapheme cluster boundaries.
func truncateCell(s string, max int) string {
	if cellWidth(s) <= max {
		return s
	}
	var b strings.Builder
	width := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := runewidth.StringWidth(g.Str())
		if width+w > max-1 {
			break
		}
		b.WriteString(g.Str())
		width += w
	}
	return b.String() + "…"
}
