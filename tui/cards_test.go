package tui_test

import (
	"strings"
	"testing"

	"github.com/forestxieCode/a2ui"
	"github.com/forestxieCode/a2ui/tui"
	"github.com/stretchr/testify/assert"
)

func TestRenderCards(t *testing.T) {
	t.Parallel()

	theme := a2ui.DefaultTheme()
	styles := tui.NewStyles(theme)

	restaurants := []a2ui.Restaurant{
		{
			Name:     "Golden Dragon",
			Detail:   "Family-run spot known for hand-pulled noodles.",
			Rating:   "★★★★☆",
			InfoLink: "[Golden Dragon](https://restaurants.example.com/r/abc)",
			Address:  "123 Mott St, New York",
		},
		{
			Name:   "Jade Garden",
			Rating: "★★★☆☆",
		},
	}

	out := stripANSI(tui.RenderCards(restaurants, 80, theme, styles))

	assert.Contains(t, out, "Golden Dragon")
	assert.Contains(t, out, "hand-pulled noodles")
	assert.Contains(t, out, "★★★★☆")
	assert.Contains(t, out, "123 Mott St, New York")
	assert.Contains(t, out, "Jade Garden")
	assert.Contains(t, out, "╭", "cards have rounded borders")
	assert.NotContains(t, out, "[Golden Dragon]", "info link renders without markdown syntax")
}

func TestRenderCards_NarrowTerminal(t *testing.T) {
	t.Parallel()

	theme := a2ui.DefaultTheme()
	styles := tui.NewStyles(theme)

	restaurants := []a2ui.Restaurant{{
		Name:   "A Restaurant With A Very Long Name That Will Not Fit",
		Rating: "★★★★★",
	}}

	out := tui.RenderCards(restaurants, 10, theme, styles)
	for _, line := range strings.Split(stripANSI(out), "\n") {
		assert.LessOrEqual(t, tui.CellWidth(line), 28, "cards respect the minimum width floor")
	}
}

func TestTruncateCell(t *testing.T) {
	t.Parallel()

	t.Run("short strings pass through", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Jade Garden", tui.TruncateCell("Jade Garden", 20))
	})

	t.Run("long strings get an ellipsis", func(t *testing.T) {
		t.Parallel()
		out := tui.TruncateCell("A very long restaurant name", 10)
		assert.True(t, strings.HasSuffix(out, "…"))
		assert.LessOrEqual(t, tui.CellWidth(out), 10)
	})

	t.Run("wide glyphs count as two cells", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 4, tui.CellWidth("中文"))
	})
}
