package tui_test

import (
	"strings"
	"testing"

	"github.com/forestxieCode/a2ui"
	"github.com/forestxieCode/a2ui/tui"
	"github.com/stretchr/testify/assert"
)

func TestToolResultBlock_Preview(t *testing.T) {
	t.Parallel()

	styles := tui.NewStyles(a2ui.DefaultTheme())

	t.Run("array result shows row count", func(t *testing.T) {
		t.Parallel()
		b := tui.NewToolResultBlock("get_restaurants", `[{"name":"a"},{"name":"b"},{"name":"c"}]`, false, styles)
		assert.Contains(t, stripANSI(b.View(80)), "3 results")
	})

	t.Run("error shows message and starts expanded", func(t *testing.T) {
		t.Parallel()
		b := tui.NewToolResultBlock("get_restaurants", "count must not be negative", true, styles)
		view := stripANSI(b.View(80))
		assert.Contains(t, view, "▼ get_restaurants")
		assert.Contains(t, view, "count must not be negative")
	})

	t.Run("long non-array content truncates", func(t *testing.T) {
		t.Parallel()
		b := tui.NewToolResultBlock("get_restaurants", strings.Repeat("x", 100), true, styles)
		assert.Contains(t, stripANSI(b.View(80)), "…")
	})

	t.Run("toggle collapses success result", func(t *testing.T) {
		t.Parallel()
		b := tui.NewToolResultBlock("get_restaurants", `[{"name":"a"}]`, false, styles)
		assert.Contains(t, stripANSI(b.View(80)), "▶")

		updated, _ := b.Update(tui.ToggleMsg{})
		assert.Contains(t, stripANSI(updated.View(80)), "▼")
	})

	t.Run("toggle never collapses error result", func(t *testing.T) {
		t.Parallel()
		b := tui.NewToolResultBlock("get_restaurants", "boom", true, styles)
		updated, _ := b.Update(tui.ToggleMsg{})
		assert.Contains(t, stripANSI(updated.View(80)), "▼")
	})
}
