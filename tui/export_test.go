package tui

import "github.com/forestxieCode/a2ui"

// RenderCards exports renderCards for testing.
func RenderCards(restaurants []a2ui.Restaurant, width int, theme a2ui.Theme, styles Styles) string {
	return renderCards(restaurants, width, theme, styles)
}

// TruncateCell exports truncateCell for testing.
func TruncateCell(s string, max int) string {
	return truncateCell(s, max)
}

// CellWidth exports cellWidth for testing.
func CellWidth(s string) int {
	return cellWidth(s)
}
