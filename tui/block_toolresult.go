package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tidwall/gjson"
)

var _ MessageBlock = (*ToolResultBlock)(nil)

const maxPreviewLen = 60

// ToolResultBlock renders a tool result with a collapsible toggle.
// Success results start collapsed; error results start expanded.
type ToolResultBlock struct {
	toolName  string
	content   string
	isError   bool
	collapsed bool
	styles    Styles
}

// NewToolResultBlock creates a ToolResultBlock.
func NewToolResultBlock(toolName, content string, isError bool, styles Styles) *ToolResultBlock {
	return &ToolResultBlock{
		toolName:  toolName,
		content:   content,
		isError:   isError,
		collapsed: !isError,
		styles:    styles,
	}
}

// IsError reports whether this tool result represents an error.
func (b *ToolResultBlock) IsError() bool { return b.isError }

func (b *ToolResultBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	if _, ok := msg.(ToggleMsg); ok {
		if b.isError {
			// Error results are always expanded.
			b.collapsed = false
		} else {
			b.collapsed = !b.collapsed
		}
	}
	return b, nil
}

func (b *ToolResultBlock) View(width int) string {
	statusIcon := "✓"
	iconStyle := b.styles.Success
	if b.isError {
		statusIcon = "✗"
		iconStyle = b.styles.Error
	}

	indicator := "▶"
	if !b.collapsed {
		indicator = "▼"
	}
	header := b.styles.ToolCall.Render(indicator+" "+b.toolName) + " " + iconStyle.Render(statusIcon)
	if preview := b.preview(); preview != "" {
		if b.isError {
			header += "  " + b.styles.Error.Render(preview)
		} else {
			header += "  " + preview
		}
	}

	if b.collapsed || b.content == "" {
		return header
	}

	body := b.content
	if b.isError {
		body = b.styles.Error.Render(b.content)
	}
	return header + "\n" + body
}

// preview gives a one-line summary of the result. A JSON array of records
// collapses to a row count; anything else shows its truncated first line.
func (b *ToolResultBlock) preview() string {
	if b.content == "" {
		return ""
	}
	if !b.isError {
		if parsed := gjson.Parse(b.content); parsed.IsArray() {
			return fmt.Sprintf("%d results", len(parsed.Array()))
		}
	}
	line := b.content
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if runes := []rune(line); len(runes) > maxPreviewLen {
		line = string(runes[:maxPreviewLen]) + "…"
	}
	return line
}
