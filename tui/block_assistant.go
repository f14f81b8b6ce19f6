package tui

import (
	"bytes"
	"encoding/json"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/forestxieCode/a2ui"
	"github.com/forestxieCode/a2ui/markdown"
	"github.com/tidwall/gjson"
)

var _ MessageBlock = (*AssistantResponseBlock)(nil)

// AssistantResponseBlock renders a streaming assistant turn. While the
// stream is live it shows the prose as markdown, hiding everything after
// the payload delimiter behind a progress note. Once finalized, the
// response is split at the delimiter: prose renders as markdown and the
// payload renders as restaurant cards. A response that fails validation
// renders the raw prose with an error line instead of cards.
type AssistantResponseBlock struct {
	content strings.Builder
	theme   a2ui.Theme
	styles  Styles

	finalized   bool
	ui          a2ui.UIResponse
	restaurants []a2ui.Restaurant
	rawPayload  string
	renderErr   error
}

// NewAssistantResponseBlock creates a block for one streaming assistant turn.
func NewAssistantResponseBlock(theme a2ui.Theme, styles Styles) *AssistantResponseBlock {
	return &AssistantResponseBlock{theme: theme, styles: styles}
}

// Append adds a text delta from the LLM stream.
func (b *AssistantResponseBlock) Append(text string) {
	b.content.WriteString(text)
}

// Finalize validates the accumulated text against the payload contract.
// Called when the agent turn completes.
func (b *AssistantResponseBlock) Finalize() {
	b.finalized = true
	ui, err := a2ui.SplitPayload(b.content.String())
	if err != nil {
		b.renderErr = err
		return
	}
	b.ui = ui
	b.restaurants = ui.Restaurants()
	root := gjson.ParseBytes(ui.Payload)
	if len(b.restaurants) == 0 && !root.Get("restaurants").Exists() && !root.IsArray() {
		// Valid JSON in an unrecognized shape: show it rather than drop it.
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, ui.Payload, "", "  "); err == nil {
			b.rawPayload = pretty.String()
		}
	}
}

// RenderErr returns the payload validation error, if finalization failed.
func (b *AssistantResponseBlock) RenderErr() error { return b.renderErr }

func (b *AssistantResponseBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *AssistantResponseBlock) View(width int) string {
	if !b.finalized {
		return b.viewStreaming(width)
	}
	if b.renderErr != nil {
		prose := markdown.Render(b.proseOnly(), width, b.theme)
		failure := b.styles.Error.Render("rendering failed: " + b.renderErr.Error())
		if prose == "" {
			return failure
		}
		return prose + "\n\n" + failure
	}

	var parts []string
	if b.ui.Chat != "" {
		parts = append(parts, markdown.Render(b.ui.Chat, width, b.theme))
	}
	switch {
	case len(b.restaurants) > 0:
		parts = append(parts, renderCards(b.restaurants, width, b.theme, b.styles))
	case b.rawPayload != "":
		parts = append(parts, b.styles.Muted.Render(b.rawPayload))
	default:
		parts = append(parts, b.styles.Muted.Render("(no restaurants in response)"))
	}
	return strings.Join(parts, "\n\n")
}

func (b *AssistantResponseBlock) viewStreaming(width int) string {
	raw := b.content.String()
	prose, _, found := strings.Cut(raw, a2ui.PayloadDelimiter)
	rendered := markdown.Render(strings.TrimSpace(prose), width, b.theme)
	if found {
		note := b.styles.Muted.Render("building interface…")
		if rendered == "" {
			return note
		}
		return rendered + "\n\n" + note
	}
	return rendered
}

// proseOnly returns the text before the delimiter, or the whole text when
// the delimiter never arrived.
func (b *AssistantResponseBlock) proseOnly() string {
	prose, _, _ := strings.Cut(b.content.String(), a2ui.PayloadDelimiter)
	return strings.TrimSpace(prose)
}
