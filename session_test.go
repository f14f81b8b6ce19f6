package a2ui_test

import (
	"testing"

	"github.com/forestxieCode/a2ui"
	"github.com/stretchr/testify/assert"
)

func TestSession_LastAssistantText(t *testing.T) {
	t.Parallel()

	t.Run("empty session", func(t *testing.T) {
		t.Parallel()
		s := &a2ui.Session{}
		assert.Empty(t, s.LastAssistantText())
	})

	t.Run("returns most recent assistant text", func(t *testing.T) {
		t.Parallel()
		s := &a2ui.Session{Messages: []a2ui.Message{
			a2ui.UserMessage{Content: []a2ui.ContentBlock{a2ui.TextBlock{Text: "find me sushi"}}},
			a2ui.AssistantMessage{Content: []a2ui.ContentBlock{a2ui.TextBlock{Text: "first"}}},
			a2ui.UserMessage{Content: []a2ui.ContentBlock{a2ui.TextBlock{Text: "more"}}},
			a2ui.AssistantMessage{Content: []a2ui.ContentBlock{a2ui.TextBlock{Text: "second"}}},
		}}
		assert.Equal(t, "second", s.LastAssistantText())
	})

	t.Run("skips trailing tool results", func(t *testing.T) {
		t.Parallel()
		s := &a2ui.Session{Messages: []a2ui.Message{
			a2ui.AssistantMessage{Content: []a2ui.ContentBlock{a2ui.TextBlock{Text: "answer"}}},
			a2ui.ToolResultMessage{ToolCallID: "tc_1", ToolName: "get_restaurants", Content: "[]"},
		}}
		assert.Equal(t, "answer", s.LastAssistantText())
	})
}
