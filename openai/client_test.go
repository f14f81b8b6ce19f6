package openai_test

import (
	"encoding/json"
	"testing"

	"github.com/forestxieCode/a2ui"
	"github.com/forestxieCode/a2ui/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// marshal flattens a message param to JSON for assertions, since the SDK's
// param fields are not directly comparable.
func marshal(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestConvertMessages(t *testing.T) {
	t.Parallel()

	t.Run("system prompt leads", func(t *testing.T) {
		t.Parallel()

		msgs := openai.ConvertMessages("be helpful", []a2ui.Message{
			a2ui.UserMessage{Content: []a2ui.ContentBlock{a2ui.TextBlock{Text: "find me dinner"}}},
		})
		require.Len(t, msgs, 2)

		first := marshal(t, msgs[0])
		assert.Equal(t, "system", gjson.Get(first, "role").String())
		assert.Equal(t, "be helpful", gjson.Get(first, "content").String())

		second := marshal(t, msgs[1])
		assert.Equal(t, "user", gjson.Get(second, "role").String())
		assert.Equal(t, "find me dinner", gjson.Get(second, "content").String())
	})

	t.Run("no system message when prompt empty", func(t *testing.T) {
		t.Parallel()

		msgs := openai.ConvertMessages("", []a2ui.Message{
			a2ui.UserMessage{Content: []a2ui.ContentBlock{a2ui.TextBlock{Text: "hi"}}},
		})
		require.Len(t, msgs, 1)
		assert.Equal(t, "user", gjson.Get(marshal(t, msgs[0]), "role").String())
	})

	t.Run("assistant text", func(t *testing.T) {
		t.Parallel()

		msgs := openai.ConvertMessages("", []a2ui.Message{
			a2ui.AssistantMessage{Content: []a2ui.ContentBlock{a2ui.TextBlock{Text: "sure"}}},
		})
		require.Len(t, msgs, 1)
		out := marshal(t, msgs[0])
		assert.Equal(t, "assistant", gjson.Get(out, "role").String())
	})

	t.Run("assistant tool calls", func(t *testing.T) {
		t.Parallel()

		msgs := openai.ConvertMessages("", []a2ui.Message{
			a2ui.AssistantMessage{Content: []a2ui.ContentBlock{
				a2ui.ToolCallBlock{
					ID:        "call_1",
					Name:      "get_restaurants",
					Arguments: json.RawMessage(`{"cuisine":"thai"}`),
				},
			}},
		})
		require.Len(t, msgs, 1)

		out := marshal(t, msgs[0])
		assert.Equal(t, "assistant", gjson.Get(out, "role").String())
		assert.Equal(t, "call_1", gjson.Get(out, "tool_calls.0.id").String())
		assert.Equal(t, "get_restaurants", gjson.Get(out, "tool_calls.0.function.name").String())
		assert.JSONEq(t, `{"cuisine":"thai"}`, gjson.Get(out, "tool_calls.0.function.arguments").String())
	})

	t.Run("assistant text and tool calls split into two params", func(t *testing.T) {
		t.Parallel()

		msgs := openai.ConvertMessages("", []a2ui.Message{
			a2ui.AssistantMessage{Content: []a2ui.ContentBlock{
				a2ui.TextBlock{Text: "let me check"},
				a2ui.ToolCallBlock{ID: "call_1", Name: "get_restaurants", Arguments: json.RawMessage(`{}`)},
			}},
		})
		require.Len(t, msgs, 2)
		assert.Equal(t, "assistant", gjson.Get(marshal(t, msgs[0]), "role").String())
		assert.Equal(t, "call_1", gjson.Get(marshal(t, msgs[1]), "tool_calls.0.id").String())
	})

	t.Run("tool result", func(t *testing.T) {
		t.Parallel()

		msgs := openai.ConvertMessages("", []a2ui.Message{
			a2ui.ToolResultMessage{
				ToolCallID: "call_1",
				ToolName:   "get_restaurants",
				Content:    `[{"name":"Jade Garden"}]`,
			},
		})
		require.Len(t, msgs, 1)

		out := marshal(t, msgs[0])
		assert.Equal(t, "tool", gjson.Get(out, "role").String())
		assert.Equal(t, "call_1", gjson.Get(out, "tool_call_id").String())
		assert.Equal(t, "text", gjson.Get(out, "content.0.type").String())
		assert.Equal(t, `[{"name":"Jade Garden"}]`, gjson.Get(out, "content.0.text").String())
	})
}

func TestConvertTools(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, openai.ConvertTools(nil))
	})

	t.Run("definitions", func(t *testing.T) {
		t.Parallel()

		tools := openai.ConvertTools([]a2ui.Tool{{
			Name:        "get_restaurants",
			Description: "Look up restaurants by cuisine and location.",
			Parameters:  json.RawMessage(`{"type":"object","properties":{"cuisine":{"type":"string"}}}`),
		}})
		require.Len(t, tools, 1)

		out := marshal(t, tools[0])
		assert.Equal(t, "function", gjson.Get(out, "type").String())
		assert.Equal(t, "get_restaurants", gjson.Get(out, "function.name").String())
		assert.Equal(t, "object", gjson.Get(out, "function.parameters.type").String())
	})
}
