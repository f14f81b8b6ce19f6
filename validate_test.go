package a2ui_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/forestxieCode/a2ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_Validate(t *testing.T) {
	t.Parallel()

	t.Run("zero-value defaults are valid", func(t *testing.T) {
		t.Parallel()
		r := a2ui.Request{
			Messages: []a2ui.Message{
				a2ui.UserMessage{Content: []a2ui.ContentBlock{a2ui.TextBlock{Text: "hello"}}},
			},
		}
		assert.NoError(t, r.Validate())
	})

	t.Run("all fields set is valid", func(t *testing.T) {
		t.Parallel()
		temp := 1.0
		r := a2ui.Request{
			Model:        "gemini-2.0-flash",
			SystemPrompt: "You are a restaurant concierge.",
			Messages: []a2ui.Message{
				a2ui.UserMessage{Content: []a2ui.ContentBlock{a2ui.TextBlock{Text: "hello"}}},
			},
			Tools:       []a2ui.Tool{{Name: "get_restaurants", Description: "Look up restaurants"}},
			MaxTokens:   4096,
			Temperature: &temp,
		}
		assert.NoError(t, r.Validate())
	})

	t.Run("temperature bounds", func(t *testing.T) {
		t.Parallel()
		for _, temp := range []float64{0, 1.5, 2} {
			tv := temp
			assert.NoError(t, a2ui.Request{Temperature: &tv}.Validate())
		}
		for _, temp := range []float64{-0.1, 2.1} {
			tv := temp
			err := a2ui.Request{Temperature: &tv}.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, a2ui.ErrValidation))
			assert.Contains(t, err.Error(), "temperature")
		}
	})

	t.Run("negative max_tokens is invalid", func(t *testing.T) {
		t.Parallel()
		err := a2ui.Request{MaxTokens: -1}.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, a2ui.ErrValidation))
	})
}

func TestValidateMessage(t *testing.T) {
	t.Parallel()

	t.Run("user text message is valid", func(t *testing.T) {
		t.Parallel()
		msg := a2ui.UserMessage{Content: []a2ui.ContentBlock{a2ui.TextBlock{Text: "hi"}}}
		assert.NoError(t, a2ui.ValidateMessage(msg))
	})

	t.Run("tool call in user message is invalid", func(t *testing.T) {
		t.Parallel()
		msg := a2ui.UserMessage{Content: []a2ui.ContentBlock{
			a2ui.ToolCallBlock{ID: "tc_1", Name: "get_restaurants", Arguments: json.RawMessage(`{}`)},
		}}
		err := a2ui.ValidateMessage(msg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, a2ui.ErrValidation))
	})

	t.Run("assistant message with tool call is valid", func(t *testing.T) {
		t.Parallel()
		msg := a2ui.AssistantMessage{Content: []a2ui.ContentBlock{
			a2ui.ToolCallBlock{ID: "tc_1", Name: "get_restaurants", Arguments: json.RawMessage(`{}`)},
		}}
		assert.NoError(t, a2ui.ValidateMessage(msg))
	})
}
