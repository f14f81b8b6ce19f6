package a2ui_test

import (
	"encoding/json"
	"testing"

	"github.com/forestxieCode/a2ui"
	"github.com/stretchr/testify/assert"
)

func TestMessageRoles(t *testing.T) {
	t.Parallel()

	assert.Equal(t, a2ui.RoleUser, a2ui.UserMessage{}.Role())
	assert.Equal(t, a2ui.RoleAssistant, a2ui.AssistantMessage{}.Role())
	assert.Equal(t, a2ui.RoleToolResult, a2ui.ToolResultMessage{}.Role())
}

func TestAssistantMessage_Text(t *testing.T) {
	t.Parallel()

	t.Run("concatenates text blocks", func(t *testing.T) {
		t.Parallel()
		msg := a2ui.AssistantMessage{
			Content: []a2ui.ContentBlock{
				a2ui.TextBlock{Text: "part one "},
				a2ui.TextBlock{Text: "part two"},
			},
		}
		assert.Equal(t, "part one part two", msg.Text())
	})

	t.Run("skips tool call blocks", func(t *testing.T) {
		t.Parallel()
		msg := a2ui.AssistantMessage{
			Content: []a2ui.ContentBlock{
				a2ui.TextBlock{Text: "before"},
				a2ui.ToolCallBlock{ID: "tc_1", Name: "get_restaurants", Arguments: json.RawMessage(`{}`)},
				a2ui.TextBlock{Text: " after"},
			},
		}
		assert.Equal(t, "before after", msg.Text())
	})

	t.Run("empty content yields empty string", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, a2ui.AssistantMessage{}.Text())
	})
}

func TestRestaurantJSONFieldNames(t *testing.T) {
	t.Parallel()

	r := a2ui.Restaurant{
		Name:     "Golden Dragon",
		Detail:   "Classic Cantonese",
		ImageURL: "http://localhost:8080/static/food1.png",
		Rating:   "★★★★★",
		InfoLink: "[Golden Dragon](http://example.com/r/1)",
		Address:  "12 Mott St, New York",
	}

	data, err := json.Marshal(r)
	assert.NoError(t, err)

	var m map[string]any
	assert.NoError(t, json.Unmarshal(data, &m))
	for _, key := range []string{"name", "detail", "imageUrl", "rating", "infoLink", "address"} {
		assert.Contains(t, m, key)
	}
}
