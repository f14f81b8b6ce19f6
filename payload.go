package a2ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// PayloadDelimiter is the literal marker the assistant must emit before the
// UI-description payload. Everything before it is chat prose; everything
// after it is a JSON document the client renders as interface elements.
const PayloadDelimiter = "---a2ui_JSON---"

// UIResponse is a validated assistant response split at the payload delimiter.
type UIResponse struct {
	// Chat is the conversational prose preceding the delimiter. May be empty.
	Chat string
	// Payload is the JSON document following the delimiter.
	Payload json.RawMessage
}

// Restaurants extracts the restaurant entries from the payload, if any.
// The payload shape is model-produced, so extraction is lenient: a top-level
// array of records and an object with a "restaurants" array are both
// recognized. Returns nil when the payload carries no recognizable entries.
func (r UIResponse) Restaurants() []Restaurant {
	root := gjson.ParseBytes(r.Payload)
	list := root
	if !root.IsArray() {
		list = root.Get("restaurants")
		if !list.IsArray() {
			return nil
		}
	}
	var out []Restaurant
	list.ForEach(func(_, item gjson.Result) bool {
		out = append(out, Restaurant{
			Name:     item.Get("name").String(),
			Detail:   item.Get("detail").String(),
			ImageURL: item.Get("imageUrl").String(),
			Rating:   item.Get("rating").String(),
			InfoLink: item.Get("infoLink").String(),
			Address:  item.Get("address").String(),
		})
		return true
	})
	return out
}

// SplitPayload validates an assistant's final text against the UI payload
// contract and splits it into prose and payload. A missing delimiter returns
// ErrMissingPayload; a delimiter followed by anything other than a valid JSON
// document returns ErrInvalidPayload. Both are fatal at the rendering
// boundary — the tool layer's job is to make them unreachable by never
// starving the model of data.
func SplitPayload(text string) (UIResponse, error) {
	idx := strings.Index(text, PayloadDelimiter)
	if idx < 0 {
		return UIResponse{}, fmt.Errorf("splitting response: %w", ErrMissingPayload)
	}

	chat := strings.TrimSpace(text[:idx])
	raw := strings.TrimSpace(text[idx+len(PayloadDelimiter):])
	raw = stripCodeFence(raw)

	if raw == "" || !gjson.Valid(raw) {
		return UIResponse{}, fmt.Errorf("parsing payload after delimiter: %w", ErrInvalidPayload)
	}

	return UIResponse{Chat: chat, Payload: json.RawMessage(raw)}, nil
}

// stripCodeFence removes a surrounding markdown code fence. Models routinely
// wrap the JSON document in ```json fences despite instructions not to.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	rest, ok := strings.CutPrefix(s, "```json")
	if !ok {
		rest = strings.TrimPrefix(s, "```")
	}
	rest = strings.TrimSuffix(strings.TrimSpace(rest), "```")
	return strings.TrimSpace(rest)
}
