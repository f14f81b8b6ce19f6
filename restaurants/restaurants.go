// Package restaurants implements the restaurant lookup tool.
//
// The tool resolves a location against a data-driven alias table. Alias hits
// are served from a static dataset file; everything else falls back to a
// synthetic generator. The contract that matters downstream: for count > 0
// the tool always returns a non-empty JSON array, because an empty result is
// what makes the model answer with plain prose instead of a UI payload.
package restaurants

import (
	"encoding/json"
	"fmt"

	"github.com/forestxieCode/a2ui"
	"github.com/invopop/jsonschema"
)

// ToolName is the function name the model calls.
const ToolName = "get_restaurants"

// Args are the model-supplied arguments for the lookup tool.
type Args struct {
	Cuisine  string `json:"cuisine" jsonschema:"description=Type of cuisine to search for"`
	Location string `json:"location" jsonschema:"description=City or area to search in"`
	// Count distinguishes "omitted" (nil, defaults to 5) from an explicit
	// zero, which is the one legitimate empty-result request.
	Count *int `json:"count,omitempty" jsonschema:"description=Number of restaurants to return (default 5)"`
}

// Tool returns the tool definition sent to the model.
func Tool() a2ui.Tool {
	return a2ui.Tool{
		Name:        ToolName,
		Description: "Look up restaurants for a given cuisine and location. Always returns restaurant data.",
		Parameters:  schemaFor[Args](),
	}
}

// schemaFor reflects a JSON schema for T as a raw JSON document.
func schemaFor[T any]() json.RawMessage {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	data, err := json.Marshal(reflector.Reflect(v))
	if err != nil {
		// Reflection over a package-local struct cannot produce an
		// unmarshalable schema; this indicates a programming error.
		panic(fmt.Sprintf("restaurants: reflecting schema: %v", err))
	}
	return data
}
