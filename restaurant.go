// Package a2ui defines the domain types for a restaurant-demo agent whose
// assistant responses carry a delimiter-separated UI-description payload.
//
// The root package holds provider-agnostic types: messages, streaming
// events, tool contracts and the payload validation rules. Subpackages
// implement providers (gemini, openai), the restaurant lookup tool
// (restaurants), persistence (json) and the terminal client (tui).
package a2ui

// Restaurant is a single restaurant entry as returned by the lookup tool
// and consumed by the model when it composes a UI payload. The JSON field
// names are part of the tool's wire contract.
type Restaurant struct {
	Name     string `json:"name"`
	Detail   string `json:"detail"`
	ImageURL string `json:"imageUrl"`
	Rating   string `json:"rating"` // star glyphs, always 5 total
	InfoLink string `json:"infoLink"`
	Address  string `json:"address"`
}

// Query describes a restaurant lookup. Transient, never persisted.
type Query struct {
	Cuisine  string
	Location string
	Count    int
}
