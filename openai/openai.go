// Package openai implements [a2ui.Provider] for the OpenAI Chat Completions
// API.
//
// It wraps the github.com/openai/openai-go SDK. Unlike Gemini, tool call
// arguments arrive as streamed fragments, so the stream emits intermediate
// [a2ui.EventToolCallDelta] events between Begin and End.
package openai

const (
	defaultModel     = "gpt-4o"
	defaultMaxTokens = 8192
)
