package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/forestxieCode/a2ui"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Interface compliance check.
var _ a2ui.Provider = (*Client)(nil)

// Client implements [a2ui.Provider] for the OpenAI API.
type Client struct {
	client *openai.Client
	model  string
}

// Option configures a [Client].
type Option func(*Client, *[]option.RequestOption)

// WithModel sets the default model ID.
func WithModel(model string) Option {
	return func(c *Client, _ *[]option.RequestOption) { c.model = model }
}

// WithBaseURL overrides the API base URL, for proxies and compatible servers.
func WithBaseURL(baseURL string) Option {
	return func(_ *Client, reqOpts *[]option.RequestOption) {
		*reqOpts = append(*reqOpts, option.WithBaseURL(baseURL))
	}
}

// New creates a new OpenAI [Client] with the given API key and options.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{model: defaultModel}
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	for _, o := range opts {
		o(c, &reqOpts)
	}
	c.client = openai.NewClient(reqOpts...)
	return c
}

// Stream sends a streaming chat completion request and returns an
// [a2ui.Stream] that emits semantic events.
func (c *Client) Stream(ctx context.Context, req a2ui.Request) (a2ui.Stream, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}

	model := req.Model
	if model == "" {
		model = c.model
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	params := openai.ChatCompletionNewParams{
		Messages:  openai.F(ConvertMessages(req.SystemPrompt, req.Messages)),
		Model:     openai.F(model),
		MaxTokens: openai.F(int64(maxTokens)),
		StreamOptions: openai.F(openai.ChatCompletionStreamOptionsParam{
			IncludeUsage: openai.F(true),
		}),
	}
	if req.Temperature != nil {
		params.Temperature = openai.F(*req.Temperature)
	}
	if tools := ConvertTools(req.Tools); len(tools) > 0 {
		params.Tools = openai.F(tools)
	}

	sse := c.client.Chat.Completions.NewStreaming(ctx, params)
	return newStream(ctx, sse), nil
}

// ConvertMessages converts a2ui Messages to OpenAI message params. The system
// prompt, if non-empty, becomes the leading system message.
// Exported for testing.
func ConvertMessages(systemPrompt string, msgs []a2ui.Message) []openai.ChatCompletionMessageParamUnion {
	var result []openai.ChatCompletionMessageParamUnion
	if systemPrompt != "" {
		result = append(result, openai.SystemMessage(systemPrompt))
	}

	for _, msg := range msgs {
		switch m := msg.(type) {
		case a2ui.UserMessage:
			var text string
			for _, b := range m.Content {
				if tb, ok := b.(a2ui.TextBlock); ok {
					text += tb.Text
				}
			}
			result = append(result, openai.UserMessage(text))
		case a2ui.AssistantMessage:
			result = append(result, convertAssistant(m)...)
		case a2ui.ToolResultMessage:
			result = append(result, openai.ChatCompletionToolMessageParam{
				Role: openai.F(openai.ChatCompletionToolMessageParamRoleTool),
				Content: openai.F([]openai.ChatCompletionContentPartTextParam{{
					Type: openai.F(openai.ChatCompletionContentPartTextTypeText),
					Text: openai.F(m.Content),
				}}),
				ToolCallID: openai.F(m.ToolCallID),
			})
		}
	}
	return result
}

// convertAssistant maps one assistant message. Prose goes out as a plain
// assistant message; tool calls get their own param carrying the call list,
// since the API accepts the two side by side in history.
func convertAssistant(m a2ui.AssistantMessage) []openai.ChatCompletionMessageParamUnion {
	var result []openai.ChatCompletionMessageParamUnion

	if text := m.Text(); text != "" {
		result = append(result, openai.AssistantMessage(text))
	}

	var calls []openai.ChatCompletionMessageToolCallParam
	for _, b := range m.Content {
		tc, ok := b.(a2ui.ToolCallBlock)
		if !ok {
			continue
		}
		calls = append(calls, openai.ChatCompletionMessageToolCallParam{
			ID:   openai.F(tc.ID),
			Type: openai.F(openai.ChatCompletionMessageToolCallTypeFunction),
			Function: openai.F(openai.ChatCompletionMessageToolCallFunctionParam{
				Name:      openai.F(tc.Name),
				Arguments: openai.F(string(tc.Arguments)),
			}),
		})
	}
	if len(calls) > 0 {
		result = append(result, openai.ChatCompletionAssistantMessageParam{
			Role:      openai.F(openai.ChatCompletionAssistantMessageParamRoleAssistant),
			ToolCalls: openai.F(calls),
		})
	}
	return result
}

// ConvertTools converts a2ui Tools to OpenAI tool params.
// Exported for testing.
func ConvertTools(tools []a2ui.Tool) []openai.ChatCompletionToolParam {
	result := make([]openai.ChatCompletionToolParam, 0, len(tools))
	for _, t := range tools {
		// Parameters is json.RawMessage - always valid JSON from domain types.
		var params openai.FunctionParameters
		_ = json.Unmarshal(t.Parameters, &params)
		result = append(result, openai.ChatCompletionToolParam{
			Type: openai.F(openai.ChatCompletionToolTypeFunction),
			Function: openai.F(openai.FunctionDefinitionParam{
				Name:        openai.F(t.Name),
				Description: openai.F(t.Description),
				Parameters:  openai.F(params),
			}),
		})
	}
	return result
}
