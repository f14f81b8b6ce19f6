package a2ui

import "fmt"

// Validate checks universal constraints on Request.
// Provider implementations may apply additional provider-specific validation.
func (r Request) Validate() error {
	if r.Temperature != nil {
		if *r.Temperature < 0 || *r.Temperature > 2 {
			return fmt.Errorf("temperature must be in [0, 2], got %g: %w", *r.Temperature, ErrValidation)
		}
	}
	if r.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be non-negative, got %d: %w", r.MaxTokens, ErrValidation)
	}
	return nil
}

// ValidateMessage checks that a message's content blocks are valid for its role.
// Tool calls may only appear in assistant messages.
func ValidateMessage(msg Message) error {
	switch m := msg.(type) {
	case UserMessage:
		for _, b := range m.Content {
			if _, ok := b.(ToolCallBlock); ok {
				return fmt.Errorf("ToolCallBlock not allowed in %s message: %w", m.Role(), ErrValidation)
			}
		}
		return nil
	case AssistantMessage, ToolResultMessage:
		return nil
	default:
		return fmt.Errorf("unknown message type %T: %w", msg, ErrValidation)
	}
}
