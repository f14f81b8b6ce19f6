package a2ui

import "time"

// Session represents a conversation session.
type Session struct {
	ID           string
	Messages     []Message
	SystemPrompt string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LastAssistantText returns the text of the most recent assistant message,
// or empty string if the session has none. This is the text the payload
// validator runs against after a loop turn completes.
func (s *Session) LastAssistantText() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if am, ok := s.Messages[i].(AssistantMessage); ok {
			return am.Text()
		}
	}
	return ""
}
