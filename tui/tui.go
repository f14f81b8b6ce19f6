// Package tui provides the Bubble Tea chat client.
//
// The client streams assistant prose as it arrives, and once a turn
// completes it validates the response against the UI payload contract:
// prose before the delimiter renders as markdown, the JSON document after
// it renders as restaurant cards.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/forestxieCode/a2ui"
)

// AgentFunc runs the agent loop. The onEvent callback is called for each
// streaming event. The function blocks until the agent completes or the
// context is cancelled.
type AgentFunc func(ctx context.Context, session *a2ui.Session, onEvent func(a2ui.Event)) error

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits. The context is used for graceful shutdown - when cancelled, the
// program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// StreamEventMsg wraps a streaming event for delivery to the Bubble Tea model.
type StreamEventMsg struct {
	Event a2ui.Event
}

// AgentDoneMsg signals that the agent loop has completed.
type AgentDoneMsg struct {
	Err error
}
