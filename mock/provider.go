// Package mock provides test doubles for a2ui interfaces using function fields.
package mock

import (
	"context"

	"github.com/forestxieCode/a2ui"
)

// Interface compliance checks.
var (
	_ a2ui.Provider = (*Provider)(nil)
	_ a2ui.Stream   = (*Stream)(nil)
)

// Provider is a test double for a2ui.Provider.
// Set StreamFn before calling Stream.
type Provider struct {
	StreamFn func(ctx context.Context, req a2ui.Request) (a2ui.Stream, error)
}

// Stream delegates to StreamFn.
func (p *Provider) Stream(ctx context.Context, req a2ui.Request) (a2ui.Stream, error) {
	return p.StreamFn(ctx, req)
}

// Stream is a test double for a2ui.Stream.
// Set the function fields for the methods you need.
type Stream struct {
	NextFn    func() (a2ui.Event, error)
	StateFn   func() a2ui.StreamState
	MessageFn func() (a2ui.AssistantMessage, error)
	CloseFn   func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (a2ui.Event, error) {
	return s.NextFn()
}

// State delegates to StateFn.
func (s *Stream) State() a2ui.StreamState {
	return s.StateFn()
}

// Message delegates to MessageFn.
func (s *Stream) Message() (a2ui.AssistantMessage, error) {
	return s.MessageFn()
}

// Close delegates to CloseFn.
func (s *Stream) Close() error {
	return s.CloseFn()
}
