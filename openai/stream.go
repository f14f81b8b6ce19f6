package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/forestxieCode/a2ui"
	"github.com/openai/openai-go"
)

// chunkSource is the slice of *ssestream.Stream[openai.ChatCompletionChunk]
// the stream consumes. Tests substitute a fake fed from fabricated chunks.
type chunkSource interface {
	Next() bool
	Current() openai.ChatCompletionChunk
	Err() error
	Close() error
}

// stream implements [a2ui.Stream] over the SDK's chunk stream. Tool call
// arguments arrive fragmented across chunks, keyed by index; each fragment
// becomes an EventToolCallDelta, and a call is sealed with EventToolCallEnd
// when a later call starts or the source ends.
type stream struct {
	src     chunkSource
	ctx     context.Context
	state   a2ui.StreamState
	pending []a2ui.Event
	srcDone bool

	textBuf strings.Builder
	calls   []*callState
	slots   map[int]int // delta index -> position in calls; indexes may be sparse
	open    int         // position in calls of the call still accumulating, -1 if none
	usage   a2ui.Usage
	stopRsn a2ui.StopReason
	rawStop string
	msg     a2ui.AssistantMessage
	err     error
}

type callState struct {
	id      string
	name    string
	argsBuf strings.Builder
}

// Interface compliance check.
var _ a2ui.Stream = (*stream)(nil)

func newStream(ctx context.Context, src chunkSource) *stream {
	return &stream{
		src:     src,
		ctx:     ctx,
		state:   a2ui.StreamStateNew,
		slots:   make(map[int]int),
		open:    -1,
		stopRsn: a2ui.StopUnknown,
	}
}

func (s *stream) Next() (a2ui.Event, error) {
	switch s.state {
	case a2ui.StreamStateComplete:
		return nil, io.EOF
	case a2ui.StreamStateError:
		return nil, s.err
	case a2ui.StreamStateClosed:
		return nil, fmt.Errorf("openai: %w", a2ui.ErrStreamClosed)
	}

	for {
		if len(s.pending) > 0 {
			evt := s.pending[0]
			s.pending = s.pending[1:]
			return evt, nil
		}
		if s.srcDone {
			s.state = a2ui.StreamStateComplete
			s.buildMessage()
			return nil, io.EOF
		}

		if !s.src.Next() {
			if err := s.src.Err(); err != nil {
				s.terminate(fmt.Errorf("openai: %w", err))
				return nil, s.err
			}
			s.srcDone = true
			s.sealOpenCall()
			continue
		}

		s.state = a2ui.StreamStateStreaming
		s.processChunk(s.src.Current())
	}
}

func (s *stream) State() a2ui.StreamState {
	return s.state
}

func (s *stream) Message() (a2ui.AssistantMessage, error) {
	if s.state == a2ui.StreamStateNew {
		return a2ui.AssistantMessage{}, fmt.Errorf("openai: %w", a2ui.ErrStreamNotReady)
	}
	if s.state == a2ui.StreamStateStreaming {
		s.buildMessage()
	}
	return s.msg, nil
}

func (s *stream) Close() error {
	if s.state != a2ui.StreamStateComplete && s.state != a2ui.StreamStateError {
		s.state = a2ui.StreamStateClosed
		s.buildMessage()
		s.msg.StopReason = a2ui.StopAborted
		s.msg.RawStopReason = "aborted"
	}
	return s.src.Close()
}

func (s *stream) terminate(err error) {
	s.state = a2ui.StreamStateError
	s.err = err
	s.buildMessage()
	if s.ctx.Err() != nil {
		s.msg.StopReason = a2ui.StopAborted
		s.msg.RawStopReason = "aborted"
	} else {
		s.msg.StopReason = a2ui.StopError
		s.msg.RawStopReason = "error"
	}
}

func (s *stream) processChunk(chunk openai.ChatCompletionChunk) {
	if chunk.Usage.PromptTokens != 0 || chunk.Usage.CompletionTokens != 0 {
		s.usage = a2ui.Usage{
			InputTokens:  int(chunk.Usage.PromptTokens),
			OutputTokens: int(chunk.Usage.CompletionTokens),
		}
	}

	if len(chunk.Choices) == 0 {
		return
	}
	choice := chunk.Choices[0]

	if choice.Delta.Content != "" {
		s.textBuf.WriteString(choice.Delta.Content)
		s.pending = append(s.pending, a2ui.EventTextDelta{Delta: choice.Delta.Content})
	}

	for _, tc := range choice.Delta.ToolCalls {
		idx := int(tc.Index)
		slot, seen := s.slots[idx]
		if !seen {
			// A new call starts; the previous one has all its fragments.
			s.sealOpenCall()
			cs := &callState{id: tc.ID, name: tc.Function.Name}
			if cs.id == "" {
				cs.id = fmt.Sprintf("call_%d", len(s.calls)+1)
			}
			s.calls = append(s.calls, cs)
			slot = len(s.calls) - 1
			s.slots[idx] = slot
			s.open = slot
			s.pending = append(s.pending, a2ui.EventToolCallBegin{ID: cs.id, Name: cs.name})
		}
		if tc.Function.Arguments != "" {
			cs := s.calls[slot]
			cs.argsBuf.WriteString(tc.Function.Arguments)
			s.pending = append(s.pending, a2ui.EventToolCallDelta{ID: cs.id, Delta: tc.Function.Arguments})
		}
	}

	switch string(choice.FinishReason) {
	case "":
	case "length":
		s.stopRsn = a2ui.StopLength
		s.rawStop = string(choice.FinishReason)
		s.sealOpenCall()
	case "tool_calls":
		s.stopRsn = a2ui.StopToolUse
		s.rawStop = string(choice.FinishReason)
		s.sealOpenCall()
	default:
		s.stopRsn = a2ui.StopEndTurn
		s.rawStop = string(choice.FinishReason)
		s.sealOpenCall()
	}
}

// sealOpenCall emits EventToolCallEnd for the call still accumulating.
func (s *stream) sealOpenCall() {
	if s.open < 0 {
		return
	}
	cs := s.calls[s.open]
	s.open = -1
	s.pending = append(s.pending, a2ui.EventToolCallEnd{Call: cs.block()})
}

func (cs *callState) block() a2ui.ToolCallBlock {
	args := cs.argsBuf.String()
	if args == "" {
		args = "{}"
	}
	return a2ui.ToolCallBlock{ID: cs.id, Name: cs.name, Arguments: json.RawMessage(args)}
}

func (s *stream) buildMessage() {
	var content []a2ui.ContentBlock
	if s.textBuf.Len() > 0 {
		content = append(content, a2ui.TextBlock{Text: s.textBuf.String()})
	}
	for _, cs := range s.calls {
		content = append(content, cs.block())
	}

	stopReason := s.stopRsn
	if len(s.calls) > 0 && (stopReason == a2ui.StopEndTurn || stopReason == a2ui.StopUnknown) {
		stopReason = a2ui.StopToolUse
	}

	s.msg = a2ui.AssistantMessage{
		Content:       content,
		StopReason:    stopReason,
		RawStopReason: s.rawStop,
		Usage:         s.usage,
	}
}
