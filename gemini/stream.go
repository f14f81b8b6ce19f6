package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/forestxieCode/a2ui"
	"google.golang.org/genai"
)

// stream implements [a2ui.Stream] by wrapping the genai SDK's streaming
// iterator. Function call arguments arrive complete in a single part, so
// tool calls emit Begin and End events with no intermediate deltas.
type stream struct {
	pull    func() (*genai.GenerateContentResponse, error, bool)
	stop    func()
	ctx     context.Context
	state   a2ui.StreamState
	pending []a2ui.Event // events translated but not yet returned

	textBuf   strings.Builder
	toolCalls []a2ui.ToolCallBlock
	usage     a2ui.Usage
	stopRsn   a2ui.StopReason
	rawStop   string
	msg       a2ui.AssistantMessage
	finalized bool
	err       error
}

// Interface compliance check.
var _ a2ui.Stream = (*stream)(nil)

// NewStreamFromIter wraps a genai streaming iterator in an [a2ui.Stream].
// Exported for testing with fabricated chunk sequences.
func NewStreamFromIter(ctx context.Context, iterFn iter.Seq2[*genai.GenerateContentResponse, error]) a2ui.Stream {
	next, stop := iter.Pull2(iterFn)
	return &stream{
		pull:    next,
		stop:    stop,
		ctx:     ctx,
		state:   a2ui.StreamStateNew,
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
		return nil, fmt.Errorf("gemini: %w", a2ui.ErrStreamClosed)
	}

	for {
		if len(s.pending) > 0 {
			evt := s.pending[0]
			s.pending = s.pending[1:]
			return evt, nil
		}

		chunk, err, ok := s.pull()
		if !ok {
			s.finalize()
			s.state = a2ui.StreamStateComplete
			return nil, io.EOF
		}
		if err != nil {
			s.terminate(fmt.Errorf("gemini: %w", err))
			return nil, s.err
		}

		s.state = a2ui.StreamStateStreaming
		if err := s.processChunk(chunk); err != nil {
			s.terminate(err)
			return nil, s.err
		}
	}
}

func (s *stream) State() a2ui.StreamState {
	return s.state
}

func (s *stream) Message() (a2ui.AssistantMessage, error) {
	if s.state == a2ui.StreamStateNew {
		return a2ui.AssistantMessage{}, fmt.Errorf("gemini: %w", a2ui.ErrStreamNotReady)
	}
	if !s.finalized {
		s.finalize()
		// A partial read still allows further Next() calls; undo the flag
		// so finalize runs again with more content later.
		if s.state == a2ui.StreamStateStreaming {
			s.finalized = false
		}
	}
	return s.msg, nil
}

func (s *stream) Close() error {
	if s.state != a2ui.StreamStateComplete && s.state != a2ui.StreamStateError {
		s.state = a2ui.StreamStateClosed
		s.finalize()
		s.msg.StopReason = a2ui.StopAborted
		s.msg.RawStopReason = "aborted"
	}
	s.stop()
	return nil
}

// terminate records a terminal error and the matching stop reason.
func (s *stream) terminate(err error) {
	s.state = a2ui.StreamStateError
	s.err = err
	s.finalize()
	if s.ctx.Err() != nil {
		s.msg.StopReason = a2ui.StopAborted
		s.msg.RawStopReason = "aborted"
	} else {
		s.msg.StopReason = a2ui.StopError
		s.msg.RawStopReason = "error"
	}
}

// processChunk translates one SDK chunk into pending events and accumulates
// message state. Nil and empty chunks are skipped.
func (s *stream) processChunk(chunk *genai.GenerateContentResponse) error {
	if chunk == nil {
		return nil
	}

	if chunk.UsageMetadata != nil {
		s.usage = a2ui.Usage{
			InputTokens:  clampNonNegative(int(chunk.UsageMetadata.PromptTokenCount)),
			OutputTokens: clampNonNegative(int(chunk.UsageMetadata.CandidatesTokenCount)),
		}
	}

	if len(chunk.Candidates) == 0 {
		if chunk.PromptFeedback != nil && chunk.PromptFeedback.BlockReason != "" {
			return fmt.Errorf("gemini: prompt blocked: %s", chunk.PromptFeedback.BlockReason)
		}
		return nil
	}

	cand := chunk.Candidates[0]
	switch cand.FinishReason {
	case genai.FinishReasonMaxTokens:
		s.stopRsn = a2ui.StopLength
		s.rawStop = string(cand.FinishReason)
	case "":
		// Mid-stream chunk; leave the stop reason alone.
	default:
		s.stopRsn = a2ui.StopEndTurn
		s.rawStop = string(cand.FinishReason)
	}

	if cand.Content == nil {
		return nil
	}

	for _, part := range cand.Content.Parts {
		if part == nil {
			continue
		}
		switch {
		case part.FunctionCall != nil:
			if err := s.processFunctionCall(part.FunctionCall); err != nil {
				return err
			}
		case part.Text != "":
			s.textBuf.WriteString(part.Text)
			s.pending = append(s.pending, a2ui.EventTextDelta{Delta: part.Text})
		}
	}
	return nil
}

func (s *stream) processFunctionCall(fc *genai.FunctionCall) error {
	args, err := json.Marshal(fc.Args)
	if err != nil {
		return fmt.Errorf("gemini: marshaling function call args: %w", err)
	}
	if fc.Args == nil {
		args = []byte("{}")
	}

	id := fc.ID
	if id == "" {
		// Gemini frequently omits call IDs; synthesize stable ones.
		id = fmt.Sprintf("call_%d", len(s.toolCalls)+1)
	}

	call := a2ui.ToolCallBlock{ID: id, Name: fc.Name, Arguments: args}
	s.toolCalls = append(s.toolCalls, call)
	s.pending = append(s.pending,
		a2ui.EventToolCallBegin{ID: id, Name: fc.Name},
		a2ui.EventToolCallEnd{Call: call},
	)
	return nil
}

// finalize assembles the AssistantMessage from accumulated state.
func (s *stream) finalize() {
	if s.finalized {
		return
	}
	s.finalized = true

	var content []a2ui.ContentBlock
	if s.textBuf.Len() > 0 {
		content = append(content, a2ui.TextBlock{Text: s.textBuf.String()})
	}
	for _, tc := range s.toolCalls {
		content = append(content, tc)
	}

	stopReason := s.stopRsn
	if len(s.toolCalls) > 0 && (stopReason == a2ui.StopEndTurn || stopReason == a2ui.StopUnknown) {
		stopReason = a2ui.StopToolUse
	}

	s.msg = a2ui.AssistantMessage{
		Content:       content,
		StopReason:    stopReason,
		RawStopReason: s.rawStop,
		Usage:         s.usage,
	}
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
