package a2ui

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request or message failed validation.
	ErrValidation = errors.New("validation error")

	// ErrStreamNotReady indicates Message() was called before Next().
	ErrStreamNotReady = errors.New("stream not ready: call Next() first")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")

	// ErrToolNotFound indicates the requested tool does not exist.
	ErrToolNotFound = errors.New("tool not found")

	// ErrMissingPayload indicates the assistant's final response lacks the
	// UI payload delimiter. Fatal at the rendering boundary.
	ErrMissingPayload = errors.New("response contains no UI payload delimiter")

	// ErrInvalidPayload indicates the text after the delimiter is not valid JSON.
	ErrInvalidPayload = errors.New("UI payload is not valid JSON")
)
