package errors

import (
	"errors"
	"fmt"
	"time"
)

// AgentSDKError is the base interface for all SDK errors.
type AgentSDKError interface {
	error
	IsAgentSDKError() bool
}

// Compile-time verification that all error types implement AgentSDKError.
var (
	_ AgentSDKError = (*CLINotFoundError)(nil)
	_ AgentSDKError = (*ConnectionError)(nil)
	_ AgentSDKError = (*ProcessError)(nil)
	_ AgentSDKError = (*MessageParseError)(nil)
	_ AgentSDKError = (*JSONDecodeError)(nil)
	_ AgentSDKError = (*RequestTimeoutError)(nil)
	_ AgentSDKError = (*HookTimeoutError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrClientNotConnected indicates the client is not connected.
	ErrClientNotConnected = errors.New("client not connected")

	// ErrClientAlreadyConnected indicates the client is already connected.
	ErrClientAlreadyConnected = errors.New("client already connected")

	// ErrClientClosed indicates the client has been closed and cannot be reused.
	ErrClientClosed = errors.New("client closed: clients are single-use, create a new one with New()")

	// ErrTransportNotConnected indicates the transport is not connected.
	ErrTransportNotConnected = errors.New("transport not connected")

	// ErrRequestTimeout indicates a control request timed out.
	// RequestTimeoutError wraps this and carries the request subtype.
	ErrRequestTimeout = errors.New("control request timeout")

	// ErrHookTimeout indicates a hook callback exceeded its registration timeout.
	// HookTimeoutError wraps this and carries the callback id.
	ErrHookTimeout = errors.New("hook callback timeout")

	// ErrMuxStopped indicates the protocol multiplexer has stopped.
	ErrMuxStopped = errors.New("protocol multiplexer stopped")

	// ErrNotStreaming indicates a control request was attempted outside
	// bidirectional streaming mode. This is a programming error: control
	// requests require a session started in streaming mode.
	ErrNotStreaming = errors.New("control requests require streaming mode")

	// ErrRequestCancelled indicates an inbound request handler was cancelled
	// by a control_cancel_request from the CLI.
	ErrRequestCancelled = errors.New("request cancelled")

	// ErrStdinClosed indicates stdin was closed due to context cancellation.
	ErrStdinClosed = errors.New("stdin closed")

	// ErrUnknownMessageType indicates the message type is not recognized by the SDK.
	// Callers should skip these messages rather than treating them as fatal.
	ErrUnknownMessageType = errors.New("unknown message type")
)

// CLINotFoundError indicates the agent CLI binary was not found.
type CLINotFoundError struct {
	SearchedPaths []string
}

func (e *CLINotFoundError) Error() string {
	return fmt.Sprintf("claude CLI not found in: %v", e.SearchedPaths)
}

// IsAgentSDKError implements AgentSDKError.
func (e *CLINotFoundError) IsAgentSDKError() bool { return true }

// ConnectionError indicates the transport is unusable.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to CLI: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsAgentSDKError implements AgentSDKError.
func (e *ConnectionError) IsAgentSDKError() bool { return true }

// ProcessError indicates the CLI process failed.
type ProcessError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("CLI process failed (exit %d): %v", e.ExitCode, e.Err)
	}

	return fmt.Sprintf("CLI process failed (exit %d): %s", e.ExitCode, e.Stderr)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// IsAgentSDKError implements AgentSDKError.
func (e *ProcessError) IsAgentSDKError() bool { return true }

// MessageParseError indicates conversation message parsing failed.
type MessageParseError struct {
	Message string
	Err     error
	Data    map[string]any
}

func (e *MessageParseError) Error() string {
	return fmt.Sprintf("failed to parse message: %v", e.Err)
}

func (e *MessageParseError) Unwrap() error {
	return e.Err
}

// IsAgentSDKError implements AgentSDKError.
func (e *MessageParseError) IsAgentSDKError() bool { return true }

// JSONDecodeError indicates a line from the CLI could not be decoded as JSON.
// The original raw line is preserved for diagnostics.
type JSONDecodeError struct {
	RawData string
	Err     error
}

func (e *JSONDecodeError) Error() string {
	return fmt.Sprintf("failed to decode JSON from CLI: %v", e.Err)
}

func (e *JSONDecodeError) Unwrap() error {
	return e.Err
}

// IsAgentSDKError implements AgentSDKError.
func (e *JSONDecodeError) IsAgentSDKError() bool { return true }

// RequestTimeoutError indicates an outbound control request exceeded its
// ceiling. Subtype identifies which kind of request timed out.
type RequestTimeoutError struct {
	Subtype string
	Ceiling time.Duration
}

func (e *RequestTimeoutError) Error() string {
	return fmt.Sprintf("control request %q timed out after %s", e.Subtype, e.Ceiling)
}

func (e *RequestTimeoutError) Unwrap() error {
	return ErrRequestTimeout
}

// IsAgentSDKError implements AgentSDKError.
func (e *RequestTimeoutError) IsAgentSDKError() bool { return true }

// HookTimeoutError indicates a hook callback exceeded the timeout declared
// on its registration.
type HookTimeoutError struct {
	CallbackID string
	Ceiling    time.Duration
}

func (e *HookTimeoutError) Error() string {
	return fmt.Sprintf("hook callback %q timed out after %s", e.CallbackID, e.Ceiling)
}

func (e *HookTimeoutError) Unwrap() error {
	return ErrHookTimeout
}

// IsAgentSDKError implements AgentSDKError.
func (e *HookTimeoutError) IsAgentSDKError() bool { return true }
