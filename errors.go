package claudeagent

import "github.com/ya-luotao/claude-agent-sdk-go/internal/errors"

// Re-export error types from internal package

// CLINotFoundError indicates the Claude CLI binary was not found.
type CLINotFoundError = errors.CLINotFoundError

// ConnectionError indicates failure to connect to the CLI.
type ConnectionError = errors.ConnectionError

// ProcessError indicates the CLI process failed.
type ProcessError = errors.ProcessError

// MessageParseError indicates message parsing failed.
type MessageParseError = errors.MessageParseError

// JSONDecodeError indicates JSON parsing failed for CLI output.
type JSONDecodeError = errors.JSONDecodeError

// RequestTimeoutError indicates a control request exceeded its deadline.
// Subtype names the operation and Ceiling is the timeout that was applied.
type RequestTimeoutError = errors.RequestTimeoutError

// HookTimeoutError indicates a hook callback exceeded its configured timeout.
type HookTimeoutError = errors.HookTimeoutError

// AgentSDKError is the base interface for all SDK errors.
type AgentSDKError = errors.AgentSDKError

// Re-export sentinel errors from internal package.
var (
	// ErrClientNotConnected indicates the client is not connected.
	ErrClientNotConnected = errors.ErrClientNotConnected

	// ErrClientAlreadyConnected indicates the client is already connected.
	ErrClientAlreadyConnected = errors.ErrClientAlreadyConnected

	// ErrClientClosed indicates the client has been closed and cannot be reused.
	ErrClientClosed = errors.ErrClientClosed

	// ErrTransportNotConnected indicates the transport is not connected.
	ErrTransportNotConnected = errors.ErrTransportNotConnected

	// ErrRequestTimeout indicates a control request timed out.
	ErrRequestTimeout = errors.ErrRequestTimeout

	// ErrHookTimeout indicates a hook callback timed out.
	ErrHookTimeout = errors.ErrHookTimeout

	// ErrRequestCancelled indicates an in-flight control request was cancelled.
	ErrRequestCancelled = errors.ErrRequestCancelled

	// ErrNotStreaming indicates a control request was attempted outside
	// streaming mode.
	ErrNotStreaming = errors.ErrNotStreaming
)
