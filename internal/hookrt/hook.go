// Package hookrt implements the hook runtime: typed lifecycle-event inputs,
// callback registration, and dispatch of inbound hook_callback requests.
package hookrt

import "context"

// Event identifies the lifecycle point that triggers a hook.
type Event string

const (
	// EventPreToolUse fires before a tool is executed.
	EventPreToolUse Event = "PreToolUse"
	// EventPostToolUse fires after a tool executed successfully.
	EventPostToolUse Event = "PostToolUse"
	// EventPostToolUseFailure fires after a tool execution failed.
	EventPostToolUseFailure Event = "PostToolUseFailure"
	// EventUserPromptSubmit fires when a user prompt is submitted.
	EventUserPromptSubmit Event = "UserPromptSubmit"
	// EventStop fires when the session stops.
	EventStop Event = "Stop"
	// EventSubagentStop fires when a subagent stops.
	EventSubagentStop Event = "SubagentStop"
	// EventSubagentStart fires when a subagent starts.
	EventSubagentStart Event = "SubagentStart"
	// EventNotification fires when the CLI emits a notification.
	EventNotification Event = "Notification"
	// EventPermissionRequest fires when a permission prompt would be shown.
	EventPermissionRequest Event = "PermissionRequest"
	// EventPreCompact fires before conversation compaction.
	EventPreCompact Event = "PreCompact"
)

// BaseInput carries the fields shared by every hook event.
//
//nolint:tagliatelle // CLI protocol uses snake_case
type BaseInput struct {
	SessionID      string  `json:"session_id"`
	TranscriptPath string  `json:"transcript_path"`
	Cwd            string  `json:"cwd"`
	PermissionMode *string `json:"permission_mode,omitempty"`
}

// Base returns the shared fields. It also serves as the embedding hook for
// the Input interface.
func (b BaseInput) Base() BaseInput { return b }

// Input is implemented by all typed hook inputs.
type Input interface {
	EventName() Event
	Base() BaseInput
}

// Compile-time verification that all hook input types implement Input.
var (
	_ Input = (*PreToolUseInput)(nil)
	_ Input = (*PostToolUseInput)(nil)
	_ Input = (*PostToolUseFailureInput)(nil)
	_ Input = (*UserPromptSubmitInput)(nil)
	_ Input = (*StopInput)(nil)
	_ Input = (*SubagentStopInput)(nil)
	_ Input = (*SubagentStartInput)(nil)
	_ Input = (*NotificationInput)(nil)
	_ Input = (*PermissionRequestInput)(nil)
	_ Input = (*PreCompactInput)(nil)
	_ Input = (*GenericInput)(nil)
)

// PreToolUseInput is delivered before a tool runs.
//
//nolint:tagliatelle // CLI protocol uses snake_case
type PreToolUseInput struct {
	BaseInput
	ToolName  string         `json:"tool_name"`
	ToolInput map[string]any `json:"tool_input"`
	ToolUseID string         `json:"tool_use_id"`
}

// EventName implements Input.
func (*PreToolUseInput) EventName() Event { return EventPreToolUse }

// PostToolUseInput is delivered after a tool ran successfully.
//
//nolint:tagliatelle // CLI protocol uses snake_case
type PostToolUseInput struct {
	BaseInput
	ToolName     string         `json:"tool_name"`
	ToolInput    map[string]any `json:"tool_input"`
	ToolUseID    string         `json:"tool_use_id"`
	ToolResponse any            `json:"tool_response"`
}

// EventName implements Input.
func (*PostToolUseInput) EventName() Event { return EventPostToolUse }

// PostToolUseFailureInput is delivered after a tool run failed.
//
//nolint:tagliatelle // CLI protocol uses snake_case
type PostToolUseFailureInput struct {
	BaseInput
	ToolName    string         `json:"tool_name"`
	ToolInput   map[string]any `json:"tool_input"`
	ToolUseID   string         `json:"tool_use_id"`
	Error       string         `json:"error"`
	IsInterrupt *bool          `json:"is_interrupt,omitempty"`
}

// EventName implements Input.
func (*PostToolUseFailureInput) EventName() Event { return EventPostToolUseFailure }

// UserPromptSubmitInput is delivered when the user submits a prompt.
type UserPromptSubmitInput struct {
	BaseInput
	Prompt string `json:"prompt"`
}

// EventName implements Input.
func (*UserPromptSubmitInput) EventName() Event { return EventUserPromptSubmit }

// StopInput is delivered when the session stops.
//
//nolint:tagliatelle // CLI protocol uses snake_case
type StopInput struct {
	BaseInput
	StopHookActive bool `json:"stop_hook_active"`
}

// EventName implements Input.
func (*StopInput) EventName() Event { return EventStop }

// SubagentStopInput is delivered when a subagent stops.
//
//nolint:tagliatelle // CLI protocol uses snake_case
type SubagentStopInput struct {
	BaseInput
	StopHookActive      bool   `json:"stop_hook_active"`
	AgentID             string `json:"agent_id"`
	AgentTranscriptPath string `json:"agent_transcript_path"`
	AgentType           string `json:"agent_type"`
}

// EventName implements Input.
func (*SubagentStopInput) EventName() Event { return EventSubagentStop }

// SubagentStartInput is delivered when a subagent starts.
//
//nolint:tagliatelle // CLI protocol uses snake_case
type SubagentStartInput struct {
	BaseInput
	AgentID   string `json:"agent_id"`
	AgentType string `json:"agent_type"`
}

// EventName implements Input.
func (*SubagentStartInput) EventName() Event { return EventSubagentStart }

// NotificationInput is delivered when the CLI emits a notification.
//
//nolint:tagliatelle // CLI protocol uses snake_case
type NotificationInput struct {
	BaseInput
	Message          string  `json:"message"`
	Title            *string `json:"title,omitempty"`
	NotificationType string  `json:"notification_type"`
}

// EventName implements Input.
func (*NotificationInput) EventName() Event { return EventNotification }

// PermissionRequestInput is delivered when a permission prompt would be shown.
//
//nolint:tagliatelle // CLI protocol uses snake_case
type PermissionRequestInput struct {
	BaseInput
	ToolName              string         `json:"tool_name"`
	ToolInput             map[string]any `json:"tool_input"`
	PermissionSuggestions []any          `json:"permission_suggestions,omitempty"`
}

// EventName implements Input.
func (*PermissionRequestInput) EventName() Event { return EventPermissionRequest }

// PreCompactInput is delivered before conversation compaction.
//
//nolint:tagliatelle // CLI protocol uses snake_case
type PreCompactInput struct {
	BaseInput
	Trigger            string  `json:"trigger"` // "manual" or "auto"
	CustomInstructions *string `json:"custom_instructions,omitempty"`
}

// EventName implements Input.
func (*PreCompactInput) EventName() Event { return EventPreCompact }

// GenericInput carries only the base fields. It is the forward-compatible
// fallback for event names this SDK version does not know about.
type GenericInput struct {
	BaseInput
	Event Event `json:"hook_event_name"` //nolint:tagliatelle // CLI protocol uses snake_case
}

// EventName implements Input.
func (g *GenericInput) EventName() Event { return g.Event }

// Context is passed to hook callbacks alongside the typed input. It exposes
// the cancellation signal for the in-flight request servicing this callback.
type Context struct {
	signal <-chan struct{}
}

// NewContext creates a hook Context backed by the given cancellation signal.
func NewContext(signal <-chan struct{}) *Context {
	return &Context{signal: signal}
}

// Signal returns a channel that is closed when the CLI cancels the request
// that triggered this callback. Long-running callbacks should select on it.
func (c *Context) Signal() <-chan struct{} {
	return c.signal
}

// Callback is the function signature for hook callbacks.
type Callback func(
	ctx context.Context,
	input Input,
	toolUseID *string,
	hookCtx *Context,
) (Output, error)

// Matcher configures which tools/events a set of hooks applies to.
type Matcher struct {
	// Matcher is a tool name like "Bash" or a pipe-separated combination
	// like "Write|Edit". When nil, the hooks match all tools/events.
	// This is NOT regex - pipe (|) separates multiple names.
	Matcher *string
	Hooks   []Callback
	// Timeout in seconds for each callback in this matcher. When nil the
	// callback runs without a local deadline.
	Timeout *float64
}
