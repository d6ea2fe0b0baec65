package hookrt

// Output is the interface for hook callback return values.
// Typed outputs implement WireEncoder; plain map[string]any values are also
// accepted and have their keys renamed to wire spellings on encode.
type Output any

// WireEncoder is implemented by output values that know their own wire shape.
type WireEncoder interface {
	EncodeWire() map[string]any
}

// Compile-time verification that output types implement WireEncoder.
var (
	_ WireEncoder = (*SyncOutput)(nil)
	_ WireEncoder = (*AsyncOutput)(nil)
)

// SyncOutput is the standard hook output: decision, messaging, and an
// optional event-specific payload.
type SyncOutput struct {
	Continue       *bool
	SuppressOutput *bool
	StopReason     *string
	Decision       *string // "block"
	SystemMessage  *string
	Reason         *string
	SpecificOutput SpecificOutput
}

// EncodeWire implements WireEncoder.
func (o *SyncOutput) EncodeWire() map[string]any {
	result := make(map[string]any, 8)

	if o.Continue != nil {
		result["continue"] = *o.Continue
	} else {
		result["continue"] = true
	}

	if o.SuppressOutput != nil {
		result["suppressOutput"] = *o.SuppressOutput
	}

	if o.StopReason != nil {
		result["stopReason"] = *o.StopReason
	}

	if o.Decision != nil {
		result["decision"] = *o.Decision
	}

	if o.SystemMessage != nil {
		result["systemMessage"] = *o.SystemMessage
	}

	if o.Reason != nil {
		result["reason"] = *o.Reason
	}

	if o.SpecificOutput != nil {
		result["hookSpecificOutput"] = o.SpecificOutput
	}

	return result
}

// AsyncOutput requests asynchronous hook completion.
type AsyncOutput struct {
	Async        bool
	AsyncTimeout *int // milliseconds
}

// EncodeWire implements WireEncoder.
func (o *AsyncOutput) EncodeWire() map[string]any {
	result := map[string]any{"async": o.Async}
	if o.AsyncTimeout != nil {
		result["asyncTimeout"] = *o.AsyncTimeout
	}

	return result
}

// SpecificOutput is the interface for event-specific output payloads.
type SpecificOutput interface {
	SpecificEventName() string
}

// Compile-time verification that specific output types implement SpecificOutput.
var (
	_ SpecificOutput = (*PreToolUseOutput)(nil)
	_ SpecificOutput = (*PostToolUseOutput)(nil)
	_ SpecificOutput = (*UserPromptSubmitOutput)(nil)
	_ SpecificOutput = (*PermissionRequestOutput)(nil)
)

// PreToolUseOutput is the event-specific payload for PreToolUse hooks.
type PreToolUseOutput struct {
	HookEventName            string         `json:"hookEventName"` // "PreToolUse"
	PermissionDecision       *string        `json:"permissionDecision,omitempty"`
	PermissionDecisionReason *string        `json:"permissionDecisionReason,omitempty"`
	UpdatedInput             map[string]any `json:"updatedInput,omitempty"`
	AdditionalContext        *string        `json:"additionalContext,omitempty"`
}

// SpecificEventName implements SpecificOutput.
func (*PreToolUseOutput) SpecificEventName() string { return "PreToolUse" }

// PostToolUseOutput is the event-specific payload for PostToolUse hooks.
type PostToolUseOutput struct {
	HookEventName        string  `json:"hookEventName"` // "PostToolUse"
	AdditionalContext    *string `json:"additionalContext,omitempty"`
	UpdatedMCPToolOutput any     `json:"updatedMCPToolOutput,omitempty"` //nolint:tagliatelle // CLI protocol uses MCP acronym
}

// SpecificEventName implements SpecificOutput.
func (*PostToolUseOutput) SpecificEventName() string { return "PostToolUse" }

// UserPromptSubmitOutput is the event-specific payload for UserPromptSubmit hooks.
type UserPromptSubmitOutput struct {
	HookEventName     string  `json:"hookEventName"` // "UserPromptSubmit"
	AdditionalContext *string `json:"additionalContext,omitempty"`
}

// SpecificEventName implements SpecificOutput.
func (*UserPromptSubmitOutput) SpecificEventName() string { return "UserPromptSubmit" }

// PermissionRequestOutput is the event-specific payload for PermissionRequest hooks.
type PermissionRequestOutput struct {
	HookEventName string         `json:"hookEventName"` // "PermissionRequest"
	Decision      map[string]any `json:"decision,omitempty"`
}

// SpecificEventName implements SpecificOutput.
func (*PermissionRequestOutput) SpecificEventName() string { return "PermissionRequest" }

// wireKeyRenames maps internal snake_case output keys to the CLI's camelCase
// wire spellings. Applied when a callback returns a plain map.
var wireKeyRenames = map[string]string{
	"hook_specific_output":       "hookSpecificOutput",
	"hook_event_name":            "hookEventName",
	"suppress_output":            "suppressOutput",
	"stop_reason":                "stopReason",
	"system_message":             "systemMessage",
	"async_timeout":              "asyncTimeout",
	"additional_context":         "additionalContext",
	"permission_decision":        "permissionDecision",
	"permission_decision_reason": "permissionDecisionReason",
	"updated_input":              "updatedInput",
}

// EncodeOutput converts a callback's return value to the wire map.
//
// Values implementing WireEncoder encode themselves. Plain maps get the fixed
// set of snake_case keys renamed to camelCase, recursively for nested maps
// and nested WireEncoder values. A nil output means "continue".
func EncodeOutput(output Output) map[string]any {
	switch o := output.(type) {
	case nil:
		return map[string]any{"continue": true}

	case WireEncoder:
		return o.EncodeWire()

	case map[string]any:
		return renameWireKeys(o)

	default:
		return map[string]any{"continue": true}
	}
}

// renameWireKeys returns a copy of m with wire-key renames applied, descending
// into nested maps and encoding nested WireEncoder values.
func renameWireKeys(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))

	for key, value := range m {
		if renamed, ok := wireKeyRenames[key]; ok {
			key = renamed
		}

		switch v := value.(type) {
		case map[string]any:
			result[key] = renameWireKeys(v)
		case WireEncoder:
			result[key] = renameWireKeys(v.EncodeWire())
		default:
			result[key] = value
		}
	}

	return result
}
