package hookrt

import "fmt"

// ParseInput converts a raw hook_callback input map into the typed input for
// its event. Event names outside the known set yield a GenericInput carrying
// only the base fields, so newer CLI versions never break dispatch.
func ParseInput(data map[string]any) (Input, error) {
	if data == nil {
		return nil, fmt.Errorf("hook input is nil")
	}

	base := BaseInput{
		SessionID:      str(data, "session_id"),
		TranscriptPath: str(data, "transcript_path"),
		Cwd:            str(data, "cwd"),
	}

	if pm, ok := data["permission_mode"].(string); ok {
		base.PermissionMode = &pm
	}

	event := Event(str(data, "hook_event_name"))

	switch event {
	case EventPreToolUse:
		return &PreToolUseInput{
			BaseInput: base,
			ToolName:  str(data, "tool_name"),
			ToolInput: obj(data, "tool_input"),
			ToolUseID: str(data, "tool_use_id"),
		}, nil

	case EventPostToolUse:
		return &PostToolUseInput{
			BaseInput:    base,
			ToolName:     str(data, "tool_name"),
			ToolInput:    obj(data, "tool_input"),
			ToolUseID:    str(data, "tool_use_id"),
			ToolResponse: data["tool_response"],
		}, nil

	case EventPostToolUseFailure:
		input := &PostToolUseFailureInput{
			BaseInput: base,
			ToolName:  str(data, "tool_name"),
			ToolInput: obj(data, "tool_input"),
			ToolUseID: str(data, "tool_use_id"),
			Error:     str(data, "error"),
		}
		if v, ok := data["is_interrupt"].(bool); ok {
			input.IsInterrupt = &v
		}

		return input, nil

	case EventUserPromptSubmit:
		return &UserPromptSubmitInput{
			BaseInput: base,
			Prompt:    str(data, "prompt"),
		}, nil

	case EventStop:
		return &StopInput{
			BaseInput:      base,
			StopHookActive: boolean(data, "stop_hook_active"),
		}, nil

	case EventSubagentStop:
		return &SubagentStopInput{
			BaseInput:           base,
			StopHookActive:      boolean(data, "stop_hook_active"),
			AgentID:             str(data, "agent_id"),
			AgentTranscriptPath: str(data, "agent_transcript_path"),
			AgentType:           str(data, "agent_type"),
		}, nil

	case EventSubagentStart:
		return &SubagentStartInput{
			BaseInput: base,
			AgentID:   str(data, "agent_id"),
			AgentType: str(data, "agent_type"),
		}, nil

	case EventNotification:
		input := &NotificationInput{
			BaseInput:        base,
			Message:          str(data, "message"),
			NotificationType: str(data, "notification_type"),
		}
		if t, ok := data["title"].(string); ok && t != "" {
			input.Title = &t
		}

		return input, nil

	case EventPermissionRequest:
		input := &PermissionRequestInput{
			BaseInput: base,
			ToolName:  str(data, "tool_name"),
			ToolInput: obj(data, "tool_input"),
		}
		if ps, ok := data["permission_suggestions"].([]any); ok {
			input.PermissionSuggestions = ps
		}

		return input, nil

	case EventPreCompact:
		input := &PreCompactInput{
			BaseInput: base,
			Trigger:   str(data, "trigger"),
		}
		if ci, ok := data["custom_instructions"].(string); ok && ci != "" {
			input.CustomInstructions = &ci
		}

		return input, nil

	default:
		return &GenericInput{BaseInput: base, Event: event}, nil
	}
}

func str(data map[string]any, key string) string {
	s, _ := data[key].(string)

	return s
}

func obj(data map[string]any, key string) map[string]any {
	m, _ := data[key].(map[string]any)

	return m
}

func boolean(data map[string]any, key string) bool {
	b, _ := data[key].(bool)

	return b
}
