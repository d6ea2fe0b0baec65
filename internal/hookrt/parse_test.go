package hookrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseFields() map[string]any {
	return map[string]any{
		"session_id":      "sess-1",
		"transcript_path": "/tmp/transcript.jsonl",
		"cwd":             "/work",
		"permission_mode": "acceptEdits",
	}
}

func TestParseInputPreToolUse(t *testing.T) {
	t.Parallel()

	data := baseFields()
	data["hook_event_name"] = "PreToolUse"
	data["tool_name"] = "Bash"
	data["tool_input"] = map[string]any{"command": "ls"}
	data["tool_use_id"] = "toolu_01"

	input, err := ParseInput(data)
	require.NoError(t, err)

	pre, ok := input.(*PreToolUseInput)
	require.True(t, ok, "expected *PreToolUseInput, got %T", input)

	assert.Equal(t, EventPreToolUse, pre.EventName())
	assert.Equal(t, "Bash", pre.ToolName)
	assert.Equal(t, "ls", pre.ToolInput["command"])
	assert.Equal(t, "toolu_01", pre.ToolUseID)
	assert.Equal(t, "sess-1", pre.Base().SessionID)
	require.NotNil(t, pre.Base().PermissionMode)
	assert.Equal(t, "acceptEdits", *pre.Base().PermissionMode)
}

func TestParseInputPostToolUseFailure(t *testing.T) {
	t.Parallel()

	data := baseFields()
	data["hook_event_name"] = "PostToolUseFailure"
	data["tool_name"] = "Write"
	data["error"] = "permission denied"
	data["is_interrupt"] = true

	input, err := ParseInput(data)
	require.NoError(t, err)

	failure, ok := input.(*PostToolUseFailureInput)
	require.True(t, ok)
	assert.Equal(t, "permission denied", failure.Error)
	require.NotNil(t, failure.IsInterrupt)
	assert.True(t, *failure.IsInterrupt)
}

func TestParseInputUserPromptSubmit(t *testing.T) {
	t.Parallel()

	data := baseFields()
	data["hook_event_name"] = "UserPromptSubmit"
	data["prompt"] = "write a haiku"

	input, err := ParseInput(data)
	require.NoError(t, err)

	submit, ok := input.(*UserPromptSubmitInput)
	require.True(t, ok)
	assert.Equal(t, "write a haiku", submit.Prompt)
}

func TestParseInputSubagentStop(t *testing.T) {
	t.Parallel()

	data := baseFields()
	data["hook_event_name"] = "SubagentStop"
	data["stop_hook_active"] = true
	data["agent_id"] = "agent-7"
	data["agent_type"] = "researcher"

	input, err := ParseInput(data)
	require.NoError(t, err)

	stop, ok := input.(*SubagentStopInput)
	require.True(t, ok)
	assert.True(t, stop.StopHookActive)
	assert.Equal(t, "agent-7", stop.AgentID)
	assert.Equal(t, "researcher", stop.AgentType)
}

func TestParseInputUnknownEventFallsBackToBase(t *testing.T) {
	t.Parallel()

	data := baseFields()
	data["hook_event_name"] = "SomeFutureEvent"
	data["mystery_field"] = "ignored"

	input, err := ParseInput(data)
	require.NoError(t, err, "unknown events must not fail")

	generic, ok := input.(*GenericInput)
	require.True(t, ok, "expected *GenericInput, got %T", input)
	assert.Equal(t, Event("SomeFutureEvent"), generic.EventName())
	assert.Equal(t, "sess-1", generic.Base().SessionID)
	assert.Equal(t, "/work", generic.Base().Cwd)
}

func TestParseInputNil(t *testing.T) {
	t.Parallel()

	_, err := ParseInput(nil)
	require.Error(t, err)
}
