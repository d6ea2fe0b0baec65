package control

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ya-luotao/claude-agent-sdk-go/internal/config"
	"github.com/ya-luotao/claude-agent-sdk-go/internal/hookrt"
	"github.com/ya-luotao/claude-agent-sdk-go/internal/permission"
	"github.com/ya-luotao/claude-agent-sdk-go/internal/toolserver"
)

func strPtr(s string) *string { return &s }

func TestSessionInitialize_RegistersHookCallbacks(t *testing.T) {
	transport := newMockTransport()
	mux := NewMux(slog.Default(), transport)

	ctx := context.Background()
	require.NoError(t, mux.Start(ctx))

	defer mux.Stop()

	var sawInput hookrt.Input

	options := &config.Options{
		Hooks: map[hookrt.Event][]*hookrt.Matcher{
			hookrt.EventPreToolUse: {
				{
					Matcher: strPtr("Bash"),
					Hooks: []hookrt.Callback{
						func(_ context.Context, input hookrt.Input, _ *string, _ *hookrt.Context) (hookrt.Output, error) {
							sawInput = input

							return nil, nil
						},
					},
				},
			},
		},
	}

	session := NewSession(slog.Default(), mux, options)
	session.RegisterHandlers()

	initDone := make(chan error, 1)

	go func() {
		initDone <- session.Initialize(ctx)
	}()

	reqID := waitForPending(t, mux)

	// The initialize request must carry the generated callback ids.
	require.Eventually(t, func() bool {
		return len(transport.getMessages()) > 0
	}, 2*time.Second, 10*time.Millisecond)

	sent := transport.getMessages()

	var initMsg map[string]any

	require.NoError(t, json.Unmarshal(sent[0], &initMsg))

	request, ok := initMsg["request"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "initialize", request["subtype"])

	hooksConfig, ok := request["hooks"].(map[string]any)
	require.True(t, ok)

	matchers, ok := hooksConfig["PreToolUse"].([]any)
	require.True(t, ok)
	require.Len(t, matchers, 1)

	matcher, ok := matchers[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Bash", matcher["matcher"])

	ids, ok := matcher["hookCallbackIds"].([]any)
	require.True(t, ok)
	require.Len(t, ids, 1)

	callbackID, ok := ids[0].(string)
	require.True(t, ok)

	transport.sendToMux(map[string]any{
		"type": "control_response",
		"response": map[string]any{
			"subtype":    "success",
			"request_id": reqID,
			"response":   map[string]any{"commands": []any{}},
		},
	})

	require.NoError(t, <-initDone)
	assert.NotNil(t, session.GetInitializationResult())

	// Dispatch an inbound hook callback to the registered id.
	result, err := session.HandleHookCallback(ctx, &ControlRequest{
		Type:      "control_request",
		RequestID: "req-hook",
		Request: map[string]any{
			"subtype":     "hook_callback",
			"callback_id": callbackID,
			"input": map[string]any{
				"hook_event_name": "PreToolUse",
				"session_id":      "sess-1",
				"tool_name":       "Bash",
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"continue": true}, result)

	pre, ok := sawInput.(*hookrt.PreToolUseInput)
	require.True(t, ok)
	assert.Equal(t, "Bash", pre.ToolName)
}

func TestSessionHandleHookCallback_UnknownCallbackID(t *testing.T) {
	transport := newMockTransport()
	mux := NewMux(slog.Default(), transport)
	session := NewSession(slog.Default(), mux, &config.Options{})

	_, err := session.HandleHookCallback(context.Background(), &ControlRequest{
		Request: map[string]any{
			"subtype":     "hook_callback",
			"callback_id": "hook_99",
			"input":       map[string]any{"hook_event_name": "Stop"},
		},
	})
	require.ErrorContains(t, err, "unknown hook callback id")
}

func TestSessionHandleMCPMessage(t *testing.T) {
	server := toolserver.NewServer("calculator", "1.0.0")
	server.AddTool(
		toolserver.NewTool("add", "Add", nil),
		func(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return toolserver.TextResult("3"), nil
		},
	)

	options := &config.Options{
		MCPServers: map[string]toolserver.ServerConfig{
			"calculator": &toolserver.SDKServerConfig{
				Type:     toolserver.ServerTypeSDK,
				Name:     "calculator",
				Instance: server,
			},
		},
	}

	transport := newMockTransport()
	mux := NewMux(slog.Default(), transport)
	session := NewSession(slog.Default(), mux, options)
	session.RegisterMCPServers()

	assert.Equal(t, []string{"calculator"}, session.GetSDKMCPServerNames())

	result, err := session.HandleMCPMessage(context.Background(), &ControlRequest{
		Request: map[string]any{
			"subtype":     "mcp_message",
			"server_name": "calculator",
			"message": map[string]any{
				"jsonrpc": "2.0",
				"id":      float64(1),
				"method":  "tools/call",
				"params":  map[string]any{"name": "add", "arguments": map[string]any{}},
			},
		},
	})
	require.NoError(t, err)

	mcpResp, ok := result["mcp_response"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "2.0", mcpResp["jsonrpc"])
	require.Contains(t, mcpResp, "result")
}

func TestSessionHandleMCPMessage_UnknownServerIsProtocolError(t *testing.T) {
	transport := newMockTransport()
	mux := NewMux(slog.Default(), transport)
	session := NewSession(slog.Default(), mux, &config.Options{})

	_, err := session.HandleMCPMessage(context.Background(), &ControlRequest{
		Request: map[string]any{
			"subtype":     "mcp_message",
			"server_name": "nonexistent",
			"message":     map[string]any{"jsonrpc": "2.0", "method": "tools/list"},
		},
	})
	require.ErrorContains(t, err, "MCP server not found")
}

func TestSessionHandleCanUseTool_DefaultAllow(t *testing.T) {
	transport := newMockTransport()
	mux := NewMux(slog.Default(), transport)
	session := NewSession(slog.Default(), mux, &config.Options{})

	result, err := session.HandleCanUseTool(context.Background(), &ControlRequest{
		Request: map[string]any{
			"subtype":   "can_use_tool",
			"tool_name": "Bash",
			"input":     map[string]any{"command": "ls"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"behavior": "allow"}, result)
}

func TestSessionHandleCanUseTool_CallbackDecisions(t *testing.T) {
	var (
		gotTool        string
		gotSuggestions []*permission.Update
	)

	options := &config.Options{
		CanUseTool: func(_ context.Context, toolName string, _ map[string]any, permCtx *permission.Context) (permission.Result, error) {
			gotTool = toolName
			gotSuggestions = permCtx.Suggestions

			if toolName == "Bash" {
				return &permission.ResultDeny{Message: "no shell", Interrupt: true}, nil
			}

			mode := permission.ModeAcceptEdits

			return &permission.ResultAllow{
				UpdatedPermissions: []*permission.Update{
					{Type: permission.UpdateTypeSetMode, Mode: &mode},
				},
			}, nil
		},
	}

	transport := newMockTransport()
	mux := NewMux(slog.Default(), transport)
	session := NewSession(slog.Default(), mux, options)

	result, err := session.HandleCanUseTool(context.Background(), &ControlRequest{
		Request: map[string]any{
			"subtype":   "can_use_tool",
			"tool_name": "Bash",
			"input":     map[string]any{"command": "rm -rf /"},
			"suggestions": []any{
				map[string]any{"type": "setMode", "mode": "acceptEdits", "destination": "session"},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bash", gotTool)
	require.Len(t, gotSuggestions, 1)
	assert.Equal(t, permission.UpdateTypeSetMode, gotSuggestions[0].Type)
	require.NotNil(t, gotSuggestions[0].Mode)
	assert.Equal(t, permission.ModeAcceptEdits, *gotSuggestions[0].Mode)

	assert.Equal(t, "deny", result["behavior"])
	assert.Equal(t, "no shell", result["message"])
	assert.Equal(t, true, result["interrupt"])

	result, err = session.HandleCanUseTool(context.Background(), &ControlRequest{
		Request: map[string]any{
			"subtype":   "can_use_tool",
			"tool_name": "Read",
			"input":     map[string]any{"file_path": "/tmp/x"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "allow", result["behavior"])

	updates, ok := result["updatedPermissions"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, updates, 1)
	assert.Equal(t, "setMode", updates[0]["type"])
}

func TestSessionNeedsInitialization(t *testing.T) {
	transport := newMockTransport()
	mux := NewMux(slog.Default(), transport)

	session := NewSession(slog.Default(), mux, &config.Options{})
	assert.False(t, session.NeedsInitialization())

	session = NewSession(slog.Default(), mux, &config.Options{
		CanUseTool: func(_ context.Context, _ string, _ map[string]any, _ *permission.Context) (permission.Result, error) {
			return &permission.ResultAllow{}, nil
		},
	})
	assert.True(t, session.NeedsInitialization())
}

func TestSessionInitializeTimeout_Configurable(t *testing.T) {
	timeout := 5 * time.Second
	transport := newMockTransport()
	mux := NewMux(slog.Default(), transport)
	session := NewSession(slog.Default(), mux, &config.Options{InitializeTimeout: &timeout})

	assert.Equal(t, timeout, session.getInitializeTimeout())

	session = NewSession(slog.Default(), mux, &config.Options{})
	assert.Equal(t, defaultInitializeTimeout, session.getInitializeTimeout())
}
