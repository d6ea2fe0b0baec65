package toolserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonrpcRequest(id any, method string, params map[string]any) map[string]any {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		msg["params"] = params
	}

	return msg
}

func resultOf(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()

	require.NotContains(t, resp, "error", "expected a result response, got %v", resp)

	result, ok := resp["result"].(map[string]any)
	require.True(t, ok)

	return result
}

func errorOf(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()

	require.NotContains(t, resp, "result", "expected an error response, got %v", resp)

	errObj, ok := resp["error"].(map[string]any)
	require.True(t, ok)

	return errObj
}

func TestHandleMessageInitialize(t *testing.T) {
	t.Parallel()

	server := newCalculatorServer(t)

	resp := server.HandleMessage(context.Background(), jsonrpcRequest(float64(1), "initialize", nil))

	assert.Equal(t, "2.0", resp["jsonrpc"])
	assert.Equal(t, 1, resp["id"], "numeric ids are folded back to int")

	result := resultOf(t, resp)
	assert.Equal(t, "2024-11-05", result["protocolVersion"])
	assert.Equal(t, map[string]any{"name": "calculator", "version": "1.0.0"}, result["serverInfo"])
	assert.Equal(t, map[string]any{"tools": map[string]any{}}, result["capabilities"])
}

func TestHandleMessageNotificationsInitialized(t *testing.T) {
	t.Parallel()

	server := newCalculatorServer(t)

	resp := server.HandleMessage(context.Background(), jsonrpcRequest("n-1", "notifications/initialized", nil))
	assert.Equal(t, map[string]any{}, resultOf(t, resp))
}

func TestHandleMessageToolsList(t *testing.T) {
	t.Parallel()

	server := newCalculatorServer(t)

	resp := server.HandleMessage(context.Background(), jsonrpcRequest(2, "tools/list", nil))

	tools, ok := resultOf(t, resp)["tools"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, tools, 1)

	assert.Equal(t, "add", tools[0]["name"])
	assert.Equal(t, "Add two numbers", tools[0]["description"])

	schema, ok := tools[0]["inputSchema"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", schema["type"])
}

func TestHandleMessageToolsCall(t *testing.T) {
	t.Parallel()

	server := newCalculatorServer(t)

	resp := server.HandleMessage(context.Background(), jsonrpcRequest(3, "tools/call", map[string]any{
		"name":      "add",
		"arguments": map[string]any{"a": 1.0, "b": 2.0},
	}))

	result := resultOf(t, resp)

	content, ok := result["content"].([]any)
	require.True(t, ok)
	require.Len(t, content, 1)
}

func TestHandleMessageToolsCallUnknownTool(t *testing.T) {
	t.Parallel()

	server := newCalculatorServer(t)

	resp := server.HandleMessage(context.Background(), jsonrpcRequest(4, "tools/call", map[string]any{
		"name": "does-not-exist",
	}))

	errObj := errorOf(t, resp)
	assert.Equal(t, -32602, errObj["code"])
	assert.Contains(t, errObj["message"], "tool not found")
}

func TestHandleMessageToolsCallMissingParams(t *testing.T) {
	t.Parallel()

	server := newCalculatorServer(t)

	resp := server.HandleMessage(context.Background(), jsonrpcRequest(5, "tools/call", nil))
	assert.Equal(t, -32602, errorOf(t, resp)["code"])

	resp = server.HandleMessage(context.Background(), jsonrpcRequest(6, "tools/call", map[string]any{}))
	assert.Equal(t, -32602, errorOf(t, resp)["code"])
}

func TestHandleMessageUnknownMethod(t *testing.T) {
	t.Parallel()

	server := newCalculatorServer(t)

	resp := server.HandleMessage(context.Background(), jsonrpcRequest(7, "tools/destroy", nil))

	errObj := errorOf(t, resp)
	assert.Equal(t, -32601, errObj["code"])
	assert.Contains(t, errObj["message"], "Method not found")
}

func TestHandleMessageResourcesAndPrompts(t *testing.T) {
	t.Parallel()

	server := NewServer("kitchen-sink", "2.0.0")
	server.AddResource(
		NewResource("data://greeting", "greeting", "A greeting", "text/plain"),
		func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{{URI: req.Params.URI, Text: "hello"}},
			}, nil
		},
	)
	server.AddPrompt(
		NewPrompt("greet", "Greet someone"),
		func(_ context.Context, _ *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			return &mcp.GetPromptResult{
				Messages: []*mcp.PromptMessage{{Role: "user", Content: &mcp.TextContent{Text: "hi"}}},
			}, nil
		},
	)

	resp := server.HandleMessage(context.Background(), jsonrpcRequest(8, "resources/list", nil))
	resources, ok := resultOf(t, resp)["resources"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, resources, 1)
	assert.Equal(t, "data://greeting", resources[0]["uri"])

	resp = server.HandleMessage(context.Background(), jsonrpcRequest(9, "resources/read", map[string]any{
		"uri": "data://greeting",
	}))
	contents, ok := resultOf(t, resp)["contents"].([]any)
	require.True(t, ok)
	require.Len(t, contents, 1)

	resp = server.HandleMessage(context.Background(), jsonrpcRequest(10, "prompts/list", nil))
	prompts, ok := resultOf(t, resp)["prompts"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, prompts, 1)

	resp = server.HandleMessage(context.Background(), jsonrpcRequest(11, "prompts/get", map[string]any{
		"name": "greet",
	}))
	messages, ok := resultOf(t, resp)["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)

	resp = server.HandleMessage(context.Background(), jsonrpcRequest(12, "resources/read", map[string]any{
		"uri": "data://missing",
	}))
	assert.Equal(t, -32602, errorOf(t, resp)["code"])
}
