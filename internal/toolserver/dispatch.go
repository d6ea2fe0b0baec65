package toolserver

import (
	"context"
	"errors"
	"fmt"
)

// HandleMessage services one JSON-RPC 2.0 request against the server's
// registries and returns the JSON-RPC response object. Every failure mode is
// encoded as a JSON-RPC error object; the method never returns a Go error,
// so a misbehaving handler cannot escape past the dispatching multiplexer.
func (s *Server) HandleMessage(ctx context.Context, message map[string]any) map[string]any {
	msgID := normalizeMessageID(message["id"])
	method, _ := message["method"].(string)
	params, _ := message["params"].(map[string]any)

	switch method {
	case "initialize":
		return jsonrpcResult(msgID, map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities":    s.Capabilities(),
			"serverInfo":      s.ServerInfo(),
		})

	case "notifications/initialized":
		// Acknowledged and ignored.
		return jsonrpcResult(msgID, map[string]any{})

	case "tools/list":
		return jsonrpcResult(msgID, map[string]any{"tools": s.ListTools()})

	case "tools/call":
		return s.dispatchToolsCall(ctx, msgID, params)

	case "resources/list":
		return jsonrpcResult(msgID, map[string]any{"resources": s.ListResources()})

	case "resources/read":
		return s.dispatchResourcesRead(ctx, msgID, params)

	case "prompts/list":
		return jsonrpcResult(msgID, map[string]any{"prompts": s.ListPrompts()})

	case "prompts/get":
		return s.dispatchPromptsGet(ctx, msgID, params)

	default:
		return jsonrpcError(msgID, -32601, fmt.Sprintf("Method not found: %s", method))
	}
}

func (s *Server) dispatchToolsCall(ctx context.Context, msgID any, params map[string]any) map[string]any {
	if params == nil {
		return jsonrpcError(msgID, -32602, "Missing params for tools/call")
	}

	toolName, _ := params["name"].(string)
	if toolName == "" {
		return jsonrpcError(msgID, -32602, "Missing tool name in params")
	}

	arguments, _ := params["arguments"].(map[string]any)

	result, err := s.CallTool(ctx, toolName, arguments)
	if err != nil {
		if errors.Is(err, ErrToolNotFound) {
			return jsonrpcError(msgID, -32602, err.Error())
		}

		return jsonrpcError(msgID, -32603, err.Error())
	}

	return jsonrpcResult(msgID, result)
}

func (s *Server) dispatchResourcesRead(ctx context.Context, msgID any, params map[string]any) map[string]any {
	if params == nil {
		return jsonrpcError(msgID, -32602, "Missing params for resources/read")
	}

	uri, _ := params["uri"].(string)
	if uri == "" {
		return jsonrpcError(msgID, -32602, "Missing resource uri in params")
	}

	result, err := s.ReadResource(ctx, uri)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return jsonrpcError(msgID, -32602, err.Error())
		}

		return jsonrpcError(msgID, -32603, err.Error())
	}

	return jsonrpcResult(msgID, result)
}

func (s *Server) dispatchPromptsGet(ctx context.Context, msgID any, params map[string]any) map[string]any {
	if params == nil {
		return jsonrpcError(msgID, -32602, "Missing params for prompts/get")
	}

	promptName, _ := params["name"].(string)
	if promptName == "" {
		return jsonrpcError(msgID, -32602, "Missing prompt name in params")
	}

	var args map[string]string

	if raw, ok := params["arguments"].(map[string]any); ok {
		args = make(map[string]string, len(raw))

		for k, v := range raw {
			if str, ok := v.(string); ok {
				args[k] = str
			} else {
				args[k] = fmt.Sprintf("%v", v)
			}
		}
	}

	result, err := s.GetPrompt(ctx, promptName, args)
	if err != nil {
		if errors.Is(err, ErrPromptNotFound) {
			return jsonrpcError(msgID, -32602, err.Error())
		}

		return jsonrpcError(msgID, -32603, err.Error())
	}

	return jsonrpcResult(msgID, result)
}

// normalizeMessageID keeps JSON-RPC ids stable across the JSON round trip:
// numeric ids arrive as float64 and are folded back to int.
func normalizeMessageID(id any) any {
	if f, ok := id.(float64); ok {
		return int(f)
	}

	return id
}

func jsonrpcResult(msgID any, result map[string]any) map[string]any {
	return map[string]any{
		"jsonrpc": "2.0",
		"id":      msgID,
		"result":  result,
	}
}

func jsonrpcError(msgID any, code int, message string) map[string]any {
	return map[string]any{
		"jsonrpc": "2.0",
		"id":      msgID,
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	}
}
