package toolserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// protocolVersion is the MCP protocol revision reported from initialize.
const protocolVersion = "2024-11-05"

// Lookup failures within a known server. These surface as JSON-RPC error
// objects in the response, unlike an unknown server name, which the
// multiplexer reports as a control-protocol error before any dispatch.
var (
	// ErrToolNotFound is returned when a tool name is not registered.
	ErrToolNotFound = errors.New("tool not found")
	// ErrResourceNotFound is returned when a resource URI is not registered.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrPromptNotFound is returned when a prompt name is not registered.
	ErrPromptNotFound = errors.New("prompt not found")
)

// toolEntry holds tool metadata and handler for the internal registry.
type toolEntry struct {
	tool    *mcp.Tool
	handler mcp.ToolHandler
}

// resourceEntry holds resource metadata and handler for the internal registry.
type resourceEntry struct {
	resource *mcp.Resource
	handler  mcp.ResourceHandler
}

// promptEntry holds prompt metadata and handler for the internal registry.
type promptEntry struct {
	prompt  *mcp.Prompt
	handler mcp.PromptHandler
}

// Server is an in-process MCP server backed by name-keyed registries.
//
// Since the official SDK's Server is designed for transport-based
// communication (stdio, HTTP, SSE), this type maintains its own registries
// for direct invocation via the control protocol.
type Server struct {
	name    string
	version string

	mu        sync.RWMutex
	tools     map[string]*toolEntry
	resources map[string]*resourceEntry
	prompts   map[string]*promptEntry
}

// NewServer creates an empty in-process MCP server.
func NewServer(name, version string) *Server {
	return &Server{
		name:      name,
		version:   version,
		tools:     make(map[string]*toolEntry, 8),
		resources: make(map[string]*resourceEntry, 4),
		prompts:   make(map[string]*promptEntry, 4),
	}
}

// Name returns the server name.
func (s *Server) Name() string { return s.name }

// Version returns the server version.
func (s *Server) Version() string { return s.version }

// AddTool registers a tool under its name.
func (s *Server) AddTool(tool *mcp.Tool, handler mcp.ToolHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools[tool.Name] = &toolEntry{tool: tool, handler: handler}
}

// AddResource registers a resource under its URI.
func (s *Server) AddResource(resource *mcp.Resource, handler mcp.ResourceHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resources[resource.URI] = &resourceEntry{resource: resource, handler: handler}
}

// AddPrompt registers a prompt under its name.
func (s *Server) AddPrompt(prompt *mcp.Prompt, handler mcp.PromptHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prompts[prompt.Name] = &promptEntry{prompt: prompt, handler: handler}
}

// ServerInfo returns server information for the MCP initialize response.
func (s *Server) ServerInfo() map[string]any {
	return map[string]any{
		"name":    s.name,
		"version": s.version,
	}
}

// Capabilities reports a capability for each non-empty registry.
func (s *Server) Capabilities() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	caps := make(map[string]any, 3)
	if len(s.tools) > 0 {
		caps["tools"] = map[string]any{}
	}

	if len(s.resources) > 0 {
		caps["resources"] = map[string]any{}
	}

	if len(s.prompts) > 0 {
		caps["prompts"] = map[string]any{}
	}

	return caps
}

// ListTools returns metadata for all registered tools in wire form.
func (s *Server) ListTools() []map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]map[string]any, 0, len(s.tools))

	for _, entry := range s.tools {
		if m, err := toWireMap(entry.tool); err == nil {
			result = append(result, m)
		}
	}

	return result
}

// ListResources returns metadata for all registered resources in wire form.
func (s *Server) ListResources() []map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]map[string]any, 0, len(s.resources))

	for _, entry := range s.resources {
		if m, err := toWireMap(entry.resource); err == nil {
			result = append(result, m)
		}
	}

	return result
}

// ListPrompts returns metadata for all registered prompts in wire form.
func (s *Server) ListPrompts() []map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]map[string]any, 0, len(s.prompts))

	for _, entry := range s.prompts {
		if m, err := toWireMap(entry.prompt); err == nil {
			result = append(result, m)
		}
	}

	return result
}

// CallTool executes a tool by name with the given input.
//
// An unknown name returns ErrToolNotFound. A handler error is encoded into
// the result as error content rather than returned, so tool authors see
// their failures reflected back to the CLI instead of dropped. A handler
// result without a content list violates the handler contract and is
// returned as an error.
func (s *Server) CallTool(ctx context.Context, name string, input map[string]any) (map[string]any, error) {
	s.mu.RLock()
	entry, ok := s.tools[name]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	inputBytes, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("marshaling tool input: %w", err)
	}

	req := &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{
			Name:      name,
			Arguments: inputBytes,
		},
	}

	result, err := entry.handler(ctx, req)
	if err != nil {
		//nolint:nilerr // Handler errors are encoded in the result, not propagated.
		return map[string]any{
			"content":  []any{map[string]any{"type": "text", "text": "Tool execution failed: " + err.Error()}},
			"is_error": true,
		}, nil
	}

	return callToolResultToWire(result)
}

// ReadResource reads a resource by URI.
//
// An unknown URI returns ErrResourceNotFound. A handler result without a
// contents list violates the handler contract and is returned as an error.
func (s *Server) ReadResource(ctx context.Context, uri string) (map[string]any, error) {
	s.mu.RLock()
	entry, ok := s.resources[uri]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, uri)
	}

	req := &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	}

	result, err := entry.handler(ctx, req)
	if err != nil {
		return nil, err
	}

	if result == nil || result.Contents == nil {
		return nil, fmt.Errorf("resource handler for %q returned no contents list", uri)
	}

	return toWireMap(result)
}

// GetPrompt retrieves a prompt by name with the given arguments.
//
// An unknown name returns ErrPromptNotFound. A handler result without a
// messages list violates the handler contract and is returned as an error.
func (s *Server) GetPrompt(ctx context.Context, name string, args map[string]string) (map[string]any, error) {
	s.mu.RLock()
	entry, ok := s.prompts[name]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPromptNotFound, name)
	}

	req := &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{
			Name:      name,
			Arguments: args,
		},
	}

	result, err := entry.handler(ctx, req)
	if err != nil {
		return nil, err
	}

	if result == nil || result.Messages == nil {
		return nil, fmt.Errorf("prompt handler for %q returned no messages list", name)
	}

	return toWireMap(result)
}

// callToolResultToWire converts a CallToolResult to the control-protocol map.
//
// Content items are serialized through their own wire encoding so non-text
// and binary items survive unmodified, and the is_error flag and structured
// content companion are carried through verbatim.
func callToolResultToWire(result *mcp.CallToolResult) (map[string]any, error) {
	if result == nil || result.Content == nil {
		return nil, errors.New("tool handler returned no content list")
	}

	content := make([]any, 0, len(result.Content))

	for _, item := range result.Content {
		m, err := toWireMap(item)
		if err != nil {
			return nil, fmt.Errorf("encoding tool content: %w", err)
		}

		content = append(content, m)
	}

	wire := map[string]any{"content": content}

	if result.IsError {
		wire["is_error"] = true
	}

	if result.StructuredContent != nil {
		wire["structuredContent"] = result.StructuredContent
	}

	return wire, nil
}

// toWireMap round-trips a value through JSON into a plain map.
func toWireMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	return m, nil
}
