package control

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/ya-luotao/claude-agent-sdk-go/internal/config"
	"github.com/ya-luotao/claude-agent-sdk-go/internal/hookrt"
	"github.com/ya-luotao/claude-agent-sdk-go/internal/permission"
	"github.com/ya-luotao/claude-agent-sdk-go/internal/toolserver"
)

const (
	// defaultInitializeTimeout is the default timeout for initialize control requests.
	defaultInitializeTimeout = 60 * time.Second
)

// Session wires the application-facing callbacks into the control mux: hook
// dispatch, in-process MCP servers, and the tool permission callback.
// It can be used by both Client and Query() to provide protocol support.
type Session struct {
	log     *slog.Logger
	mux     *Mux
	options *config.Options

	// Hook registrations keyed by generated callback id
	hooks *hookrt.Registry

	// In-process MCP servers (keyed by server name)
	sdkServers map[string]*toolserver.Server

	// Server initialization result (protected by initMu)
	initMu               sync.RWMutex
	initializationResult map[string]any
}

// NewSession creates a new Session for protocol handling.
func NewSession(
	log *slog.Logger,
	mux *Mux,
	options *config.Options,
) *Session {
	return &Session{
		log:        log.With("component", "session"),
		mux:        mux,
		options:    options,
		hooks:      hookrt.NewRegistry(),
		sdkServers: make(map[string]*toolserver.Server, 4),
	}
}

// RegisterHandlers registers control handlers for hooks, MCP, and tool permissions.
// This must be called before Initialize().
func (s *Session) RegisterHandlers() {
	s.mux.RegisterHandler("hook_callback", s.HandleHookCallback)
	s.mux.RegisterHandler("mcp_message", s.HandleMCPMessage)
	s.mux.RegisterHandler("can_use_tool", s.HandleCanUseTool)
}

// RegisterMCPServers extracts and registers in-process MCP servers from options.
func (s *Session) RegisterMCPServers() {
	if s.options == nil || s.options.MCPServers == nil {
		return
	}

	for serverKey, serverConfig := range s.options.MCPServers {
		if serverConfig == nil {
			continue
		}

		if sdkConfig, ok := serverConfig.(*toolserver.SDKServerConfig); ok && sdkConfig.Instance != nil {
			s.sdkServers[serverKey] = sdkConfig.Instance
			s.log.Debug("Registered SDK MCP server", "server", serverKey)
		}
	}
}

// Initialize sends the initialization control request to the CLI.
// It generates callback IDs for each hook and stores them for later lookup.
func (s *Session) Initialize(ctx context.Context) error {
	s.log.Debug("Sending initialize request")

	// Build hooks configuration for initialization with callback IDs
	hooksConfig := make(map[string]any, 8)

	if s.options != nil && s.options.Hooks != nil {
		nextCallbackID := s.hooks.Len()

		for event, matchers := range s.options.Hooks {
			eventMatchers := make([]map[string]any, 0, len(matchers))

			for _, m := range matchers {
				// Generate callback IDs for each hook in this matcher
				callbackIDs := make([]string, 0, len(m.Hooks))

				for _, hookFn := range m.Hooks {
					callbackID := fmt.Sprintf("hook_%d", nextCallbackID)
					nextCallbackID++

					s.hooks.Register(callbackID, hookrt.Registration{
						Callback: hookFn,
						Timeout:  matcherTimeout(m),
					})
					callbackIDs = append(callbackIDs, callbackID)
				}

				matcherConfig := map[string]any{
					"matcher":         m.Matcher,
					"hookCallbackIds": callbackIDs,
				}

				if m.Timeout != nil {
					matcherConfig["timeout"] = *m.Timeout
				}

				eventMatchers = append(eventMatchers, matcherConfig)
			}

			hooksConfig[string(event)] = eventMatchers
		}
	}

	payload := map[string]any{
		"hooks": hooksConfig,
	}

	// Include agent definitions in the initialize payload (avoids ARG_MAX limits)
	if s.options != nil && len(s.options.Agents) > 0 {
		payload["agents"] = s.options.Agents
	}

	timeout := s.getInitializeTimeout()

	resp, err := s.mux.SendRequest(ctx, "initialize", payload, timeout)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	s.initMu.Lock()
	s.initializationResult = resp.Payload()
	s.initMu.Unlock()

	return nil
}

// matcherTimeout converts a matcher's timeout in seconds to a duration.
func matcherTimeout(m *hookrt.Matcher) *time.Duration {
	if m.Timeout == nil {
		return nil
	}

	d := time.Duration(*m.Timeout * float64(time.Second))

	return &d
}

// getInitializeTimeout returns the initialize timeout from options, env var, or default.
func (s *Session) getInitializeTimeout() time.Duration {
	// Check options for explicit timeout
	if s.options != nil && s.options.InitializeTimeout != nil {
		return *s.options.InitializeTimeout
	}

	// Fall back to env var
	if timeoutStr := os.Getenv("CLAUDE_CODE_STREAM_CLOSE_TIMEOUT"); timeoutStr != "" {
		if timeoutSec, err := strconv.Atoi(timeoutStr); err == nil && timeoutSec > 0 {
			return time.Duration(timeoutSec) * time.Second
		}
	}

	// Fall back to default
	return defaultInitializeTimeout
}

// NeedsInitialization returns true if the session has callbacks that require initialization.
func (s *Session) NeedsInitialization() bool {
	if s.options == nil {
		return false
	}

	// Need initialization if we have hooks, CanUseTool callback, SDK MCP servers, or agents
	return len(s.options.Hooks) > 0 ||
		s.options.CanUseTool != nil ||
		len(s.sdkServers) > 0 ||
		len(s.options.Agents) > 0
}

// GetInitializationResult returns a copy of the server initialization info.
// Returns nil if not initialized.
func (s *Session) GetInitializationResult() map[string]any {
	s.initMu.RLock()
	defer s.initMu.RUnlock()

	if s.initializationResult == nil {
		return nil
	}

	// Return a defensive copy to prevent caller mutation
	return maps.Clone(s.initializationResult)
}

// GetSDKMCPServerNames returns the names of all registered in-process MCP servers.
func (s *Session) GetSDKMCPServerNames() []string {
	names := make([]string, 0, len(s.sdkServers))
	for name := range s.sdkServers {
		names = append(names, name)
	}

	return names
}

// HandleHookCallback handles hook_callback control requests from the CLI.
// The CLI sends callback_id which is used to look up the registered callback.
func (s *Session) HandleHookCallback(
	ctx context.Context,
	req *ControlRequest,
) (map[string]any, error) {
	// Check for cancellation before processing
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.log.Debug("Handling hook callback")

	callbackID, _ := req.Request["callback_id"].(string)
	inputData, _ := req.Request["input"].(map[string]any)

	var toolUseID *string
	if toolUseIDStr, ok := req.Request["tool_use_id"].(string); ok && toolUseIDStr != "" {
		toolUseID = &toolUseIDStr
	}

	return s.hooks.Dispatch(ctx, callbackID, inputData, toolUseID)
}

// HandleMCPMessage handles unified mcp_message control requests from the CLI.
//
// The envelope names a server and carries a JSON-RPC request; the named
// server's dispatcher produces the JSON-RPC response. An unknown server name
// is a protocol error surfaced through the control-response, unlike unknown
// tool/resource/prompt names, which the server reports inside the
// mcp_response as JSON-RPC errors.
func (s *Session) HandleMCPMessage(
	ctx context.Context,
	req *ControlRequest,
) (map[string]any, error) {
	// Check for cancellation before processing
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.log.Debug("Handling MCP message request")

	serverName, _ := req.Request["server_name"].(string)
	message, _ := req.Request["message"].(map[string]any)

	if message == nil {
		return nil, fmt.Errorf("missing message field in mcp_message request")
	}

	server, exists := s.sdkServers[serverName]
	if !exists {
		return nil, fmt.Errorf("MCP server not found: %s", serverName)
	}

	return map[string]any{
		"mcp_response": server.HandleMessage(ctx, message),
	}, nil
}

// HandleCanUseTool is called by the CLI before tool use.
func (s *Session) HandleCanUseTool(
	ctx context.Context,
	req *ControlRequest,
) (map[string]any, error) {
	// Check for cancellation before processing
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	// If no callback configured, allow by default
	if s.options == nil || s.options.CanUseTool == nil {
		return map[string]any{"behavior": "allow"}, nil
	}

	toolName, _ := req.Request["tool_name"].(string)
	input, _ := req.Request["input"].(map[string]any)

	// Decode permission suggestions from the request, if present
	var suggestions []*permission.Update

	if suggestionsData, ok := req.Request["suggestions"].([]any); ok {
		suggestions = make([]*permission.Update, 0, len(suggestionsData))

		for _, sg := range suggestionsData {
			if suggestionMap, ok := sg.(map[string]any); ok {
				suggestions = append(suggestions, permission.UpdateFromWire(suggestionMap))
			}
		}
	}

	permCtx := &permission.Context{
		Suggestions: suggestions,
	}

	decision, err := s.options.CanUseTool(ctx, toolName, input, permCtx)
	if err != nil {
		return nil, err
	}

	switch d := decision.(type) {
	case *permission.ResultAllow:
		result := map[string]any{"behavior": "allow"}

		if d.UpdatedInput != nil {
			result["updatedInput"] = d.UpdatedInput
		}

		if d.UpdatedPermissions != nil {
			updates := make([]map[string]any, len(d.UpdatedPermissions))
			for i, u := range d.UpdatedPermissions {
				updates[i] = u.ToWire()
			}

			result["updatedPermissions"] = updates
		}

		return result, nil

	case *permission.ResultDeny:
		result := map[string]any{
			"behavior": "deny",
			"message":  d.Message,
		}

		if d.Interrupt {
			result["interrupt"] = true
		}

		return result, nil

	default:
		return nil, fmt.Errorf(
			"tool permission callback must return *PermissionResultAllow or *PermissionResultDeny, got %T",
			decision,
		)
	}
}
