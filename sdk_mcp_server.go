package claudeagent

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ya-luotao/claude-agent-sdk-go/internal/toolserver"
)

// SdkMcpComponent is anything that can be registered on an in-process MCP
// server: a tool, a resource, or a prompt.
type SdkMcpComponent interface {
	register(server *toolserver.Server)
}

func (t *SdkMcpTool) register(server *toolserver.Server) {
	mcpTool := toolserver.NewTool(t.ToolName, t.ToolDescription, t.ToolSchema)
	mcpTool.Annotations = t.ToolAnnotations
	server.AddTool(mcpTool, t.ToolHandler)
}

// SdkMcpResource pairs an MCP resource definition with its read handler.
type SdkMcpResource struct {
	Resource *mcp.Resource
	Handler  mcp.ResourceHandler
}

func (r *SdkMcpResource) register(server *toolserver.Server) {
	server.AddResource(r.Resource, r.Handler)
}

// NewSdkMcpResource creates a resource served by an in-process MCP server.
// Claude reads it via resources/read with the given URI.
func NewSdkMcpResource(uri, name, description, mimeType string, handler mcp.ResourceHandler) *SdkMcpResource {
	return &SdkMcpResource{
		Resource: toolserver.NewResource(uri, name, description, mimeType),
		Handler:  handler,
	}
}

// SdkMcpPrompt pairs an MCP prompt definition with its handler.
type SdkMcpPrompt struct {
	Prompt  *mcp.Prompt
	Handler mcp.PromptHandler
}

func (p *SdkMcpPrompt) register(server *toolserver.Server) {
	server.AddPrompt(p.Prompt, p.Handler)
}

// NewSdkMcpPrompt creates a prompt served by an in-process MCP server.
// Claude fetches it via prompts/get with the declared arguments.
func NewSdkMcpPrompt(name, description string, handler mcp.PromptHandler, args ...*mcp.PromptArgument) *SdkMcpPrompt {
	return &SdkMcpPrompt{
		Prompt:  toolserver.NewPrompt(name, description, args...),
		Handler: handler,
	}
}

// CreateSdkMcpServer creates an in-process MCP server configuration from
// tools, resources, and prompts.
//
// This function creates an MCP server
// that runs within your application, providing better performance than external MCP servers.
//
// The returned config can be used directly in ClaudeAgentOptions.MCPServers:
//
//	addTool := claudeagent.NewSdkMcpTool("add", "Add two numbers",
//	    claudeagent.SimpleSchema(map[string]string{"a": "float64", "b": "float64"}),
//	    func(ctx context.Context, req *claudeagent.CallToolRequest) (*claudeagent.CallToolResult, error) {
//	        args, _ := claudeagent.ParseArguments(req)
//	        a, b := args["a"].(float64), args["b"].(float64)
//	        return claudeagent.TextResult(fmt.Sprintf("Result: %v", a+b)), nil
//	    },
//	)
//
//	calculator := claudeagent.CreateSdkMcpServer("calculator", "1.0.0", addTool)
//
//	options := &claudeagent.ClaudeAgentOptions{
//	    MCPServers: map[string]claudeagent.MCPServerConfig{
//	        "calculator": calculator,
//	    },
//	    AllowedTools: []string{"mcp__calculator__add"},
//	}
//
// Parameters:
//   - name: Server name (also used as key in MCPServers map, determines tool naming: mcp__<name>__<toolName>)
//   - version: Server version string
//   - components: SdkMcpTool, SdkMcpResource, and SdkMcpPrompt instances to register
func CreateSdkMcpServer(name, version string, components ...SdkMcpComponent) *MCPSdkServerConfig {
	server := toolserver.NewServer(name, version)

	for _, component := range components {
		component.register(server)
	}

	return &MCPSdkServerConfig{
		Type:     MCPServerTypeSDK,
		Name:     name,
		Instance: server,
	}
}
