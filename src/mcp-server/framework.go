// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/certtrust/src/engine"
	"github.com/H0llyW00dzZ/certtrust/src/mcp-server/templates"
)

// ServerName is the name announced during the [MCP] handshake.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
const ServerName = "certtrust"

// ErrNoEngine is returned by [ServerBuilder.Build] when no engine was configured.
var ErrNoEngine = errors.New("mcpserver: engine is required")

// ToolHandler is the signature of every certtrust tool. The engine is shared
// by all calls.
//
// Parameters:
//   - ctx: Context for cancellation; it bounds revocation checks
//   - request: The MCP tool call request containing arguments and metadata
//   - eng: The engine serving the call
//
// Returns:
//   - The tool result. Failures caused by the caller's input are reported as
//     error results, not as Go errors, so the model can read them.
type ToolHandler func(ctx context.Context, request mcp.CallToolRequest, eng *engine.Engine) (*mcp.CallToolResult, error)

// ToolDefinition pairs an MCP tool specification with its implementation.
//
// Fields:
//   - Tool: The MCP tool definition containing name, description, and input schema
//   - Handler: The function that implements the tool's logic
//   - Role: A stable name the instructions template uses to refer to the tool
type ToolDefinition struct {
	Tool    mcp.Tool
	Handler ToolHandler
	Role    string
}

// ServerDependencies holds everything needed to create the MCP server.
// It is used internally by [ServerBuilder].
type ServerDependencies struct {
	Engine       *engine.Engine
	Version      string
	Embed        templates.EmbedFS
	Tools        []ToolDefinition
	Instructions string
}

// ServerBuilder constructs the MCP server with a fluent interface.
//
// Example:
//
//	s, err := NewServerBuilder().
//	    WithEngine(eng).
//	    WithVersion(version.Version).
//	    WithDefaultTools().
//	    Build()
type ServerBuilder struct{ deps ServerDependencies }

// NewServerBuilder creates a builder with no dependencies configured.
func NewServerBuilder() *ServerBuilder { return &ServerBuilder{} }

// WithEngine sets the engine the tools run on. It is required.
func (b *ServerBuilder) WithEngine(eng *engine.Engine) *ServerBuilder {
	b.deps.Engine = eng
	return b
}

// WithVersion sets the version announced to clients.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.deps.Version = version
	return b
}

// WithEmbed replaces the filesystem the instructions template is read from.
func (b *ServerBuilder) WithEmbed(fs templates.EmbedFS) *ServerBuilder {
	b.deps.Embed = fs
	return b
}

// WithTools adds tools to the server.
func (b *ServerBuilder) WithTools(tools ...ToolDefinition) *ServerBuilder {
	b.deps.Tools = append(b.deps.Tools, tools...)
	return b
}

// WithDefaultTools adds the certificate and document tools from [createTools].
func (b *ServerBuilder) WithDefaultTools() *ServerBuilder {
	b.deps.Tools = append(b.deps.Tools, createTools()...)
	return b
}

// WithInstructions overrides the rendered instructions template.
func (b *ServerBuilder) WithInstructions(instructions string) *ServerBuilder {
	b.deps.Instructions = instructions
	return b
}

// Build creates the MCP server with every configured tool registered, along
// with the informational resources and the guided prompts.
//
// Returns:
//   - *server.MCPServer: Server ready to be served over a transport
//   - error: [ErrNoEngine], or a failure rendering the instructions template
func (b *ServerBuilder) Build() (*server.MCPServer, error) {
	if b.deps.Engine == nil {
		return nil, ErrNoEngine
	}

	fs := b.deps.Embed
	if fs == nil {
		fs = templates.MagicEmbed
	}

	instructions := b.deps.Instructions
	if instructions == "" {
		var err error
		if instructions, err = loadInstructions(fs, b.deps.Tools); err != nil {
			return nil, err
		}
	}

	s := server.NewMCPServer(
		ServerName,
		b.deps.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	eng := b.deps.Engine
	for _, tool := range b.deps.Tools {
		s.AddTool(tool.Tool, bind(tool.Handler, eng))
	}
	for _, resource := range createResources(eng, b.deps.Version) {
		s.AddResource(resource.Resource, resource.Handler)
	}
	for _, prompt := range createPrompts(fs, toolRoles(b.deps.Tools)) {
		s.AddPrompt(prompt.Prompt, prompt.Handler)
	}

	return s, nil
}

// bind closes a ToolHandler over eng.
func bind(h ToolHandler, eng *engine.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return h(ctx, request, eng)
	}
}
