// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/H0llyW00dzZ/certtrust/src/mcp-server/templates"
)

// instructionData holds the data used to populate the instructions template.
type instructionData struct {
	Tools     []toolInfo
	ToolRoles map[string]string // Maps tool roles to tool names for template use
}

// toolInfo represents information about an MCP tool for template rendering.
type toolInfo struct {
	Name        string
	Description string
}

// loadInstructions renders the instructions template with the registered tools.
//
// Parameters:
//   - fs: Filesystem holding [templates.Instructions]
//   - tools: Tool definitions to describe
//
// Returns:
//   - string: The rendered instruction text for MCP client initialization
//   - error: If the template cannot be read, parsed, or executed
func loadInstructions(fs templates.EmbedFS, tools []ToolDefinition) (string, error) {
	templateBytes, err := fs.ReadFile(templates.Instructions)
	if err != nil {
		return "", fmt.Errorf("failed to load MCP server instructions template: %w", err)
	}

	data := instructionData{ToolRoles: toolRoles(tools)}
	for _, tool := range tools {
		data.Tools = append(data.Tools, toolInfo{Name: tool.Tool.Name, Description: tool.Tool.Description})
	}

	tmpl, err := template.New("instructions").Option("missingkey=zero").Parse(string(templateBytes))
	if err != nil {
		return "", fmt.Errorf("failed to parse instructions template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute instructions template: %w", err)
	}
	return buf.String(), nil
}

// toolRoles maps each tool role to the registered tool name.
func toolRoles(tools []ToolDefinition) map[string]string {
	roles := make(map[string]string, len(tools))
	for _, tool := range tools {
		if tool.Role != "" {
			roles[tool.Role] = tool.Tool.Name
		}
	}
	return roles
}
