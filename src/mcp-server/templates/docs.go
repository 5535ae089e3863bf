// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package templates provides embedded filesystem access for the markdown
// templates rendered by the MCP server and the CLI: the server instructions
// sent during the MCP handshake and the root command help text.
//
// Example usage:
//
//	import "github.com/H0llyW00dzZ/certtrust/src/mcp-server/templates"
//
//	content, err := templates.MagicEmbed.ReadFile(templates.Instructions)
//	if err != nil {
//		return fmt.Errorf("failed to read instructions: %w", err)
//	}
package templates
