// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/certtrust/src/engine"
)

// Run serves the certtrust tools over stdio until ctx is cancelled.
//
// Parameters:
//   - ctx: Cancelling it stops the server; a cancellation is not an error
//   - eng: The engine serving every tool call
//   - version: Version announced to clients
//
// Returns:
//   - error: Build failures, or transport errors other than cancellation
func Run(ctx context.Context, eng *engine.Engine, version string) error {
	return Serve(ctx, eng, version, os.Stdin, os.Stdout)
}

// Serve is [Run] over arbitrary streams.
func Serve(ctx context.Context, eng *engine.Engine, version string, in io.Reader, out io.Writer) error {
	s, err := NewServerBuilder().
		WithEngine(eng).
		WithVersion(version).
		WithDefaultTools().
		Build()
	if err != nil {
		return fmt.Errorf("failed to build MCP server: %w", err)
	}

	stdioServer := server.NewStdioServer(s)

	log := eng.Logger()
	log.Printf("certtrust MCP server started.")
	defer log.Printf("certtrust MCP server stopped.")

	// Only cancellation counts as a graceful shutdown; deadlines are reported.
	if err := stdioServer.Listen(ctx, in, out); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
