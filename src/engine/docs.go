// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package engine wires the certificate and signing pipelines together.
//
// An [Engine] owns everything a request needs: the parser, the revocation
// checker with its HTTP client, the document signer, the clock and the logger. It is built once with [NewBuilder] and shared by the
// CLI, the HTTP gateway, and the MCP tools; no package-level state is used.
//
// Example:
//
//	eng, err := engine.NewBuilder().
//	    WithConfig(cfg).
//	    WithLogger(log).
//	    WithVersion(version.Version).
//	    Build()
//	if err != nil {
//	    return err
//	}
//	rep, err := eng.Inspect(ctx, engine.InspectRequest{Data: p12, Password: pw})
package engine
