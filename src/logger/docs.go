// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides abstraction and implementation for logging operations.
// It defines the Logger interface and provides two implementations: CLILogger for
// human-readable command-line output and JSONLogger for structured one-line JSON
// logging in the MCP and HTTP server modes. Both implementations are thread-safe.
//
// Debug output carries raw transport errors from revocation checks. It is off by
// default and never reaches a client-facing result.
package logger
