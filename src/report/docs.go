// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package report renders the outcome of a certificate evaluation.
//
// [Certificate] is the stable JSON record returned by the CLI, the HTTP
// gateway, and the MCP tools. Its shape is pinned by an embedded JSON schema
// ([Schema]) and checked with [Validate]. [RenderTable] formats the same
// record as a markdown table for terminals.
package report
