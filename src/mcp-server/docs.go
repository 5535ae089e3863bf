// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver exposes the certtrust engine as a [Model Context Protocol]
// server.
//
// Four tools are registered by default:
//   - inspect_certificate: evaluate a certificate or container
//   - validate_certificate: check a serial number against CRL and OCSP endpoints
//   - sign_document: sign a document, annotating PDF and DOCX copies
//   - verify_signature: verify a detached signature or envelope
//
// The server also publishes its effective configuration, the report JSON
// Schema, and build information as resources, plus two guided prompts.
// Certificates and documents are accepted as file paths or base64 data.
//
// [Model Context Protocol]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
