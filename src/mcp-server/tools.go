// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createTools returns the certtrust tool definitions:
//   - inspect_certificate: Evaluates the trust status of a certificate container
//   - validate_certificate: Checks a bare serial number against CRL and OCSP endpoints
//   - sign_document: Signs a document with the key of a container
//   - verify_signature: Verifies a detached signature or envelope
func createTools() []ToolDefinition {
	return []ToolDefinition{
		{
			Tool: mcp.NewTool("inspect_certificate",
				mcp.WithDescription("Parse a certificate container and evaluate its trust status from its validity window and live CRL and OCSP checks"),
				mcp.WithString("certificate",
					mcp.Required(),
					mcp.Description("Certificate or container file path, or base64-encoded PKCS#12, PEM, DER or PKCS#7 data"),
				),
				mcp.WithString("password",
					mcp.Description("PKCS#12 container password"),
				),
				mcp.WithString("format",
					mcp.Description("Container format: 'auto', 'pkcs12', 'pem', 'der' or 'pkcs7' (default: auto)"),
					mcp.DefaultString("auto"),
				),
				mcp.WithString("output",
					mcp.Description("Output format: 'json' or 'markdown' (default: json)"),
					mcp.DefaultString("json"),
				),
			),
			Handler: handleInspectCertificate,
			Role:    "inspector",
		},
		{
			Tool: mcp.NewTool("validate_certificate",
				mcp.WithDescription("Check a certificate known only by serial number and expiry against explicit CRL and OCSP endpoints"),
				mcp.WithString("serial_number",
					mcp.Required(),
					mcp.Description("Serial number in decimal, 0x-prefixed hex, or colon-separated hex"),
				),
				mcp.WithString("valid_to",
					mcp.Required(),
					mcp.Description("Expiry as an RFC 3339 timestamp, YYYY-MM-DD HH:MM:SS, or YYYY-MM-DD date"),
				),
				mcp.WithString("crl_url",
					mcp.Description("CRL distribution point URL"),
				),
				mcp.WithString("ocsp_url",
					mcp.Description("OCSP responder URL"),
				),
			),
			Handler: handleValidateCertificate,
			Role:    "validator",
		},
		{
			Tool: mcp.NewTool("sign_document",
				mcp.WithDescription("Sign a document with the private key of a PKCS#12 or PEM container; PDF and DOCX documents also get an annotated copy"),
				mcp.WithString("container",
					mcp.Required(),
					mcp.Description("Container file path or base64-encoded container holding the private key"),
				),
				mcp.WithString("password",
					mcp.Description("PKCS#12 container password"),
				),
				mcp.WithString("document",
					mcp.Required(),
					mcp.Description("Document file path or base64-encoded document"),
				),
				mcp.WithString("format",
					mcp.Description("Document format: 'auto', 'text', 'json', 'xml', 'binary', 'pdf' or 'docx' (default: auto)"),
					mcp.DefaultString("auto"),
				),
				mcp.WithString("scheme",
					mcp.Description("Signature scheme: 'rsa-pkcs1v15-sha256', 'rsa-pss-sha256' or 'ecdsa-p256-sha256' (default: configured scheme)"),
				),
				mcp.WithString("output_path",
					mcp.Description("Where to write the annotated PDF or DOCX copy; omitted returns it as base64"),
				),
			),
			Handler: handleSignDocument,
			Role:    "signer",
		},
		{
			Tool: mcp.NewTool("verify_signature",
				mcp.WithDescription("Verify a signature over the original document bytes; an invalid signature is reported as valid=false"),
				mcp.WithString("document",
					mcp.Required(),
					mcp.Description("Original document file path or base64-encoded document"),
				),
				mcp.WithString("signature",
					mcp.Required(),
					mcp.Description("Base64 signature, base64 signature envelope, or a file path to either"),
				),
				mcp.WithString("key",
					mcp.Description("Certificate, public key or container file path or base64 data; optional with an envelope"),
				),
				mcp.WithString("password",
					mcp.Description("Password when key is a PKCS#12 container"),
				),
				mcp.WithString("scheme",
					mcp.Description("Signature scheme override"),
				),
			),
			Handler: handleVerifySignature,
			Role:    "verifier",
		},
	}
}
