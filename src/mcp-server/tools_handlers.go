// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/H0llyW00dzZ/certtrust/src/engine"
	"github.com/H0llyW00dzZ/certtrust/src/internal/document"
	"github.com/H0llyW00dzZ/certtrust/src/internal/signature"
	x509certs "github.com/H0llyW00dzZ/certtrust/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/certtrust/src/report"
)

// errNotInput reports an argument that is neither a readable file nor base64.
var errNotInput = errors.New("not a valid file path or base64 data")

// handleInspectCertificate evaluates a certificate container.
//
// Parameters:
//   - ctx: Context for cancellation; it bounds the revocation checks
//   - request: Arguments certificate, password, format, output
//   - eng: The engine serving the call
//
// Returns:
//   - The certificate report as JSON or as a markdown table
func handleInspectCertificate(ctx context.Context, request mcp.CallToolRequest, eng *engine.Engine) (*mcp.CallToolResult, error) {
	certInput, err := request.RequireString("certificate")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("certificate parameter required: %v", err)), nil
	}

	data, err := readInput(certInput)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read certificate: %v", err)), nil
	}
	format, err := x509certs.ParseFormat(request.GetString("format", "auto"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rep, err := eng.Inspect(ctx, engine.InspectRequest{
		Data:     data,
		Format:   format,
		Password: request.GetString("password", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to inspect certificate: %v", err)), nil
	}

	switch request.GetString("output", "json") {
	case "markdown":
		return mcp.NewToolResultText(report.RenderTable(rep)), nil
	default:
		out, err := rep.JSON()
		if err != nil {
			return nil, fmt.Errorf("encode report: %w", err)
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}

// handleValidateCertificate checks a serial number against explicit endpoints.
func handleValidateCertificate(ctx context.Context, request mcp.CallToolRequest, eng *engine.Engine) (*mcp.CallToolResult, error) {
	serialInput, err := request.RequireString("serial_number")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("serial_number parameter required: %v", err)), nil
	}
	validTo, err := request.RequireString("valid_to")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("valid_to parameter required: %v", err)), nil
	}

	serial, err := engine.ParseSerial(serialInput)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	notAfter, err := engine.ParseExpiry(validTo)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	v, err := eng.Validate(ctx, engine.ValidateRequest{
		Serial:   serial,
		NotAfter: notAfter,
		CRLURL:   request.GetString("crl_url", ""),
		OCSPURL:  request.GetString("ocsp_url", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to validate certificate: %v", err)), nil
	}
	return jsonResult(v)
}

// signResult is the JSON answer of sign_document.
type signResult struct {
	Format    string           `json:"format"`
	Scheme    signature.Scheme `json:"scheme"`
	Signer    string           `json:"signer"`
	Signature string           `json:"signature"`
	Envelope  string           `json:"envelope"`
	SignedAt  time.Time        `json:"signed_at"`
	// OutputPath or DerivedDocument is set for PDF and DOCX.
	OutputPath      string `json:"output_path,omitempty"`
	DerivedDocument string `json:"derived_document,omitempty"`
}

// handleSignDocument signs a document and reports the signature, the
// envelope, and the annotated copy for PDF and DOCX.
//
// Parameters:
//   - ctx: Context for cancellation
//   - request: Arguments container, password, document, format, scheme, output_path
//   - eng: The engine serving the call
//
// Returns:
//   - A JSON [signResult]
func handleSignDocument(ctx context.Context, request mcp.CallToolRequest, eng *engine.Engine) (*mcp.CallToolResult, error) {
	containerInput, err := request.RequireString("container")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("container parameter required: %v", err)), nil
	}
	documentInput, err := request.RequireString("document")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("document parameter required: %v", err)), nil
	}

	container, err := readInput(containerInput)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read container: %v", err)), nil
	}
	doc, err := readInput(documentInput)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read document: %v", err)), nil
	}
	format, err := document.ParseFormat(request.GetString("format", "auto"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// A file path doubles as a hint for format detection.
	name := ""
	if _, statErr := os.Stat(documentInput); statErr == nil {
		name = documentInput
	}

	signed, err := eng.Sign(ctx, engine.SignRequest{
		Container:    container,
		Password:     request.GetString("password", ""),
		Document:     doc,
		DocumentName: name,
		Format:       format,
		Scheme:       request.GetString("scheme", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to sign document: %v", err)), nil
	}

	res := signResult{
		Format:    signed.Format.String(),
		Scheme:    signed.Signature.Scheme,
		Signer:    signed.Signer.Subject(),
		Signature: signed.SignatureBase64(),
		Envelope:  base64.StdEncoding.EncodeToString(signed.Envelope),
		SignedAt:  signed.Signature.SignedAt,
	}
	if signed.Derived != nil {
		if out := request.GetString("output_path", ""); out != "" {
			if err := os.WriteFile(out, signed.Derived, 0o644); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to write signed document: %v", err)), nil
			}
			res.OutputPath = out
		} else {
			res.DerivedDocument = base64.StdEncoding.EncodeToString(signed.Derived)
		}
	}
	return jsonResult(res)
}

// handleVerifySignature verifies a signature over the original document.
func handleVerifySignature(ctx context.Context, request mcp.CallToolRequest, eng *engine.Engine) (*mcp.CallToolResult, error) {
	documentInput, err := request.RequireString("document")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("document parameter required: %v", err)), nil
	}
	signatureInput, err := request.RequireString("signature")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("signature parameter required: %v", err)), nil
	}

	doc, err := readInput(documentInput)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read document: %v", err)), nil
	}

	var key []byte
	if keyInput := request.GetString("key", ""); keyInput != "" {
		if key, err = readInput(keyInput); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read key: %v", err)), nil
		}
	}

	v, err := eng.Verify(ctx, engine.VerifyRequest{
		Key:       key,
		Password:  request.GetString("password", ""),
		Document:  doc,
		Signature: readSignature(signatureInput),
		Scheme:    request.GetString("scheme", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to verify signature: %v", err)), nil
	}
	return jsonResult(v)
}

// readInput reads a file path, falling back to base64 data.
func readInput(input string) ([]byte, error) {
	if data, err := os.ReadFile(input); err == nil {
		return data, nil
	}
	if data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(input)); err == nil {
		return data, nil
	}
	return nil, errNotInput
}

// readSignature resolves a signature argument. File contents are used as
// they are; anything else is base64 text, which may also carry an envelope.
func readSignature(input string) []byte {
	if data, err := os.ReadFile(input); err == nil {
		return data
	}
	return []byte(input)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}
