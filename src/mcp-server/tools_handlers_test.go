// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/mcptest"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/certtrust/src/config"
	"github.com/H0llyW00dzZ/certtrust/src/engine"
	"github.com/H0llyW00dzZ/certtrust/src/internal/helper/pkitest"
	"github.com/H0llyW00dzZ/certtrust/src/logger"
)

const testPassword = "mcp secret"

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	cfg := config.Default()
	cfg.Revocation.CRLTimeoutSeconds = 1
	cfg.Revocation.OCSPTimeoutSeconds = 1
	eng, err := engine.NewBuilder().
		WithConfig(cfg).
		WithLogger(logger.Discard()).
		WithVersion("test").
		Build()
	require.NoError(t, err)
	return eng
}

// startServer registers the default tools and resources on an in-process server.
func startServer(t *testing.T, eng *engine.Engine) *client.Client {
	t.Helper()
	srv := mcptest.NewUnstartedServer(t)
	for _, tool := range createTools() {
		srv.AddTools(server.ServerTool{Tool: tool.Tool, Handler: bind(tool.Handler, eng)})
	}
	srv.AddResources(createResources(eng, "test")...)
	require.NoError(t, srv.Start(context.Background()))
	t.Cleanup(srv.Close)
	return srv.Client()
}

func callTool(t *testing.T, c *client.Client, name string, args map[string]any) (string, bool) {
	t.Helper()
	result, err := c.CallTool(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text, result.IsError
}

func b64(data []byte) string { return base64.StdEncoding.EncodeToString(data) }

func TestInspectCertificateTool(t *testing.T) {
	ca := pkitest.NewAuthority(t, "MCP CA", nil)
	leaf, _ := ca.Issue(t, pkitest.LeafOptions{CommonName: "mcp.certtrust.test"})
	c := startServer(t, newTestEngine(t))

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "JSON report from base64",
			testFunc: func(t *testing.T) {
				text, isErr := callTool(t, c, "inspect_certificate", map[string]any{
					"certificate": b64(pkitest.CertPEM(leaf)),
				})
				require.False(t, isErr, text)

				var rep map[string]any
				require.NoError(t, json.Unmarshal([]byte(text), &rep))
				assert.Equal(t, "indeterminate", rep["status"])
				assert.Equal(t, "unknown", rep["revocation_status_crl"])
				assert.Equal(t, "no endpoint", rep["revocation_reason_crl"])
			},
		},
		{
			name: "Markdown report from a file",
			testFunc: func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "leaf.pem")
				require.NoError(t, os.WriteFile(path, pkitest.CertPEM(leaf), 0o600))

				text, isErr := callTool(t, c, "inspect_certificate", map[string]any{
					"certificate": path,
					"output":      "markdown",
				})
				require.False(t, isErr, text)
				assert.Contains(t, text, "mcp.certtrust.test")
			},
		},
		{
			name: "Wrong password",
			testFunc: func(t *testing.T) {
				leaf, key := ca.Issue(t, pkitest.LeafOptions{})
				pfx := pkitest.PKCS12(t, key, leaf, nil, testPassword)
				text, isErr := callTool(t, c, "inspect_certificate", map[string]any{
					"certificate": b64(pfx),
					"password":    "nope",
				})
				assert.True(t, isErr)
				assert.Contains(t, text, "failed to inspect certificate")
			},
		},
		{
			name: "Neither path nor base64",
			testFunc: func(t *testing.T) {
				text, isErr := callTool(t, c, "inspect_certificate", map[string]any{
					"certificate": "/definitely/not/here.pem",
				})
				assert.True(t, isErr)
				assert.Contains(t, text, "failed to read certificate")
			},
		},
		{
			name: "Unknown format",
			testFunc: func(t *testing.T) {
				_, isErr := callTool(t, c, "inspect_certificate", map[string]any{
					"certificate": b64(pkitest.CertPEM(leaf)),
					"format":      "jks",
				})
				assert.True(t, isErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestValidateCertificateTool(t *testing.T) {
	c := startServer(t, newTestEngine(t))

	tests := []struct {
		name       string
		args       map[string]any
		wantErr    bool
		wantStatus string
	}{
		{
			name:       "Expired serial",
			args:       map[string]any{"serial_number": "0x1f", "valid_to": "2001-01-01"},
			wantStatus: "expired",
		},
		{
			name:       "No endpoints",
			args:       map[string]any{"serial_number": "4242", "valid_to": "2999-01-01T00:00:00Z"},
			wantStatus: "indeterminate",
		},
		{
			name:    "Bad serial",
			args:    map[string]any{"serial_number": "zz", "valid_to": "2999-01-01"},
			wantErr: true,
		},
		{
			name:    "Bad date",
			args:    map[string]any{"serial_number": "1", "valid_to": "tomorrow"},
			wantErr: true,
		},
		{
			name:    "Missing serial",
			args:    map[string]any{"valid_to": "2999-01-01"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := callTool(t, c, "validate_certificate", tt.args)
			if tt.wantErr {
				assert.True(t, isErr, text)
				return
			}
			require.False(t, isErr, text)

			var v map[string]any
			require.NoError(t, json.Unmarshal([]byte(text), &v))
			assert.Equal(t, tt.wantStatus, v["status"])
		})
	}
}

func TestSignAndVerifyTools(t *testing.T) {
	ca := pkitest.NewAuthority(t, "MCP Signing CA", nil)
	leaf, key := ca.Issue(t, pkitest.LeafOptions{CommonName: "signer.certtrust.test"})
	pfx := b64(pkitest.PKCS12(t, key, leaf, nil, testPassword))
	doc := []byte("quarterly numbers, final\n")
	c := startServer(t, newTestEngine(t))

	signText, isErr := callTool(t, c, "sign_document", map[string]any{
		"container": pfx,
		"password":  testPassword,
		"document":  b64(doc),
	})
	require.False(t, isErr, signText)

	var signed signResult
	require.NoError(t, json.Unmarshal([]byte(signText), &signed))
	assert.Equal(t, "text", signed.Format)
	assert.Contains(t, signed.Signer, "signer.certtrust.test")
	assert.NotEmpty(t, signed.Signature)
	assert.NotEmpty(t, signed.Envelope)
	assert.Empty(t, signed.DerivedDocument)

	tests := []struct {
		name      string
		args      map[string]any
		wantErr   bool
		wantValid bool
	}{
		{
			name:      "Envelope",
			args:      map[string]any{"document": b64(doc), "signature": signed.Envelope},
			wantValid: true,
		},
		{
			name: "Detached signature with the container as key",
			args: map[string]any{
				"document":  b64(doc),
				"signature": signed.Signature,
				"key":       pfx,
				"password":  testPassword,
			},
			wantValid: true,
		},
		{
			name: "Detached signature with a certificate as key",
			args: map[string]any{
				"document":  b64(doc),
				"signature": signed.Signature,
				"key":       b64(pkitest.CertPEM(leaf)),
			},
			wantValid: true,
		},
		{
			name:      "Tampered document",
			args:      map[string]any{"document": b64([]byte("quarterly numbers, draft\n")), "signature": signed.Envelope},
			wantValid: false,
		},
		{
			name:    "Detached signature without a key",
			args:    map[string]any{"document": b64(doc), "signature": signed.Signature},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := callTool(t, c, "verify_signature", tt.args)
			if tt.wantErr {
				assert.True(t, isErr, text)
				return
			}
			require.False(t, isErr, text)

			var v engine.Verification
			require.NoError(t, json.Unmarshal([]byte(text), &v))
			assert.Equal(t, tt.wantValid, v.Valid)
		})
	}
}

func TestSignDocumentTool_Failures(t *testing.T) {
	ca := pkitest.NewAuthority(t, "MCP Failure CA", nil)
	leaf, key := ca.Issue(t, pkitest.LeafOptions{})
	c := startServer(t, newTestEngine(t))

	tests := []struct {
		name string
		args map[string]any
	}{
		{
			name: "Container without a key",
			args: map[string]any{"container": b64(pkitest.CertPEM(leaf)), "document": b64([]byte("x"))},
		},
		{
			name: "Invalid declared JSON",
			args: map[string]any{
				"container": b64(append(pkitest.CertPEM(leaf), pkitest.KeyPEM(t, key)...)),
				"document":  b64([]byte("{not json")),
				"format":    "json",
			},
		},
		{
			name: "Unknown scheme",
			args: map[string]any{
				"container": b64(append(pkitest.CertPEM(leaf), pkitest.KeyPEM(t, key)...)),
				"document":  b64([]byte("x")),
				"scheme":    "rot13",
			},
		},
		{
			name: "Missing document",
			args: map[string]any{"container": b64(pkitest.CertPEM(leaf))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := callTool(t, c, "sign_document", tt.args)
			assert.True(t, isErr, text)
		})
	}
}

func TestResources(t *testing.T) {
	c := startServer(t, newTestEngine(t))

	tests := []struct {
		name           string
		uri            string
		expectMIMEType string
		expectContains []string
	}{
		{
			name:           "Effective configuration",
			uri:            ConfigResourceURI,
			expectMIMEType: "application/json",
			expectContains: []string{`"crlTimeoutSeconds": 1`, `"ocspHash"`},
		},
		{
			name:           "Report schema",
			uri:            SchemaResourceURI,
			expectMIMEType: "application/schema+json",
			expectContains: []string{`"revocation_status_crl"`},
		},
		{
			name:           "Server information",
			uri:            VersionResourceURI,
			expectMIMEType: "application/json",
			expectContains: []string{`"version": "test"`, "rsa-pkcs1v15-sha256", `"docx"`, `"pkcs12"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := c.ReadResource(context.Background(), mcp.ReadResourceRequest{
				Params: mcp.ReadResourceParams{URI: tt.uri},
			})
			require.NoError(t, err)
			require.NotEmpty(t, result.Contents)

			content, ok := result.Contents[0].(mcp.TextResourceContents)
			require.True(t, ok, "expected TextResourceContents, got %T", result.Contents[0])
			assert.Equal(t, tt.expectMIMEType, content.MIMEType)
			for _, want := range tt.expectContains {
				assert.Contains(t, content.Text, want)
			}
		})
	}
}
