// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/certtrust/src/engine"
	"github.com/H0llyW00dzZ/certtrust/src/internal/document"
	"github.com/H0llyW00dzZ/certtrust/src/internal/signature"
	x509certs "github.com/H0llyW00dzZ/certtrust/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/certtrust/src/report"
)

// Resource URIs served by the MCP server.
const (
	ConfigResourceURI  = "certtrust://config"
	SchemaResourceURI  = "certtrust://schema/report"
	VersionResourceURI = "certtrust://info/version"
)

// createResources creates the static resources. They describe the running
// engine, so they are bound to it like the tools are.
func createResources(eng *engine.Engine, version string) []server.ServerResource {
	return []server.ServerResource{
		{
			Resource: mcp.NewResource(
				ConfigResourceURI,
				"Effective Configuration",
				mcp.WithResourceDescription("Configuration the engine is running with, after defaults"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				return jsonResource(ConfigResourceURI, eng.Config())
			},
		},
		{
			Resource: mcp.NewResource(
				SchemaResourceURI,
				"Certificate Report Schema",
				mcp.WithResourceDescription("JSON Schema of the report returned by the inspect tool"),
				mcp.WithMIMEType("application/schema+json"),
			),
			Handler: handleSchemaResource,
		},
		{
			Resource: mcp.NewResource(
				VersionResourceURI,
				"Server Information",
				mcp.WithResourceDescription("Version, signature schemes, and supported formats"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				return jsonResource(VersionResourceURI, versionInfo(version))
			},
		},
	}
}

// handleSchemaResource serves the embedded report schema.
func handleSchemaResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      SchemaResourceURI,
			MIMEType: "application/schema+json",
			Text:     string(report.Schema()),
		},
	}, nil
}

// versionInfo lists what this build supports.
func versionInfo(version string) map[string]any {
	containers := make([]string, 0, 4)
	for _, f := range []x509certs.Format{x509certs.FormatPKCS12, x509certs.FormatPEM, x509certs.FormatDER, x509certs.FormatPKCS7} {
		containers = append(containers, f.String())
	}
	documents := make([]string, 0, 6)
	for _, f := range []document.Format{document.FormatText, document.FormatJSON, document.FormatXML, document.FormatBinary, document.FormatPDF, document.FormatDOCX} {
		documents = append(documents, f.String())
	}

	return map[string]any{
		"name":             ServerName,
		"version":          version,
		"schemes":          signature.Schemes(),
		"containerFormats": containers,
		"documentFormats":  documents,
	}
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
