// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/certtrust/src/mcp-server/templates"
)

// promptTemplateData holds the data used to populate prompt templates.
type promptTemplateData struct {
	CertificatePath string
	Password        bool
	DocumentPath    string
	ContainerPath   string

	Inspector string
	Signer    string
	Verifier  string
}

// createPrompts creates the guided workflows. Tool names are looked up by role
// so the prompts follow whatever tools the server registered.
func createPrompts(fs templates.EmbedFS, roles map[string]string) []server.ServerPrompt {
	base := promptTemplateData{
		Inspector: roles["inspector"],
		Signer:    roles["signer"],
		Verifier:  roles["verifier"],
	}

	return []server.ServerPrompt{
		{
			Prompt: mcp.NewPrompt("certificate-audit",
				mcp.WithPromptDescription("Decide whether a certificate can be trusted right now"),
				mcp.WithArgument("certificate_path",
					mcp.ArgumentDescription("Path to certificate file or base64-encoded container"),
				),
				mcp.WithArgument("password",
					mcp.ArgumentDescription("Set to any value when the container is password protected"),
				),
			),
			Handler: func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
				data := base
				data.CertificatePath = request.Params.Arguments["certificate_path"]
				data.Password = request.Params.Arguments["password"] != ""
				return promptResult(fs, templates.CertificateAuditPrompt, "Certificate Audit", data)
			},
		},
		{
			Prompt: mcp.NewPrompt("document-signing",
				mcp.WithPromptDescription("Sign a document and verify the result"),
				mcp.WithArgument("document_path",
					mcp.ArgumentDescription("Path to the document to sign"),
				),
				mcp.WithArgument("container_path",
					mcp.ArgumentDescription("Path to the PKCS#12 or PEM container holding the private key"),
				),
			),
			Handler: func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
				data := base
				data.DocumentPath = request.Params.Arguments["document_path"]
				data.ContainerPath = request.Params.Arguments["container_path"]
				return promptResult(fs, templates.DocumentSigningPrompt, "Document Signing", data)
			},
		},
	}
}

func promptResult(fs templates.EmbedFS, name, title string, data promptTemplateData) (*mcp.GetPromptResult, error) {
	messages, err := parsePromptTemplate(fs, name, data)
	if err != nil {
		return nil, err
	}
	return mcp.NewGetPromptResult(title, messages), nil
}

// parsePromptTemplate renders a prompt template and splits it into MCP
// messages at "### Assistant:" and "### User:" markers. Other headers and
// blank lines are dropped.
//
// Parameters:
//   - fs: Filesystem holding the template
//   - name: Template file name
//   - data: Template data to populate placeholders
//
// Returns:
//   - []mcp.PromptMessage: Parsed MCP messages
//   - error: Any error during template execution or parsing
func parsePromptTemplate(fs templates.EmbedFS, name string, data promptTemplateData) ([]mcp.PromptMessage, error) {
	content, err := fs.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	var (
		messages []mcp.PromptMessage
		role     mcp.Role
		current  strings.Builder
	)
	flush := func() {
		if current.Len() > 0 {
			messages = append(messages, mcp.NewPromptMessage(role, mcp.NewTextContent(current.String())))
			current.Reset()
		}
	}

	for line := range strings.SplitSeq(buf.String(), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "### Assistant:"):
			flush()
			role = mcp.RoleAssistant
			continue
		case strings.HasPrefix(line, "### User:"):
			flush()
			role = mcp.RoleUser
			continue
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case role == "":
			continue
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}
	flush()

	return messages, nil
}
