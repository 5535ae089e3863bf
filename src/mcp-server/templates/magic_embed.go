// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package templates

import (
	"embed"
	"io/fs"
)

//go:embed *.md
var embeddedFS embed.FS

// Template file names.
const (
	// Instructions is the MCP server instructions template.
	Instructions = "instructions.md"
	// CLIHelp is the root command help template. It must contain a
	// "## Examples" section.
	CLIHelp = "cli_help.md"
	// CertificateAuditPrompt is the certificate-audit prompt template.
	CertificateAuditPrompt = "certificate_audit.md"
	// DocumentSigningPrompt is the document-signing prompt template.
	DocumentSigningPrompt = "document_signing.md"
)

// EmbedFS abstracts [embed.FS] so callers can substitute their own templates.
// Implementations must be safe for concurrent use.
type EmbedFS interface {
	// ReadFile reads the named file and returns the contents.
	ReadFile(name string) ([]byte, error)

	// ReadDir reads the named directory and returns a list of directory entries.
	ReadDir(name string) ([]fs.DirEntry, error)
}

// MagicEmbed is the embedded filesystem holding the default templates.
var MagicEmbed EmbedFS = embeddedFS
