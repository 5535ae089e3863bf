// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/H0llyW00dzZ/certtrust/src/mcp-server/templates"
)

// examplesMarker separates the long description from the examples.
const examplesMarker = "## Examples"

// cliHelpData holds the values substituted into the CLI help template.
type cliHelpData struct {
	ExeName        string
	ConfigFlagName string
}

// loadCLIHelp renders [templates.CLIHelp] and splits it into the command's
// Long and Example texts.
func loadCLIHelp(fs templates.EmbedFS, exeName, configFlagName string) (longDesc, examples string, err error) {
	templateBytes, err := fs.ReadFile(templates.CLIHelp)
	if err != nil {
		return "", "", fmt.Errorf("failed to load CLI help template: %w", err)
	}

	tmpl, err := template.New("cli_help").Parse(string(templateBytes))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse CLI help template: %w", err)
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, cliHelpData{ExeName: exeName, ConfigFlagName: configFlagName}); err != nil {
		return "", "", fmt.Errorf("failed to execute CLI help template: %w", err)
	}
	return splitHelp(result.String())
}

// splitHelp returns everything before the examples header line as the long
// description and everything after it as the examples.
func splitHelp(text string) (longDesc, examples string, err error) {
	markerIndex := strings.Index(text, examplesMarker)
	if markerIndex == -1 {
		return "", "", fmt.Errorf("CLI help template has invalid format - missing %q section", examplesMarker)
	}

	lineStart := strings.LastIndex(text[:markerIndex], "\n") + 1
	lineEnd := len(text)
	if i := strings.Index(text[markerIndex:], "\n"); i != -1 {
		lineEnd = markerIndex + i
	}

	return strings.TrimSpace(text[:lineStart]), strings.TrimSpace(text[lineEnd:]), nil
}
