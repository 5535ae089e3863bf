// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultName is used when the process was started without an argv[0].
const DefaultName = "certtrust"

// GetExecutableName returns the name of the running binary for CLI usage strings.
func GetExecutableName() string { return ExecutableName(os.Args) }

// ExecutableName extracts a clean command name from an argument vector.
//
// The last path component of args[0] is used with any ".exe" suffix removed.
// Both separators are honoured regardless of the host OS, so a Windows path
// seen on Unix still yields the bare name.
//
// Returns:
//   - string: Command name, or [DefaultName] when args[0] is missing or empty
func ExecutableName(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return DefaultName
	}

	name := filepath.Base(args[0])
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".exe")
	if name == "" || name == "." || name == string(filepath.Separator) {
		return DefaultName
	}
	return name
}
