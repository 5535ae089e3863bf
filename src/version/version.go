// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package version holds the build version reported by the certtrust binary,
// the MCP server and the User-Agent of revocation requests.
package version

// Version is the certtrust release. Release builds set it with
// -ldflags "-X github.com/H0llyW00dzZ/certtrust/src/version.Version=...".
var Version = "0.1.0"
