// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the certtrust command-line interface.
//
// It implements a Cobra command tree with one subcommand per operation:
// inspect, validate, sign and verify run the engine once, while serve and mcp
// expose it over HTTP and over the Model Context Protocol. Configuration and
// logging are set up once in the root command before any subcommand runs.
package cli
