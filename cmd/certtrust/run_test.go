// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/H0llyW00dzZ/certtrust/src/cli"
	verpkg "github.com/H0llyW00dzZ/certtrust/src/version"
)

func TestVersionInit(t *testing.T) {
	assert.NotEmpty(t, version, "version should not be empty after init")
	if version != verpkg.Version {
		t.Logf("version set by ldflags: %s (package version: %s)", version, verpkg.Version)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "Success", err: nil, want: 0},
		{name: "Invalid signature", err: fmt.Errorf("verify: %w", cli.ErrInvalidSignature), want: 2},
		{name: "Other failure", err: errors.New("boom"), want: 1},
		{name: "Missing input", err: cli.ErrInputFileRequired, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
