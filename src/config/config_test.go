// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvConfigFile, "")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	assert.Equal(t, 5*time.Second, c.Revocation.CRLTimeout())
	assert.Equal(t, 5*time.Second, c.Revocation.OCSPTimeout())
	assert.Equal(t, int64(10<<20), c.Revocation.MaxResponseBytes)
	assert.Equal(t, "sha1", c.Revocation.OCSPHash)
	assert.False(t, c.Revocation.FetchIssuer)
	assert.Equal(t, "rsa-pkcs1v15-sha256", c.Signing.Scheme)
	assert.Equal(t, "127.0.0.1:8080", c.Server.Address)
	assert.Equal(t, 10*time.Second, c.Server.ShutdownTimeout())
	assert.Equal(t, LogFormatText, c.Log.Format)
}

func TestLoad_Files(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		testFunc func(t *testing.T, c *Config)
	}{
		{
			name: "json",
			file: "certtrust.json",
			content: `{
  "revocation": {"crlTimeoutSeconds": 2, "ocspTimeoutSeconds": 3, "ocspHash": "sha256", "fetchIssuer": true},
  "signing": {"scheme": "rsa-pss-sha256"},
  "log": {"format": "json", "verbose": true}
}`,
			testFunc: func(t *testing.T, c *Config) {
				assert.Equal(t, 2*time.Second, c.Revocation.CRLTimeout())
				assert.Equal(t, 3*time.Second, c.Revocation.OCSPTimeout())
				assert.Equal(t, "sha256", c.Revocation.OCSPHash)
				assert.True(t, c.Revocation.FetchIssuer)
				assert.Equal(t, "rsa-pss-sha256", c.Signing.Scheme)
				assert.Equal(t, LogFormatJSON, c.Log.Format)
				assert.True(t, c.Log.Verbose)
				assert.Equal(t, "127.0.0.1:8080", c.Server.Address)
			},
		},
		{
			name: "yaml",
			file: "certtrust.yaml",
			content: `revocation:
  crlTimeoutSeconds: 7
  maxResponseBytes: 1024
  userAgent: custom/1.0
server:
  address: 0.0.0.0:9000
  readTimeoutSeconds: 5
`,
			testFunc: func(t *testing.T, c *Config) {
				assert.Equal(t, 7*time.Second, c.Revocation.CRLTimeout())
				assert.Equal(t, 5*time.Second, c.Revocation.OCSPTimeout())
				assert.Equal(t, int64(1024), c.Revocation.MaxResponseBytes)
				assert.Equal(t, "custom/1.0", c.Revocation.UserAgent)
				assert.Equal(t, "0.0.0.0:9000", c.Server.Address)
				assert.Equal(t, 5*time.Second, c.Server.ReadTimeout())
				assert.Equal(t, 60*time.Second, c.Server.WriteTimeout())
				assert.Equal(t, 120*time.Second, c.Server.IdleTimeout())
			},
		},
		{
			name:    "yml with non-positive values",
			file:    "certtrust.YML",
			content: "revocation:\n  crlTimeoutSeconds: -1\n  ocspTimeoutSeconds: 0\n",
			testFunc: func(t *testing.T, c *Config) {
				assert.Equal(t, 5*time.Second, c.Revocation.CRLTimeout())
				assert.Equal(t, 5*time.Second, c.Revocation.OCSPTimeout())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load(writeConfig(t, tt.file, tt.content))
			require.NoError(t, err)
			tt.testFunc(t, c)
		})
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	path := writeConfig(t, "env.yaml", "signing:\n  scheme: ecdsa-p256-sha256\n")
	t.Setenv(EnvConfigFile, path)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ecdsa-p256-sha256", c.Signing.Scheme)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		invalid bool
	}{
		{"bad json", "c.json", "{", false},
		{"bad yaml", "c.yaml", "revocation: [", false},
		{"bad hash", "c.json", `{"revocation": {"ocspHash": "md5"}}`, true},
		{"bad scheme", "c.json", `{"signing": {"scheme": "dsa"}}`, true},
		{"bad log format", "c.yaml", "log:\n  format: xml\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load(writeConfig(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Nil(t, c)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidConfig))
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestDetectConfigFormat(t *testing.T) {
	assert.Equal(t, configFormatYAML, detectConfigFormat("a.yaml"))
	assert.Equal(t, configFormatYAML, detectConfigFormat("a.YML"))
	assert.Equal(t, configFormatJSON, detectConfigFormat("a.json"))
	assert.Equal(t, configFormatJSON, detectConfigFormat("noext"))
}
