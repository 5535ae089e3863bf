// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/H0llyW00dzZ/certtrust/src/internal/signature"
	x509revocation "github.com/H0llyW00dzZ/certtrust/src/internal/x509/revocation"
)

const (
	// EnvConfigFile names the environment variable holding the config path.
	EnvConfigFile = "CERTTRUST_CONFIG_FILE"
	// EnvPassword names the environment variable holding a container password.
	EnvPassword = "CERTTRUST_PASSWORD"
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// ErrInvalidConfig indicates a configuration value outside its allowed set.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Revocation configures the CRL and OCSP oracles.
type Revocation struct {
	// CRLTimeoutSeconds bounds the whole CRL channel, fallback endpoints included.
	CRLTimeoutSeconds int `json:"crlTimeoutSeconds" yaml:"crlTimeoutSeconds"`
	// OCSPTimeoutSeconds bounds the whole OCSP channel.
	OCSPTimeoutSeconds int `json:"ocspTimeoutSeconds" yaml:"ocspTimeoutSeconds"`
	// MaxResponseBytes caps CRL and OCSP response bodies.
	MaxResponseBytes int64 `json:"maxResponseBytes" yaml:"maxResponseBytes"`
	// UserAgent overrides the default User-Agent header.
	UserAgent string `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
	// OCSPHash selects the CertID hash: sha1, sha256, sha384 or sha512.
	OCSPHash string `json:"ocspHash" yaml:"ocspHash"`
	// FetchIssuer enables issuer retrieval through AIA CA-issuer URLs.
	FetchIssuer bool `json:"fetchIssuer" yaml:"fetchIssuer"`
}

// Signing configures document signing.
type Signing struct {
	// Scheme is the default signature scheme.
	Scheme string `json:"scheme" yaml:"scheme"`
}

// Server configures the HTTP gateway.
type Server struct {
	Address                string `json:"address" yaml:"address"`
	ReadTimeoutSeconds     int    `json:"readTimeoutSeconds" yaml:"readTimeoutSeconds"`
	WriteTimeoutSeconds    int    `json:"writeTimeoutSeconds" yaml:"writeTimeoutSeconds"`
	IdleTimeoutSeconds     int    `json:"idleTimeoutSeconds" yaml:"idleTimeoutSeconds"`
	ShutdownTimeoutSeconds int    `json:"shutdownTimeoutSeconds" yaml:"shutdownTimeoutSeconds"`
	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `json:"maxBodyBytes" yaml:"maxBodyBytes"`
}

// Log configures logging.
type Log struct {
	// Format is "text" or "json".
	Format  string `json:"format" yaml:"format"`
	Verbose bool   `json:"verbose" yaml:"verbose"`
}

// Config is the certtrust configuration.
type Config struct {
	Revocation Revocation `json:"revocation" yaml:"revocation"`
	Signing    Signing    `json:"signing" yaml:"signing"`
	Server     Server     `json:"server" yaml:"server"`
	Log        Log        `json:"log" yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// applyDefaults fills missing and non-positive values.
func (c *Config) applyDefaults() {
	defaultTimeout := int(x509revocation.DefaultTimeout / time.Second)
	if c.Revocation.CRLTimeoutSeconds <= 0 {
		c.Revocation.CRLTimeoutSeconds = defaultTimeout
	}
	if c.Revocation.OCSPTimeoutSeconds <= 0 {
		c.Revocation.OCSPTimeoutSeconds = defaultTimeout
	}
	if c.Revocation.MaxResponseBytes <= 0 {
		c.Revocation.MaxResponseBytes = x509revocation.DefaultMaxResponseBytes
	}
	if c.Revocation.OCSPHash == "" {
		c.Revocation.OCSPHash = "sha1"
	}
	if c.Signing.Scheme == "" {
		c.Signing.Scheme = string(signature.RSAPKCS1v15SHA256)
	}
	if c.Server.Address == "" {
		c.Server.Address = "127.0.0.1:8080"
	}
	if c.Server.ReadTimeoutSeconds <= 0 {
		c.Server.ReadTimeoutSeconds = 30
	}
	if c.Server.WriteTimeoutSeconds <= 0 {
		c.Server.WriteTimeoutSeconds = 60
	}
	if c.Server.IdleTimeoutSeconds <= 0 {
		c.Server.IdleTimeoutSeconds = 120
	}
	if c.Server.ShutdownTimeoutSeconds <= 0 {
		c.Server.ShutdownTimeoutSeconds = 10
	}
	if c.Server.MaxBodyBytes <= 0 {
		c.Server.MaxBodyBytes = 32 << 20
	}
	if c.Log.Format == "" {
		c.Log.Format = LogFormatText
	}
}

// Validate reports the first value outside its allowed set.
func (c *Config) Validate() error {
	if _, err := x509revocation.ParseHash(c.Revocation.OCSPHash); err != nil {
		return fmt.Errorf("%w: revocation.ocspHash %q", ErrInvalidConfig, c.Revocation.OCSPHash)
	}
	if _, err := signature.ParseScheme(c.Signing.Scheme); err != nil {
		return fmt.Errorf("%w: signing.scheme %q", ErrInvalidConfig, c.Signing.Scheme)
	}
	switch c.Log.Format {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// CRLTimeout returns the CRL channel timeout.
func (r Revocation) CRLTimeout() time.Duration { return seconds(r.CRLTimeoutSeconds) }

// OCSPTimeout returns the OCSP channel timeout.
func (r Revocation) OCSPTimeout() time.Duration { return seconds(r.OCSPTimeoutSeconds) }

// ReadTimeout returns the HTTP read timeout.
func (s Server) ReadTimeout() time.Duration { return seconds(s.ReadTimeoutSeconds) }

// WriteTimeout returns the HTTP write timeout.
func (s Server) WriteTimeout() time.Duration { return seconds(s.WriteTimeoutSeconds) }

// IdleTimeout returns the HTTP keep-alive idle timeout.
func (s Server) IdleTimeout() time.Duration { return seconds(s.IdleTimeoutSeconds) }

// ShutdownTimeout returns the graceful shutdown budget.
func (s Server) ShutdownTimeout() time.Duration { return seconds(s.ShutdownTimeoutSeconds) }

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }

// detectConfigFormat determines the configuration file format based on file extension.
// Matching is case-insensitive; anything other than .yaml or .yml is JSON.
func detectConfigFormat(configPath string) configFormat {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// Load reads the configuration file at configPath, or the file named by
// CERTTRUST_CONFIG_FILE when configPath is empty, and applies defaults.
//
// Parameters:
//   - configPath: Path to a .json, .yaml or .yml file (optional)
//
// Returns:
//   - *Config: Loaded configuration with defaults applied
//   - error: Read, parse or validation failure
//
// Configuration Priority:
//  1. Values from the file
//  2. Defaults for anything missing or non-positive
func Load(configPath string) (*Config, error) {
	config := &Config{}

	if configPath == "" {
		configPath = os.Getenv(EnvConfigFile)
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := unmarshalConfig(data, config, detectConfigFormat(configPath)); err != nil {
			return nil, err
		}
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
