// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509revocation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/H0llyW00dzZ/certtrust/src/internal/faults"
	"github.com/H0llyW00dzZ/certtrust/src/internal/helper/gc"
)

// DefaultMaxResponseBytes bounds CRL, OCSP, and issuer downloads.
const DefaultMaxResponseBytes int64 = 10 << 20

// HTTPConfig holds HTTP client configuration for revocation and issuer fetches.
type HTTPConfig struct {
	Timeout          time.Duration // Client-level safety net; per-check budgets come from the context
	Version          string        // Application version for User-Agent
	UserAgent        string        // Custom User-Agent string, if empty will be constructed from Version
	MaxResponseBytes int64         // Response size limit, DefaultMaxResponseBytes when zero

	mu     sync.Mutex
	client *http.Client
}

// NewHTTPConfig creates a new HTTP configuration with default values.
//
// Parameters:
//   - version: Application version string
//
// Returns:
//   - *HTTPConfig: New HTTP configuration with a 30 second client timeout
func NewHTTPConfig(version string) *HTTPConfig {
	return &HTTPConfig{
		Timeout:          30 * time.Second,
		Version:          version,
		MaxResponseBytes: DefaultMaxResponseBytes,
	}
}

// GetUserAgent returns the User-Agent string, constructing it if not set.
func (c *HTTPConfig) GetUserAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return fmt.Sprintf("certtrust/%s (+https://github.com/H0llyW00dzZ/certtrust)", c.Version)
}

// Client returns an HTTP client configured with the current timeout.
//
// Thread Safety: Safe for concurrent use.
func (c *HTTPConfig) Client() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		c.client = &http.Client{Timeout: c.Timeout}
		return c.client
	}

	if c.client.Timeout != c.Timeout {
		c.client.Timeout = c.Timeout
	}

	return c.client
}

// SetClient replaces the HTTP client, e.g. with one using a custom transport.
// The client's own timeout becomes the configured timeout.
//
// Thread Safety: Safe for concurrent use.
func (c *HTTPConfig) SetClient(client *http.Client) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.client = client
	c.Timeout = client.Timeout
}

func (c *HTTPConfig) maxResponseBytes() int64 {
	if c.MaxResponseBytes <= 0 {
		return DefaultMaxResponseBytes
	}
	return c.MaxResponseBytes
}

// get performs a GET and returns the body of a 200 response.
func (c *HTTPConfig) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, faults.New(faults.InvalidInput, "invalid endpoint URL", err)
	}
	return c.do(req)
}

// post performs a POST of body with contentType and returns the body of a 200 response.
func (c *HTTPConfig) post(ctx context.Context, endpoint, contentType, accept string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, faults.New(faults.InvalidInput, "invalid endpoint URL", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", accept)
	return c.do(req)
}

func (c *HTTPConfig) do(req *http.Request) ([]byte, error) {
	req.Header.Set("User-Agent", c.GetUserAgent())

	resp, err := c.Client().Do(req)
	if err != nil {
		return nil, transportFault(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, faults.New(faults.NetworkUnavailable,
			fmt.Sprintf("endpoint returned HTTP %d", resp.StatusCode), nil)
	}

	data, err := gc.ReadAll(resp.Body, c.maxResponseBytes())
	if err != nil {
		if errors.Is(err, gc.ErrTooLarge) {
			return nil, faults.New(faults.MalformedResponse, "response exceeds size limit", err)
		}
		return nil, transportFault(err)
	}

	return data, nil
}

// transportFault classifies a transport error as Timeout or NetworkUnavailable.
func transportFault(err error) *faults.Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return faults.New(faults.Timeout, "endpoint timed out", err)
	}
	return faults.New(faults.NetworkUnavailable, "endpoint unreachable", err)
}

// reasonFor maps a fetch error to an Unknown reason.
func reasonFor(err error) Reason {
	if errors.Is(err, ErrUnsupportedScheme) {
		return ReasonUnsupportedScheme
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}

	switch faults.KindOf(err) {
	case faults.Timeout:
		return ReasonTimeout
	case faults.MalformedResponse:
		return ReasonParse
	default:
		return ReasonNetwork
	}
}

// detail renders the underlying cause of err for debug logs.
func detail(err error) string {
	if cause := errors.Unwrap(err); cause != nil {
		return cause.Error()
	}
	return err.Error()
}
