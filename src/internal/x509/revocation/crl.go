// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509revocation

import (
	"bytes"
	"context"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/H0llyW00dzZ/certtrust/src/internal/faults"
	"github.com/H0llyW00dzZ/certtrust/src/logger"
)

var (
	// ErrUnsupportedScheme indicates an endpoint URL scheme with no registered fetcher.
	ErrUnsupportedScheme = errors.New("x509revocation: unsupported endpoint scheme")

	// ErrParseCRL indicates CRL bytes that are neither DER nor a PEM "X509 CRL" block.
	ErrParseCRL = errors.New("x509revocation: failed to parse CRL")

	// ErrCRLIssuerMismatch indicates a CRL issued by someone other than the certificate issuer.
	ErrCRLIssuerMismatch = errors.New("x509revocation: CRL issuer does not match certificate issuer")
)

// CRLFetcher retrieves the raw bytes of a CRL.
//
// Implementations must honour ctx cancellation. Errors should be [faults.Error]
// values of kind NetworkUnavailable, Timeout, or MalformedResponse; anything
// else is reported as a network error.
type CRLFetcher interface {
	FetchCRL(ctx context.Context, endpoint string) ([]byte, error)
}

// CRLFetcherFunc adapts a function to [CRLFetcher].
type CRLFetcherFunc func(ctx context.Context, endpoint string) ([]byte, error)

// FetchCRL calls f.
func (f CRLFetcherFunc) FetchCRL(ctx context.Context, endpoint string) ([]byte, error) {
	return f(ctx, endpoint)
}

// HTTPFetcher downloads CRLs over HTTP(S) GET.
type HTTPFetcher struct{ Config *HTTPConfig }

// FetchCRL implements [CRLFetcher].
func (h HTTPFetcher) FetchCRL(ctx context.Context, endpoint string) ([]byte, error) {
	return h.Config.get(ctx, endpoint)
}

// CRLStrategy checks a serial number against a certificate revocation list.
//
// Fetchers are looked up by URL scheme; http and https are built in. LDAP
// directories are reached only through a fetcher registered with [CRLStrategy.Register].
type CRLStrategy struct {
	mu       sync.RWMutex
	fetchers map[string]CRLFetcher
	clock    clockwork.Clock
	log      logger.Logger
}

// NewCRLStrategy creates a CRL strategy with HTTP and HTTPS fetchers using cfg.
// A nil clock selects the real clock.
func NewCRLStrategy(cfg *HTTPConfig, clock clockwork.Clock, log logger.Logger) *CRLStrategy {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if log == nil {
		log = logger.Discard()
	}
	h := HTTPFetcher{Config: cfg}
	return &CRLStrategy{
		fetchers: map[string]CRLFetcher{"http": h, "https": h},
		clock:    clock,
		log:      log,
	}
}

// Register installs fetcher for scheme (e.g. "ldap"), replacing any existing one.
// A nil fetcher removes the scheme.
//
// Thread Safety: Safe for concurrent use.
func (s *CRLStrategy) Register(scheme string, fetcher CRLFetcher) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scheme = strings.ToLower(scheme)
	if fetcher == nil {
		delete(s.fetchers, scheme)
		return
	}
	s.fetchers[scheme] = fetcher
}

func (s *CRLStrategy) fetcher(endpoint string) (CRLFetcher, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedScheme, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.fetchers[strings.ToLower(u.Scheme)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	return f, nil
}

// Check fetches the CRL at endpoint and scans it for req.Serial.
//
// The serial is compared as an integer. When req.Issuer is set the CRL
// signature must verify against it; otherwise the CRL issuer name must at
// least match the certificate issuer name when req.Certificate is set. A list
// past its NextUpdate can still prove revocation but never NotRevoked.
func (s *CRLStrategy) Check(ctx context.Context, req Request, endpoint string) Result {
	f, err := s.fetcher(endpoint)
	if err != nil {
		s.log.Debugf("crl %s: %v", endpoint, err)
		return unknown(SourceCRL, endpoint, ReasonUnsupportedScheme)
	}

	data, err := f.FetchCRL(ctx, endpoint)
	if err != nil {
		s.log.Debugf("crl %s: fetch: %s", endpoint, detail(err))
		return unknown(SourceCRL, endpoint, reasonFor(err))
	}

	list, err := ParseCRL(data)
	if err != nil {
		s.log.Debugf("crl %s: %s", endpoint, detail(err))
		return unknown(SourceCRL, endpoint, ReasonParse)
	}

	if err := checkCRLIssuer(list, req); err != nil {
		s.log.Debugf("crl %s: %v", endpoint, err)
		return unknown(SourceCRL, endpoint, ReasonParse)
	}

	for _, entry := range list.RevokedCertificateEntries {
		if entry.SerialNumber != nil && entry.SerialNumber.Cmp(req.Serial) == 0 {
			return Result{
				Verdict:          Revoked,
				Source:           SourceCRL,
				Endpoint:         endpoint,
				RevokedAt:        entry.RevocationTime.UTC(),
				RevocationReason: entry.ReasonCode,
			}
		}
	}

	// A listed serial stays revoked, but absence from an expired list proves nothing.
	if !list.NextUpdate.IsZero() && s.clock.Now().After(list.NextUpdate) {
		s.log.Debugf("crl %s: stale list, next update %s", endpoint, list.NextUpdate)
		return unknown(SourceCRL, endpoint, ReasonParse)
	}

	return Result{Verdict: NotRevoked, Source: SourceCRL, Endpoint: endpoint}
}

func checkCRLIssuer(list *x509.RevocationList, req Request) error {
	if req.Issuer != nil {
		if err := list.CheckSignatureFrom(req.Issuer); err != nil {
			return fmt.Errorf("%w: %w", ErrCRLIssuerMismatch, err)
		}
		return nil
	}
	if req.Certificate != nil && !bytes.Equal(list.RawIssuer, req.Certificate.RawIssuer) {
		return ErrCRLIssuerMismatch
	}
	return nil
}

// ParseCRL decodes a DER CRL or a PEM "X509 CRL" block.
func ParseCRL(data []byte) (*x509.RevocationList, error) {
	if block, _ := pem.Decode(data); block != nil {
		if block.Type != "X509 CRL" {
			return nil, faults.New(faults.MalformedResponse, "unexpected PEM block in CRL response",
				fmt.Errorf("%w: block type %q", ErrParseCRL, block.Type))
		}
		data = block.Bytes
	}

	list, err := x509.ParseRevocationList(data)
	if err != nil {
		return nil, faults.New(faults.MalformedResponse, "invalid CRL", fmt.Errorf("%w: %w", ErrParseCRL, err))
	}
	return list, nil
}
