// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509revocation

import (
	"context"
	"crypto"
	"crypto/x509"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/H0llyW00dzZ/certtrust/src/internal/faults"
	"github.com/H0llyW00dzZ/certtrust/src/logger"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/ocsp"
)

// ErrUnsupportedHash indicates an OCSP CertID hash name that is not supported.
var ErrUnsupportedHash = errors.New("x509revocation: unsupported OCSP hash")

// ParseHash maps an OCSP CertID hash name to a [crypto.Hash].
// The empty string selects SHA-1, which every responder understands.
func ParseHash(name string) (crypto.Hash, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "-", "")) {
	case "", "sha1":
		return crypto.SHA1, nil
	case "sha256":
		return crypto.SHA256, nil
	case "sha384":
		return crypto.SHA384, nil
	case "sha512":
		return crypto.SHA512, nil
	}
	return 0, faults.New(faults.InvalidInput, fmt.Sprintf("unsupported OCSP hash %q", name), ErrUnsupportedHash)
}

// OCSPStrategy queries an OCSP responder over HTTP POST.
type OCSPStrategy struct {
	config *HTTPConfig
	hash   crypto.Hash
	clock  clockwork.Clock
	log    logger.Logger
}

// NewOCSPStrategy creates an OCSP strategy. A zero hash selects SHA-1 and a
// nil clock selects the real clock.
func NewOCSPStrategy(cfg *HTTPConfig, hash crypto.Hash, clock clockwork.Clock, log logger.Logger) *OCSPStrategy {
	if hash == 0 {
		hash = crypto.SHA1
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &OCSPStrategy{config: cfg, hash: hash, clock: clock, log: log}
}

// Check asks the responder at endpoint about req.
//
// GOOD maps to NotRevoked and REVOKED to Revoked. A responder "unknown",
// an error status, a stale response, or any transport or parse failure maps
// to Unknown. Without an issuer certificate no request is sent.
func (s *OCSPStrategy) Check(ctx context.Context, req Request, endpoint string) Result {
	if req.Issuer == nil {
		return unknown(SourceOCSP, endpoint, ReasonNoIssuer)
	}

	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		s.log.Debugf("ocsp %s: unsupported endpoint", endpoint)
		return unknown(SourceOCSP, endpoint, ReasonUnsupportedScheme)
	}

	cert := req.Certificate
	if cert == nil {
		cert = &x509.Certificate{SerialNumber: req.Serial}
	}

	der, err := ocsp.CreateRequest(cert, req.Issuer, &ocsp.RequestOptions{Hash: s.hash})
	if err != nil {
		s.log.Debugf("ocsp %s: build request: %v", endpoint, err)
		return unknown(SourceOCSP, endpoint, ReasonParse)
	}

	body, err := s.config.post(ctx, endpoint, "application/ocsp-request", "application/ocsp-response", der)
	if err != nil {
		s.log.Debugf("ocsp %s: %s", endpoint, detail(err))
		return unknown(SourceOCSP, endpoint, reasonFor(err))
	}

	resp, err := ocsp.ParseResponseForCert(body, cert, req.Issuer)
	if err != nil {
		var respErr ocsp.ResponseError
		if errors.As(err, &respErr) {
			s.log.Debugf("ocsp %s: responder status %v", endpoint, respErr.Status)
			return unknown(SourceOCSP, endpoint, ReasonResponderError)
		}
		s.log.Debugf("ocsp %s: parse: %v", endpoint, err)
		return unknown(SourceOCSP, endpoint, ReasonParse)
	}

	if !resp.NextUpdate.IsZero() && s.clock.Now().After(resp.NextUpdate) {
		s.log.Debugf("ocsp %s: stale response, next update %s", endpoint, resp.NextUpdate)
		return unknown(SourceOCSP, endpoint, ReasonParse)
	}

	switch resp.Status {
	case ocsp.Good:
		return Result{Verdict: NotRevoked, Source: SourceOCSP, Endpoint: endpoint}
	case ocsp.Revoked:
		return Result{
			Verdict:          Revoked,
			Source:           SourceOCSP,
			Endpoint:         endpoint,
			RevokedAt:        resp.RevokedAt.UTC(),
			RevocationReason: resp.RevocationReason,
		}
	default:
		return unknown(SourceOCSP, endpoint, ReasonResponderUnknown)
	}
}
