// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package engine

import (
	"context"
	"crypto/x509"
	"math/big"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/H0llyW00dzZ/certtrust/src/config"
	"github.com/H0llyW00dzZ/certtrust/src/internal/document"
	"github.com/H0llyW00dzZ/certtrust/src/internal/faults"
	"github.com/H0llyW00dzZ/certtrust/src/internal/signature"
	x509certs "github.com/H0llyW00dzZ/certtrust/src/internal/x509/certs"
	x509extensions "github.com/H0llyW00dzZ/certtrust/src/internal/x509/extensions"
	x509revocation "github.com/H0llyW00dzZ/certtrust/src/internal/x509/revocation"
	x509trust "github.com/H0llyW00dzZ/certtrust/src/internal/x509/trust"
	"github.com/H0llyW00dzZ/certtrust/src/logger"
	"github.com/H0llyW00dzZ/certtrust/src/report"
)

// Engine evaluates certificates and signs documents.
//
// Thread Safety: Safe for concurrent use. Requests share no mutable state.
type Engine struct {
	cfg     *config.Config
	log     logger.Logger
	clock   clockwork.Clock
	parser  *x509certs.Parser
	http    *x509revocation.HTTPConfig
	checker *x509revocation.Checker
	signer  *document.Signer
	scheme  signature.Scheme
}

// Config returns the engine configuration.
func (e *Engine) Config() *config.Config { return e.cfg }

// Logger returns the engine logger.
func (e *Engine) Logger() logger.Logger { return e.log }

// InspectRequest names a container to evaluate.
type InspectRequest struct {
	Data     []byte
	Format   x509certs.Format
	Password string
}

// Inspect parses a container and evaluates its leaf certificate.
//
// Parameters:
//   - ctx: Request context; cancelling it aborts the revocation checks
//   - req: Container bytes, format hint and password
//
// Returns:
//   - *report.Certificate: Certificate information with the trust status
//   - error: A parsing fault (MalformedContainer, BadPassword,
//     UnsupportedKeyType) or ctx.Err(). Revocation failures never error;
//     they surface as Unknown verdicts.
func (e *Engine) Inspect(ctx context.Context, req InspectRequest) (*report.Certificate, error) {
	c, err := e.parser.Parse(req.Data, req.Format, req.Password)
	if err != nil {
		return nil, err
	}

	rec := c.Leaf
	set := x509extensions.Extract(rec)
	revReq := x509revocation.NewRequest(rec.Certificate(), c.Issuer())
	if revReq.Issuer == nil && e.cfg.Revocation.FetchIssuer {
		revReq.ResolveIssuer = e.issuerResolver(rec.Certificate())
	}

	pair, err := e.checker.Check(ctx, revReq, set.CRLURLs(), set.OCSPURLs())
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	status := x509trust.EvaluateAt(now, rec, pair.CRL.Verdict, pair.OCSP.Verdict)
	e.log.Debugf("inspect %s: status=%s", rec.Subject(), status)
	return report.New(rec, set, pair, status, now), nil
}

// issuerResolver defers AIA issuer retrieval to the OCSP channel, which is
// the only consumer that cannot work without it.
func (e *Engine) issuerResolver(cert *x509.Certificate) func(context.Context) (*x509.Certificate, error) {
	return func(ctx context.Context) (*x509.Certificate, error) {
		return e.http.FetchIssuer(ctx, cert)
	}
}

// ValidateRequest describes a certificate by serial number and expiry only.
type ValidateRequest struct {
	Serial   *big.Int
	NotAfter time.Time
	CRLURL   string
	OCSPURL  string
}

// Validate checks a bare serial number against explicit endpoints. Without
// an issuer certificate OCSP always answers Unknown "no issuer certificate",
// so the verdict rests on the CRL.
func (e *Engine) Validate(ctx context.Context, req ValidateRequest) (*report.Validation, error) {
	if req.Serial == nil || req.Serial.Sign() < 0 {
		return nil, faults.New(faults.InvalidInput, "a non-negative serial number is required", nil)
	}
	if req.NotAfter.IsZero() {
		return nil, faults.New(faults.InvalidInput, "an expiry date is required", nil)
	}

	pair, err := e.checker.Check(ctx, x509revocation.Request{Serial: req.Serial}, nonEmpty(req.CRLURL), nonEmpty(req.OCSPURL))
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	status := x509trust.EvaluateWindow(now, time.Time{}, req.NotAfter, pair.CRL.Verdict, pair.OCSP.Verdict)
	return report.NewValidation(req.Serial, req.NotAfter, pair, status, now), nil
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
