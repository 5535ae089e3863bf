// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509revocation

import (
	"context"
	"crypto"
	"sync"
	"time"

	"github.com/H0llyW00dzZ/certtrust/src/logger"
	"github.com/jonboulle/clockwork"
)

// DefaultTimeout is the default budget of each strategy.
const DefaultTimeout = 5 * time.Second

// Strategy is one revocation oracle.
type Strategy interface {
	// Check consults a single endpoint. It never returns NotRevoked unless the
	// endpoint positively confirmed it.
	Check(ctx context.Context, req Request, endpoint string) Result
}

// Config configures a [Checker] built by [New].
type Config struct {
	HTTP        *HTTPConfig
	CRLTimeout  time.Duration
	OCSPTimeout time.Duration
	OCSPHash    crypto.Hash
	Clock       clockwork.Clock
	// Fetchers adds CRL fetchers by URL scheme, e.g. "ldap".
	Fetchers map[string]CRLFetcher
}

// Checker runs the CRL and OCSP strategies concurrently.
type Checker struct {
	crl         Strategy
	ocsp        Strategy
	crlTimeout  time.Duration
	ocspTimeout time.Duration
	log         logger.Logger
}

// New creates a Checker with the built-in CRL and OCSP strategies.
func New(cfg Config, log logger.Logger) *Checker {
	if log == nil {
		log = logger.Discard()
	}
	if cfg.HTTP == nil {
		cfg.HTTP = NewHTTPConfig("dev")
	}

	crl := NewCRLStrategy(cfg.HTTP, cfg.Clock, log)
	for scheme, f := range cfg.Fetchers {
		crl.Register(scheme, f)
	}

	return NewChecker(crl, NewOCSPStrategy(cfg.HTTP, cfg.OCSPHash, cfg.Clock, log), cfg.CRLTimeout, cfg.OCSPTimeout, log)
}

// NewChecker creates a Checker from arbitrary strategies. Non-positive timeouts
// select [DefaultTimeout].
func NewChecker(crl, ocsp Strategy, crlTimeout, ocspTimeout time.Duration, log logger.Logger) *Checker {
	if crlTimeout <= 0 {
		crlTimeout = DefaultTimeout
	}
	if ocspTimeout <= 0 {
		ocspTimeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Checker{
		crl:         crl,
		ocsp:        ocsp,
		crlTimeout:  crlTimeout,
		ocspTimeout: ocspTimeout,
		log:         log,
	}
}

// Check consults the CRL and OCSP endpoints of one certificate.
//
// Parameters:
//   - ctx: Request context; cancelling it cancels both strategies
//   - req: Certificate to check
//   - crlURLs: CRL distribution points in preference order
//   - ocspURLs: OCSP responders in preference order
//
// Returns:
//   - Pair: Both results. An empty endpoint list yields Unknown "no endpoint"
//   - error: ctx.Err() when ctx ended before both strategies finished; the
//     partial results are discarded
//
// Both strategies run concurrently, each under its own timeout, so total
// latency is the slower of the two rather than their sum. A lazy issuer
// lookup (Request.ResolveIssuer) is charged to the OCSP timeout. Within a strategy
// the first endpoint is consulted and later ones only after a hard failure.
//
// Thread Safety: Safe for concurrent use.
func (c *Checker) Check(ctx context.Context, req Request, crlURLs, ocspURLs []string) (Pair, error) {
	if err := ctx.Err(); err != nil {
		return Pair{}, err
	}

	var (
		pair Pair
		wg   sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		ctx, cancel := context.WithTimeout(ctx, c.crlTimeout)
		defer cancel()
		pair.CRL = consult(ctx, c.crl, req, crlURLs, SourceCRL)
	}()
	go func() {
		defer wg.Done()
		ctx, cancel := context.WithTimeout(ctx, c.ocspTimeout)
		defer cancel()
		pair.OCSP = consult(ctx, c.ocsp, c.resolveIssuer(ctx, req, ocspURLs), ocspURLs, SourceOCSP)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Pair{}, err
	}

	c.log.Debugf("revocation serial %s: crl=%s (%s) ocsp=%s (%s)",
		req.Serial, pair.CRL.Verdict, pair.CRL.Reason, pair.OCSP.Verdict, pair.OCSP.Reason)
	return pair, nil
}

// resolveIssuer fills in a missing issuer for the OCSP channel. It runs
// under the OCSP budget so the CRL channel never waits for it.
func (c *Checker) resolveIssuer(ctx context.Context, req Request, endpoints []string) Request {
	if req.Issuer != nil || req.ResolveIssuer == nil || len(endpoints) == 0 {
		return req
	}

	issuer, err := req.ResolveIssuer(ctx)
	if err != nil {
		c.log.Debugf("issuer retrieval for serial %s failed: %v", req.Serial, err)
		return req
	}
	req.Issuer = issuer
	return req
}

// consult walks endpoints under the deadline carried by ctx.
func consult(ctx context.Context, s Strategy, req Request, endpoints []string, source Source) Result {
	if len(endpoints) == 0 {
		return unknown(source, "", ReasonNoEndpoint)
	}

	var res Result
	for _, endpoint := range endpoints {
		res = s.Check(ctx, req, endpoint)
		res.Source = source
		res.Endpoint = endpoint

		if res.Verdict != Unknown || !res.Reason.Hard() || ctx.Err() != nil {
			break
		}
	}
	return res
}
