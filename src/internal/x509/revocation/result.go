// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509revocation

import (
	"context"
	"crypto/x509"
	"fmt"
	"math/big"
	"time"
)

// Verdict is the tri-state answer of a revocation oracle.
// The zero value is Unknown.
type Verdict int

const (
	// Unknown means no trustworthy answer was obtained.
	Unknown Verdict = iota
	// NotRevoked means the oracle positively confirmed the certificate is not revoked.
	NotRevoked
	// Revoked means the oracle reported the certificate as revoked.
	Revoked
)

// String returns the wire name of the verdict.
func (v Verdict) String() string {
	switch v {
	case NotRevoked:
		return "not_revoked"
	case Revoked:
		return "revoked"
	default:
		return "unknown"
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (v Verdict) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (v *Verdict) UnmarshalText(text []byte) error {
	switch string(text) {
	case "unknown":
		*v = Unknown
	case "not_revoked":
		*v = NotRevoked
	case "revoked":
		*v = Revoked
	default:
		return fmt.Errorf("x509revocation: unknown verdict %q", text)
	}
	return nil
}

// Source identifies the oracle that produced a result.
type Source string

const (
	SourceCRL  Source = "crl"
	SourceOCSP Source = "ocsp"
)

// Reason explains an Unknown verdict.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonNetwork           Reason = "network error"
	ReasonTimeout           Reason = "timeout"
	ReasonParse             Reason = "parse error"
	ReasonNoEndpoint        Reason = "no endpoint"
	ReasonNoIssuer          Reason = "no issuer certificate"
	ReasonUnsupportedScheme Reason = "unsupported scheme"
	ReasonResponderUnknown  Reason = "responder unknown"
	ReasonResponderError    Reason = "responder error"
)

// Hard reports whether the reason is a failure to reach or read an endpoint,
// which allows falling back to the next endpoint. A responder that answered
// "unknown" is not a hard failure.
func (r Reason) Hard() bool {
	switch r {
	case ReasonNetwork, ReasonTimeout, ReasonParse, ReasonUnsupportedScheme, ReasonResponderError:
		return true
	default:
		return false
	}
}

// Request identifies the certificate to check.
type Request struct {
	// Serial is the serial number to look up. It is required.
	Serial *big.Int
	// Certificate is the certificate itself. Optional for CRL checks.
	Certificate *x509.Certificate
	// Issuer is the issuing certificate. OCSP needs it; CRL checks use it to
	// verify the list signature when present.
	Issuer *x509.Certificate
	// ResolveIssuer, when set and Issuer is nil, is called once by the OCSP
	// channel before its first endpoint, under the OCSP timeout.
	ResolveIssuer func(ctx context.Context) (*x509.Certificate, error)
}

// NewRequest builds a Request for cert. issuer may be nil.
func NewRequest(cert, issuer *x509.Certificate) Request {
	return Request{Serial: cert.SerialNumber, Certificate: cert, Issuer: issuer}
}

// Result is the answer of one oracle.
type Result struct {
	Verdict  Verdict
	Source   Source
	Endpoint string
	// Reason is set when Verdict is Unknown.
	Reason Reason
	// RevokedAt and RevocationReason are set when Verdict is Revoked.
	RevokedAt        time.Time
	RevocationReason int
}

// Pair holds both oracle answers of one evaluation.
type Pair struct {
	CRL  Result
	OCSP Result
}

func unknown(source Source, endpoint string, reason Reason) Result {
	return Result{Verdict: Unknown, Source: source, Endpoint: endpoint, Reason: reason}
}
