// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509trust folds a certificate's validity window and its two
// revocation verdicts into one trust status.
//
// A status describes one instant and is never cached: revocation state changes
// over time, so every evaluation recomputes it from fresh verdicts.
package x509trust

import (
	"fmt"
	"time"

	x509certs "github.com/H0llyW00dzZ/certtrust/src/internal/x509/certs"
	x509revocation "github.com/H0llyW00dzZ/certtrust/src/internal/x509/revocation"
	"github.com/jonboulle/clockwork"
)

// Status is the final trust verdict.
type Status int

const (
	// Indeterminate means neither oracle gave a usable answer.
	Indeterminate Status = iota
	// Valid means the certificate is in its validity window and at least one
	// oracle confirmed it is not revoked while the other did not object.
	Valid
	// Expired means the evaluation instant is outside the validity window.
	Expired
	// Revoked means at least one oracle reported revocation.
	Revoked
)

// String returns the wire name of the status.
func (s Status) String() string {
	switch s {
	case Valid:
		return "valid"
	case Expired:
		return "expired"
	case Revoked:
		return "revoked"
	default:
		return "indeterminate"
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Status) UnmarshalText(text []byte) error {
	for _, candidate := range []Status{Indeterminate, Valid, Expired, Revoked} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("x509trust: unknown status %q", text)
}

// EvaluateAt computes the status of rec at now.
//
// Precedence:
//  1. now at or after NotAfter, or before NotBefore: Expired
//  2. either verdict Revoked: Revoked
//  3. at least one verdict NotRevoked (the other NotRevoked or Unknown): Valid
//  4. both Unknown: Indeterminate
func EvaluateAt(now time.Time, rec *x509certs.Record, crl, ocsp x509revocation.Verdict) Status {
	return EvaluateWindow(now, rec.NotBefore(), rec.NotAfter(), crl, ocsp)
}

// EvaluateWindow applies the same precedence to a bare validity window, for
// callers that know a serial number and expiry but hold no certificate. A
// zero notBefore is unbounded.
func EvaluateWindow(now, notBefore, notAfter time.Time, crl, ocsp x509revocation.Verdict) Status {
	if !now.Before(notAfter) || (!notBefore.IsZero() && now.Before(notBefore)) {
		return Expired
	}
	if crl == x509revocation.Revoked || ocsp == x509revocation.Revoked {
		return Revoked
	}
	if crl == x509revocation.NotRevoked || ocsp == x509revocation.NotRevoked {
		return Valid
	}
	return Indeterminate
}

// Evaluator evaluates trust against an injected clock.
type Evaluator struct {
	clock clockwork.Clock
}

// NewEvaluator creates an Evaluator. A nil clock selects the real clock.
func NewEvaluator(clock clockwork.Clock) *Evaluator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Evaluator{clock: clock}
}

// Evaluate computes the status of rec at the clock's current time.
func (e *Evaluator) Evaluate(rec *x509certs.Record, crl, ocsp x509revocation.Verdict) Status {
	return EvaluateAt(e.clock.Now(), rec, crl, ocsp)
}

// Now returns the evaluator's current time.
func (e *Evaluator) Now() time.Time { return e.clock.Now() }
