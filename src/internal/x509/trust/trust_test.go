// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509trust_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/certtrust/src/internal/helper/pkitest"
	x509certs "github.com/H0llyW00dzZ/certtrust/src/internal/x509/certs"
	x509revocation "github.com/H0llyW00dzZ/certtrust/src/internal/x509/revocation"
	x509trust "github.com/H0llyW00dzZ/certtrust/src/internal/x509/trust"
)

const (
	unknown    = x509revocation.Unknown
	notRevoked = x509revocation.NotRevoked
	revoked    = x509revocation.Revoked
)

func TestEvaluateAt_Precedence(t *testing.T) {
	notBefore := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	notAfter := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	cert, _ := pkitest.SelfSigned(t, pkitest.LeafOptions{NotBefore: notBefore, NotAfter: notAfter})
	rec := x509certs.NewRecord(cert)
	inside := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		crl  x509revocation.Verdict
		ocsp x509revocation.Verdict
		want x509trust.Status
	}{
		{"both not revoked", inside, notRevoked, notRevoked, x509trust.Valid},
		{"crl not revoked, ocsp unknown", inside, notRevoked, unknown, x509trust.Valid},
		{"crl unknown, ocsp not revoked", inside, unknown, notRevoked, x509trust.Valid},
		{"both unknown", inside, unknown, unknown, x509trust.Indeterminate},
		{"crl revoked", inside, revoked, notRevoked, x509trust.Revoked},
		{"ocsp revoked", inside, notRevoked, revoked, x509trust.Revoked},
		{"revoked beats unknown", inside, unknown, revoked, x509trust.Revoked},
		{"conflicting oracles", inside, revoked, notRevoked, x509trust.Revoked},
		{"expired beats revoked", notAfter.Add(time.Hour), revoked, revoked, x509trust.Expired},
		{"expired beats valid", notAfter.Add(time.Hour), notRevoked, notRevoked, x509trust.Expired},
		{"exactly at notAfter", notAfter, notRevoked, notRevoked, x509trust.Expired},
		{"just before notAfter", notAfter.Add(-time.Second), notRevoked, notRevoked, x509trust.Valid},
		{"not yet valid", notBefore.Add(-time.Second), notRevoked, notRevoked, x509trust.Expired},
		{"exactly at notBefore", notBefore, notRevoked, unknown, x509trust.Valid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, x509trust.EvaluateAt(tt.now, rec, tt.crl, tt.ocsp))
		})
	}
}

func TestEvaluator_ExpiredCertificate(t *testing.T) {
	cert, _ := pkitest.SelfSigned(t, pkitest.LeafOptions{
		NotBefore: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
		NotAfter:  time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	rec := x509certs.NewRecord(cert)

	e := x509trust.NewEvaluator(nil)
	for _, crl := range []x509revocation.Verdict{unknown, notRevoked, revoked} {
		for _, ocsp := range []x509revocation.Verdict{unknown, notRevoked, revoked} {
			assert.Equal(t, x509trust.Expired, e.Evaluate(rec, crl, ocsp), "crl=%s ocsp=%s", crl, ocsp)
		}
	}
}

func TestEvaluator_FakeClock(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	cert, _ := pkitest.SelfSigned(t, pkitest.LeafOptions{
		NotBefore: start.Add(-time.Hour),
		NotAfter:  start.Add(24 * time.Hour),
	})
	rec := x509certs.NewRecord(cert)

	clock := clockwork.NewFakeClockAt(start)
	e := x509trust.NewEvaluator(clock)
	assert.Equal(t, x509trust.Valid, e.Evaluate(rec, notRevoked, unknown))

	clock.Advance(25 * time.Hour)
	assert.Equal(t, x509trust.Expired, e.Evaluate(rec, notRevoked, unknown), "status is recomputed per call")
	assert.Equal(t, start.Add(25*time.Hour), e.Now())
}

func TestStatusText(t *testing.T) {
	for _, s := range []x509trust.Status{x509trust.Indeterminate, x509trust.Valid, x509trust.Expired, x509trust.Revoked} {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var back x509trust.Status
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}

	var s x509trust.Status
	assert.Error(t, s.UnmarshalText([]byte("trusted")))
}

func TestEvaluateWindow(t *testing.T) {
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	future := now.AddDate(1, 0, 0)

	assert.Equal(t, x509trust.Valid, x509trust.EvaluateWindow(now, time.Time{}, future, notRevoked, unknown))
	assert.Equal(t, x509trust.Expired, x509trust.EvaluateWindow(now, time.Time{}, now, notRevoked, notRevoked))
	assert.Equal(t, x509trust.Expired, x509trust.EvaluateWindow(now, future, future.AddDate(1, 0, 0), notRevoked, notRevoked))
	assert.Equal(t, x509trust.Revoked, x509trust.EvaluateWindow(now, time.Time{}, future, unknown, revoked))
	assert.Equal(t, x509trust.Indeterminate, x509trust.EvaluateWindow(now, time.Time{}, future, unknown, unknown))
}
