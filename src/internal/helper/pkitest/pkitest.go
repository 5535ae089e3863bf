// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package pkitest generates throwaway certificate authorities, leaf
// certificates, CRLs, OCSP responses, and PKCS#12 containers for tests.
//
// Everything here is built in memory with fixed validity windows relative to
// the current time. RSA keys are expensive to generate, so a small set is
// created once per test binary and shared.
package pkitest

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/crypto/ocsp"
	pkcs12 "software.sslmate.com/src/go-pkcs12"
)

const rsaKeyCount = 4

var (
	keysOnce sync.Once
	keys     [rsaKeyCount]*rsa.PrivateKey
	keysErr  error
)

// RSAKey returns cached 2048-bit RSA key number n (0 to 3).
func RSAKey(t testing.TB, n int) *rsa.PrivateKey {
	t.Helper()

	keysOnce.Do(func() {
		for i := range keys {
			keys[i], keysErr = rsa.GenerateKey(rand.Reader, 2048)
			if keysErr != nil {
				return
			}
		}
	})
	if keysErr != nil {
		t.Fatalf("pkitest: generate RSA key: %v", keysErr)
	}

	return keys[n%rsaKeyCount]
}

// ECKey returns a fresh P-256 key.
func ECKey(t testing.TB) *ecdsa.PrivateKey {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("pkitest: generate EC key: %v", err)
	}
	return key
}

// Authority is an in-memory certificate authority.
type Authority struct {
	Cert *x509.Certificate
	Key  *rsa.PrivateKey

	serial atomic.Int64
}

// NewAuthority creates a self-signed CA named cn. A nil key selects RSAKey(t, 0).
func NewAuthority(t testing.TB, cn string, key *rsa.PrivateKey) *Authority {
	t.Helper()

	if key == nil {
		key = RSAKey(t, 0)
	}

	now := time.Now()
	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: cn, Organization: []string{"certtrust test"}},
		NotBefore:             now.Add(-time.Hour),
		NotAfter:              now.AddDate(5, 0, 0),
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign | x509.KeyUsageDigitalSignature,
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("pkitest: create CA certificate: %v", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("pkitest: parse CA certificate: %v", err)
	}

	a := &Authority{Cert: cert, Key: key}
	a.serial.Store(1000)
	return a
}

// LeafOptions describes a certificate to issue. Zero values get defaults.
type LeafOptions struct {
	CommonName      string
	DNSNames        []string
	EmailAddresses  []string
	CRLURLs         []string
	OCSPURLs        []string
	IssuerURLs      []string
	Serial          *big.Int
	NotBefore       time.Time
	NotAfter        time.Time
	Key             crypto.Signer
	ExtraExtensions []pkix.Extension
}

func (o LeafOptions) template(serial *big.Int) *x509.Certificate {
	now := time.Now()
	if o.CommonName == "" {
		o.CommonName = "leaf.certtrust.test"
	}
	if o.Serial != nil {
		serial = o.Serial
	}
	if o.NotBefore.IsZero() {
		o.NotBefore = now.Add(-time.Hour)
	}
	if o.NotAfter.IsZero() {
		o.NotAfter = now.AddDate(1, 0, 0)
	}

	return &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: o.CommonName, Organization: []string{"certtrust test"}},
		NotBefore:             o.NotBefore,
		NotAfter:              o.NotAfter,
		DNSNames:              o.DNSNames,
		EmailAddresses:        o.EmailAddresses,
		CRLDistributionPoints: o.CRLURLs,
		OCSPServer:            o.OCSPURLs,
		IssuingCertificateURL: o.IssuerURLs,
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageCodeSigning},
		BasicConstraintsValid: true,
		ExtraExtensions:       o.ExtraExtensions,
	}
}

// Issue signs a leaf certificate. A nil opts.Key selects RSAKey(t, 1).
// The returned signer is the leaf's private key.
func (a *Authority) Issue(t testing.TB, opts LeafOptions) (*x509.Certificate, crypto.Signer) {
	t.Helper()

	key := opts.Key
	if key == nil {
		key = RSAKey(t, 1)
	}

	tmpl := opts.template(big.NewInt(a.serial.Add(1)))
	der, err := x509.CreateCertificate(rand.Reader, tmpl, a.Cert, key.Public(), a.Key)
	if err != nil {
		t.Fatalf("pkitest: issue certificate: %v", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("pkitest: parse certificate: %v", err)
	}
	return cert, key
}

// SelfSigned creates a self-signed end-entity certificate.
// A nil opts.Key selects RSAKey(t, 2).
func SelfSigned(t testing.TB, opts LeafOptions) (*x509.Certificate, crypto.Signer) {
	t.Helper()

	key := opts.Key
	if key == nil {
		key = RSAKey(t, 2)
	}

	tmpl := opts.template(big.NewInt(42))
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, key.Public(), key)
	if err != nil {
		t.Fatalf("pkitest: create self-signed certificate: %v", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("pkitest: parse certificate: %v", err)
	}
	return cert, key
}

// CRL returns a DER-encoded CRL signed by a that lists the given serials.
func (a *Authority) CRL(t testing.TB, revoked ...*big.Int) []byte {
	t.Helper()

	now := time.Now()
	entries := make([]x509.RevocationListEntry, 0, len(revoked))
	for _, serial := range revoked {
		entries = append(entries, x509.RevocationListEntry{
			SerialNumber:   serial,
			RevocationTime: now.Add(-30 * time.Minute),
			ReasonCode:     1,
		})
	}

	der, err := x509.CreateRevocationList(rand.Reader, &x509.RevocationList{
		Number:                    big.NewInt(1),
		ThisUpdate:                now.Add(-time.Hour),
		NextUpdate:                now.Add(24 * time.Hour),
		RevokedCertificateEntries: entries,
	}, a.Cert, a.Key)
	if err != nil {
		t.Fatalf("pkitest: create CRL: %v", err)
	}
	return der
}

// OCSPResponse returns a DER-encoded OCSP response for leaf with status
// ocsp.Good, ocsp.Revoked, or ocsp.Unknown, signed directly by a.
func (a *Authority) OCSPResponse(t testing.TB, leaf *x509.Certificate, status int) []byte {
	t.Helper()

	now := time.Now()
	tmpl := ocsp.Response{
		Status:       status,
		SerialNumber: leaf.SerialNumber,
		ThisUpdate:   now.Add(-time.Hour),
		NextUpdate:   now.Add(time.Hour),
	}
	if status == ocsp.Revoked {
		tmpl.RevokedAt = now.Add(-30 * time.Minute)
		tmpl.RevocationReason = ocsp.KeyCompromise
	}

	der, err := ocsp.CreateResponse(a.Cert, a.Cert, tmpl, a.Key)
	if err != nil {
		t.Fatalf("pkitest: create OCSP response: %v", err)
	}
	return der
}

// PKCS12 encodes key, cert, and chain into a password-protected PFX.
func PKCS12(t testing.TB, key crypto.PrivateKey, cert *x509.Certificate, chain []*x509.Certificate, password string) []byte {
	t.Helper()

	pfx, err := pkcs12.Modern.Encode(key, cert, chain, password)
	if err != nil {
		t.Fatalf("pkitest: encode PKCS#12: %v", err)
	}
	return pfx
}

// CertPEM encodes certs as concatenated CERTIFICATE blocks.
func CertPEM(certs ...*x509.Certificate) []byte {
	var out []byte
	for _, cert := range certs {
		out = append(out, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw})...)
	}
	return out
}

// KeyPEM encodes key as a PKCS#8 PRIVATE KEY block.
func KeyPEM(t testing.TB, key crypto.PrivateKey) []byte {
	t.Helper()

	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("pkitest: marshal private key: %v", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
}
