// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"math/big"
	"strings"
	"time"
)

// PublicKeyInfo describes the subject public key of a certificate.
type PublicKeyInfo struct {
	// Algorithm is the key algorithm tag, e.g. "RSA" or "ECDSA".
	Algorithm string
	// Size is the RSA modulus length or the curve size in bits.
	Size int
	// Curve is the named curve for EC keys and empty otherwise.
	Curve string
}

// Record is an immutable view of one parsed certificate.
//
// Byte slice accessors return copies, so callers cannot change the record.
type Record struct {
	cert        *x509.Certificate
	pem         []byte
	fingerprint [sha256.Size]byte
}

// NewRecord wraps cert. The certificate must not be modified afterwards.
func NewRecord(cert *x509.Certificate) *Record {
	return &Record{
		cert:        cert,
		pem:         pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw}),
		fingerprint: sha256.Sum256(cert.Raw),
	}
}

// Certificate returns the underlying parsed certificate. Treat it as read-only.
func (r *Record) Certificate() *x509.Certificate { return r.cert }

// Subject returns the subject distinguished name.
func (r *Record) Subject() string { return r.cert.Subject.String() }

// Issuer returns the issuer distinguished name.
func (r *Record) Issuer() string { return r.cert.Issuer.String() }

// CommonName returns the subject common name.
func (r *Record) CommonName() string { return r.cert.Subject.CommonName }

// SerialNumber returns a copy of the serial number.
func (r *Record) SerialNumber() *big.Int { return new(big.Int).Set(r.cert.SerialNumber) }

// SerialHex returns the serial number as colon separated upper-case hex bytes.
func (r *Record) SerialHex() string { return colonHex(r.cert.SerialNumber.Bytes()) }

// NotBefore returns the start of the validity window in UTC.
func (r *Record) NotBefore() time.Time { return r.cert.NotBefore.UTC() }

// NotAfter returns the end of the validity window in UTC.
func (r *Record) NotAfter() time.Time { return r.cert.NotAfter.UTC() }

// SignatureAlgorithm returns the name of the algorithm the issuer signed with.
func (r *Record) SignatureAlgorithm() string { return r.cert.SignatureAlgorithm.String() }

// Raw returns a copy of the DER encoding.
func (r *Record) Raw() []byte { return append([]byte(nil), r.cert.Raw...) }

// PEM returns a copy of the PEM encoding.
func (r *Record) PEM() []byte { return append([]byte(nil), r.pem...) }

// Fingerprint returns the SHA-256 fingerprint as colon separated upper-case hex.
func (r *Record) Fingerprint() string { return colonHex(r.fingerprint[:]) }

// PublicKey returns the subject public key.
func (r *Record) PublicKey() crypto.PublicKey { return r.cert.PublicKey }

// PublicKeyPEM renders the subject public key as a PKIX PUBLIC KEY block.
func (r *Record) PublicKeyPEM() ([]byte, error) { return EncodePublicKeyPEM(r.cert.PublicKey) }

// PublicKeyInfo describes the subject public key.
func (r *Record) PublicKeyInfo() PublicKeyInfo {
	info := PublicKeyInfo{Algorithm: r.cert.PublicKeyAlgorithm.String()}

	switch pub := r.cert.PublicKey.(type) {
	case *rsa.PublicKey:
		info.Size = pub.N.BitLen()
	case *ecdsa.PublicKey:
		info.Size = pub.Curve.Params().BitSize
		info.Curve = pub.Curve.Params().Name
	case ed25519.PublicKey:
		info.Size = 256
		info.Curve = "Ed25519"
	}

	return info
}

// IsSelfSigned reports whether the certificate is signed by its own key.
func (r *Record) IsSelfSigned() bool {
	if string(r.cert.RawIssuer) != string(r.cert.RawSubject) {
		return false
	}
	return r.cert.CheckSignature(r.cert.SignatureAlgorithm, r.cert.RawTBSCertificate, r.cert.Signature) == nil
}

func colonHex(b []byte) string {
	if len(b) == 0 {
		return "00"
	}

	parts := make([]string, len(b))
	for i := range b {
		parts[i] = strings.ToUpper(hex.EncodeToString(b[i : i+1]))
	}
	return strings.Join(parts, ":")
}
