// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package signature

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/certtrust/src/internal/faults"
	"github.com/jonboulle/clockwork"
)

// Scheme names a signature padding and digest.
type Scheme string

const (
	// RSAPKCS1v15SHA256 is RSASSA-PKCS1-v1_5 over SHA-256.
	RSAPKCS1v15SHA256 Scheme = "rsa-pkcs1v15-sha256"
	// RSAPSSSHA256 is RSASSA-PSS over SHA-256 with the salt length equal to the hash length.
	RSAPSSSHA256 Scheme = "rsa-pss-sha256"
	// ECDSAP256SHA256 is ECDSA on P-256 over SHA-256 with an ASN.1 signature.
	ECDSAP256SHA256 Scheme = "ecdsa-p256-sha256"

	// DigestSHA256 is the document digest algorithm of every scheme.
	DigestSHA256 = "sha-256"
)

var (
	// ErrUnknownScheme indicates a scheme name outside the supported set.
	ErrUnknownScheme = errors.New("signature: unknown scheme")

	// ErrKeyMismatch indicates a private key whose type does not fit the scheme.
	ErrKeyMismatch = errors.New("signature: key does not match scheme")
)

var pssOptions = &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: crypto.SHA256}

// Schemes returns the supported schemes.
func Schemes() []Scheme {
	return []Scheme{RSAPKCS1v15SHA256, RSAPSSSHA256, ECDSAP256SHA256}
}

// ParseScheme validates a scheme name. The empty string selects RSAPKCS1v15SHA256.
func ParseScheme(name string) (Scheme, error) {
	s := Scheme(strings.ToLower(strings.TrimSpace(name)))
	if s == "" {
		return RSAPKCS1v15SHA256, nil
	}
	for _, known := range Schemes() {
		if s == known {
			return s, nil
		}
	}
	return "", faults.New(faults.InvalidInput, fmt.Sprintf("unknown signature scheme %q", name), ErrUnknownScheme)
}

// DefaultSchemeFor returns the natural scheme for key: PKCS#1 v1.5 for RSA
// and ECDSA P-256 for P-256 keys.
func DefaultSchemeFor(key crypto.PrivateKey) (Scheme, error) {
	switch k := key.(type) {
	case *rsa.PrivateKey:
		return RSAPKCS1v15SHA256, nil
	case *ecdsa.PrivateKey:
		if k.Curve == elliptic.P256() {
			return ECDSAP256SHA256, nil
		}
	}
	return "", faults.New(faults.SigningFailure, fmt.Sprintf("no signature scheme for %T keys", key), ErrKeyMismatch)
}

// Record is the result of signing one document.
type Record struct {
	Scheme         Scheme
	Digest         string
	Signature      []byte
	DocumentDigest []byte
	SignedAt       time.Time
}

// Signer signs documents with an injected clock and randomness source.
type Signer struct {
	clock clockwork.Clock
	rand  io.Reader
}

// New creates a Signer. A nil clock selects the real clock.
func New(clock clockwork.Clock) *Signer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Signer{clock: clock, rand: rand.Reader}
}

// Sign signs data with key under scheme using the real clock.
func Sign(data []byte, key crypto.PrivateKey, scheme Scheme) (*Record, error) {
	return New(nil).Sign(data, key, scheme)
}

// Sign signs the SHA-256 digest of data with key under scheme.
//
// Parameters:
//   - data: Document bytes
//   - key: *rsa.PrivateKey for the RSA schemes, P-256 *ecdsa.PrivateKey for ECDSAP256SHA256
//   - scheme: Signature scheme
//
// Returns:
//   - *Record: Signature, document digest, and signing time (UTC, second precision)
//   - error: A SigningFailure fault on an unknown scheme, a key that does not
//     fit the scheme, or a failed private key operation
func (s *Signer) Sign(data []byte, key crypto.PrivateKey, scheme Scheme) (*Record, error) {
	digest := sha256.Sum256(data)

	var (
		sig []byte
		err error
	)
	switch scheme {
	case RSAPKCS1v15SHA256, RSAPSSSHA256:
		k, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, mismatch(key, scheme)
		}
		if scheme == RSAPSSSHA256 {
			sig, err = rsa.SignPSS(s.rand, k, crypto.SHA256, digest[:], pssOptions)
		} else {
			sig, err = rsa.SignPKCS1v15(s.rand, k, crypto.SHA256, digest[:])
		}
	case ECDSAP256SHA256:
		k, ok := key.(*ecdsa.PrivateKey)
		if !ok || k.Curve != elliptic.P256() {
			return nil, mismatch(key, scheme)
		}
		sig, err = ecdsa.SignASN1(s.rand, k, digest[:])
	default:
		return nil, faults.New(faults.SigningFailure, fmt.Sprintf("unknown signature scheme %q", scheme), ErrUnknownScheme)
	}
	if err != nil {
		return nil, faults.New(faults.SigningFailure, "private key operation failed", err)
	}

	return &Record{
		Scheme:         scheme,
		Digest:         DigestSHA256,
		Signature:      sig,
		DocumentDigest: digest[:],
		SignedAt:       s.clock.Now().UTC().Truncate(time.Second),
	}, nil
}

// Verify reports whether sig is a valid signature of data by pub under scheme.
// Any mismatch, including a key of the wrong type, yields false.
func Verify(data, sig []byte, pub crypto.PublicKey, scheme Scheme) bool {
	digest := sha256.Sum256(data)

	switch scheme {
	case RSAPKCS1v15SHA256:
		k, ok := pub.(*rsa.PublicKey)
		return ok && rsa.VerifyPKCS1v15(k, crypto.SHA256, digest[:], sig) == nil
	case RSAPSSSHA256:
		k, ok := pub.(*rsa.PublicKey)
		return ok && rsa.VerifyPSS(k, crypto.SHA256, digest[:], sig, pssOptions) == nil
	case ECDSAP256SHA256:
		k, ok := pub.(*ecdsa.PublicKey)
		return ok && k.Curve == elliptic.P256() && ecdsa.VerifyASN1(k, digest[:], sig)
	default:
		return false
	}
}

// Verify reports whether the record is a valid signature of data by pub.
// The recorded document digest must also match data.
func (r *Record) Verify(data []byte, pub crypto.PublicKey) bool {
	digest := sha256.Sum256(data)
	if len(r.DocumentDigest) != 0 && string(r.DocumentDigest) != string(digest[:]) {
		return false
	}
	return Verify(data, r.Signature, pub, r.Scheme)
}

func mismatch(key crypto.PrivateKey, scheme Scheme) *faults.Error {
	return faults.New(faults.SigningFailure,
		fmt.Sprintf("%T cannot sign with scheme %s", key, scheme), ErrKeyMismatch)
}
