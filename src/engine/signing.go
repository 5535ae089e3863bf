// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package engine

import (
	"context"
	"crypto"
	"crypto/x509"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/certtrust/src/internal/document"
	"github.com/H0llyW00dzZ/certtrust/src/internal/faults"
	"github.com/H0llyW00dzZ/certtrust/src/internal/signature"
	x509certs "github.com/H0llyW00dzZ/certtrust/src/internal/x509/certs"
)

// SignRequest names a signing key container and a document.
type SignRequest struct {
	Container       []byte
	ContainerFormat x509certs.Format
	Password        string
	Document        []byte
	// DocumentName helps format detection when Format is FormatAuto.
	DocumentName string
	Format       document.Format
	// Scheme overrides the configured default scheme.
	Scheme string
}

// Signed is the outcome of [Engine.Sign].
type Signed struct {
	*document.Result
	// Signer is the certificate that matched the private key.
	Signer *x509certs.Record
	// Envelope is the CBOR signature envelope embedding the signer certificate.
	Envelope []byte
}

// Sign signs a document with the private key of a container.
//
// Without an explicit scheme the configured default is used, unless the key
// cannot produce it (an EC key with an RSA default), in which case the key's
// natural scheme is used.
//
// Returns:
//   - *Signed: Signature, annotated derivative for PDF and DOCX, and envelope
//   - error: Parsing faults, InvalidInput when the container has no private
//     key, SigningFailure, or MalformedDocument
func (e *Engine) Sign(ctx context.Context, req SignRequest) (*Signed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c, err := e.parser.Parse(req.Container, req.ContainerFormat, req.Password)
	if err != nil {
		return nil, err
	}
	if c.Key == nil {
		return nil, faults.New(faults.InvalidInput, "container holds no private key", nil)
	}

	scheme, err := e.schemeFor(req.Scheme, c.Key)
	if err != nil {
		return nil, err
	}

	format := req.Format
	if format == document.FormatAuto {
		format = document.DetectFormat(req.DocumentName, req.Document)
	}

	res, err := e.signer.Sign(req.Document, format, c.Key, c.Leaf.Certificate(), scheme)
	if err != nil {
		return nil, err
	}
	env, err := res.Signature.Encode(c.Leaf.Raw())
	if err != nil {
		return nil, faults.New(faults.Internal, "cannot encode signature envelope", err)
	}

	e.log.Debugf("signed %d byte %s document as %s with scheme %s", len(req.Document), format, c.Leaf.Subject(), scheme)
	return &Signed{Result: res, Signer: c.Leaf, Envelope: env}, nil
}

func (e *Engine) schemeFor(name string, key crypto.PrivateKey) (signature.Scheme, error) {
	if name != "" {
		return signature.ParseScheme(name)
	}
	natural, err := signature.DefaultSchemeFor(key)
	if err != nil || family(natural) == family(e.scheme) {
		return e.scheme, nil
	}
	return natural, nil
}

func family(s signature.Scheme) string {
	family, _, _ := strings.Cut(string(s), "-")
	return family
}

// VerifyRequest names the material for [Engine.Verify].
type VerifyRequest struct {
	// Key is a certificate, a public key, or a container. It may be empty
	// when Signature is an envelope carrying the signer certificate.
	Key      []byte
	Password string
	// Document is the original, unannotated document.
	Document []byte
	// Signature is a base64 signature or a CBOR envelope.
	Signature []byte
	// Scheme overrides the envelope scheme or the configured default.
	Scheme string
}

// Verification is the outcome of [Engine.Verify].
type Verification struct {
	Valid  bool             `json:"valid"`
	Scheme signature.Scheme `json:"scheme"`
	// SignedAt is known only for envelopes.
	SignedAt *time.Time `json:"signed_at,omitempty"`
}

// Verify checks a signature against the original document. An invalid
// signature is reported as Valid false, not as an error.
//
// Returns:
//   - *Verification: Outcome with the scheme that was applied
//   - error: InvalidInput for undecodable signatures, missing keys or unknown
//     schemes, or a parsing fault for the key material
func (e *Engine) Verify(ctx context.Context, req VerifyRequest) (*Verification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sig, rec, certDER, err := signature.DecodeSignature(req.Signature)
	if err != nil {
		return nil, err
	}

	pub, err := e.verificationKey(req, certDER)
	if err != nil {
		return nil, err
	}

	scheme := e.scheme
	if rec != nil {
		scheme = rec.Scheme
	}
	if req.Scheme != "" {
		if scheme, err = signature.ParseScheme(req.Scheme); err != nil {
			return nil, err
		}
	}

	v := &Verification{Scheme: scheme}
	if rec != nil {
		at := rec.SignedAt
		v.SignedAt = &at
		// The envelope's document digest must match as well.
		rec.Scheme = scheme
		v.Valid = rec.Verify(req.Document, pub)
	} else {
		v.Valid = document.Verify(req.Document, sig, pub, scheme)
	}
	return v, nil
}

func (e *Engine) verificationKey(req VerifyRequest, certDER []byte) (crypto.PublicKey, error) {
	if len(req.Key) > 0 {
		return e.parser.PublicKey(req.Key, req.Password)
	}
	if certDER != nil {
		cert, err := x509.ParseCertificate(certDER)
		if err != nil {
			return nil, faults.New(faults.MalformedDocument, "envelope carries an invalid certificate", err)
		}
		return cert.PublicKey, nil
	}
	return nil, faults.New(faults.InvalidInput, "a certificate, public key, or container is required", nil)
}
