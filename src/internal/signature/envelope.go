// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package signature

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/H0llyW00dzZ/certtrust/src/internal/faults"
	"github.com/fxamacker/cbor/v2"
)

// EnvelopeVersion is the version written by [Record.Encode].
const EnvelopeVersion = 1

// ErrInvalidEnvelope indicates bytes that are not a signature envelope.
var ErrInvalidEnvelope = errors.New("signature: invalid envelope")

// envelope is the CBOR wire form of a Record, keyed by small integers.
type envelope struct {
	Version        int    `cbor:"0,keyasint"`
	Scheme         string `cbor:"1,keyasint"`
	Digest         string `cbor:"2,keyasint"`
	Signature      []byte `cbor:"3,keyasint"`
	DocumentDigest []byte `cbor:"4,keyasint"`
	SignedAt       int64  `cbor:"5,keyasint"`
	Certificate    []byte `cbor:"6,keyasint,omitempty"`
}

var encMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// Encode serializes the record as a deterministic CBOR envelope. cert, when
// non-nil, is the DER signer certificate embedded for the verifier.
func (r *Record) Encode(cert []byte) ([]byte, error) {
	return encMode.Marshal(envelope{
		Version:        EnvelopeVersion,
		Scheme:         string(r.Scheme),
		Digest:         r.Digest,
		Signature:      r.Signature,
		DocumentDigest: r.DocumentDigest,
		SignedAt:       r.SignedAt.Unix(),
		Certificate:    cert,
	})
}

// Decode parses a CBOR envelope produced by [Record.Encode].
//
// Returns:
//   - *Record: Decoded record
//   - []byte: Embedded DER signer certificate, or nil
//   - error: A MalformedDocument fault wrapping [ErrInvalidEnvelope]
func Decode(data []byte) (*Record, []byte, error) {
	var env envelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return nil, nil, faults.New(faults.MalformedDocument, "invalid signature envelope",
			fmt.Errorf("%w: %w", ErrInvalidEnvelope, err))
	}
	if env.Version != EnvelopeVersion {
		return nil, nil, faults.New(faults.MalformedDocument,
			fmt.Sprintf("unsupported signature envelope version %d", env.Version), ErrInvalidEnvelope)
	}

	scheme, err := ParseScheme(env.Scheme)
	if err != nil || env.Scheme == "" {
		return nil, nil, faults.New(faults.MalformedDocument,
			fmt.Sprintf("unknown signature scheme %q in envelope", env.Scheme), ErrInvalidEnvelope)
	}
	if len(env.Signature) == 0 {
		return nil, nil, faults.New(faults.MalformedDocument, "signature envelope holds no signature", ErrInvalidEnvelope)
	}

	return &Record{
		Scheme:         scheme,
		Digest:         env.Digest,
		Signature:      env.Signature,
		DocumentDigest: env.DocumentDigest,
		SignedAt:       time.Unix(env.SignedAt, 0).UTC(),
	}, env.Certificate, nil
}

// IsEnvelope reports whether data looks like a CBOR envelope rather than a
// base64 signature. Envelopes start with a CBOR map header.
func IsEnvelope(data []byte) bool {
	return len(data) > 0 && data[0]&0xe0 == 0xa0
}

// Base64 returns the standard base64 encoding of the raw signature.
func (r *Record) Base64() string { return base64.StdEncoding.EncodeToString(r.Signature) }

// DecodeSignature accepts either a CBOR envelope or a base64 (standard or URL,
// padded or not) string. The string may itself carry an envelope.
//
// Returns:
//   - []byte: The raw signature
//   - *Record: The envelope record, or nil for a bare signature
//   - []byte: The DER signer certificate embedded in the envelope, or nil
//   - error: An InvalidInput fault, or a MalformedDocument fault for a damaged envelope
func DecodeSignature(data []byte) ([]byte, *Record, []byte, error) {
	if IsEnvelope(data) {
		rec, cert, err := Decode(data)
		if err != nil {
			return nil, nil, nil, err
		}
		return rec.Signature, rec, cert, nil
	}

	text := string(bytes.TrimSpace(data))
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		sig, err := enc.DecodeString(text)
		if err != nil || len(sig) == 0 {
			continue
		}
		if IsEnvelope(sig) {
			if rec, cert, err := Decode(sig); err == nil {
				return rec.Signature, rec, cert, nil
			}
		}
		return sig, nil, nil, nil
	}
	return nil, nil, nil, faults.New(faults.InvalidInput, "signature is neither base64 nor a signature envelope", ErrInvalidEnvelope)
}
