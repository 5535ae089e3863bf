// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package api

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/H0llyW00dzZ/certtrust/src/internal/document"
	"github.com/H0llyW00dzZ/certtrust/src/internal/faults"
	"github.com/H0llyW00dzZ/certtrust/src/internal/signature"
)

// BinaryData is binary content with its transfer encoding.
type BinaryData struct {
	// Data is the encoded content.
	Data string `json:"data"`

	// Encoding is "base64" (default) or "pem" for content sent as text.
	Encoding string `json:"encoding,omitempty"`
}

// Decode returns the raw bytes. A nil receiver decodes to nil.
func (b *BinaryData) Decode(field string) ([]byte, error) {
	if b == nil {
		return nil, nil
	}
	switch b.Encoding {
	case "", "base64":
		data, err := base64.StdEncoding.DecodeString(b.Data)
		if err != nil {
			return nil, faults.New(faults.InvalidInput, fmt.Sprintf("%s is not valid base64", field), err)
		}
		return data, nil
	case "pem", "text":
		return []byte(b.Data), nil
	default:
		return nil, faults.New(faults.InvalidInput, fmt.Sprintf("unsupported encoding %q for %s", b.Encoding, field), nil)
	}
}

// APIError is the body of every failed request.
type APIError struct {
	// Code is the fault kind, e.g. "bad_password".
	Code string `json:"code"`

	// Message is a human-readable message.
	Message string `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// InspectRequest is the body of POST /api/v1/certificates/inspect.
type InspectRequest struct {
	Container *BinaryData `json:"container"`
	// Format is a container format name; empty detects it.
	Format   string `json:"format,omitempty"`
	Password string `json:"password,omitempty"`
}

// ValidateRequest is the body of POST /api/v1/certificates/validate.
type ValidateRequest struct {
	// SerialNumber is decimal, 0x-prefixed hex, or colon-separated hex.
	SerialNumber string `json:"serial_number"`
	// ValidTo is an RFC 3339 timestamp, "YYYY-MM-DD HH:MM:SS" (UTC), or a YYYY-MM-DD date.
	ValidTo string `json:"valid_to"`
	CRLURL  string `json:"crl_url,omitempty"`
	OCSPURL string `json:"ocsp_url,omitempty"`
}

// SignRequest is the body of POST /api/v1/documents/sign.
type SignRequest struct {
	Container       *BinaryData `json:"container"`
	ContainerFormat string      `json:"container_format,omitempty"`
	Password        string      `json:"password,omitempty"`
	Document        *BinaryData `json:"document"`
	DocumentName    string      `json:"document_name,omitempty"`
	// Format is a document format name; empty detects it.
	Format string `json:"format,omitempty"`
	Scheme string `json:"scheme,omitempty"`
}

// AnnotationResponse mirrors the signature block stamped into PDF and DOCX output.
type AnnotationResponse struct {
	Signer    string           `json:"signer"`
	Serial    string           `json:"serial,omitempty"`
	Scheme    signature.Scheme `json:"scheme"`
	SignedAt  time.Time        `json:"signed_at"`
	Signature string           `json:"signature"`
}

// SignResponse is the answer to a sign request.
type SignResponse struct {
	Format         string           `json:"format"`
	Scheme         signature.Scheme `json:"scheme"`
	Digest         string           `json:"digest"`
	Signature      string           `json:"signature"`
	DocumentDigest string           `json:"document_digest"`
	SignedAt       time.Time        `json:"signed_at"`
	// Envelope is the base64 CBOR envelope carrying the signer certificate.
	Envelope   string             `json:"envelope"`
	Annotation AnnotationResponse `json:"annotation"`
	// Derived is the base64 annotated document for PDF and DOCX.
	Derived string `json:"derived_document,omitempty"`
}

func newSignResponse(format document.Format, rec *signature.Record, a document.Annotation, derived, envelope []byte) SignResponse {
	resp := SignResponse{
		Format:         format.String(),
		Scheme:         rec.Scheme,
		Digest:         rec.Digest,
		Signature:      rec.Base64(),
		DocumentDigest: base64.StdEncoding.EncodeToString(rec.DocumentDigest),
		SignedAt:       rec.SignedAt,
		Envelope:       base64.StdEncoding.EncodeToString(envelope),
		Annotation: AnnotationResponse{
			Signer:    a.Signer,
			Serial:    a.Serial,
			Scheme:    a.Scheme,
			SignedAt:  a.SignedAt,
			Signature: a.Signature,
		},
	}
	if derived != nil {
		resp.Derived = base64.StdEncoding.EncodeToString(derived)
	}
	return resp
}

// VerifyRequest is the body of POST /api/v1/documents/verify. Exactly one of
// Signature and Envelope is required; Key may be omitted with an envelope.
type VerifyRequest struct {
	// Key is a certificate, a public key, or a container.
	Key      *BinaryData `json:"key,omitempty"`
	Password string      `json:"password,omitempty"`
	Document *BinaryData `json:"document"`
	// Signature is the base64 detached signature.
	Signature string `json:"signature,omitempty"`
	// Envelope is the base64 CBOR envelope.
	Envelope string `json:"envelope,omitempty"`
	Scheme   string `json:"scheme,omitempty"`
}
