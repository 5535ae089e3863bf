// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package document

import (
	"crypto"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/jonboulle/clockwork"

	"github.com/H0llyW00dzZ/certtrust/src/internal/faults"
	"github.com/H0llyW00dzZ/certtrust/src/internal/signature"
	x509certs "github.com/H0llyW00dzZ/certtrust/src/internal/x509/certs"
)

// Annotation is the human-readable signing statement embedded in derivatives.
type Annotation struct {
	Signer    string
	Serial    string
	Scheme    signature.Scheme
	SignedAt  time.Time
	Signature string
}

// Result is the outcome of signing one document.
type Result struct {
	Format     Format
	Signature  *signature.Record
	Annotation Annotation
	// Derived is the annotated copy for PDF and DOCX, nil otherwise.
	Derived []byte
}

// SignatureBase64 returns the detached signature in standard base64.
func (r *Result) SignatureBase64() string { return r.Signature.Base64() }

// Signer signs documents and builds annotated derivatives.
type Signer struct {
	signer *signature.Signer
}

// NewSigner creates a Signer whose signing time comes from clock.
// A nil clock selects the real clock.
func NewSigner(clock clockwork.Clock) *Signer {
	return &Signer{signer: signature.New(clock)}
}

// Sign signs doc and, for PDF and DOCX, derives an annotated copy.
//
// Parameters:
//   - doc: Original document bytes; they are never modified
//   - format: Document format, or FormatAuto to detect it
//   - key: Signing private key
//   - cert: Signer certificate for the annotation; may be nil
//   - scheme: Signature scheme
//
// Returns:
//   - *Result: Signature record, annotation, and the optional derivative
//   - error: SigningFailure from the signature engine, or MalformedDocument
//     when the content does not match the declared format
//
// Thread Safety: Safe for concurrent use.
func (s *Signer) Sign(doc []byte, format Format, key crypto.PrivateKey, cert *x509.Certificate, scheme signature.Scheme) (*Result, error) {
	if format == FormatAuto {
		format = DetectFormat("", doc)
	}
	if err := checkContent(doc, format); err != nil {
		return nil, err
	}

	rec, err := s.signer.Sign(doc, key, scheme)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Format:     format,
		Signature:  rec,
		Annotation: annotate(cert, rec),
	}

	switch format {
	case FormatPDF:
		res.Derived, err = annotatePDF(doc, res.Annotation)
	case FormatDOCX:
		res.Derived, err = annotateDOCX(doc, res.Annotation)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Verify checks sig against the original document bytes. Passing an
// annotated derivative yields false.
func Verify(original, sig []byte, pub crypto.PublicKey, scheme signature.Scheme) bool {
	return signature.Verify(original, sig, pub, scheme)
}

func annotate(cert *x509.Certificate, rec *signature.Record) Annotation {
	a := Annotation{
		Scheme:    rec.Scheme,
		SignedAt:  rec.SignedAt,
		Signature: rec.Base64(),
	}
	if cert != nil {
		r := x509certs.NewRecord(cert)
		a.Signer = r.Subject()
		a.Serial = r.SerialHex()
	}
	return a
}

// Lines renders the annotation as ordered name/value pairs.
func (a Annotation) Lines() [][2]string {
	lines := make([][2]string, 0, 5)
	if a.Signer != "" {
		lines = append(lines, [2]string{"SignedBy", a.Signer})
	}
	if a.Serial != "" {
		lines = append(lines, [2]string{"SignerSerial", a.Serial})
	}
	return append(lines,
		[2]string{"SignatureScheme", string(a.Scheme)},
		[2]string{"SigningTime", a.SignedAt.UTC().Format(time.RFC3339)},
		[2]string{"Signature", a.Signature},
	)
}

func checkContent(doc []byte, format Format) error {
	switch format {
	case FormatJSON:
		if !json.Valid(doc) {
			return faults.New(faults.MalformedDocument, "document is not valid JSON", nil)
		}
	case FormatXML:
		if err := etree.NewDocument().ReadFromBytes(doc); err != nil {
			return faults.New(faults.MalformedDocument, "document is not well-formed XML", err)
		}
	case FormatText, FormatBinary, FormatPDF, FormatDOCX:
	default:
		return faults.New(faults.InvalidInput, fmt.Sprintf("unsupported document format %s", format), nil)
	}
	return nil
}
