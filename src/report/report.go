// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"encoding/json"
	"time"

	x509certs "github.com/H0llyW00dzZ/certtrust/src/internal/x509/certs"
	x509extensions "github.com/H0llyW00dzZ/certtrust/src/internal/x509/extensions"
	x509revocation "github.com/H0llyW00dzZ/certtrust/src/internal/x509/revocation"
	x509trust "github.com/H0llyW00dzZ/certtrust/src/internal/x509/trust"
)

// Certificate is the certificate information record.
type Certificate struct {
	Subject              string                 `json:"subject"`
	Issuer               string                 `json:"issuer"`
	SerialNumber         string                 `json:"serial_number"`
	SerialNumberHex      string                 `json:"serial_number_hex"`
	ValidFrom            time.Time              `json:"valid_from"`
	ValidTo              time.Time              `json:"valid_to"`
	Status               x509trust.Status       `json:"status"`
	RevocationStatusCRL  x509revocation.Verdict `json:"revocation_status_crl"`
	RevocationStatusOCSP x509revocation.Verdict `json:"revocation_status_ocsp"`
	RevocationReasonCRL  string                 `json:"revocation_reason_crl,omitempty"`
	RevocationReasonOCSP string                 `json:"revocation_reason_ocsp,omitempty"`
	SignatureAlgorithm   string                 `json:"signature_algorithm"`
	PublicKeyAlgorithm   string                 `json:"public_key_algorithm"`
	PublicKeySize        int                    `json:"public_key_size,omitempty"`
	PublicKeyCurve       string                 `json:"public_key_curve,omitempty"`
	PublicKeyPEM         string                 `json:"public_key_pem"`
	CertificatePEM       string                 `json:"certificate_pem"`
	FingerprintSHA256    string                 `json:"fingerprint_sha256"`
	VID                  *string                `json:"vid"`
	OIDList              []string               `json:"oid_list"`
	CRLURLs              []string               `json:"crl_urls"`
	OCSPURLs             []string               `json:"ocsp_urls"`
	CAIssuerURLs         []string               `json:"ca_issuer_urls"`
	EvaluatedAt          time.Time              `json:"evaluated_at"`
}

// New assembles the record of one evaluation.
//
// Parameters:
//   - rec: Parsed leaf certificate
//   - set: Extensions extracted from rec
//   - pair: CRL and OCSP answers
//   - status: Combined trust status
//   - at: Evaluation time
//
// Returns:
//   - *Certificate: Record with every list field non-nil
func New(rec *x509certs.Record, set *x509extensions.Set, pair x509revocation.Pair, status x509trust.Status, at time.Time) *Certificate {
	info := rec.PublicKeyInfo()
	pubPEM, _ := rec.PublicKeyPEM()

	c := &Certificate{
		Subject:              rec.Subject(),
		Issuer:               rec.Issuer(),
		SerialNumber:         rec.SerialNumber().String(),
		SerialNumberHex:      rec.SerialHex(),
		ValidFrom:            rec.NotBefore(),
		ValidTo:              rec.NotAfter(),
		Status:               status,
		RevocationStatusCRL:  pair.CRL.Verdict,
		RevocationStatusOCSP: pair.OCSP.Verdict,
		RevocationReasonCRL:  string(pair.CRL.Reason),
		RevocationReasonOCSP: string(pair.OCSP.Reason),
		SignatureAlgorithm:   rec.SignatureAlgorithm(),
		PublicKeyAlgorithm:   info.Algorithm,
		PublicKeySize:        info.Size,
		PublicKeyCurve:       info.Curve,
		PublicKeyPEM:         string(pubPEM),
		CertificatePEM:       string(rec.PEM()),
		FingerprintSHA256:    rec.Fingerprint(),
		OIDList:              nonNil(set.OIDs()),
		CRLURLs:              nonNil(set.CRLURLs()),
		OCSPURLs:             nonNil(set.OCSPURLs()),
		CAIssuerURLs:         nonNil(set.CAIssuerURLs()),
		EvaluatedAt:          at.UTC(),
	}
	if vid := set.VID(); vid != "" {
		c.VID = &vid
	}
	return c
}

// JSON returns the indented JSON encoding of the record.
func (c *Certificate) JSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
