// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"math/big"
	"time"

	x509revocation "github.com/H0llyW00dzZ/certtrust/src/internal/x509/revocation"
	x509trust "github.com/H0llyW00dzZ/certtrust/src/internal/x509/trust"
)

// Validation is the outcome of checking a bare serial number against
// caller-supplied CRL and OCSP endpoints.
type Validation struct {
	SerialNumber         string                 `json:"serial_number"`
	ValidTo              time.Time              `json:"valid_to"`
	Status               x509trust.Status       `json:"status"`
	RevocationStatusCRL  x509revocation.Verdict `json:"revocation_status_crl"`
	RevocationStatusOCSP x509revocation.Verdict `json:"revocation_status_ocsp"`
	RevocationReasonCRL  string                 `json:"revocation_reason_crl,omitempty"`
	RevocationReasonOCSP string                 `json:"revocation_reason_ocsp,omitempty"`
	EvaluatedAt          time.Time              `json:"evaluated_at"`
}

// NewValidation assembles a [Validation].
func NewValidation(serial *big.Int, notAfter time.Time, pair x509revocation.Pair, status x509trust.Status, at time.Time) *Validation {
	return &Validation{
		SerialNumber:         serial.String(),
		ValidTo:              notAfter.UTC(),
		Status:               status,
		RevocationStatusCRL:  pair.CRL.Verdict,
		RevocationStatusOCSP: pair.OCSP.Verdict,
		RevocationReasonCRL:  string(pair.CRL.Reason),
		RevocationReasonOCSP: string(pair.OCSP.Reason),
		EvaluatedAt:          at.UTC(),
	}
}
