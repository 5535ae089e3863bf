// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509revocation

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"

	"github.com/H0llyW00dzZ/certtrust/src/internal/faults"
	x509certs "github.com/H0llyW00dzZ/certtrust/src/internal/x509/certs"
)

// ErrIssuerNotFound indicates that no CA issuer URL yielded the issuing certificate.
var ErrIssuerNotFound = errors.New("x509revocation: issuer certificate not found")

// FetchIssuer downloads the issuer of cert from its AIA CA issuer URLs.
//
// Each URL may serve a DER or PEM certificate or a PKCS#7 bundle. The first
// certificate whose subject and key issued cert is returned.
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//   - cert: Certificate whose issuer is wanted
//
// Returns:
//   - *x509.Certificate: Issuer certificate
//   - error: [ErrIssuerNotFound] wrapped in a NetworkUnavailable fault
//
// Thread Safety: Safe for concurrent use.
func (c *HTTPConfig) FetchIssuer(ctx context.Context, cert *x509.Certificate) (*x509.Certificate, error) {
	parser := x509certs.New()

	var errs []error
	for _, endpoint := range cert.IssuingCertificateURL {
		data, err := c.get(ctx, endpoint)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", endpoint, err))
			continue
		}

		bundle, err := parser.Parse(data, x509certs.FormatAuto, "")
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", endpoint, err))
			continue
		}

		candidates := append([]*x509.Certificate{bundle.Leaf.Certificate()}, bundle.Chain...)
		for _, candidate := range candidates {
			if x509certs.IsIssuer(candidate, cert) {
				return candidate, nil
			}
		}
		errs = append(errs, fmt.Errorf("%s: certificate did not issue %s", endpoint, cert.Subject))
	}

	return nil, faults.New(faults.NetworkUnavailable, "issuer certificate not available",
		errors.Join(append([]error{ErrIssuerNotFound}, errs...)...))
}
