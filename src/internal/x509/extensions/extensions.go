// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509extensions

import (
	"encoding/asn1"
	"slices"

	x509certs "github.com/H0llyW00dzZ/certtrust/src/internal/x509/certs"
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

var (
	oidSubjectAltName       = asn1.ObjectIdentifier{2, 5, 29, 17}
	oidAuthorityInfo        = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 1, 1}
	oidAccessOCSP           = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 48, 1}
	oidAccessCAIssuers      = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 48, 2}
	oidAccessTimeStamp      = asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 48, 3}
	tagDNSName              = cbasn1.Tag(2).ContextSpecific()
	tagURI                  = cbasn1.Tag(6).ContextSpecific()
	wellKnownExtensionNames = map[string]string{
		"2.5.29.9":                "subjectDirectoryAttributes",
		"2.5.29.14":               "subjectKeyIdentifier",
		"2.5.29.15":               "keyUsage",
		"2.5.29.17":               "subjectAltName",
		"2.5.29.18":               "issuerAltName",
		"2.5.29.19":               "basicConstraints",
		"2.5.29.30":               "nameConstraints",
		"2.5.29.31":               "cRLDistributionPoints",
		"2.5.29.32":               "certificatePolicies",
		"2.5.29.35":               "authorityKeyIdentifier",
		"2.5.29.37":               "extKeyUsage",
		"1.3.6.1.5.5.7.1.1":       "authorityInfoAccess",
		"1.3.6.1.5.5.7.1.3":       "qcStatements",
		"1.3.6.1.4.1.11129.2.4.2": "signedCertificateTimestampList",
		"1.3.6.1.5.5.7.48.1.5":    "ocspNoCheck",
	}
)

// Extension is one certificate extension.
type Extension struct {
	OID      string
	Critical bool
	Value    []byte
}

// Set is the extension view of one certificate. It is never mutated after
// [Extract] returns and all accessors return copies.
type Set struct {
	extensions []Extension
	vid        string
	crl        []string
	ocsp       []string
	caIssuers  []string
	tsa        []string
}

// Extract computes the extension set of rec. It is a pure function of the
// certificate's extension list.
func Extract(rec *x509certs.Record) *Set {
	cert := rec.Certificate()
	s := &Set{
		extensions: make([]Extension, 0, len(cert.Extensions)),
		crl:        slices.Clone(cert.CRLDistributionPoints),
	}

	for _, ext := range cert.Extensions {
		s.extensions = append(s.extensions, Extension{
			OID:      ext.Id.String(),
			Critical: ext.Critical,
			Value:    slices.Clone(ext.Value),
		})

		switch {
		case ext.Id.Equal(oidSubjectAltName):
			s.vid = firstDNSName(ext.Value)
		case ext.Id.Equal(oidAuthorityInfo):
			s.parseAuthorityInfo(ext.Value)
		}
	}

	return s
}

// All returns every extension in certificate order.
func (s *Set) All() []Extension {
	out := make([]Extension, len(s.extensions))
	for i, ext := range s.extensions {
		out[i] = Extension{OID: ext.OID, Critical: ext.Critical, Value: slices.Clone(ext.Value)}
	}
	return out
}

// OIDs returns the dotted OID of every extension in certificate order.
func (s *Set) OIDs() []string {
	out := make([]string, len(s.extensions))
	for i, ext := range s.extensions {
		out[i] = ext.OID
	}
	return out
}

// Value returns the raw value of the extension with the given OID.
func (s *Set) Value(oid string) ([]byte, bool) {
	for _, ext := range s.extensions {
		if ext.OID == oid {
			return slices.Clone(ext.Value), true
		}
	}
	return nil, false
}

// Critical reports whether the extension with the given OID is present and critical.
func (s *Set) Critical(oid string) bool {
	for _, ext := range s.extensions {
		if ext.OID == oid {
			return ext.Critical
		}
	}
	return false
}

// VID returns the first DNS subject alternative name, or "" when there is none.
// Later DNS names are ignored on purpose.
func (s *Set) VID() string { return s.vid }

// CRLURLs returns the CRL distribution point URLs in encoded order.
func (s *Set) CRLURLs() []string { return slices.Clone(s.crl) }

// OCSPURLs returns the OCSP responder URLs in encoded order.
func (s *Set) OCSPURLs() []string { return slices.Clone(s.ocsp) }

// CAIssuerURLs returns the CA issuer URLs in encoded order.
func (s *Set) CAIssuerURLs() []string { return slices.Clone(s.caIssuers) }

// TSAURLs returns the time-stamping authority URLs in encoded order.
func (s *Set) TSAURLs() []string { return slices.Clone(s.tsa) }

// Name returns a friendly name for a well-known extension OID, or the OID itself.
func Name(oid string) string {
	if name, ok := wellKnownExtensionNames[oid]; ok {
		return name
	}
	return oid
}

// firstDNSName returns the first dNSName of a GeneralNames sequence.
func firstDNSName(value []byte) string {
	input := cryptobyte.String(value)
	var names cryptobyte.String
	if !input.ReadASN1(&names, cbasn1.SEQUENCE) {
		return ""
	}

	for !names.Empty() {
		var (
			name cryptobyte.String
			tag  cbasn1.Tag
		)
		if !names.ReadAnyASN1(&name, &tag) {
			return ""
		}
		if tag == tagDNSName {
			return string(name)
		}
	}
	return ""
}

// parseAuthorityInfo collects URI access locations by access method.
// Malformed input stops parsing and keeps what was read so far.
func (s *Set) parseAuthorityInfo(value []byte) {
	input := cryptobyte.String(value)
	var descriptions cryptobyte.String
	if !input.ReadASN1(&descriptions, cbasn1.SEQUENCE) {
		return
	}

	for !descriptions.Empty() {
		var (
			desc     cryptobyte.String
			method   asn1.ObjectIdentifier
			location cryptobyte.String
			tag      cbasn1.Tag
		)
		if !descriptions.ReadASN1(&desc, cbasn1.SEQUENCE) ||
			!desc.ReadASN1ObjectIdentifier(&method) ||
			!desc.ReadAnyASN1(&location, &tag) {
			return
		}
		if tag != tagURI {
			continue
		}

		uri := string(location)
		switch {
		case method.Equal(oidAccessOCSP):
			s.ocsp = append(s.ocsp, uri)
		case method.Equal(oidAccessCAIssuers):
			s.caIssuers = append(s.caIssuers, uri)
		case method.Equal(oidAccessTimeStamp):
			s.tsa = append(s.tsa, uri)
		}
	}
}
