// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"bytes"
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/H0llyW00dzZ/certtrust/src/internal/faults"
	pkcs12 "software.sslmate.com/src/go-pkcs12"
)

// Format is a container format hint for [Parser.Parse].
type Format int

const (
	// FormatAuto detects the format from the bytes.
	FormatAuto Format = iota
	// FormatPKCS12 is a password-protected PFX container.
	FormatPKCS12
	// FormatPEM is one or more PEM blocks, optionally with a private key.
	FormatPEM
	// FormatDER is one or more concatenated DER certificates.
	FormatDER
	// FormatPKCS7 is a DER PKCS#7 certificate bundle.
	FormatPKCS7
)

// String returns the canonical format name.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatPKCS12:
		return "pkcs12"
	case FormatPEM:
		return "pem"
	case FormatDER:
		return "der"
	case FormatPKCS7:
		return "pkcs7"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps a format name or file extension to a Format.
// The empty string maps to FormatAuto.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "", "auto":
		return FormatAuto, nil
	case "pkcs12", "p12", "pfx":
		return FormatPKCS12, nil
	case "pem", "crt":
		return FormatPEM, nil
	case "der", "cer":
		return FormatDER, nil
	case "pkcs7", "p7b", "p7c":
		return FormatPKCS7, nil
	}
	return FormatAuto, faults.New(faults.InvalidInput, fmt.Sprintf("unknown container format %q", name), ErrUnknownFormat)
}

// FormatFromName guesses a Format from a file name, falling back to FormatAuto.
func FormatFromName(name string) Format {
	f, err := ParseFormat(filepath.Ext(name))
	if err != nil {
		return FormatAuto
	}
	return f
}

// Container is the parsed content of a certificate container.
type Container struct {
	// Leaf is the end-entity certificate.
	Leaf *Record
	// Key is the private key matching Leaf, or nil when the container carries none.
	Key crypto.PrivateKey
	// Chain holds the remaining certificates in container order.
	Chain []*x509.Certificate
}

// Issuer returns the certificate in the container that issued the leaf.
// A self-signed leaf is its own issuer. It returns nil when no issuer is present.
func (c *Container) Issuer() *x509.Certificate {
	leaf := c.Leaf.Certificate()
	for _, candidate := range c.Chain {
		if IsIssuer(candidate, leaf) {
			return candidate
		}
	}
	if c.Leaf.IsSelfSigned() {
		return leaf
	}
	return nil
}

// IsIssuer reports whether candidate's subject and key issued cert.
func IsIssuer(candidate, cert *x509.Certificate) bool {
	return bytes.Equal(cert.RawIssuer, candidate.RawSubject) && cert.CheckSignatureFrom(candidate) == nil
}

// Parse decodes a certificate container.
//
// Parameters:
//   - data: Container bytes
//   - hint: Expected format, or FormatAuto to detect it
//   - password: PKCS#12 password, ignored by the other formats
//
// Returns:
//   - *Container: Leaf record, optional private key, and remaining certificates
//   - error: A [faults.Error] of kind MalformedContainer, BadPassword, or
//     UnsupportedKeyType; the container is nil whenever error is non-nil
//
// Auto-detection tries PEM, then a DER certificate, then PKCS#12, then PKCS#7.
// A PKCS#12 container that fails its integrity check is reported as
// BadPassword and detection stops there.
func (p *Parser) Parse(data []byte, hint Format, password string) (*Container, error) {
	if len(data) == 0 {
		return nil, malformed("certificate container is empty", ErrEmptyInput, nil)
	}

	switch hint {
	case FormatAuto:
		return p.parseAuto(data, password)
	case FormatPKCS12:
		return p.parsePKCS12(data, password)
	case FormatPEM:
		return p.parsePEM(data)
	case FormatDER:
		certs, err := p.DecodeMultiple(data)
		if err != nil {
			return nil, err
		}
		return assemble(certs, nil)
	case FormatPKCS7:
		certs, err := p.decodePKCS7(data)
		if err != nil {
			return nil, err
		}
		return assemble(certs, nil)
	}

	return nil, faults.New(faults.InvalidInput, fmt.Sprintf("unknown container format %s", hint), ErrUnknownFormat)
}

func (p *Parser) parseAuto(data []byte, password string) (*Container, error) {
	if p.IsPEM(data) {
		return p.parsePEM(data)
	}

	if certs, err := x509.ParseCertificates(data); err == nil && len(certs) > 0 {
		return assemble(certs, nil)
	}

	c, err := p.parsePKCS12(data, password)
	if err == nil || faults.KindOf(err) != faults.MalformedContainer {
		return c, err
	}
	p12Err := err

	if certs, err := p.decodePKCS7(data); err == nil {
		return assemble(certs, nil)
	}

	return nil, malformed("unrecognized certificate container", ErrParseCertificate, p12Err)
}

func (p *Parser) parsePKCS12(data []byte, password string) (*Container, error) {
	key, cert, caCerts, err := pkcs12.DecodeChain(data, password)
	if err != nil {
		if errors.Is(err, pkcs12.ErrIncorrectPassword) {
			return nil, faults.New(faults.BadPassword, "incorrect PKCS#12 password", ErrIncorrectPassword)
		}
		return nil, malformed("invalid PKCS#12 container", ErrParsePKCS12, err)
	}

	if err := checkPrivateKey(key); err != nil {
		return nil, err
	}

	return assemble(append([]*x509.Certificate{cert}, caCerts...), key)
}

func (p *Parser) parsePEM(data []byte) (*Container, error) {
	if !p.IsPEM(data) {
		return nil, malformed("no PEM block found", ErrInvalidPEMBlock, nil)
	}

	var (
		certs []*x509.Certificate
		key   crypto.PrivateKey
	)

	for len(data) > 0 {
		block, rest := pem.Decode(data)
		if block == nil {
			break
		}
		data = rest

		switch block.Type {
		case p.certBlockType:
			cert, err := x509.ParseCertificate(block.Bytes)
			if err != nil {
				return nil, malformed("invalid certificate in PEM bundle", ErrParseCertificate, err)
			}
			certs = append(certs, cert)
		case "PKCS7":
			bundle, err := p.decodePKCS7(block.Bytes)
			if err != nil {
				return nil, err
			}
			certs = append(certs, bundle...)
		case "PRIVATE KEY", "RSA PRIVATE KEY", "EC PRIVATE KEY", "ENCRYPTED PRIVATE KEY":
			if key != nil {
				return nil, malformed("PEM bundle holds more than one private key", ErrMultiplePrivateKeys, nil)
			}
			k, err := parsePrivateKey(block)
			if err != nil {
				return nil, err
			}
			key = k
		}
	}

	if len(certs) == 0 {
		return nil, malformed("no certificate found in PEM data", ErrNoCertificates, nil)
	}
	return assemble(certs, key)
}

// assemble picks the leaf and builds the container.
func assemble(certs []*x509.Certificate, key crypto.PrivateKey) (*Container, error) {
	idx := selectLeaf(certs, key)
	if idx < 0 {
		return nil, malformed("private key does not match any certificate", ErrKeyMismatch, nil)
	}

	chain := make([]*x509.Certificate, 0, len(certs)-1)
	chain = append(chain, certs[:idx]...)
	chain = append(chain, certs[idx+1:]...)

	return &Container{
		Leaf:  NewRecord(certs[idx]),
		Key:   key,
		Chain: chain,
	}, nil
}

// selectLeaf returns the index of the certificate matching key, or without a
// key the first certificate that issued no other certificate in the bundle.
func selectLeaf(certs []*x509.Certificate, key crypto.PrivateKey) int {
	if key != nil {
		pub, ok := publicKeyOf(key)
		if !ok {
			return -1
		}
		for i, cert := range certs {
			if k, ok := cert.PublicKey.(interface{ Equal(crypto.PublicKey) bool }); ok && k.Equal(pub) {
				return i
			}
		}
		return -1
	}

	for i, cert := range certs {
		if !issuedAny(cert, certs) {
			return i
		}
	}
	return 0
}

func issuedAny(cert *x509.Certificate, certs []*x509.Certificate) bool {
	for _, other := range certs {
		if other == cert || bytes.Equal(other.Raw, cert.Raw) {
			continue
		}
		if bytes.Equal(other.RawIssuer, cert.RawSubject) {
			return true
		}
	}
	return false
}
