// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto/x509"
	"encoding/pem"
	"errors"

	"github.com/H0llyW00dzZ/certtrust/src/internal/faults"
	"github.com/cloudflare/cfssl/crypto/pkcs7"
)

var (
	// ErrEmptyInput indicates that no container bytes were supplied.
	ErrEmptyInput = errors.New("x509certs: empty input")

	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block.
	ErrInvalidPEMBlock = errors.New("x509certs: invalid PEM block")

	// ErrParseCertificate indicates a failure to parse the certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrParsePKCS7 indicates a failure to parse PKCS7 formatted data.
	ErrParsePKCS7 = errors.New("x509certs: failed to parse PKCS7 data")

	// ErrParsePKCS12 indicates a failure to decode a PKCS12 container.
	ErrParsePKCS12 = errors.New("x509certs: failed to parse PKCS12 data")

	// ErrNoCertificatesInPKCS indicates that no certificates were found in the PKCS7 data.
	ErrNoCertificatesInPKCS = errors.New("x509certs: no certificates found in PKCS7 data")

	// ErrNoCertificates indicates a container that holds no certificate at all.
	ErrNoCertificates = errors.New("x509certs: no certificates found")

	// ErrIncorrectPassword indicates a PKCS12 container whose integrity check failed for the password.
	ErrIncorrectPassword = errors.New("x509certs: incorrect password")

	// ErrParsePrivateKey indicates a private key block that could not be decoded.
	ErrParsePrivateKey = errors.New("x509certs: failed to parse private key")

	// ErrParsePublicKey indicates a public key that could not be decoded.
	ErrParsePublicKey = errors.New("x509certs: failed to parse public key")

	// ErrMultiplePrivateKeys indicates a PEM bundle with more than one private key.
	ErrMultiplePrivateKeys = errors.New("x509certs: multiple private keys in bundle")

	// ErrKeyMismatch indicates a private key that matches none of the certificates.
	ErrKeyMismatch = errors.New("x509certs: private key does not match any certificate")

	// ErrUnsupportedKey indicates a key algorithm or encoding that is not supported.
	ErrUnsupportedKey = errors.New("x509certs: unsupported key type")

	// ErrUnknownFormat indicates a Format value outside the defined set.
	ErrUnknownFormat = errors.New("x509certs: unknown container format")
)

// Parser decodes certificate containers and encodes certificates.
// It holds no mutable state and is safe for concurrent use.
type Parser struct {
	certBlockType string
}

// New creates a new Parser with default settings.
func New() *Parser {
	return &Parser{
		certBlockType: "CERTIFICATE",
	}
}

// IsPEM checks if the data is in PEM format.
func (p *Parser) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// DecodeMultiple decodes one or more certificates from PEM or concatenated DER data.
// Non-certificate PEM blocks are skipped.
func (p *Parser) DecodeMultiple(data []byte) ([]*x509.Certificate, error) {
	if !p.IsPEM(data) {
		certs, err := x509.ParseCertificates(data)
		if err != nil || len(certs) == 0 {
			return nil, malformed("invalid DER certificate data", ErrParseCertificate, err)
		}
		return certs, nil
	}

	var certs []*x509.Certificate
	for len(data) > 0 {
		block, rest := pem.Decode(data)
		if block == nil {
			break
		}
		data = rest

		if block.Type != p.certBlockType {
			continue
		}

		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, malformed("invalid certificate in PEM bundle", ErrParseCertificate, err)
		}
		certs = append(certs, cert)
	}

	if len(certs) == 0 {
		return nil, malformed("no certificate found in PEM data", ErrNoCertificates, nil)
	}
	return certs, nil
}

// decodePKCS7 extracts the certificates of a PKCS7 SignedData bundle.
func (p *Parser) decodePKCS7(data []byte) ([]*x509.Certificate, error) {
	msg, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, malformed("invalid PKCS#7 bundle", ErrParsePKCS7, err)
	}
	if len(msg.Content.SignedData.Certificates) == 0 {
		return nil, malformed("PKCS#7 bundle holds no certificates", ErrNoCertificatesInPKCS, nil)
	}
	return msg.Content.SignedData.Certificates, nil
}

// EncodePEM encodes a certificate to PEM format.
func (p *Parser) EncodePEM(cert *x509.Certificate) []byte {
	block := pem.Block{
		Type:  p.certBlockType,
		Bytes: cert.Raw,
	}
	return pem.EncodeToMemory(&block)
}

// EncodeDER encodes a certificate to DER format.
func (p *Parser) EncodeDER(cert *x509.Certificate) []byte {
	return append([]byte(nil), cert.Raw...)
}

// EncodeMultiplePEM encodes multiple certificates to PEM format.
func (p *Parser) EncodeMultiplePEM(certs []*x509.Certificate) []byte {
	var data []byte
	for _, cert := range certs {
		data = append(data, p.EncodePEM(cert)...)
	}
	return data
}

// malformed wraps sentinel (and the underlying cause, if any) in a MalformedContainer fault.
func malformed(message string, sentinel, cause error) *faults.Error {
	err := sentinel
	if cause != nil {
		err = errors.Join(sentinel, cause)
	}
	return faults.New(faults.MalformedContainer, message, err)
}
