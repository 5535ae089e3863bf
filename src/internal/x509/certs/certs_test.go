// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs_test

import (
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/certtrust/src/internal/faults"
	"github.com/H0llyW00dzZ/certtrust/src/internal/helper/pkitest"
	x509certs "github.com/H0llyW00dzZ/certtrust/src/internal/x509/certs"
)

func googleLeaf(t *testing.T) *x509.Certificate {
	t.Helper()

	block, _ := pem.Decode([]byte(pkitest.GoogleLeafPEM))
	require.NotNil(t, block, "failed to parse certificate PEM")

	cert, err := x509.ParseCertificate(block.Bytes)
	require.NoError(t, err, "failed to parse test certificate")
	return cert
}

func TestParser_IsPEM(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected bool
	}{
		{name: "Valid PEM", input: []byte(pkitest.GoogleLeafPEM), expected: true},
		{name: "Invalid PEM", input: []byte("not a pem block"), expected: false},
		{name: "Empty Input", input: []byte(""), expected: false},
		{
			name:     "PEM-like but invalid base64",
			input:    []byte("-----BEGIN CERTIFICATE-----\ninvalid-base64\n-----END CERTIFICATE-----"),
			expected: false,
		},
		{name: "DER format (binary)", input: []byte{0x30, 0x82, 0x01, 0x23}, expected: false},
	}

	parser := x509certs.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parser.IsPEM(tt.input))
		})
	}
}

func TestParser_DecodeMultiple(t *testing.T) {
	parser := x509certs.New()
	leaf := googleLeaf(t)
	ca := pkitest.NewAuthority(t, "Decode CA", nil)

	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "PEM bundle keeps order",
			testFunc: func(t *testing.T) {
				certs, err := parser.DecodeMultiple(pkitest.CertPEM(leaf, ca.Cert))
				require.NoError(t, err)
				require.Len(t, certs, 2)
				assert.True(t, certs[0].Equal(leaf))
				assert.True(t, certs[1].Equal(ca.Cert))
			},
		},
		{
			name: "Concatenated DER",
			testFunc: func(t *testing.T) {
				data := append(parser.EncodeDER(leaf), parser.EncodeDER(ca.Cert)...)
				certs, err := parser.DecodeMultiple(data)
				require.NoError(t, err)
				assert.Len(t, certs, 2)
			},
		},
		{
			name: "Non-certificate blocks are skipped",
			testFunc: func(t *testing.T) {
				data := append(pkitest.KeyPEM(t, pkitest.RSAKey(t, 1)), pkitest.CertPEM(leaf)...)
				certs, err := parser.DecodeMultiple(data)
				require.NoError(t, err)
				assert.Len(t, certs, 1)
			},
		},
		{
			name: "Invalid DER",
			testFunc: func(t *testing.T) {
				_, err := parser.DecodeMultiple([]byte("not a certificate"))
				assert.ErrorIs(t, err, x509certs.ErrParseCertificate)
				assert.Equal(t, faults.MalformedContainer, faults.KindOf(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestParser_Encode(t *testing.T) {
	parser := x509certs.New()
	leaf := googleLeaf(t)

	t.Run("EncodePEM", func(t *testing.T) {
		encoded := parser.EncodePEM(leaf)
		block, rest := pem.Decode(encoded)
		require.NotNil(t, block)
		assert.Empty(t, rest)
		assert.Equal(t, "CERTIFICATE", block.Type)
		assert.Equal(t, leaf.Raw, block.Bytes)
	})

	t.Run("EncodeDER returns a copy", func(t *testing.T) {
		der := parser.EncodeDER(leaf)
		require.Equal(t, leaf.Raw, der)
		der[0] ^= 0xff
		assert.NotEqual(t, leaf.Raw[0], der[0])
	})

	t.Run("EncodeMultiplePEM", func(t *testing.T) {
		encoded := parser.EncodeMultiplePEM([]*x509.Certificate{leaf, leaf})
		certs, err := parser.DecodeMultiple(encoded)
		require.NoError(t, err)
		assert.Len(t, certs, 2)
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected x509certs.Format
		wantErr  bool
	}{
		{input: "", expected: x509certs.FormatAuto},
		{input: "PFX", expected: x509certs.FormatPKCS12},
		{input: ".p12", expected: x509certs.FormatPKCS12},
		{input: "pem", expected: x509certs.FormatPEM},
		{input: "cer", expected: x509certs.FormatDER},
		{input: "p7b", expected: x509certs.FormatPKCS7},
		{input: "jks", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := x509certs.ParseFormat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, x509certs.ErrUnknownFormat)
				assert.Equal(t, faults.InvalidInput, faults.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}

	assert.Equal(t, x509certs.FormatPKCS12, x509certs.FormatFromName("signer.pfx"))
	assert.Equal(t, x509certs.FormatAuto, x509certs.FormatFromName("signer.bin"))
	assert.Equal(t, "pkcs7", x509certs.FormatPKCS7.String())
}
