// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"strings"

	"github.com/H0llyW00dzZ/certtrust/src/internal/faults"
)

// PublicKey extracts a public key from a PKIX or PKCS#1 public key (PEM or
// DER), or from the leaf of any certificate container [Parser.Parse] accepts.
func (p *Parser) PublicKey(data []byte, password string) (crypto.PublicKey, error) {
	if block, _ := pem.Decode(data); block != nil {
		switch block.Type {
		case "PUBLIC KEY":
			pub, err := x509.ParsePKIXPublicKey(block.Bytes)
			if err != nil {
				return nil, malformed("invalid public key", ErrParsePublicKey, err)
			}
			return checkPublicKey(pub)
		case "RSA PUBLIC KEY":
			pub, err := x509.ParsePKCS1PublicKey(block.Bytes)
			if err != nil {
				return nil, malformed("invalid RSA public key", ErrParsePublicKey, err)
			}
			return pub, nil
		}
	} else if pub, err := x509.ParsePKIXPublicKey(data); err == nil {
		return checkPublicKey(pub)
	}

	c, err := p.Parse(data, FormatAuto, password)
	if err != nil {
		return nil, err
	}
	return checkPublicKey(c.Leaf.PublicKey())
}

// EncodePublicKeyPEM renders pub as a PKIX PUBLIC KEY block.
func EncodePublicKeyPEM(pub crypto.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, faults.New(faults.UnsupportedKeyType, "public key cannot be encoded", fmt.Errorf("%w: %w", ErrUnsupportedKey, err))
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}

func parsePrivateKey(block *pem.Block) (crypto.PrivateKey, error) {
	if block.Type == "ENCRYPTED PRIVATE KEY" || strings.Contains(block.Headers["Proc-Type"], "ENCRYPTED") {
		return nil, faults.New(faults.UnsupportedKeyType, "encrypted PEM private keys are not supported", ErrUnsupportedKey)
	}

	var (
		key crypto.PrivateKey
		err error
	)
	switch block.Type {
	case "RSA PRIVATE KEY":
		key, err = x509.ParsePKCS1PrivateKey(block.Bytes)
	case "EC PRIVATE KEY":
		key, err = x509.ParseECPrivateKey(block.Bytes)
	default:
		key, err = x509.ParsePKCS8PrivateKey(block.Bytes)
	}
	if err != nil {
		return nil, malformed("invalid private key", ErrParsePrivateKey, err)
	}

	if err := checkPrivateKey(key); err != nil {
		return nil, err
	}
	return key, nil
}

func checkPrivateKey(key any) error {
	switch key.(type) {
	case *rsa.PrivateKey, *ecdsa.PrivateKey, ed25519.PrivateKey:
		return nil
	}
	return faults.New(faults.UnsupportedKeyType, fmt.Sprintf("unsupported private key type %T", key), ErrUnsupportedKey)
}

func checkPublicKey(pub crypto.PublicKey) (crypto.PublicKey, error) {
	switch pub.(type) {
	case *rsa.PublicKey, *ecdsa.PublicKey, ed25519.PublicKey:
		return pub, nil
	}
	return nil, faults.New(faults.UnsupportedKeyType, fmt.Sprintf("unsupported public key type %T", pub), ErrUnsupportedKey)
}

func publicKeyOf(key crypto.PrivateKey) (crypto.PublicKey, bool) {
	signer, ok := key.(crypto.Signer)
	if !ok {
		return nil, false
	}
	return signer.Public(), true
}
