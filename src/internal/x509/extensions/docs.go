// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509extensions walks the extensions of a certificate record and
// surfaces the values the rest of the system needs: the VID (first DNS
// subject alternative name), CRL distribution points, and the OCSP, CA issuer,
// and time-stamping URLs of the authority information access extension.
//
// The subject alternative name and authority information access extensions are
// read from their raw encoding with [cryptobyte], so encoded order is
// authoritative and access methods the standard library drops are kept.
//
// [cryptobyte]: https://pkg.go.dev/golang.org/x/crypto/cryptobyte
package x509extensions
