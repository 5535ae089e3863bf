// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs turns certificate containers into immutable certificate records.
//
// It accepts [PKCS12] (password protected), [PEM] bundles with an optional
// private key, single DER certificates, and [PKCS7] certificate bundles. Every
// failure is a [faults.Error] of kind MalformedContainer, BadPassword, or
// UnsupportedKeyType wrapping one of the package sentinel errors, so callers
// can switch on the kind and still match the sentinel with [errors.Is].
//
// Parsing works on in-memory bytes only and never touches the filesystem.
//
// [PKCS12]: https://grokipedia.com/page/PKCS_12
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
