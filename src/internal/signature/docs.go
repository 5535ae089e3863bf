// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package signature binds a private key operation to document bytes and
// re-verifies it deterministically.
//
// A scheme names the padding and digest explicitly ("rsa-pkcs1v15-sha256",
// "rsa-pss-sha256", "ecdsa-p256-sha256"). Verification never guesses the
// scheme: a signature made under one scheme does not verify under another.
//
// [Verify] answers with a boolean. An invalid signature is a normal outcome,
// not an error. A [Record] can be carried as a self-contained [CBOR] envelope.
//
// [CBOR]: https://www.rfc-editor.org/rfc/rfc8949
package signature
