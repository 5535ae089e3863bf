// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509revocation answers "has this certificate been revoked?" through
// two independent oracles: a CRL strategy and an [OCSP] strategy.
//
// Each strategy returns a tri-state [Verdict]. Any failure to obtain or trust an
// answer (unreachable endpoint, timeout, unparseable or wrongly signed data,
// unsupported URL scheme, missing issuer) yields [Unknown] with a [Reason], and
// never [NotRevoked]: absence of evidence is not evidence of absence.
//
// The [Checker] runs both strategies concurrently, each under its own timeout,
// so a slow CRL server never delays the OCSP answer or the other way round.
// Raw transport errors are written to the debug log only.
//
// [OCSP]: https://grokipedia.com/page/Online_Certificate_Status_Protocol
package x509revocation
