// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package faults defines the machine-readable failure kinds shared by the
// certificate, revocation, and signing packages.
//
// Every failure that can reach a caller is an [*Error] carrying a [Kind] and
// a human message. The wrapped cause stays reachable through [errors.Unwrap]
// for logging, but it is never part of the rendered message, so raw transport
// errors do not leak to clients.
package faults

import "errors"

// Kind is a machine-readable failure category.
type Kind string

const (
	// MalformedContainer indicates bytes that are not a valid PKCS#12, PEM, DER, or PKCS#7 container.
	MalformedContainer Kind = "malformed_container"
	// BadPassword indicates a PKCS#12 container that could not be decrypted with the supplied password.
	BadPassword Kind = "bad_password"
	// UnsupportedKeyType indicates a private or public key algorithm that is not supported.
	UnsupportedKeyType Kind = "unsupported_key_type"
	// NetworkUnavailable indicates a revocation endpoint that could not be reached.
	NetworkUnavailable Kind = "network_unavailable"
	// Timeout indicates a revocation endpoint that did not answer within its budget.
	Timeout Kind = "timeout"
	// MalformedResponse indicates a CRL or OCSP response that could not be parsed or verified.
	MalformedResponse Kind = "malformed_response"
	// SigningFailure indicates a key/scheme mismatch or a failed private key operation.
	SigningFailure Kind = "signing_failure"
	// MalformedDocument indicates a document whose declared format does not match its bytes.
	MalformedDocument Kind = "malformed_document"
	// InvalidInput indicates a missing or unusable request parameter.
	InvalidInput Kind = "invalid_input"
	// Internal is reported for errors that carry no kind.
	Internal Kind = "internal"
)

// Error is a failure with a kind and a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// New creates an Error of the given kind wrapping err.
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Error returns the human message only.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind with no message,
// which lets callers match on kind alone:
//
//	errors.Is(err, faults.Of(faults.BadPassword))
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// Of returns a bare Error usable as an [errors.Is] target for kind.
func Of(kind Kind) *Error { return &Error{Kind: kind} }

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Internal
}

// IsClientError reports whether kind is caused by caller input rather than by the system.
func IsClientError(kind Kind) bool {
	switch kind {
	case MalformedContainer, BadPassword, UnsupportedKeyType, MalformedDocument, InvalidInput, SigningFailure:
		return true
	default:
		return false
	}
}
