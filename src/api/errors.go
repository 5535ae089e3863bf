// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/H0llyW00dzZ/certtrust/src/internal/faults"
)

// Codes that do not come from a fault kind.
const (
	CodeInvalidRequest  = "invalid_request"
	CodeBodyTooLarge    = "body_too_large"
	CodeRequestCanceled = "request_canceled"
	CodeInternal        = string(faults.Internal)
)

// MapError maps an engine error to an HTTP status code and an [APIError].
//
// Unparseable input answers 400, well-formed input that cannot be used
// (wrong password, unsupported key, key/scheme mismatch) answers 422, and
// anything else answers 500 with a generic message.
func MapError(err error) (int, *APIError) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, &APIError{Code: CodeBodyTooLarge, Message: "request body too large"}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, &APIError{Code: CodeRequestCanceled, Message: "request canceled"}
	}

	kind := faults.KindOf(err)
	switch kind {
	case faults.MalformedContainer, faults.MalformedDocument, faults.InvalidInput:
		return http.StatusBadRequest, &APIError{Code: string(kind), Message: err.Error()}
	case faults.BadPassword, faults.UnsupportedKeyType, faults.SigningFailure:
		return http.StatusUnprocessableEntity, &APIError{Code: string(kind), Message: err.Error()}
	default:
		return http.StatusInternalServerError, &APIError{Code: CodeInternal, Message: "an internal error occurred"}
	}
}

func newBadRequest(message string) *APIError {
	return &APIError{Code: CodeInvalidRequest, Message: message}
}
