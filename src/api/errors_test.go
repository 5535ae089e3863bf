// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package api_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/H0llyW00dzZ/certtrust/src/api"
	"github.com/H0llyW00dzZ/certtrust/src/internal/faults"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"Malformed container", faults.New(faults.MalformedContainer, "bad bytes", nil), http.StatusBadRequest, "malformed_container"},
		{"Malformed document", faults.New(faults.MalformedDocument, "bad pdf", nil), http.StatusBadRequest, "malformed_document"},
		{"Invalid input", faults.New(faults.InvalidInput, "missing", nil), http.StatusBadRequest, "invalid_input"},
		{"Bad password", faults.New(faults.BadPassword, "wrong", nil), http.StatusUnprocessableEntity, "bad_password"},
		{"Unsupported key", faults.New(faults.UnsupportedKeyType, "dsa", nil), http.StatusUnprocessableEntity, "unsupported_key_type"},
		{"Signing failure", faults.New(faults.SigningFailure, "mismatch", nil), http.StatusUnprocessableEntity, "signing_failure"},
		{"Wrapped fault", fmt.Errorf("outer: %w", faults.New(faults.BadPassword, "wrong", nil)), http.StatusUnprocessableEntity, "bad_password"},
		{"Network leak", faults.New(faults.NetworkUnavailable, "down", errors.New("dial tcp 10.0.0.1:80")), http.StatusInternalServerError, api.CodeInternal},
		{"Plain error", errors.New("boom"), http.StatusInternalServerError, api.CodeInternal},
		{"Canceled", context.Canceled, http.StatusServiceUnavailable, api.CodeRequestCanceled},
		{"Too large", &http.MaxBytesError{Limit: 1}, http.StatusRequestEntityTooLarge, api.CodeBodyTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, apiErr := api.MapError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, apiErr.Code)
			assert.NotContains(t, apiErr.Message, "dial tcp")
		})
	}
}
