// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/H0llyW00dzZ/certtrust/src/engine"
	"github.com/H0llyW00dzZ/certtrust/src/internal/document"
	"github.com/H0llyW00dzZ/certtrust/src/internal/faults"
	x509certs "github.com/H0llyW00dzZ/certtrust/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/certtrust/src/logger"
)

// Handler serves the certificate and document routes.
type Handler struct {
	eng     *engine.Engine
	version string
	log     logger.Logger
}

// NewHandler creates a Handler backed by eng.
func NewHandler(eng *engine.Engine, version string) *Handler {
	return &Handler{eng: eng, version: version, log: eng.Logger()}
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: h.version})
}

// Inspect handles POST /api/v1/certificates/inspect.
func (h *Handler) Inspect(w http.ResponseWriter, r *http.Request) {
	var req InspectRequest
	if !h.decode(w, r, &req) {
		return
	}

	data, err := req.Container.Decode("container")
	if err == nil && len(data) == 0 {
		err = faults.New(faults.InvalidInput, "container is required", nil)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	format, err := x509certs.ParseFormat(req.Format)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	rep, err := h.eng.Inspect(r.Context(), engine.InspectRequest{Data: data, Format: format, Password: req.Password})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rep)
}

// Validate handles POST /api/v1/certificates/validate.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if !h.decode(w, r, &req) {
		return
	}

	serial, err := engine.ParseSerial(req.SerialNumber)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	notAfter, err := engine.ParseExpiry(req.ValidTo)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	v, err := h.eng.Validate(r.Context(), engine.ValidateRequest{
		Serial:   serial,
		NotAfter: notAfter,
		CRLURL:   req.CRLURL,
		OCSPURL:  req.OCSPURL,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// Sign handles POST /api/v1/documents/sign.
func (h *Handler) Sign(w http.ResponseWriter, r *http.Request) {
	var req SignRequest
	if !h.decode(w, r, &req) {
		return
	}

	container, err := req.Container.Decode("container")
	if err == nil && len(container) == 0 {
		err = faults.New(faults.InvalidInput, "container is required", nil)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	doc, err := req.Document.Decode("document")
	if err == nil && req.Document == nil {
		err = faults.New(faults.InvalidInput, "document is required", nil)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	containerFormat, err := x509certs.ParseFormat(req.ContainerFormat)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	format, err := document.ParseFormat(req.Format)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	signed, err := h.eng.Sign(r.Context(), engine.SignRequest{
		Container:       container,
		ContainerFormat: containerFormat,
		Password:        req.Password,
		Document:        doc,
		DocumentName:    req.DocumentName,
		Format:          format,
		Scheme:          req.Scheme,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newSignResponse(signed.Format, signed.Signature, signed.Annotation, signed.Derived, signed.Envelope))
}

// Verify handles POST /api/v1/documents/verify. An invalid signature is a
// 200 answer with "valid": false.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if !h.decode(w, r, &req) {
		return
	}

	key, err := req.Key.Decode("key")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	doc, err := req.Document.Decode("document")
	if err == nil && req.Document == nil {
		err = faults.New(faults.InvalidInput, "document is required", nil)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var sig []byte
	switch {
	case req.Envelope != "" && req.Signature != "":
		err = faults.New(faults.InvalidInput, "signature and envelope are mutually exclusive", nil)
	case req.Envelope != "":
		sig, err = base64.StdEncoding.DecodeString(req.Envelope)
		if err != nil {
			err = faults.New(faults.InvalidInput, "envelope is not valid base64", err)
		}
	case req.Signature != "":
		sig = []byte(req.Signature)
	default:
		err = faults.New(faults.InvalidInput, "signature or envelope is required", nil)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	v, err := h.eng.Verify(r.Context(), engine.VerifyRequest{
		Key:       key,
		Password:  req.Password,
		Document:  doc,
		Signature: sig,
		Scheme:    req.Scheme,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// decode reads a JSON body into dst and answers the request itself on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(w, r, err)
			return false
		}
		respondError(w, http.StatusBadRequest, newBadRequest("invalid JSON request body"))
		return false
	}
	return true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, apiErr := MapError(err)
	if status >= http.StatusInternalServerError {
		h.log.Printf("%s %s failed: %v [%s]", r.Method, r.URL.Path, err, middleware.GetReqID(r.Context()))
	} else {
		h.log.Debugf("%s %s rejected: %v [%s]", r.Method, r.URL.Path, err, middleware.GetReqID(r.Context()))
	}
	respondError(w, status, apiErr)
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, status int, apiErr *APIError) {
	respondJSON(w, status, apiErr)
}
