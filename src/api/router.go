// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/H0llyW00dzZ/certtrust/src/engine"
)

// NewRouter creates a chi router with every route configured.
func NewRouter(eng *engine.Engine, version string) http.Handler {
	h := NewHandler(eng, version)
	log := eng.Logger()

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(log))
	r.Use(recoverer(log))

	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequestSize(eng.Config().Server.MaxBodyBytes))
		r.Use(middleware.AllowContentType("application/json"))

		r.Route("/certificates", func(r chi.Router) {
			r.Post("/inspect", h.Inspect)
			r.Post("/validate", h.Validate)
		})

		r.Route("/documents", func(r chi.Router) {
			r.Post("/sign", h.Sign)
			r.Post("/verify", h.Verify)
		})
	})

	return r
}
