// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/H0llyW00dzZ/certtrust/src/logger"
)

// requestLogger logs one line per request through log.
func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.Printf("%s %s %d %dB %s [%s]",
				r.Method,
				r.URL.Path,
				status,
				ww.BytesWritten(),
				time.Since(start).Round(time.Microsecond),
				middleware.GetReqID(r.Context()),
			)
		})
	}
}

// recoverer answers 500 with an APIError body when a handler panics.
func recoverer(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.Printf("panic recovered: %v [%s]", rec, middleware.GetReqID(r.Context()))
					respondError(w, http.StatusInternalServerError, &APIError{Code: CodeInternal, Message: "an internal error occurred"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
