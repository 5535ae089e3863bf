// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package api exposes the engine over HTTP with a chi router.
//
// Routes:
//
//	GET  /health
//	POST /api/v1/certificates/inspect
//	POST /api/v1/certificates/validate
//	POST /api/v1/documents/sign
//	POST /api/v1/documents/verify
//
// Requests and responses are JSON. Binary fields use [BinaryData], base64 by
// default or raw text with "encoding": "pem". Failures are answered with an
// [APIError] body whose code is the fault kind; raw transport errors never
// appear in responses.
package api
