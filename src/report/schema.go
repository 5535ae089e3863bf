// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed certificate.schema.json
var schemaJSON []byte

// ErrSchemaViolation indicates a document that does not match [Schema].
var ErrSchemaViolation = errors.New("report: document violates certificate schema")

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

// Schema returns the JSON schema of [Certificate] records.
func Schema() []byte { return append([]byte(nil), schemaJSON...) }

func compiled() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return schema, schemaErr
}

// Validate checks a JSON document against [Schema].
//
// Returns:
//   - error: nil when the document conforms; otherwise an error wrapping
//     [ErrSchemaViolation] that lists each violation
func Validate(document []byte) error {
	s, err := compiled()
	if err != nil {
		return fmt.Errorf("report: compile schema: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("report: load document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(msgs, "; "))
}
