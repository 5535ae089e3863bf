// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package document signs documents and produces annotated derivatives.
//
// The signature always covers the original bytes. Plain formats (text, JSON,
// XML, binary) yield a detached signature only. PDF and DOCX inputs
// additionally yield a derived copy carrying a human-readable annotation:
//
//   - PDF: an incremental update appended after the original bytes with a new
//     document information dictionary. The original is a strict prefix of the
//     derivative.
//   - DOCX: custom document properties in docProps/custom.xml, registered in
//     [Content_Types].xml and _rels/.rels when absent.
//
// Verification must be given the original bytes, never the derivative.
package document
