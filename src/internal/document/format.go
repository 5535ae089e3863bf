// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package document

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"

	"github.com/H0llyW00dzZ/certtrust/src/internal/faults"
)

// Format identifies a document type.
type Format int

const (
	// FormatAuto detects the format from the name and content.
	FormatAuto Format = iota
	FormatText
	FormatJSON
	FormatXML
	FormatBinary
	FormatPDF
	FormatDOCX
)

var formatNames = map[Format]string{
	FormatAuto:   "auto",
	FormatText:   "text",
	FormatJSON:   "json",
	FormatXML:    "xml",
	FormatBinary: "binary",
	FormatPDF:    "pdf",
	FormatDOCX:   "docx",
}

// String returns the format tag.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Derives reports whether signing produces an annotated derivative.
func (f Format) Derives() bool { return f == FormatPDF || f == FormatDOCX }

// ParseFormat parses a format tag. Common file extensions are accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".") {
	case "", "auto":
		return FormatAuto, nil
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "xml":
		return FormatXML, nil
	case "binary", "bin":
		return FormatBinary, nil
	case "pdf":
		return FormatPDF, nil
	case "docx":
		return FormatDOCX, nil
	}
	return FormatAuto, faults.New(faults.InvalidInput, fmt.Sprintf("unknown document format %q", name), nil)
}

// DetectFormat sniffs the document type. Content wins over the file name
// except where the content alone is ambiguous (text versus binary). JSON and
// XML are only reported for content that parses, so markup-like text stays
// text.
func DetectFormat(name string, data []byte) Format {
	switch {
	case bytes.HasPrefix(data, []byte("%PDF-")):
		return FormatPDF
	case bytes.HasPrefix(data, []byte("PK\x03\x04")) && isWordPackage(data):
		return FormatDOCX
	}

	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	switch {
	case len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') && json.Valid(trimmed):
		return FormatJSON
	case len(trimmed) > 0 && trimmed[0] == '<' && wellFormedXML(trimmed):
		return FormatXML
	}

	if f, err := ParseFormat(filepath.Ext(name)); err == nil && f != FormatAuto && f != FormatPDF && f != FormatDOCX {
		return f
	}
	if utf8.Valid(data) && !bytes.ContainsRune(data, 0) {
		return FormatText
	}
	return FormatBinary
}

func wellFormedXML(data []byte) bool {
	return etree.NewDocument().ReadFromBytes(data) == nil
}

func isWordPackage(data []byte) bool {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			return true
		}
	}
	return false
}
