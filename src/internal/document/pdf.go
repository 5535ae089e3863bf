// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package document

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/H0llyW00dzZ/certtrust/src/internal/faults"
	"github.com/H0llyW00dzZ/certtrust/src/internal/helper/gc"
)

// annotatePDF appends an incremental update whose document information
// dictionary carries the annotation. Entries of the previous information
// dictionary are carried over when it can be located in the file.
func annotatePDF(doc []byte, a Annotation) ([]byte, error) {
	if !bytes.HasPrefix(doc, []byte("%PDF-")) {
		return nil, malformedPDF("missing %PDF- header", nil)
	}

	sx := bytes.LastIndex(doc, []byte("startxref"))
	if sx < 0 {
		return nil, malformedPDF("missing startxref", nil)
	}
	prev, ok := parseOffset(doc[sx+len("startxref"):])
	if !ok || prev <= 0 || prev >= int64(sx) {
		return nil, malformedPDF("invalid startxref offset", nil)
	}

	trailer, err := readTrailer(doc, sx, int(prev))
	if err != nil {
		return nil, malformedPDF("unreadable trailer", err)
	}
	if _, encrypted := trailer.get("Encrypt"); encrypted {
		return nil, malformedPDF("encrypted PDF documents are not supported", nil)
	}
	root, ok := trailer.ref("Root")
	if !ok {
		return nil, malformedPDF("trailer has no document catalog", nil)
	}
	size, ok := trailer.int("Size")
	if !ok || size <= 0 {
		return nil, malformedPDF("trailer has no object count", nil)
	}

	buf := gc.Default.Get()
	defer gc.Default.Put(buf)

	buf.Write(doc)
	if last := doc[len(doc)-1]; last != '\n' && last != '\r' {
		buf.WriteByte('\n')
	}

	objOffset := buf.Len()
	fmt.Fprintf(buf, "%d 0 obj\n<<", size)
	for _, e := range previousInfo(doc, trailer) {
		fmt.Fprintf(buf, " /%s %s", e.key, e.value)
	}
	for _, line := range a.Lines() {
		fmt.Fprintf(buf, " /%s %s", line[0], pdfText(line[1]))
	}
	fmt.Fprintf(buf, " /ModDate (D:%s) >>\nendobj\n", a.SignedAt.UTC().Format("20060102150405Z"))

	xrefOffset := buf.Len()
	fmt.Fprintf(buf, "xref\n%d 1\n%010d 00000 n \n", size, objOffset)
	fmt.Fprintf(buf, "trailer\n<< /Size %d /Root %s /Info %d 0 R /Prev %d", size+1, root, size, prev)
	if id, ok := trailer.get("ID"); ok {
		fmt.Fprintf(buf, " /ID %s", id)
	}
	fmt.Fprintf(buf, " >>\nstartxref\n%d\n%%%%EOF\n", xrefOffset)

	return append([]byte(nil), buf.Bytes()...), nil
}

// readTrailer returns the trailer of the section at offset prev: the
// dictionary after "trailer" for a classic table, or the stream dictionary
// for a cross-reference stream.
func readTrailer(doc []byte, sx, prev int) (pdfDict, error) {
	section := doc[prev:sx]
	if bytes.HasPrefix(section, []byte("xref")) {
		idx := bytes.Index(section, []byte("trailer"))
		if idx < 0 {
			return nil, errPDFSyntax
		}
		d, _, err := parseDict(doc, prev+idx+len("trailer"))
		return d, err
	}

	// "num gen obj << /Type /XRef ... >> stream"
	i := prev
	for _, want := range []string{"", "", "obj"} {
		i = skipSpace(doc, i)
		end := scanRegular(doc, i)
		tok := doc[i:end]
		if (want == "" && !isInteger(tok)) || (want != "" && string(tok) != want) {
			return nil, errPDFSyntax
		}
		i = end
	}
	d, _, err := parseDict(doc, i)
	if err != nil {
		return nil, err
	}
	if typ, _ := d.get("Type"); string(typ) != "/XRef" {
		return nil, errPDFSyntax
	}
	return d, nil
}

// previousInfo returns the entries of the current information dictionary
// that the annotation does not replace.
func previousInfo(doc []byte, trailer pdfDict) pdfDict {
	ref, ok := trailer.ref("Info")
	if !ok {
		return nil
	}
	pos := findObject(doc, ref)
	if pos < 0 {
		return nil
	}
	old, _, err := parseDict(doc, pos)
	if err != nil {
		return nil
	}

	replaced := map[string]bool{"ModDate": true}
	for _, line := range (Annotation{Signer: "-", Serial: "-"}).Lines() {
		replaced[line[0]] = true
	}
	kept := old[:0:0]
	for _, e := range old {
		if !replaced[e.key] {
			kept = append(kept, e)
		}
	}
	return kept
}

func parseOffset(data []byte) (int64, bool) {
	i := skipSpace(data, 0)
	end := i
	for end < len(data) && data[end] >= '0' && data[end] <= '9' {
		end++
	}
	n, err := strconv.ParseInt(string(data[i:end]), 10, 64)
	return n, err == nil
}

// pdfText encodes s as a PDF text string: a literal string for printable
// ASCII, otherwise UTF-16BE with a byte order mark in hex form.
func pdfText(s string) string {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			ascii = false
			break
		}
	}
	if ascii {
		r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
		return "(" + r.Replace(s) + ")"
	}

	enc := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()
	b, err := enc.Bytes([]byte(s))
	if err != nil {
		return "()"
	}
	return "<" + strings.ToUpper(hex.EncodeToString(b)) + ">"
}

func malformedPDF(msg string, err error) error {
	return faults.New(faults.MalformedDocument, "invalid PDF document: "+msg, err)
}
