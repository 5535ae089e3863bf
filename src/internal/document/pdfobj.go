// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package document

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
)

var errPDFSyntax = errors.New("document: invalid PDF syntax")

// pdfEntry is one dictionary entry; value holds the raw object text.
type pdfEntry struct {
	key   string
	value []byte
}

// pdfDict is an order-preserving dictionary of raw object values.
type pdfDict []pdfEntry

func (d pdfDict) get(key string) ([]byte, bool) {
	for _, e := range d {
		if e.key == key {
			return e.value, true
		}
	}
	return nil, false
}

func (d pdfDict) ref(key string) (pdfRef, bool) {
	v, ok := d.get(key)
	if !ok {
		return pdfRef{}, false
	}
	return parseRef(v)
}

func (d pdfDict) int(key string) (int64, bool) {
	v, ok := d.get(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(string(v), 10, 64)
	return n, err == nil
}

// pdfRef is an indirect reference "num gen R".
type pdfRef struct {
	num, gen int
}

func (r pdfRef) String() string { return strconv.Itoa(r.num) + " " + strconv.Itoa(r.gen) + " R" }

func parseRef(v []byte) (pdfRef, bool) {
	f := strings.Fields(string(v))
	if len(f) != 3 || f[2] != "R" {
		return pdfRef{}, false
	}
	num, err1 := strconv.Atoi(f[0])
	gen, err2 := strconv.Atoi(f[1])
	if err1 != nil || err2 != nil || num <= 0 || gen < 0 {
		return pdfRef{}, false
	}
	return pdfRef{num, gen}, true
}

func isPDFSpace(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isPDFDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isPDFRegular(c byte) bool { return !isPDFSpace(c) && !isPDFDelim(c) }

// skipSpace skips whitespace and comments.
func skipSpace(data []byte, i int) int {
	for i < len(data) {
		switch {
		case isPDFSpace(data[i]):
			i++
		case data[i] == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		default:
			return i
		}
	}
	return i
}

func scanRegular(data []byte, i int) int {
	for i < len(data) && isPDFRegular(data[i]) {
		i++
	}
	return i
}

// parseDict parses the dictionary starting at or after i (whitespace allowed)
// and returns it with the index just past the closing ">>".
func parseDict(data []byte, i int) (pdfDict, int, error) {
	i = skipSpace(data, i)
	if !bytes.HasPrefix(data[i:], []byte("<<")) {
		return nil, i, errPDFSyntax
	}
	i += 2

	var d pdfDict
	for {
		i = skipSpace(data, i)
		if i >= len(data) {
			return nil, i, errPDFSyntax
		}
		if bytes.HasPrefix(data[i:], []byte(">>")) {
			return d, i + 2, nil
		}
		if data[i] != '/' {
			return nil, i, errPDFSyntax
		}
		end := scanRegular(data, i+1)
		key := string(data[i+1 : end])

		start := skipSpace(data, end)
		next, err := skipValue(data, start)
		if err != nil {
			return nil, next, err
		}
		d = append(d, pdfEntry{key: key, value: bytes.TrimSpace(data[start:next])})
		i = next
	}
}

// skipValue returns the index just past the object starting at i.
func skipValue(data []byte, i int) (int, error) {
	if i >= len(data) {
		return i, errPDFSyntax
	}
	switch c := data[i]; {
	case c == '/':
		return scanRegular(data, i+1), nil
	case c == '(':
		return skipLiteral(data, i)
	case c == '<' && i+1 < len(data) && data[i+1] == '<':
		_, end, err := parseDict(data, i)
		return end, err
	case c == '<':
		end := bytes.IndexByte(data[i:], '>')
		if end < 0 {
			return len(data), errPDFSyntax
		}
		return i + end + 1, nil
	case c == '[':
		i++
		for {
			i = skipSpace(data, i)
			if i >= len(data) {
				return i, errPDFSyntax
			}
			if data[i] == ']' {
				return i + 1, nil
			}
			var err error
			if i, err = skipValue(data, i); err != nil {
				return i, err
			}
		}
	case isPDFRegular(c):
		end := scanRegular(data, i)
		if isInteger(data[i:end]) {
			// "num gen R" spans three tokens.
			j := skipSpace(data, end)
			k := scanRegular(data, j)
			if isInteger(data[j:k]) {
				l := skipSpace(data, k)
				if l < len(data) && data[l] == 'R' && (l+1 == len(data) || !isPDFRegular(data[l+1])) {
					return l + 1, nil
				}
			}
		}
		if end == i {
			return i, errPDFSyntax
		}
		return end, nil
	}
	return i, errPDFSyntax
}

func skipLiteral(data []byte, i int) (int, error) {
	depth := 0
	for ; i < len(data); i++ {
		switch data[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1, nil
			}
		}
	}
	return i, errPDFSyntax
}

func isInteger(tok []byte) bool {
	if len(tok) == 0 {
		return false
	}
	for _, c := range tok {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// findObject returns the index just past the "num gen obj" header of the
// last definition of ref, or -1.
func findObject(data []byte, ref pdfRef) int {
	header := []byte(strconv.Itoa(ref.num) + " " + strconv.Itoa(ref.gen) + " obj")
	end := len(data)
	for {
		idx := bytes.LastIndex(data[:end], header)
		if idx < 0 {
			return -1
		}
		if idx == 0 || !isPDFRegular(data[idx-1]) {
			return idx + len(header)
		}
		end = idx
	}
}
