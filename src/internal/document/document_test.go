// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package document_test

import (
	"bytes"
	"crypto/x509"
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"
	"unicode/utf16"

	"github.com/beevik/etree"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/certtrust/src/internal/document"
	"github.com/H0llyW00dzZ/certtrust/src/internal/faults"
	"github.com/H0llyW00dzZ/certtrust/src/internal/helper/pkitest"
	"github.com/H0llyW00dzZ/certtrust/src/internal/signature"
)

var signedAt = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

type signerFixture struct {
	signer *document.Signer
	cert   *x509.Certificate
	key    any
}

func newFixture(t *testing.T, cn string) signerFixture {
	t.Helper()
	ca := pkitest.NewAuthority(t, "Document CA", nil)
	cert, key := ca.Issue(t, pkitest.LeafOptions{CommonName: cn, Serial: big.NewInt(0x0a1b2c)})
	return signerFixture{
		signer: document.NewSigner(clockwork.NewFakeClockAt(signedAt)),
		cert:   cert,
		key:    key,
	}
}

func TestSign_PlainFormats(t *testing.T) {
	f := newFixture(t, "Plain Signer")

	tests := []struct {
		name   string
		doc    []byte
		format document.Format
		want   document.Format
	}{
		{"text", []byte("hello world\n"), document.FormatText, document.FormatText},
		{"json", []byte(`{"amount": 100}`), document.FormatJSON, document.FormatJSON},
		{"xml", []byte(`<?xml version="1.0"?><order id="1"/>`), document.FormatXML, document.FormatXML},
		{"binary", []byte{0x00, 0x01, 0xfe, 0xff}, document.FormatBinary, document.FormatBinary},
		{"auto json", []byte(`[1, 2, 3]`), document.FormatAuto, document.FormatJSON},
		{"auto binary", []byte{0x00, 0xff}, document.FormatAuto, document.FormatBinary},
		{"auto markup-like text", []byte("<b>note</b> line break <br>"), document.FormatAuto, document.FormatText},
		{"auto xml", []byte("<order id=\"1\"/>"), document.FormatAuto, document.FormatXML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := append([]byte(nil), tt.doc...)
			res, err := f.signer.Sign(tt.doc, tt.format, f.key, f.cert, signature.RSAPKCS1v15SHA256)
			require.NoError(t, err)

			assert.Equal(t, tt.want, res.Format)
			assert.Nil(t, res.Derived)
			assert.Equal(t, original, tt.doc)
			assert.NotEmpty(t, res.SignatureBase64())
			assert.True(t, document.Verify(tt.doc, res.Signature.Signature, f.cert.PublicKey, signature.RSAPKCS1v15SHA256))
		})
	}
}

func TestSign_MalformedContent(t *testing.T) {
	f := newFixture(t, "Strict Signer")

	tests := []struct {
		name   string
		doc    []byte
		format document.Format
		kind   faults.Kind
	}{
		{"invalid json", []byte(`{"amount":`), document.FormatJSON, faults.MalformedDocument},
		{"invalid xml", []byte(`<a><b></a>`), document.FormatXML, faults.MalformedDocument},
		{"pdf without header", []byte("not a pdf"), document.FormatPDF, faults.MalformedDocument},
		{"docx not zip", []byte("not a zip"), document.FormatDOCX, faults.MalformedDocument},
		{"docx without body", buildDOCX(t, [2]string{"[Content_Types].xml", contentTypesXML}), document.FormatDOCX, faults.MalformedDocument},
		{"unknown format", []byte("x"), document.Format(42), faults.InvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.signer.Sign(tt.doc, tt.format, f.key, f.cert, signature.RSAPKCS1v15SHA256)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Equal(t, tt.kind, faults.KindOf(err))
		})
	}
}

func TestSign_SigningFailure(t *testing.T) {
	f := newFixture(t, "Mismatch")
	_, err := f.signer.Sign([]byte("doc"), document.FormatText, f.key, f.cert, signature.ECDSAP256SHA256)
	assert.Equal(t, faults.SigningFailure, faults.KindOf(err))
}

var xrefEntry = regexp.MustCompile(`xref\n(\d+) 1\n(\d{10}) 00000 n \n`)

// checkIncrementalUpdate validates the appended section against the original.
func checkIncrementalUpdate(t *testing.T, original, derived []byte, newObj int) string {
	t.Helper()
	require.True(t, bytes.HasPrefix(derived, original), "original must be a strict prefix")
	require.Greater(t, len(derived), len(original))
	assert.True(t, bytes.HasSuffix(derived, []byte("%%EOF\n")))

	update := derived[len(original):]
	m := xrefEntry.FindSubmatch(update)
	require.NotNil(t, m, "appended cross-reference section")
	assert.Equal(t, strconv.Itoa(newObj), string(m[1]))

	objOffset, err := strconv.Atoi(string(m[2]))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(derived[objOffset:], []byte(fmt.Sprintf("%d 0 obj\n", newObj))))

	sx := bytes.LastIndex(derived, []byte("startxref\n"))
	xrefOffset, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(string(derived[sx+10:]), "%%EOF\n")))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(derived[xrefOffset:], []byte("xref\n")))

	return string(update)
}

func TestSign_PDF(t *testing.T) {
	f := newFixture(t, "PDF Signer")

	t.Run("with existing info", func(t *testing.T) {
		doc := buildPDF(t, "<< /Title (Quarterly \\(draft\\)) /Producer (Writer 1.0) /ModDate (D:20200101000000Z) >>")
		res, err := f.signer.Sign(doc, document.FormatAuto, f.key, f.cert, signature.RSAPSSSHA256)
		require.NoError(t, err)
		assert.Equal(t, document.FormatPDF, res.Format)

		update := checkIncrementalUpdate(t, doc, res.Derived, 5)
		prev := bytes.LastIndex(doc, []byte("\nxref\n")) + 1
		assert.Contains(t, update, fmt.Sprintf("/Prev %d", prev))
		assert.Contains(t, update, "/Size 6 /Root 1 0 R /Info 5 0 R")
		assert.Contains(t, update, "/ID "+testID)
		assert.Contains(t, update, `/Title (Quarterly \(draft\))`)
		assert.Contains(t, update, "/Producer (Writer 1.0)")
		assert.Contains(t, update, "/SignedBy (CN=PDF Signer,O=certtrust test)")
		assert.Contains(t, update, "/SignerSerial (0A:1B:2C)")
		assert.Contains(t, update, "/SignatureScheme (rsa-pss-sha256)")
		assert.Contains(t, update, "/SigningTime (2026-10-19T09:30:00Z)")
		assert.Contains(t, update, "/Signature ("+res.SignatureBase64()+")")
		assert.Contains(t, update, "/ModDate (D:20261019093000Z)")
		assert.NotContains(t, update, "D:20200101000000Z")

		assert.True(t, document.Verify(doc, res.Signature.Signature, f.cert.PublicKey, signature.RSAPSSSHA256))
		assert.False(t, document.Verify(res.Derived, res.Signature.Signature, f.cert.PublicKey, signature.RSAPSSSHA256))
	})

	t.Run("without info", func(t *testing.T) {
		doc := buildPDF(t, "")
		res, err := f.signer.Sign(doc, document.FormatPDF, f.key, nil, signature.RSAPKCS1v15SHA256)
		require.NoError(t, err)

		update := checkIncrementalUpdate(t, doc, res.Derived, 4)
		assert.Contains(t, update, "/Size 5 /Root 1 0 R /Info 4 0 R")
		assert.NotContains(t, update, "/SignedBy")
		assert.Contains(t, update, "/SignatureScheme (rsa-pkcs1v15-sha256)")
	})

	t.Run("cross-reference stream", func(t *testing.T) {
		doc, xref := buildXRefStreamPDF(t)
		res, err := f.signer.Sign(doc, document.FormatPDF, f.key, f.cert, signature.RSAPKCS1v15SHA256)
		require.NoError(t, err)

		require.True(t, bytes.HasPrefix(res.Derived, doc))
		update := string(res.Derived[len(doc):])
		assert.True(t, strings.HasPrefix(update, "\n4 0 obj\n"))
		assert.Contains(t, update, fmt.Sprintf("/Size 5 /Root 1 0 R /Info 4 0 R /Prev %d >>", xref))
	})
}

func TestSign_PDFNonASCIISigner(t *testing.T) {
	f := newFixture(t, "Zoë Signer")
	doc := buildPDF(t, "")

	res, err := f.signer.Sign(doc, document.FormatPDF, f.key, f.cert, signature.RSAPKCS1v15SHA256)
	require.NoError(t, err)

	units := utf16.Encode([]rune("CN=Zoë Signer,O=certtrust test"))
	raw := []byte{0xfe, 0xff}
	for _, u := range units {
		raw = append(raw, byte(u>>8), byte(u))
	}
	want := "/SignedBy <" + strings.ToUpper(hex.EncodeToString(raw)) + ">"
	assert.Contains(t, string(res.Derived[len(doc):]), want)
}

func TestSign_PDFRejected(t *testing.T) {
	f := newFixture(t, "PDF Signer")
	valid := buildPDF(t, "")

	encrypted := bytes.Replace(valid, []byte("/Root 1 0 R"), []byte("/Root 1 0 R /Encrypt 9 0 R"), 1)
	noStartxref := bytes.Replace(valid, []byte("startxref"), []byte("startxrfe"), 1)
	noRoot := bytes.Replace(valid, []byte("/Root 1 0 R"), []byte("/Rot 1 0 R"), 1)

	for name, doc := range map[string][]byte{
		"encrypted":    encrypted,
		"no startxref": noStartxref,
		"no root":      noRoot,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.signer.Sign(doc, document.FormatPDF, f.key, f.cert, signature.RSAPKCS1v15SHA256)
			assert.Equal(t, faults.MalformedDocument, faults.KindOf(err))
		})
	}
}

func customProperties(t *testing.T, data []byte) map[string]*etree.Element {
	t.Helper()
	d := etree.NewDocument()
	require.NoError(t, d.ReadFromBytes(data))
	require.NotNil(t, d.Root())
	props := make(map[string]*etree.Element)
	for _, p := range d.Root().SelectElements("property") {
		props[p.SelectAttrValue("name", "")] = p
	}
	return props
}

func TestSign_DOCX(t *testing.T) {
	f := newFixture(t, "DOCX Signer")

	tests := []struct {
		name       string
		withCustom bool
		testFunc   func(t *testing.T, parts map[string][]byte, props map[string]*etree.Element)
	}{
		{
			name: "new custom part",
			testFunc: func(t *testing.T, parts map[string][]byte, props map[string]*etree.Element) {
				assert.Len(t, props, 5)
				assert.Equal(t, "2", props["SignedBy"].SelectAttrValue("pid", ""))

				ct := etree.NewDocument()
				require.NoError(t, ct.ReadFromBytes(parts["[Content_Types].xml"]))
				var found bool
				for _, o := range ct.Root().SelectElements("Override") {
					if o.SelectAttrValue("PartName", "") == "/docProps/custom.xml" {
						found = true
						assert.Equal(t, "application/vnd.openxmlformats-officedocument.custom-properties+xml", o.SelectAttrValue("ContentType", ""))
					}
				}
				assert.True(t, found)

				rels := etree.NewDocument()
				require.NoError(t, rels.ReadFromBytes(parts["_rels/.rels"]))
				rs := rels.Root().SelectElements("Relationship")
				require.Len(t, rs, 2)
				assert.Equal(t, "rId2", rs[1].SelectAttrValue("Id", ""))
				assert.Equal(t, "docProps/custom.xml", rs[1].SelectAttrValue("Target", ""))
			},
		},
		{
			name:       "existing custom part",
			withCustom: true,
			testFunc: func(t *testing.T, parts map[string][]byte, props map[string]*etree.Element) {
				assert.Len(t, props, 6)
				assert.Equal(t, "Legal", props["Department"].SelectElement("lpwstr").Text())
				assert.Equal(t, "3", props["SignedBy"].SelectAttrValue("pid", ""))
				assert.Len(t, props["SignedBy"].ChildElements(), 1)

				pids := make(map[string]bool)
				for _, p := range props {
					pid := p.SelectAttrValue("pid", "")
					assert.False(t, pids[pid], "duplicate pid %s", pid)
					pids[pid] = true
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := minimalDOCX(t, tt.withCustom)
			original := append([]byte(nil), doc...)

			res, err := f.signer.Sign(doc, document.FormatAuto, f.key, f.cert, signature.RSAPKCS1v15SHA256)
			require.NoError(t, err)
			assert.Equal(t, document.FormatDOCX, res.Format)
			assert.Equal(t, original, doc)

			parts := readZip(t, res.Derived)
			assert.Equal(t, documentXML, string(parts["word/document.xml"]))
			require.Contains(t, parts, "docProps/custom.xml")

			props := customProperties(t, parts["docProps/custom.xml"])
			assert.Equal(t, "CN=DOCX Signer,O=certtrust test", props["SignedBy"].SelectElement("lpwstr").Text())
			assert.Equal(t, "0A:1B:2C", props["SignerSerial"].SelectElement("lpwstr").Text())
			assert.Equal(t, "rsa-pkcs1v15-sha256", props["SignatureScheme"].SelectElement("lpwstr").Text())
			assert.Equal(t, "2026-10-19T09:30:00Z", props["SigningTime"].SelectElement("lpwstr").Text())
			assert.Equal(t, res.SignatureBase64(), props["Signature"].SelectElement("lpwstr").Text())
			tt.testFunc(t, parts, props)

			assert.True(t, document.Verify(doc, res.Signature.Signature, f.cert.PublicKey, signature.RSAPKCS1v15SHA256))
			assert.False(t, document.Verify(res.Derived, res.Signature.Signature, f.cert.PublicKey, signature.RSAPKCS1v15SHA256))
		})
	}
}

func TestSign_DOCXIdempotentRegistration(t *testing.T) {
	f := newFixture(t, "Twice")
	first, err := f.signer.Sign(minimalDOCX(t, false), document.FormatDOCX, f.key, f.cert, signature.RSAPKCS1v15SHA256)
	require.NoError(t, err)
	second, err := f.signer.Sign(first.Derived, document.FormatDOCX, f.key, f.cert, signature.RSAPKCS1v15SHA256)
	require.NoError(t, err)

	parts := readZip(t, second.Derived)
	assert.Equal(t, 1, strings.Count(string(parts["[Content_Types].xml"]), "/docProps/custom.xml"))
	assert.Equal(t, 1, strings.Count(string(parts["_rels/.rels"]), "docProps/custom.xml"))
	assert.Len(t, customProperties(t, parts["docProps/custom.xml"]), 5)
}
