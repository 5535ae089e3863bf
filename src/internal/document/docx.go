// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package document

import (
	"archive/zip"
	"bytes"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/H0llyW00dzZ/certtrust/src/internal/faults"
	"github.com/H0llyW00dzZ/certtrust/src/internal/helper/gc"
)

const (
	customPart         = "docProps/custom.xml"
	contentTypesPart   = "[Content_Types].xml"
	packageRelsPart    = "_rels/.rels"
	customContentType  = "application/vnd.openxmlformats-officedocument.custom-properties+xml"
	customRelType      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/custom-properties"
	customPropertiesNS = "http://schemas.openxmlformats.org/officeDocument/2006/custom-properties"
	docPropsVTypesNS   = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"
	// customFMTID is the format identifier Office uses for user-defined properties.
	customFMTID = "{D5CDD505-2E9C-101B-9397-08002B2CF9AE}"
)

// annotateDOCX rewrites the package with the annotation as custom document
// properties. Parts other than the three it edits are copied unchanged.
func annotateDOCX(doc []byte, a Annotation) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		return nil, malformedDOCX("not a ZIP package", err)
	}

	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}
	if parts["word/document.xml"] == nil || parts[contentTypesPart] == nil {
		return nil, malformedDOCX("missing word/document.xml or [Content_Types].xml", nil)
	}

	edited := make(map[string][]byte, 3)
	edits := []struct {
		name string
		edit func(*etree.Document) error
	}{
		{customPart, func(d *etree.Document) error { return setCustomProperties(d, a) }},
		{contentTypesPart, registerContentType},
		{packageRelsPart, registerRelationship},
	}
	for _, e := range edits {
		d, err := readPart(parts[e.name])
		if err != nil {
			return nil, malformedDOCX("unreadable "+e.name, err)
		}
		if err := e.edit(d); err != nil {
			return nil, malformedDOCX("cannot edit "+e.name, err)
		}
		out, err := d.WriteToBytes()
		if err != nil {
			return nil, faults.New(faults.Internal, "cannot serialize "+e.name, err)
		}
		edited[e.name] = out
	}

	buf := gc.Default.Get()
	defer gc.Default.Put(buf)
	zw := zip.NewWriter(buf)

	for _, f := range zr.File {
		data, ok := edited[f.Name]
		if !ok {
			if err := zw.Copy(f); err != nil {
				return nil, malformedDOCX("cannot copy "+f.Name, err)
			}
			continue
		}
		if err := writePart(zw, f.Name, data, &f.FileHeader, a); err != nil {
			return nil, err
		}
		delete(edited, f.Name)
	}
	// Parts that did not exist are appended in a fixed order.
	for _, e := range edits {
		if data, ok := edited[e.name]; ok {
			if err := writePart(zw, e.name, data, nil, a); err != nil {
				return nil, err
			}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, faults.New(faults.Internal, "cannot finish DOCX package", err)
	}
	return append([]byte(nil), buf.Bytes()...), nil
}

func writePart(zw *zip.Writer, name string, data []byte, orig *zip.FileHeader, a Annotation) error {
	hdr := &zip.FileHeader{Name: name, Method: zip.Deflate, Modified: a.SignedAt}
	if orig != nil {
		hdr.Method = orig.Method
		hdr.Modified = orig.Modified
	}
	w, err := zw.CreateHeader(hdr)
	if err == nil {
		_, err = w.Write(data)
	}
	if err != nil {
		return faults.New(faults.Internal, "cannot write "+name, err)
	}
	return nil
}

// readPart parses a package part, or returns an empty document when absent.
func readPart(f *zip.File) (*etree.Document, error) {
	d := etree.NewDocument()
	if f == nil {
		d.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
		return d, nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := gc.ReadAll(rc, 32<<20)
	if err != nil {
		return nil, err
	}
	if err := d.ReadFromBytes(data); err != nil {
		return nil, err
	}
	return d, nil
}

func setCustomProperties(d *etree.Document, a Annotation) error {
	root := d.Root()
	if root == nil {
		root = d.CreateElement("Properties")
		root.CreateAttr("xmlns", customPropertiesNS)
		root.CreateAttr("xmlns:vt", docPropsVTypesNS)
	}
	if root.Tag != "Properties" {
		return errUnexpectedRoot(root)
	}

	// Office reserves pids 0 and 1.
	maxPID := 1
	byName := make(map[string]*etree.Element)
	for _, p := range root.SelectElements("property") {
		if pid, err := strconv.Atoi(p.SelectAttrValue("pid", "")); err == nil && pid > maxPID {
			maxPID = pid
		}
		byName[p.SelectAttrValue("name", "")] = p
	}

	vt := "vt"
	if root.SelectAttr("xmlns:vt") == nil {
		// Reuse whatever prefix the document bound to the variant types namespace.
		for _, attr := range root.Attr {
			if attr.Space == "xmlns" && attr.Value == docPropsVTypesNS {
				vt = attr.Key
			}
		}
		if vt == "vt" {
			root.CreateAttr("xmlns:vt", docPropsVTypesNS)
		}
	}

	for _, line := range a.Lines() {
		p, ok := byName[line[0]]
		if !ok {
			maxPID++
			p = root.CreateElement("property")
			p.CreateAttr("fmtid", customFMTID)
			p.CreateAttr("pid", strconv.Itoa(maxPID))
			p.CreateAttr("name", line[0])
		}
		for _, c := range p.ChildElements() {
			p.RemoveChild(c)
		}
		p.CreateElement(vt + ":lpwstr").SetText(line[1])
	}
	return nil
}

func registerContentType(d *etree.Document) error {
	root := d.Root()
	if root == nil || root.Tag != "Types" {
		return errUnexpectedRoot(root)
	}
	for _, o := range root.SelectElements("Override") {
		if strings.EqualFold(o.SelectAttrValue("PartName", ""), "/"+customPart) {
			return nil
		}
	}
	o := root.CreateElement("Override")
	o.CreateAttr("PartName", "/"+customPart)
	o.CreateAttr("ContentType", customContentType)
	return nil
}

func registerRelationship(d *etree.Document) error {
	root := d.Root()
	if root == nil {
		root = d.CreateElement("Relationships")
		root.CreateAttr("xmlns", "http://schemas.openxmlformats.org/package/2006/relationships")
	}
	if root.Tag != "Relationships" {
		return errUnexpectedRoot(root)
	}

	ids := make(map[string]bool)
	for _, r := range root.SelectElements("Relationship") {
		if r.SelectAttrValue("Type", "") == customRelType {
			return nil
		}
		ids[r.SelectAttrValue("Id", "")] = true
	}
	n := 1
	for ids["rId"+strconv.Itoa(n)] {
		n++
	}
	id := "rId" + strconv.Itoa(n)

	r := root.CreateElement("Relationship")
	r.CreateAttr("Id", id)
	r.CreateAttr("Type", customRelType)
	r.CreateAttr("Target", customPart)
	return nil
}

type unexpectedRootError struct{ tag string }

func (e *unexpectedRootError) Error() string { return "document: unexpected root element " + e.tag }

func errUnexpectedRoot(root *etree.Element) error {
	if root == nil {
		return &unexpectedRootError{tag: "(none)"}
	}
	return &unexpectedRootError{tag: root.FullTag()}
}

func malformedDOCX(msg string, err error) error {
	return faults.New(faults.MalformedDocument, "invalid DOCX document: "+msg, err)
}
