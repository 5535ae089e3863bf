// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	x509extensions "github.com/H0llyW00dzZ/certtrust/src/internal/x509/extensions"
)

// RenderTable renders the record as a two-column markdown table. PEM
// blocks are left out; the JSON form carries them.
//
// Thread Safety: Safe for concurrent use.
func RenderTable(c *Certificate) string {
	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"Field", "Value"})
	table.Bulk(rows(c))
	table.Render()
	return buf.String()
}

func rows(c *Certificate) [][]string {
	vid := "-"
	if c.VID != nil {
		vid = *c.VID
	}

	key := c.PublicKeyAlgorithm
	switch {
	case c.PublicKeyCurve != "":
		key = fmt.Sprintf("%s %s", key, c.PublicKeyCurve)
	case c.PublicKeySize > 0:
		key = fmt.Sprintf("%d-bit %s", c.PublicKeySize, key)
	}

	oids := make([]string, len(c.OIDList))
	for i, oid := range c.OIDList {
		oids[i] = oid
		if name := x509extensions.Name(oid); name != oid {
			oids[i] = fmt.Sprintf("%s (%s)", oid, name)
		}
	}

	return [][]string{
		{"Status", c.Status.String()},
		{"Subject", c.Subject},
		{"Issuer", c.Issuer},
		{"Serial Number", fmt.Sprintf("%s (%s)", c.SerialNumber, c.SerialNumberHex)},
		{"Valid From", c.ValidFrom.Format(time.RFC3339)},
		{"Valid To", c.ValidTo.Format(time.RFC3339)},
		{"CRL", verdict(c.RevocationStatusCRL.String(), c.RevocationReasonCRL)},
		{"OCSP", verdict(c.RevocationStatusOCSP.String(), c.RevocationReasonOCSP)},
		{"Signature Algorithm", c.SignatureAlgorithm},
		{"Public Key", key},
		{"SHA-256 Fingerprint", c.FingerprintSHA256},
		{"VID", vid},
		{"Extensions", list(oids)},
		{"CRL URLs", list(c.CRLURLs)},
		{"OCSP URLs", list(c.OCSPURLs)},
		{"CA Issuer URLs", list(c.CAIssuerURLs)},
		{"Evaluated At", c.EvaluatedAt.Format(time.RFC3339)},
	}
}

func verdict(v, reason string) string {
	if reason == "" {
		return v
	}
	return fmt.Sprintf("%s (%s)", v, reason)
}

func list(s []string) string {
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, ", ")
}
