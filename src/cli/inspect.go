// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/certtrust/src/engine"
	x509certs "github.com/H0llyW00dzZ/certtrust/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/certtrust/src/report"
)

func (a *app) newInspectCommand() *cobra.Command {
	var (
		pass    string
		format  string
		output  string
		asTable bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [flags] FILE",
		Short: "Evaluate the trust status of a certificate or container",
		Long: `Parses a PKCS#12, PEM, DER or PKCS#7 container, checks the leaf certificate
against its CRL and OCSP endpoints, and prints the certificate report.`,
		Args: requireInput,
		RunE: func(cmd *cobra.Command, args []string) error {
			OperationPerformed = true

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("error reading input file: %w", err)
			}

			f := x509certs.FormatFromName(args[0])
			if format != "" {
				if f, err = x509certs.ParseFormat(format); err != nil {
					return err
				}
			}

			rep, err := a.eng.Inspect(cmd.Context(), engine.InspectRequest{
				Data:     data,
				Format:   f,
				Password: password(pass),
			})
			if err != nil {
				return err
			}

			var out []byte
			if asTable {
				out = []byte(report.RenderTable(rep))
			} else if out, err = rep.JSON(); err != nil {
				return err
			}
			if err := writeOutput(cmd, output, withNewline(out)); err != nil {
				return err
			}

			a.log.Debugf("%s: %s", rep.Subject, rep.Status)
			OperationPerformedSuccessfully = true
			return nil
		},
	}

	cmd.Flags().StringVarP(&pass, "password", "p", "", "container password (default: $CERTTRUST_PASSWORD)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "container format: p12, pem, der or p7b (default: from file name or content)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to OUTPUT_FILE (default: stdout)")
	cmd.Flags().BoolVar(&asJSON, "json", true, "print the report as JSON")
	cmd.Flags().BoolVar(&asTable, "table", false, "print the report as a markdown table")
	cmd.MarkFlagsMutuallyExclusive("json", "table")
	return cmd
}

func (a *app) newValidateCommand() *cobra.Command {
	var (
		serial  string
		validTo string
		crlURL  string
		ocspURL string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "validate --serial SERIAL --valid-to DATE [--crl URL] [--ocsp URL]",
		Short: "Check a serial number against explicit revocation endpoints",
		Long: `Evaluates a certificate known only by its serial number and expiry.
OCSP needs the issuer certificate and therefore always answers unknown here;
supply a CRL URL for a definite answer.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			OperationPerformed = true

			n, err := engine.ParseSerial(serial)
			if err != nil {
				return err
			}
			notAfter, err := engine.ParseExpiry(validTo)
			if err != nil {
				return err
			}

			v, err := a.eng.Validate(cmd.Context(), engine.ValidateRequest{
				Serial:   n,
				NotAfter: notAfter,
				CRLURL:   crlURL,
				OCSPURL:  ocspURL,
			})
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return err
			}
			if err := writeOutput(cmd, output, withNewline(out)); err != nil {
				return err
			}
			OperationPerformedSuccessfully = true
			return nil
		},
	}

	cmd.Flags().StringVar(&serial, "serial", "", "serial number: decimal, 0x-prefixed hex, or colon-separated hex")
	cmd.Flags().StringVar(&validTo, "valid-to", "", "expiry as RFC 3339, \"YYYY-MM-DD HH:MM:SS\" or YYYY-MM-DD")
	cmd.Flags().StringVar(&crlURL, "crl", "", "CRL distribution point URL")
	cmd.Flags().StringVar(&ocspURL, "ocsp", "", "OCSP responder URL")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result to OUTPUT_FILE (default: stdout)")
	_ = cmd.MarkFlagRequired("serial")
	_ = cmd.MarkFlagRequired("valid-to")
	return cmd
}
