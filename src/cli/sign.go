// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/certtrust/src/engine"
	"github.com/H0llyW00dzZ/certtrust/src/internal/document"
	x509certs "github.com/H0llyW00dzZ/certtrust/src/internal/x509/certs"
)

func (a *app) newSignCommand() *cobra.Command {
	var (
		containerPath   string
		containerFormat string
		pass            string
		format          string
		scheme          string
		envelope        bool
		signatureOut    string
		derivedOut      string
	)

	cmd := &cobra.Command{
		Use:   "sign --container FILE [flags] DOCUMENT",
		Short: "Sign a document with the private key of a container",
		Long: `Signs the exact bytes of DOCUMENT. PDF and DOCX documents additionally get an
annotated copy carrying a human-readable signing statement; the original file
is never modified and remains the input for verification.`,
		Args: requireInput,
		RunE: func(cmd *cobra.Command, args []string) error {
			OperationPerformed = true

			container, err := os.ReadFile(containerPath)
			if err != nil {
				return fmt.Errorf("error reading container: %w", err)
			}
			doc, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("error reading input file: %w", err)
			}

			cf := x509certs.FormatFromName(containerPath)
			if containerFormat != "" {
				if cf, err = x509certs.ParseFormat(containerFormat); err != nil {
					return err
				}
			}
			df, err := document.ParseFormat(format)
			if err != nil {
				return err
			}

			signed, err := a.eng.Sign(cmd.Context(), engine.SignRequest{
				Container:       container,
				ContainerFormat: cf,
				Password:        password(pass),
				Document:        doc,
				DocumentName:    args[0],
				Format:          df,
				Scheme:          scheme,
			})
			if err != nil {
				return err
			}

			var sig []byte
			switch {
			case envelope && signatureOut != "":
				sig = signed.Envelope
			case envelope:
				sig = []byte(base64.StdEncoding.EncodeToString(signed.Envelope) + "\n")
			default:
				sig = []byte(signed.SignatureBase64() + "\n")
			}
			if err := writeOutput(cmd, signatureOut, sig); err != nil {
				return err
			}

			if signed.Derived != nil {
				path := derivedOut
				if path == "" {
					path = derivedName(args[0])
				}
				if err := os.WriteFile(path, signed.Derived, 0o644); err != nil {
					return fmt.Errorf("failed to write annotated copy: %w", err)
				}
				a.log.Printf("Annotated %s copy written to %s", signed.Format, path)
			}

			if a.cfg.Log.Verbose {
				annotation, _ := json.Marshal(signed.Annotation)
				a.log.Debugf("signed %s with %s: %s", args[0], signed.Signature.Scheme, annotation)
			}
			OperationPerformedSuccessfully = true
			return nil
		},
	}

	cmd.Flags().StringVarP(&containerPath, "container", "c", "", "PKCS#12 or PEM container holding the signing key")
	cmd.Flags().StringVar(&containerFormat, "container-format", "", "container format (default: from file name or content)")
	cmd.Flags().StringVarP(&pass, "password", "p", "", "container password (default: $CERTTRUST_PASSWORD)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "document format: text, json, xml, binary, pdf or docx (default: detected)")
	cmd.Flags().StringVar(&scheme, "scheme", "", "signature scheme (default: from configuration)")
	cmd.Flags().BoolVar(&envelope, "envelope", false, "emit a signature envelope embedding the signer certificate")
	cmd.Flags().StringVarP(&signatureOut, "signature-out", "s", "", "write the signature to FILE (default: stdout)")
	cmd.Flags().StringVar(&derivedOut, "out", "", "annotated copy path for PDF and DOCX (default: NAME.signed.EXT)")
	_ = cmd.MarkFlagRequired("container")
	return cmd
}

// derivedName returns "report.signed.pdf" for "report.pdf".
func derivedName(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".signed" + ext
}

func (a *app) newVerifyCommand() *cobra.Command {
	var (
		signaturePath string
		keyPath       string
		pass          string
		scheme        string
	)

	cmd := &cobra.Command{
		Use:   "verify --signature FILE [--key FILE] DOCUMENT",
		Short: "Verify a signature over the original document",
		Long: `Verifies a base64 signature or a signature envelope against DOCUMENT. The key
comes from --key (certificate, public key, or container) or, for envelopes,
from the embedded signer certificate. The command fails when the signature
does not match.`,
		Args: requireInput,
		RunE: func(cmd *cobra.Command, args []string) error {
			OperationPerformed = true

			doc, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("error reading input file: %w", err)
			}
			sig, err := os.ReadFile(signaturePath)
			if err != nil {
				return fmt.Errorf("error reading signature: %w", err)
			}
			var key []byte
			if keyPath != "" {
				if key, err = os.ReadFile(keyPath); err != nil {
					return fmt.Errorf("error reading key: %w", err)
				}
			}

			v, err := a.eng.Verify(cmd.Context(), engine.VerifyRequest{
				Key:       key,
				Password:  password(pass),
				Document:  doc,
				Signature: sig,
				Scheme:    scheme,
			})
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return err
			}
			if err := writeOutput(cmd, "", withNewline(out)); err != nil {
				return err
			}
			if !v.Valid {
				return ErrInvalidSignature
			}
			OperationPerformedSuccessfully = true
			return nil
		},
	}

	cmd.Flags().StringVarP(&signaturePath, "signature", "s", "", "signature file: base64 text or envelope")
	cmd.Flags().StringVarP(&keyPath, "key", "k", "", "certificate, public key, or container to verify with")
	cmd.Flags().StringVarP(&pass, "password", "p", "", "container password for --key (default: $CERTTRUST_PASSWORD)")
	cmd.Flags().StringVar(&scheme, "scheme", "", "signature scheme (default: from the envelope or configuration)")
	_ = cmd.MarkFlagRequired("signature")
	return cmd
}
