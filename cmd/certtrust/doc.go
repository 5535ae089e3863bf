// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// certtrust evaluates the trust status of X.509 certificates and signs
// documents with the keys they certify.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/certtrust/cmd/certtrust@latest
//
// # Usage
//
//	certtrust inspect  [--password P] [--table] FILE
//	certtrust validate --serial SERIAL --valid-to DATE [--crl URL] [--ocsp URL]
//	certtrust sign     --container FILE [--envelope] [--signature-out FILE] DOCUMENT
//	certtrust verify   --signature FILE [--key FILE] DOCUMENT
//	certtrust serve    [--address ADDR]
//	certtrust mcp
//
// Every command accepts --config FILE (or CERTTRUST_CONFIG_FILE) and
// --verbose. Container passwords fall back to CERTTRUST_PASSWORD.
//
// # Exit Status
//
// 0 on success, 2 when verify finds a signature that does not match, 1 for
// any other failure, and 130 when interrupted.
//
// # Examples
//
// Evaluate a PKCS#12 container:
//
//	certtrust inspect -p secret --table client.p12
//
// Sign a PDF, keep the envelope, and verify it:
//
//	certtrust sign -c signer.p12 --envelope -s contract.sig contract.pdf
//	certtrust verify -s contract.sig contract.pdf
package main
