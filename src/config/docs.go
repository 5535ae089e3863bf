// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads certtrust settings from JSON or YAML.
//
// The format follows the file extension (.json, .yaml, .yml). When no path is
// given, the CERTTRUST_CONFIG_FILE environment variable is consulted. Missing
// or non-positive values fall back to defaults before validation.
//
// Example YAML:
//
//	revocation:
//	  crlTimeoutSeconds: 5
//	  ocspTimeoutSeconds: 5
//	  maxResponseBytes: 10485760
//	  ocspHash: sha1
//	  fetchIssuer: false
//	signing:
//	  scheme: rsa-pkcs1v15-sha256
//	server:
//	  address: 127.0.0.1:8080
//	log:
//	  format: json
//	  verbose: false
package config
