// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package engine

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/certtrust/src/internal/faults"
)

// ParseSerial reads a serial number written in decimal, as "0x"-prefixed
// hex, or as colon-separated hex bytes ("0A:1B:2C").
func ParseSerial(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)

	digits, base := s, 10
	switch {
	case strings.HasPrefix(strings.ToLower(s), "0x"):
		digits, base = s[2:], 16
	case strings.Contains(s, ":"):
		digits, base = strings.ReplaceAll(s, ":", ""), 16
	}

	n, ok := new(big.Int).SetString(digits, base)
	if !ok || n.Sign() < 0 {
		return nil, faults.New(faults.InvalidInput, fmt.Sprintf("invalid serial number %q", s), nil)
	}
	return n, nil
}

// expiryLayouts are tried in order. Layouts without an offset are read as UTC.
var expiryLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
}

// ParseExpiry reads an RFC 3339 timestamp, an offset-less
// "2006-01-02T15:04:05" or "2006-01-02 15:04:05" timestamp, or a bare
// "2006-01-02" date meaning midnight UTC.
func ParseExpiry(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, faults.New(faults.InvalidInput, fmt.Sprintf("invalid expiry date %q", s), nil)
}
