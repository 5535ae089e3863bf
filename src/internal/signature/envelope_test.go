// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package signature_test

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/certtrust/src/internal/faults"
	"github.com/H0llyW00dzZ/certtrust/src/internal/helper/pkitest"
	"github.com/H0llyW00dzZ/certtrust/src/internal/signature"
)

func TestEnvelope_EncodeDecode(t *testing.T) {
	key := pkitest.RSAKey(t, 0)
	ca := pkitest.NewAuthority(t, "Envelope CA", nil)
	leaf, _ := ca.Issue(t, pkitest.LeafOptions{CommonName: "signer"})
	at := time.Date(2026, 10, 1, 8, 30, 0, 0, time.UTC)
	doc := []byte("enveloped document")

	rec, err := signature.New(clockwork.NewFakeClockAt(at)).Sign(doc, key, signature.RSAPSSSHA256)
	require.NoError(t, err)

	tests := []struct {
		name     string
		cert     []byte
		testFunc func(t *testing.T, got *signature.Record, cert []byte)
	}{
		{
			name: "without certificate",
			testFunc: func(t *testing.T, got *signature.Record, cert []byte) {
				assert.Nil(t, cert)
			},
		},
		{
			name: "with certificate",
			cert: leaf.Raw,
			testFunc: func(t *testing.T, got *signature.Record, cert []byte) {
				assert.Equal(t, leaf.Raw, cert)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := rec.Encode(tt.cert)
			require.NoError(t, err)
			assert.True(t, signature.IsEnvelope(data))

			got, cert, err := signature.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, rec.Scheme, got.Scheme)
			assert.Equal(t, rec.Digest, got.Digest)
			assert.Equal(t, rec.Signature, got.Signature)
			assert.Equal(t, rec.DocumentDigest, got.DocumentDigest)
			assert.True(t, got.SignedAt.Equal(at))
			assert.True(t, got.Verify(doc, &key.PublicKey))
			assert.False(t, got.Verify([]byte("other document"), &key.PublicKey))
			tt.testFunc(t, got, cert)
		})
	}
}

func TestEnvelope_Deterministic(t *testing.T) {
	rec := &signature.Record{
		Scheme:         signature.RSAPKCS1v15SHA256,
		Digest:         signature.DigestSHA256,
		Signature:      []byte{1, 2, 3},
		DocumentDigest: []byte{4, 5, 6},
		SignedAt:       time.Unix(1700000000, 0),
	}
	a, err := rec.Encode(nil)
	require.NoError(t, err)
	b, err := rec.Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDecode_Invalid(t *testing.T) {
	badVersion, err := cbor.Marshal(map[int]any{0: 9, 1: "rsa-pss-sha256", 3: []byte{1}})
	require.NoError(t, err)
	badScheme, err := cbor.Marshal(map[int]any{0: 1, 1: "rsa-md5", 3: []byte{1}})
	require.NoError(t, err)
	noSig, err := cbor.Marshal(map[int]any{0: 1, 1: "rsa-pss-sha256"})
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte{0xa1, 0xff}},
		{"bad version", badVersion},
		{"bad scheme", badScheme},
		{"no signature", noSig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _, err := signature.Decode(tt.data)
			require.Error(t, err)
			assert.Nil(t, rec)
			assert.Equal(t, faults.MalformedDocument, faults.KindOf(err))
			assert.True(t, errors.Is(err, signature.ErrInvalidEnvelope))
		})
	}
}

func TestDecodeSignature(t *testing.T) {
	raw := []byte{0xde, 0xad, 0xbe, 0xef, 0xfe}
	rec := &signature.Record{Scheme: signature.ECDSAP256SHA256, Digest: signature.DigestSHA256, Signature: raw, SignedAt: time.Unix(0, 0)}
	env, err := rec.Encode(nil)
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   []byte
		wantRec bool
		wantErr bool
	}{
		{"std base64", []byte(base64.StdEncoding.EncodeToString(raw)), false, false},
		{"std base64 with newline", []byte(base64.StdEncoding.EncodeToString(raw) + "\n"), false, false},
		{"raw url base64", []byte(base64.RawURLEncoding.EncodeToString(raw)), false, false},
		{"envelope", env, true, false},
		{"base64 envelope", []byte(base64.StdEncoding.EncodeToString(env) + "\n"), true, false},
		{"not base64", []byte("%%%"), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, got, cert, err := signature.DecodeSignature(tt.input)
			if tt.wantErr {
				assert.Equal(t, faults.InvalidInput, faults.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, raw, sig)
			assert.Equal(t, tt.wantRec, got != nil)
			assert.Nil(t, cert)
		})
	}
}

func TestRecord_Base64(t *testing.T) {
	rec := &signature.Record{Signature: []byte("sig")}
	assert.Equal(t, "c2ln", rec.Base64())
}
