// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or use this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferInterface(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T, buf Buffer)
	}{
		{
			name: "Mixed writes",
			testFunc: func(t *testing.T, buf Buffer) {
				buf.Write([]byte("-----BEGIN"))
				buf.WriteString(" X509 CRL")
				buf.WriteByte('-')
				assert.Equal(t, "-----BEGIN X509 CRL-", buf.String())
				assert.Equal(t, 20, buf.Len())
			},
		},
		{
			name: "Set replaces content",
			testFunc: func(t *testing.T, buf Buffer) {
				buf.WriteString("initial")
				buf.Set([]byte("replaced"))
				assert.Equal(t, "replaced", buf.String())
				buf.SetString("again")
				assert.Equal(t, []byte("again"), buf.Bytes())
			},
		},
		{
			name: "WriteTo drains into writer",
			testFunc: func(t *testing.T, buf Buffer) {
				buf.WriteString("ocsp")
				var out bytes.Buffer
				n, err := buf.WriteTo(&out)
				require.NoError(t, err)
				assert.Equal(t, int64(4), n)
				assert.Equal(t, "ocsp", out.String())
			},
		},
		{
			name: "Reset clears buffer",
			testFunc: func(t *testing.T, buf Buffer) {
				buf.WriteString("data to clear")
				buf.Reset()
				assert.Equal(t, 0, buf.Len(), "Reset() failed, buffer still contains data: %q", buf.Bytes())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := Default.Get()
			defer func() {
				buf.Reset()
				Default.Put(buf)
			}()

			tt.testFunc(t, buf)
		})
	}
}

func TestBufferReadFromError(t *testing.T) {
	buf := Default.Get()
	defer func() {
		buf.Reset()
		Default.Put(buf)
	}()

	_, err := buf.ReadFrom(&errorReader{err: io.ErrUnexpectedEOF})
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestPoolGetPut(t *testing.T) {
	buf1 := Default.Get()
	require.NotNil(t, buf1)

	buf1.WriteString("test data")
	assert.Equal(t, 9, buf1.Len())
	buf1.Reset()
	Default.Put(buf1)

	buf2 := Default.Get()
	require.NotNil(t, buf2)
	assert.Equal(t, 0, buf2.Len(), "Buffer from pool should be empty")

	buf2.Reset()
	Default.Put(buf2)
}

// TestGoroutineCooking verifies the pool is safe for concurrent use.
func TestGoroutineCooking(t *testing.T) {
	const goroutines = 50
	const iterations = 500

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := range goroutines {
		go func(id int) {
			defer wg.Done()
			for range iterations {
				buf := Default.Get()
				buf.WriteString("goroutine #")
				buf.WriteByte(byte('0' + (id % 10)))
				assert.Len(t, buf.Bytes(), 12)
				buf.Reset()
				Default.Put(buf)
			}
		}(i)
	}

	wg.Wait()
}

func TestPoolPutNonByteBuffer(t *testing.T) {
	assert.NotPanics(t, func() {
		Default.Put(foreignBuffer{bytes.NewBuffer(nil)})
	})
}

func TestReadAll(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Within limit",
			testFunc: func(t *testing.T) {
				data, err := ReadAll(strings.NewReader("hello"), 5)
				require.NoError(t, err)
				assert.Equal(t, []byte("hello"), data)
			},
		},
		{
			name: "Over limit",
			testFunc: func(t *testing.T) {
				data, err := ReadAll(strings.NewReader("hello!"), 5)
				assert.ErrorIs(t, err, ErrTooLarge)
				assert.Nil(t, data)
			},
		},
		{
			name: "Unlimited",
			testFunc: func(t *testing.T) {
				payload := strings.Repeat("0123456789", 1024)
				data, err := ReadAll(strings.NewReader(payload), 0)
				require.NoError(t, err)
				assert.Len(t, data, len(payload))
			},
		},
		{
			name: "Result survives buffer reuse",
			testFunc: func(t *testing.T) {
				data, err := ReadAll(strings.NewReader("keep"), 0)
				require.NoError(t, err)

				buf := Default.Get()
				buf.WriteString("overwrite")
				buf.Reset()
				Default.Put(buf)

				assert.Equal(t, "keep", string(data))
			},
		},
		{
			name: "Reader error",
			testFunc: func(t *testing.T) {
				_, err := ReadAll(&errorReader{err: io.ErrClosedPipe}, 10)
				assert.ErrorIs(t, err, io.ErrClosedPipe)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}
