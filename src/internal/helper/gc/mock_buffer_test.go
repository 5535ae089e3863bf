// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc

import "bytes"

// foreignBuffer satisfies Buffer without coming from the pool.
type foreignBuffer struct{ *bytes.Buffer }

func (f foreignBuffer) Set(p []byte) {
	f.Buffer.Reset()
	f.Buffer.Write(p)
}

func (f foreignBuffer) SetString(s string) {
	f.Buffer.Reset()
	f.Buffer.WriteString(s)
}

// errorReader fails every read with err.
type errorReader struct{ err error }

func (e *errorReader) Read([]byte) (int, error) { return 0, e.err }
