// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package scriptipc

import (
	"bufio"
	"io"
)

// DefaultBufferSize is the capacity of the buffered reader and writer a
// Channel wraps around its transports.
const DefaultBufferSize = 1024

// NewBufReader wraps r with a DefaultBufferSize lookahead buffer. Reads at
// least as large as the buffer go straight to r when the buffer is empty.
func NewBufReader(r io.Reader) *bufio.Reader {
	return bufio.NewReaderSize(r, DefaultBufferSize)
}

// NewBufReaderSize is NewBufReader with an explicit capacity.
func NewBufReaderSize(r io.Reader, size int) *bufio.Reader {
	return bufio.NewReaderSize(r, size)
}

// NewBufWriter wraps w with a DefaultBufferSize buffer. Callers must Flush
// and check the error; nothing is flushed implicitly.
func NewBufWriter(w io.Writer) *bufio.Writer {
	return bufio.NewWriterSize(w, DefaultBufferSize)
}

// WriteAll writes all of p to w, retrying short writes. A write that makes
// no progress and reports no error fails with io.ErrShortWrite. Writing an
// empty p is a no-op.
func WriteAll(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if err != nil {
			return err
		}
		if n == 0 {
			return &Error{Code: CodeGeneralIOError, Op: "write", Err: io.ErrShortWrite}
		}
		p = p[n:]
	}
	return nil
}
