// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package native

import (
	"io"
	"sync"

	"github.com/Query-farm/script-ipc/scriptipc"
)

// NewPair returns the two ends of a rendezvous pipe. The pipe has no
// capacity: a Write blocks until a Read takes the bytes, so a slow reader
// directly stalls its writer.
func NewPair() (*Reader, *Writer) {
	p := &pipe{
		ch:           make(chan []byte),
		readerClosed: make(chan struct{}),
		writerClosed: make(chan struct{}),
	}
	return &Reader{p: p}, &Writer{p: p}
}

type pipe struct {
	ch           chan []byte
	readerClosed chan struct{}
	writerClosed chan struct{}
	readerOnce   sync.Once
	writerOnce   sync.Once
}

// Reader is the receiving end of a rendezvous pipe. It keeps the unread
// tail of the last message for the next Read.
type Reader struct {
	p   *pipe
	mu  sync.Mutex
	buf []byte
}

// Read returns buffered bytes if any, otherwise blocks for the next
// message. It returns io.EOF once the writer is closed.
func (r *Reader) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.buf) == 0 {
		select {
		case <-r.p.readerClosed:
			return 0, io.ErrClosedPipe
		default:
		}
		select {
		case data := <-r.p.ch:
			r.buf = data
		case <-r.p.writerClosed:
			return 0, io.EOF
		case <-r.p.readerClosed:
			return 0, io.ErrClosedPipe
		}
	}
	n := copy(b, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

// Close closes the reader. Pending and future writes fail with
// scriptipc.ErrOtherEndClosed.
func (r *Reader) Close() error {
	r.p.readerOnce.Do(func() { close(r.p.readerClosed) })
	return nil
}

// Writer is the sending end of a rendezvous pipe.
type Writer struct {
	p *pipe
}

// Write hands a copy of b to the reader and blocks until it is taken.
func (w *Writer) Write(b []byte) (int, error) {
	// Zero bytes would read as end of stream on the other side.
	if len(b) == 0 {
		return 0, nil
	}
	select {
	case <-w.p.writerClosed:
		return 0, io.ErrClosedPipe
	case <-w.p.readerClosed:
		return 0, &scriptipc.Error{Code: scriptipc.CodeOtherEndClosed, Op: "write"}
	default:
	}
	data := append([]byte(nil), b...)
	select {
	case w.p.ch <- data:
		return len(b), nil
	case <-w.p.readerClosed:
		return 0, &scriptipc.Error{Code: scriptipc.CodeOtherEndClosed, Op: "write"}
	case <-w.p.writerClosed:
		return 0, io.ErrClosedPipe
	}
}

// Close closes the writer. The reader sees io.EOF once it has drained
// its buffer.
func (w *Writer) Close() error {
	w.p.writerOnce.Do(func() { close(w.p.writerClosed) })
	return nil
}
