// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package scriptipc

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

// memHost is a Host over in-memory buffers that accepts at most chunk bytes
// per write.
type memHost struct {
	in      *bytes.Reader
	out     bytes.Buffer
	chunk   int
	closed  []uint64
	readErr error
	debug   []string
}

func (h *memHost) Read(fd uint64, buf []byte) (int, error) {
	if h.readErr != nil {
		return 0, h.readErr
	}
	n, _ := h.in.Read(buf)
	return n, nil
}

func (h *memHost) Write(fd uint64, buf []byte) (int, error) {
	if len(buf) > h.chunk {
		buf = buf[:h.chunk]
	}
	return h.out.Write(buf)
}

func (h *memHost) Pipe() (uint64, uint64, error) { return 0, 0, ErrInvalidFd }

func (h *memHost) InheritedFds() ([]uint64, error) { return []uint64{2, 3}, nil }

func (h *memHost) Close(fd uint64) error {
	h.closed = append(h.closed, fd)
	return nil
}

func (h *memHost) DebugPrint(msg string) { h.debug = append(h.debug, msg) }

func TestPipeWriteRetriesShortWrites(t *testing.T) {
	h := &memHost{chunk: 3}
	p := NewPipe(h, 3)
	n, err := p.Write([]byte("hello, world"))
	if err != nil || n != 12 {
		t.Fatalf("Write = %d, %v", n, err)
	}
	if h.out.String() != "hello, world" {
		t.Errorf("host saw %q", h.out.String())
	}
}

func TestPipeZeroLengthWrite(t *testing.T) {
	h := &memHost{chunk: 0}
	n, err := NewPipe(h, 3).Write(nil)
	if n != 0 || err != nil {
		t.Fatalf("zero-length Write = %d, %v", n, err)
	}
	// A host that accepts nothing fails rather than spinning.
	if _, err := NewPipe(h, 3).Write([]byte("x")); !errors.Is(err, io.ErrShortWrite) {
		t.Errorf("Write to a stalled host = %v, want io.ErrShortWrite", err)
	}
}

func TestPipeReadEOF(t *testing.T) {
	h := &memHost{in: bytes.NewReader(nil)}
	if _, err := NewPipe(h, 2).Read(make([]byte, 4)); err != io.EOF {
		t.Errorf("Read of zero bytes = %v, want io.EOF", err)
	}
	h.readErr = &Error{Code: CodeOtherEndClosed, Op: "read"}
	if _, err := NewPipe(h, 2).Read(make([]byte, 4)); err != io.EOF {
		t.Errorf("Read from a closed peer = %v, want io.EOF", err)
	}
	h.readErr = &Error{Code: CodeInvalidFd, Op: "read"}
	if _, err := NewPipe(h, 2).Read(make([]byte, 4)); !errors.Is(err, ErrInvalidFd) {
		t.Errorf("Read of a bad fd = %v, want invalid fd", err)
	}
}

func TestWriteAll(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAll(&buf, nil); err != nil || buf.Len() != 0 {
		t.Fatalf("WriteAll(nil) = %v and wrote %d bytes", err, buf.Len())
	}
	h := &memHost{chunk: 1}
	if err := WriteAll(NewPipe(h, 3), []byte("abc")); err != nil || h.out.String() != "abc" {
		t.Errorf("WriteAll through 1-byte writes = %v, %q", err, h.out.String())
	}
}

func TestRunServerOnHost(t *testing.T) {
	h := &memHost{chunk: 7}
	frame := requestFrame(t, echoEchoID, echoRequest{Text: "host"})
	h.in = bytes.NewReader(frame)

	DebugPrint(h, "starting")
	err := RunServer(context.Background(), h, echoServer{}, func(ch *Channel) { ch.SetLogger(quietLogger()) })
	if err != nil {
		t.Fatalf("RunServer = %v, want nil on clean EOF", err)
	}
	pkt, err := ReadResponsePacket(&h.out)
	if err != nil || pkt.ErrorCode != CodeOk {
		t.Fatalf("response = %v, %v", pkt, err)
	}
	if len(h.closed) != 2 {
		t.Errorf("RunServer closed fds %v, want both inherited fds", h.closed)
	}
	if len(h.debug) != 1 || h.debug[0] != "starting" {
		t.Errorf("debug output = %v", h.debug)
	}
}

type noFdsHost struct{ memHost }

func (noFdsHost) InheritedFds() ([]uint64, error) { return []uint64{2}, nil }

func TestOpenInheritedNeedsTwoFds(t *testing.T) {
	_, err := OpenInherited(&noFdsHost{})
	if !errors.Is(err, ErrInvalidFd) {
		t.Fatalf("OpenInherited with one fd = %v, want invalid fd", err)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"error": slog.LevelError,
		"WARN":  slog.LevelWarn,
		"":      slog.LevelInfo,
		"Debug": slog.LevelDebug,
	}
	for in, want := range tests {
		got, err := ParseLogLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLogLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLogLevel("loud"); err == nil {
		t.Errorf("ParseLogLevel(loud) succeeded")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)
	logger.Info("hidden")
	logger.Warn("shown", "code", 7)
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "code=7") {
		t.Errorf("logger output = %q", out)
	}
}
