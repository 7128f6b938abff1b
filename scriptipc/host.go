// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package scriptipc

import (
	"errors"
	"fmt"
	"io"
)

// Host is the syscall surface an execution environment offers a program:
// numbered pipe descriptors plus the two descriptors the program was
// launched with. Syscall failures are reported as *Error values with a
// syscall-class code.
type Host interface {
	Read(fd uint64, buf []byte) (int, error)
	Write(fd uint64, buf []byte) (int, error)
	Pipe() (r, w uint64, err error)
	InheritedFds() ([]uint64, error)
	Close(fd uint64) error
}

// DebugPrinter is implemented by hosts that accept debug output from the
// program they run.
type DebugPrinter interface {
	DebugPrint(msg string)
}

// DebugPrint sends msg to the debug output of host, if it has one.
func DebugPrint(host Host, msg string) {
	if d, ok := host.(DebugPrinter); ok {
		d.DebugPrint(msg)
	}
}

// Pipe is one end of a host pipe, addressed by descriptor.
type Pipe struct {
	host Host
	fd   uint64
}

// NewPipe returns the pipe end fd of host.
func NewPipe(host Host, fd uint64) *Pipe {
	return &Pipe{host: host, fd: fd}
}

// Fd returns the descriptor of p.
func (p *Pipe) Fd() uint64 {
	return p.fd
}

// Read reads from the pipe. A closed peer reads as io.EOF.
func (p *Pipe) Read(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	n, err := p.host.Read(p.fd, buf)
	if err != nil {
		if errors.Is(err, ErrOtherEndClosed) {
			return n, io.EOF
		}
		return n, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Write writes all of buf to the pipe.
func (p *Pipe) Write(buf []byte) (int, error) {
	// A zero-length write reaches the peer as a zero-length read, which it
	// would take for end of stream.
	if len(buf) == 0 {
		return 0, nil
	}
	written := 0
	for written < len(buf) {
		n, err := p.host.Write(p.fd, buf[written:])
		written += n
		if err != nil {
			return written, err
		}
		if n == 0 {
			return written, io.ErrShortWrite
		}
	}
	return written, nil
}

// Close closes the descriptor.
func (p *Pipe) Close() error {
	return p.host.Close(p.fd)
}

func (p *Pipe) String() string {
	return fmt.Sprintf("Pipe(%d)", p.fd)
}

// OpenInherited returns a Channel over the first two descriptors host was
// launched with: slot 0 reads from the caller, slot 1 writes to it.
func OpenInherited(host Host) (*Channel, error) {
	fds, err := host.InheritedFds()
	if err != nil {
		return nil, fmt.Errorf("reading inherited fds: %w", err)
	}
	if len(fds) < 2 {
		return nil, &Error{Code: CodeInvalidFd, Op: "open inherited", Err: fmt.Errorf("want 2 inherited fds, got %d", len(fds))}
	}
	return NewChannel(NewPipe(host, fds[0]), NewPipe(host, fds[1])), nil
}
