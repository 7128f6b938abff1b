// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

//go:build unix

// Package ospipe runs the scriptipc protocol over real pipe descriptors
// and spawned processes.
//
// A spawned program finds its ends of the two pipes at FirstInheritedFd
// (read from the caller) and FirstInheritedFd+1 (write to the caller):
//
//	func main() {
//		err := scriptipc.RunServer(ctx, ospipe.NewHost(), world.NewWorldServer(world.Greeter{}))
//		...
//	}
package ospipe

import (
	"errors"
	"fmt"
	"os"

	"github.com/Query-farm/script-ipc/scriptipc"
	"golang.org/x/sys/unix"
)

// FirstInheritedFd is where a spawned program finds its read end; its write
// end follows. Descriptors 0-2 stay stdin, stdout and stderr.
const FirstInheritedFd = 3

// Host implements scriptipc.Host with read(2), write(2), pipe(2) and close(2).
type Host struct {
	inherited []uint64
}

var _ scriptipc.Host = (*Host)(nil)

// NewHost returns a Host whose inherited descriptors follow the spawn
// convention.
func NewHost() *Host {
	return &Host{inherited: []uint64{FirstInheritedFd, FirstInheritedFd + 1}}
}

func (h *Host) Read(fd uint64, buf []byte) (int, error) {
	for {
		n, err := unix.Read(int(fd), buf)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return 0, sysError("read", fd, err)
		}
		return n, nil
	}
}

func (h *Host) Write(fd uint64, buf []byte) (int, error) {
	for {
		n, err := unix.Write(int(fd), buf)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return 0, sysError("write", fd, err)
		}
		return n, nil
	}
}

// Pipe creates a pipe whose descriptors are closed on exec.
func (h *Host) Pipe() (uint64, uint64, error) {
	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		return 0, 0, sysError("pipe", 0, err)
	}
	unix.CloseOnExec(fds[0])
	unix.CloseOnExec(fds[1])
	return uint64(fds[0]), uint64(fds[1]), nil
}

// InheritedFds returns the two spawn descriptors after checking they are open.
func (h *Host) InheritedFds() ([]uint64, error) {
	for _, fd := range h.inherited {
		if _, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0); err != nil {
			return nil, sysError("inherited fd", fd, err)
		}
	}
	return append([]uint64(nil), h.inherited...), nil
}

func (h *Host) Close(fd uint64) error {
	if err := unix.Close(int(fd)); err != nil {
		return sysError("close", fd, err)
	}
	return nil
}

// DebugPrint writes msg to stderr.
func (h *Host) DebugPrint(msg string) {
	fmt.Fprintf(os.Stderr, "script debug: %s\n", msg)
}

// sysError maps an errno to a syscall-class scriptipc code.
func sysError(op string, fd uint64, err error) error {
	code := scriptipc.CodeUnknownSysError
	switch {
	case errors.Is(err, unix.EBADF):
		code = scriptipc.CodeInvalidFd
	case errors.Is(err, unix.EPIPE):
		code = scriptipc.CodeOtherEndClosed
	case errors.Is(err, unix.EMFILE), errors.Is(err, unix.ENFILE):
		code = scriptipc.CodeMaxFdsCreated
	case errors.Is(err, unix.EINVAL), errors.Is(err, unix.EFAULT):
		code = scriptipc.CodeInvalidData
	}
	return &scriptipc.Error{Code: code, Op: fmt.Sprintf("%s fd %d", op, fd), Err: err}
}
