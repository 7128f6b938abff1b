// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package ospipe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/Query-farm/script-ipc/scriptipc"
)

// Process is a spawned program and the caller's ends of its pipes.
type Process struct {
	// Reader carries what the program writes to its FirstInheritedFd+1.
	Reader *scriptipc.Pipe
	// Writer feeds the program's FirstInheritedFd.
	Writer *scriptipc.Pipe

	cmd *exec.Cmd
}

// Spawn starts the program at path with args. The program inherits its
// ends of two new pipes as descriptors 3 (read from the caller) and 4
// (write to the caller), plus the caller's environment and stderr.
func Spawn(ctx context.Context, path string, args ...string) (*Process, error) {
	return NewHost().Spawn(ctx, path, args...)
}

// Spawn is the package-level Spawn using h for pipe creation and I/O.
func (h *Host) Spawn(ctx context.Context, path string, args ...string) (*Process, error) {
	// guest -> host
	hostRead, guestWrite, err := h.Pipe()
	if err != nil {
		return nil, fmt.Errorf("spawn %s: %w", path, err)
	}
	// host -> guest
	guestRead, hostWrite, err := h.Pipe()
	if err != nil {
		h.closeAll(hostRead, guestWrite)
		return nil, fmt.Errorf("spawn %s: %w", path, err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stderr = os.Stderr
	cmd.ExtraFiles = []*os.File{
		os.NewFile(uintptr(guestRead), "script-ipc-in"),
		os.NewFile(uintptr(guestWrite), "script-ipc-out"),
	}
	startErr := cmd.Start()

	// The child holds its own copies now; ours would keep the pipes open
	// after it exits.
	for _, f := range cmd.ExtraFiles {
		f.Close()
	}
	if startErr != nil {
		h.closeAll(hostRead, hostWrite)
		return nil, fmt.Errorf("spawn %s: %w", path, startErr)
	}

	return &Process{
		Reader: scriptipc.NewPipe(h, hostRead),
		Writer: scriptipc.NewPipe(h, hostWrite),
		cmd:    cmd,
	}, nil
}

func (h *Host) closeAll(fds ...uint64) {
	for _, fd := range fds {
		h.Close(fd)
	}
}

// Channel returns a Channel over the caller's ends of the pipes.
func (p *Process) Channel() *scriptipc.Channel {
	return scriptipc.NewChannel(p.Reader, p.Writer)
}

// Pid returns the operating system process id.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Close closes the caller's ends, which the program reads as end of session.
func (p *Process) Close() error {
	return errors.Join(p.Writer.Close(), p.Reader.Close())
}

// Wait waits for the program to exit.
func (p *Process) Wait() error {
	return p.cmd.Wait()
}
