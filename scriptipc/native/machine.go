// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package native

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Query-farm/script-ipc/scriptipc"
	"github.com/google/uuid"
)

// Syscall numbers of the emulated environment.
const (
	SyscallDebugPrint  = 2177
	SyscallSpawn       = 2601
	SyscallWait        = 2602
	SyscallProcessID   = 2603
	SyscallPipe        = 2604
	SyscallWrite       = 2605
	SyscallRead        = 2606
	SyscallInheritedFd = 2607
	SyscallClose       = 2608
)

// FirstFdSlot is the guest's read descriptor; FirstFdSlot+1 is its write
// descriptor.
const FirstFdSlot = 2

// SpawnYieldCyclesBase is charged for every read, write and inherited-fd
// syscall, approximating the scheduler switch a real pipe transfer costs.
const SpawnYieldCyclesBase = 800

var (
	ErrUnsupportedSyscall = errors.New("unsupported syscall")
	ErrCyclesExceeded     = errors.New("cycle limit exceeded")
)

// Syscall is one trapped call and its results.
type Syscall struct {
	Number  int
	Fd      uint64
	Buf     []byte
	Message string

	// Results.
	N   int
	Fds []uint64
}

type trapHandler func(m *Machine, call *Syscall) error

var traps = map[int]trapHandler{
	SyscallDebugPrint:  trapDebugPrint,
	SyscallWrite:       trapWrite,
	SyscallRead:        trapRead,
	SyscallInheritedFd: trapInheritedFd,
	SyscallClose:       trapClose,
}

// Machine is an emulated guest environment. Its only descriptors are the
// two pipe ends it was spawned with, at FirstFdSlot and FirstFdSlot+1.
// Machine implements scriptipc.Host for the program it runs.
type Machine struct {
	id         string
	logger     *slog.Logger
	in         *Reader
	out        *Writer
	cycles     atomic.Uint64
	cycleLimit uint64

	started atomic.Bool
	mu      sync.Mutex
	aborted error
}

// NewMachine returns a Machine whose pipes are not yet connected to a
// program.
func NewMachine() *Machine {
	return &Machine{
		id:     uuid.NewString(),
		logger: slog.Default(),
	}
}

// ID returns the unique identifier of m.
func (m *Machine) ID() string {
	return m.id
}

// SetLogger sets the logger debug prints go to.
func (m *Machine) SetLogger(logger *slog.Logger) {
	m.logger = logger
}

// SetCycleLimit aborts the guest once it has consumed more than limit
// cycles. Zero means no limit.
func (m *Machine) SetCycleLimit(limit uint64) {
	m.cycleLimit = limit
}

// Cycles returns the cycles consumed so far.
func (m *Machine) Cycles() uint64 {
	return m.cycles.Load()
}

// AddCycles charges n cycles to the guest.
func (m *Machine) AddCycles(n uint64) error {
	total := m.cycles.Add(n)
	if m.cycleLimit != 0 && total > m.cycleLimit {
		m.abort(fmt.Errorf("%w: %d > %d", ErrCyclesExceeded, total, m.cycleLimit))
	}
	return m.abortErr()
}

func (m *Machine) abort(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.aborted == nil {
		m.aborted = err
	}
}

func (m *Machine) abortErr() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.aborted
}

// Ecall dispatches one syscall through the trap table.
func (m *Machine) Ecall(call *Syscall) error {
	if err := m.abortErr(); err != nil {
		return err
	}
	h, ok := traps[call.Number]
	if !ok {
		return fmt.Errorf("%w %d", ErrUnsupportedSyscall, call.Number)
	}
	return h(m, call)
}

func (m *Machine) Read(fd uint64, buf []byte) (int, error) {
	call := &Syscall{Number: SyscallRead, Fd: fd, Buf: buf}
	err := m.Ecall(call)
	return call.N, err
}

func (m *Machine) Write(fd uint64, buf []byte) (int, error) {
	call := &Syscall{Number: SyscallWrite, Fd: fd, Buf: buf}
	err := m.Ecall(call)
	return call.N, err
}

func (m *Machine) InheritedFds() ([]uint64, error) {
	call := &Syscall{Number: SyscallInheritedFd}
	err := m.Ecall(call)
	return call.Fds, err
}

func (m *Machine) Close(fd uint64) error {
	return m.Ecall(&Syscall{Number: SyscallClose, Fd: fd})
}

// Pipe is not available to guests.
func (m *Machine) Pipe() (uint64, uint64, error) {
	return 0, 0, m.Ecall(&Syscall{Number: SyscallPipe})
}

// Spawn is not available to guests.
func (m *Machine) Spawn() error {
	return m.Ecall(&Syscall{Number: SyscallSpawn})
}

// Wait is not available to guests.
func (m *Machine) Wait() error {
	return m.Ecall(&Syscall{Number: SyscallWait})
}

// ProcessID is not available to guests.
func (m *Machine) ProcessID() (uint64, error) {
	return 0, m.Ecall(&Syscall{Number: SyscallProcessID})
}

func (m *Machine) DebugPrint(msg string) {
	_ = m.Ecall(&Syscall{Number: SyscallDebugPrint, Message: msg})
}

func trapDebugPrint(m *Machine, call *Syscall) error {
	m.logger.Info("script debug", "machine", m.id, "msg", call.Message)
	return nil
}

// notConnected is returned for descriptor traps on a Machine that was never
// started.
func notConnected(op string, fd uint64) error {
	return &scriptipc.Error{Code: scriptipc.CodeInvalidFd, Op: op, Err: fmt.Errorf("fd %d: machine not started", fd)}
}

func trapRead(m *Machine, call *Syscall) error {
	if m.in == nil {
		return notConnected("read", call.Fd)
	}
	if call.Fd != FirstFdSlot {
		return &scriptipc.Error{Code: scriptipc.CodeInvalidFd, Op: "read", Err: fmt.Errorf("fd %d", call.Fd)}
	}
	if err := m.AddCycles(SpawnYieldCyclesBase); err != nil {
		return err
	}
	n, err := m.in.Read(call.Buf)
	call.N = n
	if err != nil {
		if n == 0 && isEOF(err) {
			return &scriptipc.Error{Code: scriptipc.CodeOtherEndClosed, Op: "read"}
		}
		return err
	}
	return nil
}

func trapWrite(m *Machine, call *Syscall) error {
	if m.out == nil {
		return notConnected("write", call.Fd)
	}
	if call.Fd != FirstFdSlot+1 {
		return &scriptipc.Error{Code: scriptipc.CodeInvalidFd, Op: "write", Err: fmt.Errorf("fd %d", call.Fd)}
	}
	if len(call.Buf) == 0 {
		return nil
	}
	if err := m.AddCycles(SpawnYieldCyclesBase); err != nil {
		return err
	}
	n, err := m.out.Write(call.Buf)
	call.N = n
	return err
}

func trapInheritedFd(m *Machine, call *Syscall) error {
	if err := m.AddCycles(SpawnYieldCyclesBase); err != nil {
		return err
	}
	call.Fds = []uint64{FirstFdSlot, FirstFdSlot + 1}
	return nil
}

func trapClose(m *Machine, call *Syscall) error {
	if m.in == nil {
		return notConnected("close", call.Fd)
	}
	switch call.Fd {
	case FirstFdSlot:
		return m.in.Close()
	case FirstFdSlot + 1:
		return m.out.Close()
	default:
		return &scriptipc.Error{Code: scriptipc.CodeInvalidFd, Op: "close", Err: fmt.Errorf("fd %d", call.Fd)}
	}
}

// closeGuestEnds closes both guest descriptors so the host side sees end of
// stream.
func (m *Machine) closeGuestEnds() {
	m.in.Close()
	m.out.Close()
}

var _ scriptipc.Host = (*Machine)(nil)
