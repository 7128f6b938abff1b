// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package native

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/Query-farm/script-ipc/scriptipc"
)

// Program is a guest entry point. It talks to its spawner only through
// host, typically with scriptipc.RunServer.
type Program func(ctx context.Context, host scriptipc.Host, args []string) error

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Program)
)

// Register makes prog spawnable under name. Registering a name twice panics.
func Register(name string, prog Program) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("native: program %q registered twice", name))
	}
	registry[name] = prog
}

// Lookup returns the program registered under name.
func Lookup(name string) (Program, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	prog, ok := registry[name]
	return prog, ok
}

// Programs returns the registered program names in sorted order.
func Programs() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Process is a guest program running on its own goroutine. Reader carries
// bytes the guest writes to its fd 3; Writer feeds the guest's fd 2.
type Process struct {
	Reader *Reader
	Writer *Writer

	machine *Machine
	done    chan struct{}
	err     error
}

// Spawn starts the program registered under name on a fresh Machine.
func Spawn(ctx context.Context, name string, args ...string) (*Process, error) {
	prog, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("native: no program registered as %q", name)
	}
	return SpawnProgram(ctx, prog, args...)
}

// SpawnProgram starts prog on a fresh Machine.
func SpawnProgram(ctx context.Context, prog Program, args ...string) (*Process, error) {
	return NewMachine().Start(ctx, prog, args...)
}

// Start connects m to two new rendezvous pipes and runs prog on a new
// goroutine. The guest reads from one pipe at FirstFdSlot and writes to the
// other at FirstFdSlot+1; the returned Process holds the opposite ends.
// Cancelling ctx closes the guest's descriptors. A Machine can be started
// once.
func (m *Machine) Start(ctx context.Context, prog Program, args ...string) (*Process, error) {
	if !m.started.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("native: machine %s already started", m.id)
	}

	// guest -> host
	hostReader, guestWriter := NewPair()
	// host -> guest
	guestReader, hostWriter := NewPair()
	m.in = guestReader
	m.out = guestWriter

	p := &Process{
		Reader:  hostReader,
		Writer:  hostWriter,
		machine: m,
		done:    make(chan struct{}),
	}
	stop := context.AfterFunc(ctx, m.closeGuestEnds)

	go func() {
		defer close(p.done)
		defer stop()
		defer m.closeGuestEnds()
		defer func() {
			if rv := recover(); rv != nil {
				p.err = fmt.Errorf("native: guest on machine %s panicked: %v", m.id, rv)
			}
		}()
		p.err = prog(ctx, m, args)
		if p.err == nil {
			p.err = m.abortErr()
		}
	}()
	return p, nil
}

// Channel returns a Channel over the host ends of the process pipes.
func (p *Process) Channel() *scriptipc.Channel {
	return scriptipc.NewChannel(p.Reader, p.Writer)
}

// Machine returns the machine the guest runs on.
func (p *Process) Machine() *Machine {
	return p.machine
}

// Close closes the host ends, which ends a guest blocked on its pipes.
func (p *Process) Close() error {
	return errors.Join(p.Writer.Close(), p.Reader.Close())
}

// Wait blocks until the guest returns and reports its error and the
// cycles it consumed.
func (p *Process) Wait() (uint64, error) {
	<-p.done
	return p.machine.Cycles(), p.err
}

// Done is closed when the guest has returned.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}
