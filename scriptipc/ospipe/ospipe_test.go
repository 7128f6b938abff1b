// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package ospipe_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/Query-farm/script-ipc/scriptipc"
	"github.com/Query-farm/script-ipc/scriptipc/ospipe"
	"github.com/Query-farm/script-ipc/services/world"
)

// helperEnv makes the test binary act as a spawned World server.
const helperEnv = "SCRIPT_IPC_OSPIPE_HELPER"

func TestMain(m *testing.M) {
	if os.Getenv(helperEnv) == "1" {
		err := scriptipc.RunServer(context.Background(), ospipe.NewHost(), world.NewWorldServer(world.Greeter{}))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func TestSpawnWorld(t *testing.T) {
	t.Setenv(helperEnv, "1")

	proc, err := ospipe.Spawn(context.Background(), os.Args[0])
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	if proc.Pid() <= 0 {
		t.Errorf("Pid = %d", proc.Pid())
	}
	client := world.NewWorldClientChannel(proc.Channel())

	for _, name := range []string{"pipes", "fds"} {
		ret, err := client.Hello(name)
		if err != nil {
			t.Fatalf("Hello(%s) failed: %v", name, err)
		}
		if got, _ := ret.Get(); got != "hello, "+name {
			t.Errorf("Hello(%s) = %v", name, ret)
		}
	}
	ret, err := client.Hello("error")
	if err != nil {
		t.Fatalf("Hello(error) failed: %v", err)
	}
	if code, failed := ret.Failure(); !failed || code != world.ErrCodeRejected {
		t.Errorf("Hello(error) = %v", ret)
	}

	if err := proc.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := proc.Wait(); err != nil {
		t.Fatalf("server exited with %v", err)
	}
}

func TestHostPipe(t *testing.T) {
	h := ospipe.NewHost()
	r, w, err := h.Pipe()
	if err != nil {
		t.Fatalf("Pipe failed: %v", err)
	}
	reader := scriptipc.NewPipe(h, r)
	writer := scriptipc.NewPipe(h, w)
	defer reader.Close()

	if n, err := writer.Write(nil); n != 0 || err != nil {
		t.Fatalf("zero-length Write = %d, %v", n, err)
	}
	if _, err := writer.Write([]byte("ping")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	buf := make([]byte, 16)
	n, err := reader.Read(buf)
	if err != nil || string(buf[:n]) != "ping" {
		t.Fatalf("Read = %q, %v", buf[:n], err)
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := reader.Read(buf); err != io.EOF {
		t.Errorf("Read after writer close = %v, want io.EOF", err)
	}
	// The descriptor is gone.
	if err := writer.Close(); !errors.Is(err, scriptipc.ErrInvalidFd) {
		t.Errorf("second Close = %v, want invalid fd", err)
	}
}

func TestHostWriteToClosedReader(t *testing.T) {
	h := ospipe.NewHost()
	r, w, err := h.Pipe()
	if err != nil {
		t.Fatalf("Pipe failed: %v", err)
	}
	defer h.Close(w)
	h.Close(r)

	_, err = h.Write(w, []byte("lost"))
	if !errors.Is(err, scriptipc.ErrOtherEndClosed) {
		t.Fatalf("Write with no reader = %v, want other end closed", err)
	}
	if scriptipc.CodeOf(err) != scriptipc.CodeOtherEndClosed || !scriptipc.CodeOf(err).IsSyscall() {
		t.Errorf("CodeOf = %d", scriptipc.CodeOf(err))
	}
}
