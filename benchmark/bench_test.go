// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package benchmark

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/Query-farm/script-ipc/scriptipc"
	"github.com/Query-farm/script-ipc/scriptipc/native"
)

func spawnBench(tb testing.TB, codec string) (*BenchClient, *native.Process) {
	tb.Helper()
	var args []string
	if codec != "" {
		args = append(args, codec)
	}
	proc, err := native.Spawn(context.Background(), ProgramName, args...)
	if err != nil {
		tb.Fatalf("Spawn failed: %v", err)
	}
	ch := proc.Channel()
	c, err := scriptipc.CodecByName(codec)
	if err != nil {
		tb.Fatalf("CodecByName(%q): %v", codec, err)
	}
	ch.SetCodec(c)
	return NewBenchClientChannel(ch), proc
}

func stop(tb testing.TB, client *BenchClient, proc *native.Process) {
	tb.Helper()
	client.Close()
	if _, err := proc.Wait(); err != nil {
		tb.Fatalf("guest exited with %v", err)
	}
}

func TestSequentialNoops(t *testing.T) {
	client, proc := spawnBench(t, "")
	for i := 0; i < 100; i++ {
		if err := client.Noop(); err != nil {
			t.Fatalf("Noop #%d: %v", i, err)
		}
	}
	stop(t, client, proc)
}

func TestFixtureOverCodecs(t *testing.T) {
	for _, codec := range []string{"json", "json+zstd"} {
		t.Run(codec, func(t *testing.T) {
			client, proc := spawnBench(t, codec)

			sum, err := client.Add(1.5, 2.25)
			if err != nil || sum != 3.75 {
				t.Fatalf("Add = %v, %v; want 3.75", sum, err)
			}
			greeting, err := client.Greet(strings.Repeat("x", 4096))
			if err != nil || len(greeting) != 4096+len("Hello, !") {
				t.Fatalf("Greet returned %d bytes, %v", len(greeting), err)
			}
			got, err := client.RoundtripTypes("GREEN", map[string]int64{"b": 2, "a": 1}, []int64{3, 1, 2})
			if err != nil {
				t.Fatalf("RoundtripTypes: %v", err)
			}
			if want := "GREEN:{'a': 1, 'b': 2}:[1, 2, 3]"; got != want {
				t.Fatalf("RoundtripTypes = %q, want %q", got, want)
			}
			stop(t, client, proc)
		})
	}
}

func BenchmarkNoopNative(b *testing.B) {
	client, proc := spawnBench(b, "")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := client.Noop(); err != nil {
			b.Fatal(err)
		}
	}
	b.StopTimer()
	stop(b, client, proc)
}

func BenchmarkGreetPipe(b *testing.B) {
	reqR, reqW := io.Pipe()
	respR, respW := io.Pipe()
	server := scriptipc.NewChannel(reqR, respW)
	go server.Execute(context.Background(), NewBenchServer(Fixture{}))
	client := NewBenchClient(respR, reqW)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := client.Greet("bench"); err != nil {
			b.Fatal(err)
		}
	}
	b.StopTimer()
	client.Close()
}
