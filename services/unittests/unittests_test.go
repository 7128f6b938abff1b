// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package unittests

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/Query-farm/script-ipc/scriptipc"
	"github.com/Query-farm/script-ipc/scriptipc/native"
)

func spawn(t *testing.T) (*UnitTestsClient, *native.Process) {
	t.Helper()
	proc, err := native.Spawn(context.Background(), ProgramName)
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	return NewUnitTestsClientChannel(proc.Channel()), proc
}

func TestAllTypes(t *testing.T) {
	client, proc := spawn(t)

	if err := client.TestPrimitiveTypes(1, 2, 3, 4, 5, 6, 7, 8, big.NewInt(9), big.NewInt(10), true); err != nil {
		t.Fatalf("TestPrimitiveTypes: %v", err)
	}
	if err := client.TestVec([]int32{1, 2, 3, 4, 5}); err != nil {
		t.Fatalf("TestVec: %v", err)
	}
	if err := client.TestBtreeMap(map[string]int32{"one": 1, "two": 2, "three": 3}); err != nil {
		t.Fatalf("TestBtreeMap: %v", err)
	}
	if err := client.TestComplexTypes(ExpectedStruct1()); err != nil {
		t.Fatalf("TestComplexTypes: %v", err)
	}
	ret, err := client.TestReturnTypes()
	if err != nil {
		t.Fatalf("TestReturnTypes: %v", err)
	}
	if v, ok := ret.Get(); !ok || v != 42 {
		t.Fatalf("TestReturnTypes = %v, want Ok(42)", ret)
	}

	client.Close()
	if _, err := proc.Wait(); err != nil {
		t.Fatalf("guest exited with %v", err)
	}
}

func TestHandlerPanicEndsSession(t *testing.T) {
	client, proc := spawn(t)

	err := client.TestVec([]int32{5, 4, 3, 2, 1})
	if !errors.Is(err, &scriptipc.ProtocolError{Code: scriptipc.CodeUnknownError}) {
		t.Fatalf("TestVec with wrong values returned %v, want peer error code %d", err, scriptipc.CodeUnknownError)
	}

	_, waitErr := proc.Wait()
	if scriptipc.CodeOf(waitErr) != scriptipc.CodeUnknownError {
		t.Fatalf("guest exited with %v, want code %d", waitErr, scriptipc.CodeUnknownError)
	}

	// The server loop is gone; the next call sees a closed session.
	if _, err := client.TestReturnTypes(); err == nil {
		t.Fatalf("call after server fault succeeded")
	}
	client.Close()
}

func TestUnitTestsContract(t *testing.T) {
	if n := len(UnitTestsContract.Methods); n != 5 {
		t.Fatalf("contract has %d methods, want 5", n)
	}
	if got := UnitTestsRequests.Name(UnitTestsTestBtreeMapID); got != "test_btree_map" {
		t.Errorf("wire name = %q, want test_btree_map", got)
	}
}
