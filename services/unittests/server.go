// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package unittests

import (
	"context"
	"fmt"
	"maps"
	"math/big"
	"reflect"
	"slices"

	"github.com/Query-farm/script-ipc/scriptipc"
	"github.com/Query-farm/script-ipc/scriptipc/native"
)

// ProgramName is the name Program is registered under with the native
// runtime.
const ProgramName = "unit-tests"

// Arguments TestVec and TestBtreeMap accept.
var (
	ExpectedVec = []int32{1, 2, 3, 4, 5}
	ExpectedMap = map[string]int32{"one": 1, "two": 2, "three": 3}
)

// ExpectedStruct1 returns the only Struct1 TestComplexTypes accepts.
func ExpectedStruct1() Struct1 {
	f7 := uint32(9)
	return Struct1{
		F1: 1,
		F2: 2,
		F3: [3]uint8{3, 3, 3},
		F4: [2][5]uint8{{4, 4, 4, 4, 4}, {5, 5, 5, 5, 5}},
		F5: []byte{6, 7, 8},
		F6: "test",
		F7: &f7,
		F8: [][]byte{{10, 11}, {12, 13}},
		F9: Struct0{F0: 14, F1: 15, F2: [3]uint8{16, 17, 18}},
	}
}

// Checker implements UnitTests. Every method panics when its arguments
// differ from the fixed values the client side sends, which the channel
// reports to the caller as a failed call.
type Checker struct{}

func (Checker) TestPrimitiveTypes(arg1 int8, arg2 uint8, arg3 int16, arg4 uint16, arg5 int32, arg6 uint32, arg7 int64, arg8 uint64, arg9 *big.Int, arg10 *big.Int, arg11 bool) {
	got := []int64{int64(arg1), int64(arg2), int64(arg3), int64(arg4), int64(arg5), int64(arg6), arg7, int64(arg8)}
	for i, v := range got {
		if v != int64(i+1) {
			panic(fmt.Sprintf("arg%d = %d, want %d", i+1, v, i+1))
		}
	}
	if arg9 == nil || arg9.Cmp(big.NewInt(9)) != 0 {
		panic(fmt.Sprintf("arg9 = %v, want 9", arg9))
	}
	if arg10 == nil || arg10.Cmp(big.NewInt(10)) != 0 {
		panic(fmt.Sprintf("arg10 = %v, want 10", arg10))
	}
	if !arg11 {
		panic("arg11 = false, want true")
	}
}

func (Checker) TestVec(vec []int32) {
	if !slices.Equal(vec, ExpectedVec) {
		panic(fmt.Sprintf("vec = %v, want %v", vec, ExpectedVec))
	}
}

func (Checker) TestBtreeMap(values map[string]int32) {
	if !maps.Equal(values, ExpectedMap) {
		panic(fmt.Sprintf("map = %v, want %v", values, ExpectedMap))
	}
}

func (Checker) TestComplexTypes(arg1 Struct1) {
	if want := ExpectedStruct1(); !reflect.DeepEqual(arg1, want) {
		panic(fmt.Sprintf("struct = %+v, want %+v", arg1, want))
	}
}

func (Checker) TestReturnTypes() scriptipc.Result[uint32, string] {
	return scriptipc.Ok[uint32, string](42)
}

// Program serves UnitTests on the inherited descriptors of host.
func Program(ctx context.Context, host scriptipc.Host, args []string) error {
	return scriptipc.RunServer(ctx, host, NewUnitTestsServer(Checker{}))
}

func init() {
	native.Register(ProgramName, Program)
}
