// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

// Package unittests exercises the binding generator and codec with every
// kind of parameter a contract can declare: integers of each width, big
// integers, slices, maps, nested structs, fixed arrays, optional fields
// and Result returns.
package unittests

import (
	"math/big"

	"github.com/Query-farm/script-ipc/scriptipc"
)

//go:generate go run github.com/Query-farm/script-ipc/cmd/ipcgen -source contract.go

type Struct0 struct {
	F0 uint8    `json:"f0"`
	F1 uint64   `json:"f1"`
	F2 [3]uint8 `json:"f2"`
}

type Struct1 struct {
	F1 uint8       `json:"f1"`
	F2 uint16      `json:"f2"`
	F3 [3]uint8    `json:"f3"`
	F4 [2][5]uint8 `json:"f4"`
	F5 []byte      `json:"f5"`
	F6 string      `json:"f6"`
	F7 *uint32     `json:"f7,omitempty"`
	F8 [][]byte    `json:"f8"`
	F9 Struct0     `json:"f9"`
}

//scriptipc:service
type UnitTests interface {
	TestPrimitiveTypes(arg1 int8, arg2 uint8, arg3 int16, arg4 uint16, arg5 int32, arg6 uint32, arg7 int64, arg8 uint64, arg9 *big.Int, arg10 *big.Int, arg11 bool)
	TestVec(vec []int32)
	TestBtreeMap(values map[string]int32)
	TestComplexTypes(arg1 Struct1)
	TestReturnTypes() scriptipc.Result[uint32, string]
}
