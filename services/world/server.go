// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package world

import (
	"context"

	"github.com/Query-farm/script-ipc/scriptipc"
	"github.com/Query-farm/script-ipc/scriptipc/native"
)

// ProgramName is the name Program is registered under with the native
// runtime.
const ProgramName = "world"

// ErrCodeRejected is the application error Hello returns for the name "error".
const ErrCodeRejected uint64 = 1

// Greeter implements World.
type Greeter struct{}

func (Greeter) Hello(name string) scriptipc.Result[string, uint64] {
	if name == "error" {
		return scriptipc.Err[string](ErrCodeRejected)
	}
	return scriptipc.Ok[string, uint64]("hello, " + name)
}

// Program serves World on the inherited descriptors of host until the
// caller closes its ends.
func Program(ctx context.Context, host scriptipc.Host, args []string) error {
	scriptipc.DebugPrint(host, "world server started")
	return scriptipc.RunServer(ctx, host, NewWorldServer(Greeter{}))
}

func init() {
	native.Register(ProgramName, Program)
}
