// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

// Package world is the smallest scriptipc service: one method that greets a
// name or fails with an application error.
package world

import "github.com/Query-farm/script-ipc/scriptipc"

//go:generate go run github.com/Query-farm/script-ipc/cmd/ipcgen -source contract.go

// World greets callers.
//
//scriptipc:service
type World interface {
	// Hello returns "hello, <name>", or Err(1) for the name "error".
	Hello(name string) scriptipc.Result[string, uint64]
}
