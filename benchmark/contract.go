// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

// Package benchmark holds the Bench service used to measure call round
// trips over each transport.
package benchmark

//go:generate go run github.com/Query-farm/script-ipc/cmd/ipcgen -source contract.go

//scriptipc:service
type Bench interface {
	Noop()
	Add(a float64, b float64) float64
	Greet(name string) string
	RoundtripTypes(color string, mapping map[string]int64, tags []int64) string
}
