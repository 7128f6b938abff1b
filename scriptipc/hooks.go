// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package scriptipc

import (
	"context"
)

// DispatchHook provides observability callpoints around each request a
// Channel serves. Panics raised by a hook are recovered and logged.
type DispatchHook interface {
	OnDispatchStart(ctx context.Context, info DispatchInfo) (context.Context, HookToken)
	OnDispatchEnd(ctx context.Context, token HookToken, info DispatchInfo, stats *CallStatistics, err error)
}

// HookToken is an opaque value returned by OnDispatchStart and passed back to
// OnDispatchEnd. Only meaningful to the DispatchHook that created it.
type HookToken interface{}

// DispatchInfo describes the request being served.
type DispatchInfo struct {
	Service  string // service name of the request union
	Method   string // wire name of the request variant
	MethodID uint64 // union tag
	ServerID string // Channel.SetServerID value
}

// CallStatistics holds per-call byte counters. Sizes are payload sizes,
// without frame headers.
type CallStatistics struct {
	RequestBytes  int64
	ResponseBytes int64
	ErrorCode     ErrorCode
}

// RecordInput records the size of the request payload.
func (s *CallStatistics) RecordInput(payloadBytes int) {
	s.RequestBytes += int64(payloadBytes)
}

// RecordOutput records the size of the response payload.
func (s *CallStatistics) RecordOutput(payloadBytes int) {
	s.ResponseBytes += int64(payloadBytes)
}
