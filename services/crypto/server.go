// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"context"
	"crypto/sha256"
	"fmt"
	"hash"
	"sync"

	"github.com/Query-farm/script-ipc/scriptipc"
	"github.com/Query-farm/script-ipc/scriptipc/native"
	"github.com/dchest/blake2b"
	"golang.org/x/crypto/ripemd160"
)

// ProgramName is the name Program is registered under with the native
// runtime.
const ProgramName = "crypto"

const ckbHashPersonalization = "ckb-default-hash"

// Arena implements Crypto. It owns every open hasher, keyed by handle.
type Arena struct {
	mu      sync.Mutex
	hashers map[HasherCtx]hash.Hash
	next    HasherCtx
}

// NewArena returns an Arena with no open hashers.
func NewArena() *Arena {
	return &Arena{hashers: make(map[HasherCtx]hash.Hash)}
}

// Open returns the number of hashers not yet finalized.
func (a *Arena) Open() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.hashers)
}

func (a *Arena) HasherNew(hashType HasherType) scriptipc.Result[HasherCtx, CryptoError] {
	h, err := newHasher(hashType)
	if err != nil {
		return scriptipc.Err[HasherCtx](UnsupportedHasher)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	handle := a.next
	a.next++
	a.hashers[handle] = h
	return scriptipc.Ok[HasherCtx, CryptoError](handle)
}

func (a *Arena) HasherUpdate(handle HasherCtx, data []byte) scriptipc.Result[struct{}, CryptoError] {
	a.mu.Lock()
	defer a.mu.Unlock()
	h, ok := a.hashers[handle]
	if !ok {
		return scriptipc.Err[struct{}](InvalidHandle)
	}
	h.Write(data)
	return scriptipc.Ok[struct{}, CryptoError](struct{}{})
}

func (a *Arena) HasherFinalize(handle HasherCtx) scriptipc.Result[[]byte, CryptoError] {
	a.mu.Lock()
	h, ok := a.hashers[handle]
	delete(a.hashers, handle)
	a.mu.Unlock()
	if !ok {
		return scriptipc.Err[[]byte](InvalidHandle)
	}
	return scriptipc.Ok[[]byte, CryptoError](h.Sum(nil))
}

func newHasher(t HasherType) (hash.Hash, error) {
	switch t {
	case CkbBlake2b:
		return blake2b.New(&blake2b.Config{Size: 32, Person: []byte(ckbHashPersonalization)})
	case Blake2b:
		return blake2b.New256(), nil
	case Sha256:
		return sha256.New(), nil
	case Ripemd160:
		return ripemd160.New(), nil
	default:
		return nil, fmt.Errorf("unsupported hasher type %s", t)
	}
}

// Program serves Crypto, backed by a fresh Arena, on the inherited
// descriptors of host.
func Program(ctx context.Context, host scriptipc.Host, args []string) error {
	scriptipc.DebugPrint(host, "crypto server started")
	return scriptipc.RunServer(ctx, host, NewCryptoServer(NewArena()))
}

func init() {
	native.Register(ProgramName, Program)
}
