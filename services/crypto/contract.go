// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

// Package crypto is a streaming hash service. A caller opens a hasher,
// feeds it any number of updates and finalizes it into a digest. Hashers
// live in the server between calls and are addressed by handle.
package crypto

import (
	"fmt"

	"github.com/Query-farm/script-ipc/scriptipc"
)

//go:generate go run github.com/Query-farm/script-ipc/cmd/ipcgen -source contract.go

// HasherType selects the algorithm of a new hasher.
type HasherType uint8

const (
	// CkbBlake2b is 32-byte BLAKE2b personalized with "ckb-default-hash".
	CkbBlake2b HasherType = iota
	// Blake2b is plain 32-byte BLAKE2b.
	Blake2b
	Sha256
	Ripemd160
)

var hasherNames = [...]string{
	CkbBlake2b: "ckb_blake2b",
	Blake2b:    "blake2b",
	Sha256:     "sha256",
	Ripemd160:  "ripemd160",
}

func (t HasherType) String() string {
	if int(t) < len(hasherNames) {
		return hasherNames[t]
	}
	return fmt.Sprintf("HasherType(%d)", uint8(t))
}

// ParseHasherType returns the HasherType whose String form is name.
func ParseHasherType(name string) (HasherType, error) {
	for i, n := range hasherNames {
		if n == name {
			return HasherType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown hasher type %q", name)
}

func (t HasherType) MarshalText() ([]byte, error) {
	if int(t) >= len(hasherNames) {
		return nil, fmt.Errorf("unknown hasher type %d", uint8(t))
	}
	return []byte(hasherNames[t]), nil
}

func (t *HasherType) UnmarshalText(text []byte) error {
	v, err := ParseHasherType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// HasherCtx is the handle of a hasher held by the service. Handles are
// never reused, even after the hasher is finalized.
type HasherCtx uint64

// CryptoError is an application error of the Crypto service.
type CryptoError uint8

const (
	// InvalidHandle is returned for a handle that was never issued or has
	// already been finalized.
	InvalidHandle CryptoError = iota + 1
	// UnsupportedHasher is returned for a HasherType the service does not know.
	UnsupportedHasher
)

func (e CryptoError) String() string {
	switch e {
	case InvalidHandle:
		return "invalid handle"
	case UnsupportedHasher:
		return "unsupported hasher"
	default:
		return fmt.Sprintf("CryptoError(%d)", uint8(e))
	}
}

func (e CryptoError) Error() string {
	return "crypto: " + e.String()
}

// Crypto hashes data incrementally.
//
//scriptipc:service
type Crypto interface {
	HasherNew(hashType HasherType) scriptipc.Result[HasherCtx, CryptoError]
	HasherUpdate(handle HasherCtx, data []byte) scriptipc.Result[struct{}, CryptoError]
	// HasherFinalize returns the digest and releases the handle.
	HasherFinalize(handle HasherCtx) scriptipc.Result[[]byte, CryptoError]
}
