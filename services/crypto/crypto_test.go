// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/Query-farm/script-ipc/scriptipc/native"
)

var helloWorldDigests = []struct {
	typ  HasherType
	want string
}{
	{CkbBlake2b, "3376b3e62282513e03d78fc6c5bd555503d0c697bf394d55cd672cc96e6b0a2c"},
	{Blake2b, "256c83b297114d201b30179f3f0ef0cace9783622da5974326b436178aeef610"},
	{Sha256, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"},
	{Ripemd160, "98c615784ccb5fe5936fbc0cbe9dfdb408d92f0f"},
}

func TestArenaDigests(t *testing.T) {
	a := NewArena()
	for _, tc := range helloWorldDigests {
		handle, ok := a.HasherNew(tc.typ).Get()
		if !ok {
			t.Fatalf("%s: HasherNew failed", tc.typ)
		}
		for _, part := range []string{"hello", " ", "world"} {
			if r := a.HasherUpdate(handle, []byte(part)); !r.IsOk() {
				t.Fatalf("%s: HasherUpdate = %v", tc.typ, r)
			}
		}
		sum, ok := a.HasherFinalize(handle).Get()
		if !ok {
			t.Fatalf("%s: HasherFinalize failed", tc.typ)
		}
		if got := hex.EncodeToString(sum); got != tc.want {
			t.Errorf("%s digest = %s, want %s", tc.typ, got, tc.want)
		}
	}
	if n := a.Open(); n != 0 {
		t.Errorf("Open() = %d after finalizing every hasher", n)
	}
}

func TestCkbBlake2bEmpty(t *testing.T) {
	a := NewArena()
	handle, _ := a.HasherNew(CkbBlake2b).Get()
	sum, _ := a.HasherFinalize(handle).Get()
	const want = "44f4c69744d5f8c55d642062949dcae49bc4e7ef43d388c5a12f42b5633d163e"
	if got := hex.EncodeToString(sum); got != want {
		t.Fatalf("empty digest = %s, want %s", got, want)
	}
}

func TestArenaInvalidHandle(t *testing.T) {
	a := NewArena()
	first, _ := a.HasherNew(Sha256).Get()
	a.HasherFinalize(first)

	if e, failed := a.HasherUpdate(first, []byte("x")).Failure(); !failed || e != InvalidHandle {
		t.Errorf("update of finalized handle: failed=%v err=%v", failed, e)
	}
	if e, failed := a.HasherFinalize(first).Failure(); !failed || e != InvalidHandle {
		t.Errorf("second finalize: failed=%v err=%v", failed, e)
	}
	if e, failed := a.HasherFinalize(12345).Failure(); !failed || e != InvalidHandle {
		t.Errorf("finalize of unknown handle: failed=%v err=%v", failed, e)
	}

	second, _ := a.HasherNew(Sha256).Get()
	if second == first {
		t.Errorf("handle %d reused", first)
	}
}

func TestArenaUnsupportedHasher(t *testing.T) {
	if e, failed := NewArena().HasherNew(HasherType(42)).Failure(); !failed || e != UnsupportedHasher {
		t.Fatalf("HasherNew(42): failed=%v err=%v", failed, e)
	}
}

func TestHasherTypeText(t *testing.T) {
	for _, tc := range helloWorldDigests {
		text, err := tc.typ.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", tc.typ, err)
		}
		var back HasherType
		if err := back.UnmarshalText(text); err != nil || back != tc.typ {
			t.Errorf("UnmarshalText(%s) = %v, %v", text, back, err)
		}
	}
	if _, err := ParseHasherType("md5"); err == nil {
		t.Errorf("ParseHasherType(md5) succeeded")
	}
}

func TestCryptoOverNative(t *testing.T) {
	proc, err := native.Spawn(context.Background(), ProgramName)
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	client := NewCryptoClientChannel(proc.Channel())

	for _, tc := range helloWorldDigests {
		ret, err := client.HasherNew(tc.typ)
		if err != nil {
			t.Fatalf("HasherNew: %v", err)
		}
		handle, ok := ret.Get()
		if !ok {
			t.Fatalf("HasherNew(%s) = %v", tc.typ, ret)
		}
		if _, err := client.HasherUpdate(handle, []byte("hello world")); err != nil {
			t.Fatalf("HasherUpdate: %v", err)
		}
		fin, err := client.HasherFinalize(handle)
		if err != nil {
			t.Fatalf("HasherFinalize: %v", err)
		}
		sum, ok := fin.Get()
		if !ok {
			t.Fatalf("HasherFinalize(%s) = %v", tc.typ, fin)
		}
		if got := hex.EncodeToString(sum); got != tc.want {
			t.Errorf("%s digest = %s, want %s", tc.typ, got, tc.want)
		}

		// The handle is gone; the error travels as payload, not as a fault.
		again, err := client.HasherFinalize(handle)
		if err != nil {
			t.Fatalf("second HasherFinalize failed at channel level: %v", err)
		}
		if e, failed := again.Failure(); !failed || e != InvalidHandle {
			t.Errorf("second HasherFinalize = %v, want Err(invalid handle)", again)
		}
	}

	client.Close()
	if _, err := proc.Wait(); err != nil {
		t.Fatalf("guest exited with %v", err)
	}
}
