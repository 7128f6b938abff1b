// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package scriptipc

import (
	"bytes"
	"errors"
	"io"
	"math"
	"math/bits"
	"testing"
)

var vlqVectors = []struct {
	value   uint64
	encoded []byte
}{
	{0, []byte{0x00}},
	{1, []byte{0x01}},
	{127, []byte{0x7f}},
	{128, []byte{0x80, 0x01}},
	{300, []byte{0xac, 0x02}},
	{16383, []byte{0xff, 0x7f}},
	{16384, []byte{0x80, 0x80, 0x01}},
	{math.MaxUint64, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}},
}

func TestEncodeVlq(t *testing.T) {
	for _, v := range vlqVectors {
		if got := EncodeVlq(v.value); !bytes.Equal(got, v.encoded) {
			t.Errorf("EncodeVlq(%d) = % x, want % x", v.value, got, v.encoded)
		}
	}
}

func TestDecodeVlq(t *testing.T) {
	for _, v := range vlqVectors {
		// Trailing bytes must not be consumed.
		in := append(append([]byte(nil), v.encoded...), 0xaa, 0xbb)
		got, n, err := DecodeVlq(in)
		if err != nil {
			t.Fatalf("DecodeVlq(% x) failed: %v", v.encoded, err)
		}
		if got != v.value || n != len(v.encoded) {
			t.Errorf("DecodeVlq(% x) = %d, %d; want %d, %d", v.encoded, got, n, v.value, len(v.encoded))
		}
	}
}

func TestVlqEveryBitLength(t *testing.T) {
	var values []uint64
	for k := 0; k <= 64; k++ {
		if k < 64 {
			values = append(values, 1<<k-1, 1<<k)
		} else {
			values = append(values, math.MaxUint64)
		}
	}
	for _, v := range values {
		encoded := EncodeVlq(v)
		want := max(1, (bits.Len64(v)+6)/7)
		if len(encoded) != want {
			t.Errorf("EncodeVlq(%d) is %d bytes, want %d", v, len(encoded), want)
		}
		got, n, err := DecodeVlq(encoded)
		if err != nil || got != v || n != len(encoded) {
			t.Errorf("DecodeVlq(EncodeVlq(%d)) = %d, %d, %v", v, got, n, err)
		}
		read, err := ReadVlq(bytes.NewReader(encoded))
		if err != nil || read != v {
			t.Errorf("ReadVlq(EncodeVlq(%d)) = %d, %v", v, read, err)
		}
	}
}

func TestDecodeVlqIncomplete(t *testing.T) {
	for _, in := range [][]byte{nil, {0x80}, {0xff, 0xff}} {
		if _, _, err := DecodeVlq(in); !errors.Is(err, ErrIncompleteVlq) {
			t.Errorf("DecodeVlq(% x) error = %v, want incomplete vlq", in, err)
		}
	}
}

func TestDecodeVlqOverflow(t *testing.T) {
	in := bytes.Repeat([]byte{0x80}, 10)
	in = append(in, 0x01)
	if _, _, err := DecodeVlq(in); !errors.Is(err, ErrVlqOverflow) {
		t.Fatalf("DecodeVlq of 11 bytes error = %v, want overflow", err)
	}
	if CodeOf(ErrVlqOverflow) != CodeDecodeVlqOverflow {
		t.Errorf("CodeOf(ErrVlqOverflow) = %d", CodeOf(ErrVlqOverflow))
	}
}

func TestReadVlq(t *testing.T) {
	var stream []byte
	for _, v := range vlqVectors {
		stream = append(stream, v.encoded...)
	}
	// Hide ReadByte so the unbuffered path is used.
	r := struct{ io.Reader }{bytes.NewReader(stream)}
	for _, v := range vlqVectors {
		got, err := ReadVlq(r)
		if err != nil {
			t.Fatalf("ReadVlq failed for %d: %v", v.value, err)
		}
		if got != v.value {
			t.Errorf("ReadVlq = %d, want %d", got, v.value)
		}
	}
	if _, err := ReadVlq(r); err != io.EOF {
		t.Errorf("ReadVlq at end = %v, want io.EOF", err)
	}
}

func TestReadVlqTruncated(t *testing.T) {
	_, err := ReadVlq(bytes.NewReader([]byte{0x80, 0x80}))
	if CodeOf(err) != CodeIncompleteVlqSeq {
		t.Fatalf("ReadVlq of truncated value = %v, want code %d", err, CodeIncompleteVlqSeq)
	}
}

func TestReadVlqOverflow(t *testing.T) {
	_, err := ReadVlq(bytes.NewReader(bytes.Repeat([]byte{0xff}, 12)))
	if !errors.Is(err, ErrVlqOverflow) {
		t.Fatalf("ReadVlq of 12 continuation bytes = %v, want overflow", err)
	}
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestReadVlqReadError(t *testing.T) {
	_, err := ReadVlq(failingReader{errors.New("disk on fire")})
	if CodeOf(err) != CodeReadVlqError {
		t.Fatalf("ReadVlq with failing reader = %v, want code %d", err, CodeReadVlqError)
	}
}
