// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package scriptipc

import (
	"encoding/binary"
	"errors"
	"io"
)

// MaxVlqLen is the length of the longest VLQ encoding of a uint64.
const MaxVlqLen = binary.MaxVarintLen64

// AppendVlq appends the minimal VLQ encoding of v to dst: 7 bits per byte,
// least significant group first, high bit set on every byte but the last.
func AppendVlq(dst []byte, v uint64) []byte {
	return binary.AppendUvarint(dst, v)
}

// EncodeVlq returns the VLQ encoding of v.
func EncodeVlq(v uint64) []byte {
	return AppendVlq(make([]byte, 0, MaxVlqLen), v)
}

// DecodeVlq decodes one VLQ value from the start of b and returns it with
// the number of bytes consumed. It fails with ErrIncompleteVlq when b ends
// before a terminating byte and with ErrVlqOverflow when ten or more
// continuation bytes precede termination.
func DecodeVlq(b []byte) (uint64, int, error) {
	var v uint64
	var shift uint
	for i, c := range b {
		v |= uint64(c&0x7f) << shift
		if c&0x80 == 0 {
			return v, i + 1, nil
		}
		shift += 7
		if shift >= 64 {
			return 0, 0, ErrVlqOverflow
		}
	}
	return 0, 0, ErrIncompleteVlq
}

// ReadVlq reads one VLQ value from r, one byte at a time, so that no byte
// past the value is consumed. It returns io.EOF unchanged when the stream
// ends before the first byte, which callers treat as a clean end of
// session.
func ReadVlq(r io.Reader) (uint64, error) {
	var buf [MaxVlqLen]byte
	br, _ := r.(io.ByteReader)
	for i := range buf {
		c, err := readByte(r, br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				if i == 0 {
					return 0, io.EOF
				}
				return 0, &Error{Code: CodeIncompleteVlqSeq, Err: io.ErrUnexpectedEOF}
			}
			return 0, &Error{Code: CodeReadVlqError, Err: err}
		}
		buf[i] = c
		if c&0x80 == 0 {
			v, _, err := DecodeVlq(buf[:i+1])
			return v, err
		}
	}
	return 0, ErrVlqOverflow
}

func readByte(r io.Reader, br io.ByteReader) (byte, error) {
	if br != nil {
		return br.ReadByte()
	}
	var one [1]byte
	if _, err := io.ReadFull(r, one[:]); err != nil {
		return 0, err
	}
	return one[0], nil
}
