// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package scriptipc

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestRequestPacketWireForm(t *testing.T) {
	pkt := NewRequestPacket(300, []byte("abc"))
	want := []byte{0x00, 0xac, 0x02, 0x03, 'a', 'b', 'c'}
	if got := pkt.Serialize(); !bytes.Equal(got, want) {
		t.Fatalf("Serialize = % x, want % x", got, want)
	}

	got, err := ReadRequestPacket(bytes.NewReader(want))
	if err != nil {
		t.Fatalf("ReadRequestPacket failed: %v", err)
	}
	if got.MethodID != 300 || string(got.Payload) != "abc" || got.Version != ProtocolVersion {
		t.Errorf("ReadRequestPacket = %s", got)
	}
}

func TestResponsePacketErrorCode(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewResponsePacket(CodeUnknownError, nil).WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if want := []byte{0x00, 20, 0x00}; !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("error frame = % x, want % x", buf.Bytes(), want)
	}
	pkt, err := ReadResponsePacket(&buf)
	if err != nil {
		t.Fatalf("ReadResponsePacket failed: %v", err)
	}
	if pkt.ErrorCode != CodeUnknownError || len(pkt.Payload) != 0 {
		t.Errorf("ReadResponsePacket = %s", pkt)
	}
}

func TestPacketsBackToBack(t *testing.T) {
	var stream []byte
	stream = NewRequestPacket(1, []byte("one")).AppendTo(stream)
	stream = NewRequestPacket(2, nil).AppendTo(stream)
	stream = NewRequestPacket(3, bytes.Repeat([]byte{'x'}, 200)).AppendTo(stream)

	r := bytes.NewReader(stream)
	for i, wantLen := range []int{3, 0, 200} {
		pkt, err := ReadRequestPacket(r)
		if err != nil {
			t.Fatalf("packet %d: %v", i, err)
		}
		if pkt.MethodID != uint64(i+1) || len(pkt.Payload) != wantLen {
			t.Errorf("packet %d = %s", i, pkt)
		}
	}
	if _, err := ReadRequestPacket(r); err != io.EOF {
		t.Errorf("read past last packet = %v, want io.EOF", err)
	}
}

func TestReadPacketFaults(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want ErrorCode
	}{
		{"bad version", []byte{0x01, 0x01, 0x00}, CodeInvalidData},
		{"eof after version", []byte{0x00}, CodeIncompleteVlqSeq},
		{"eof inside method id", []byte{0x00, 0x80}, CodeIncompleteVlqSeq},
		{"eof before length", []byte{0x00, 0x01}, CodeIncompleteVlqSeq},
		{"short payload", []byte{0x00, 0x01, 0x05, 'a', 'b'}, CodeUnexpectedEOF},
		{"oversized payload", append([]byte{0x00, 0x01}, EncodeVlq(MaxPayloadSize+1)...), CodeInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRequestPacket(bytes.NewReader(tt.in))
			if err == nil {
				t.Fatalf("ReadRequestPacket(% x) succeeded", tt.in)
			}
			if got := CodeOf(err); got != tt.want {
				t.Errorf("CodeOf(%v) = %d (%s), want %d (%s)", err, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestReadPacketTransportError(t *testing.T) {
	boom := errors.New("boom")
	r := io.MultiReader(bytes.NewReader([]byte{0x00, 0x01, 0x04, 'a'}), failingReader{boom})
	_, err := ReadRequestPacket(r)
	if !errors.Is(err, boom) || CodeOf(err) != CodeGeneralIOError {
		t.Fatalf("ReadRequestPacket = %v, want general io error wrapping boom", err)
	}
}
