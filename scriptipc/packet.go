// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package scriptipc

import (
	"errors"
	"fmt"
	"io"
)

// ProtocolVersion is the only frame version this package speaks.
const ProtocolVersion uint8 = 0

// MaxPayloadSize bounds the declared payload length of an incoming frame.
const MaxPayloadSize = 64 << 20

// RequestPacket is one request frame.
type RequestPacket struct {
	Version  uint8
	MethodID uint64
	Payload  []byte
}

// NewRequestPacket returns a request frame for the current protocol version.
func NewRequestPacket(methodID uint64, payload []byte) *RequestPacket {
	return &RequestPacket{Version: ProtocolVersion, MethodID: methodID, Payload: payload}
}

// AppendTo appends the wire form of p to dst.
func (p *RequestPacket) AppendTo(dst []byte) []byte {
	return appendFrame(dst, p.Version, p.MethodID, p.Payload)
}

// Serialize returns the wire form of p.
func (p *RequestPacket) Serialize() []byte {
	return p.AppendTo(make([]byte, 0, 3*MaxVlqLen+len(p.Payload)))
}

// WriteTo writes the wire form of p to w in a single call.
func (p *RequestPacket) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(p.Serialize())
	return int64(n), err
}

func (p *RequestPacket) String() string {
	return fmt.Sprintf("RequestPacket{version: %d, method_id: %d, payload: %d bytes}", p.Version, p.MethodID, len(p.Payload))
}

// ReadRequestPacket reads one request frame from r. It returns io.EOF
// unchanged if r ends cleanly before the frame starts.
func ReadRequestPacket(r io.Reader) (*RequestPacket, error) {
	version, methodID, payload, err := readFrame(r)
	if err != nil {
		return nil, err
	}
	return &RequestPacket{Version: version, MethodID: methodID, Payload: payload}, nil
}

// ResponsePacket is one response frame. A nonzero ErrorCode implies an
// empty payload.
type ResponsePacket struct {
	Version   uint8
	ErrorCode ErrorCode
	Payload   []byte
}

// NewResponsePacket returns a response frame for the current protocol version.
func NewResponsePacket(code ErrorCode, payload []byte) *ResponsePacket {
	return &ResponsePacket{Version: ProtocolVersion, ErrorCode: code, Payload: payload}
}

// AppendTo appends the wire form of p to dst.
func (p *ResponsePacket) AppendTo(dst []byte) []byte {
	return appendFrame(dst, p.Version, uint64(p.ErrorCode), p.Payload)
}

// Serialize returns the wire form of p.
func (p *ResponsePacket) Serialize() []byte {
	return p.AppendTo(make([]byte, 0, 3*MaxVlqLen+len(p.Payload)))
}

// WriteTo writes the wire form of p to w in a single call.
func (p *ResponsePacket) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(p.Serialize())
	return int64(n), err
}

func (p *ResponsePacket) String() string {
	return fmt.Sprintf("ResponsePacket{version: %d, error_code: %d, payload: %d bytes}", p.Version, uint64(p.ErrorCode), len(p.Payload))
}

// ReadResponsePacket reads one response frame from r. It returns io.EOF
// unchanged if r ends cleanly before the frame starts.
func ReadResponsePacket(r io.Reader) (*ResponsePacket, error) {
	version, code, payload, err := readFrame(r)
	if err != nil {
		return nil, err
	}
	return &ResponsePacket{Version: version, ErrorCode: ErrorCode(code), Payload: payload}, nil
}

func appendFrame(dst []byte, version uint8, tag uint64, payload []byte) []byte {
	dst = AppendVlq(dst, uint64(version))
	dst = AppendVlq(dst, tag)
	dst = AppendVlq(dst, uint64(len(payload)))
	return append(dst, payload...)
}

// readFrame reads the three header varints and then exactly the declared
// number of payload bytes.
func readFrame(r io.Reader) (version uint8, tag uint64, payload []byte, err error) {
	v, err := ReadVlq(r)
	if err != nil {
		// io.EOF passes through: the peer ended the session between frames.
		return 0, 0, nil, err
	}
	if v != uint64(ProtocolVersion) {
		return 0, 0, nil, &Error{Code: CodeInvalidData, Op: "read frame", Err: fmt.Errorf("unsupported protocol version %d", v)}
	}

	tag, err = ReadVlq(r)
	if err != nil {
		return 0, 0, nil, midFrame(err)
	}
	n, err := ReadVlq(r)
	if err != nil {
		return 0, 0, nil, midFrame(err)
	}
	if n > MaxPayloadSize {
		return 0, 0, nil, &Error{Code: CodeInvalidData, Op: "read frame", Err: fmt.Errorf("payload length %d exceeds %d", n, MaxPayloadSize)}
	}

	payload = make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, 0, nil, &Error{Code: CodeUnexpectedEOF, Op: "read payload", Err: io.ErrUnexpectedEOF}
		}
		return 0, 0, nil, ioError("read payload", err)
	}
	return ProtocolVersion, tag, payload, nil
}

// midFrame turns a clean EOF inside a frame into an incomplete varint.
func midFrame(err error) error {
	if err == io.EOF {
		return &Error{Code: CodeIncompleteVlqSeq, Op: "read frame", Err: io.ErrUnexpectedEOF}
	}
	return err
}
