// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package scriptipc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Channel drives the request/response exchange over one inbound and one
// outbound byte stream. A client issues Calls; a server runs Execute. At
// most one call is outstanding at a time and a Channel is not safe for
// concurrent use.
type Channel struct {
	reader       *bufio.Reader
	writer       *bufio.Writer
	closers      []io.Closer
	codec        Codec
	logger       *slog.Logger
	dispatchHook DispatchHook
	serverID     string
}

// NewChannel returns a Channel reading frames from r and writing frames to w.
func NewChannel(r io.Reader, w io.Writer) *Channel {
	c := &Channel{
		reader: NewBufReader(r),
		writer: NewBufWriter(w),
		codec:  JSONCodec{},
		logger: slog.Default(),
	}
	if cl, ok := r.(io.Closer); ok {
		c.closers = append(c.closers, cl)
	}
	if cl, ok := w.(io.Closer); ok {
		c.closers = append(c.closers, cl)
	}
	return c
}

// SetCodec sets the body codec. It must match the peer's.
func (c *Channel) SetCodec(codec Codec) {
	c.codec = codec
}

// Codec returns the body codec.
func (c *Channel) Codec() Codec {
	return c.codec
}

// SetLogger sets the logger used for frame tracing and serve loop errors.
func (c *Channel) SetLogger(logger *slog.Logger) {
	c.logger = logger
}

// SetDispatchHook registers a hook that is called around each request Execute serves.
func (c *Channel) SetDispatchHook(hook DispatchHook) {
	c.dispatchHook = hook
}

// SetServerID sets the identifier reported to dispatch hooks.
func (c *Channel) SetServerID(id string) {
	c.serverID = id
}

// Call sends req and waits for the matching response variant.
func (c *Channel) Call(req Message, responses *Union) (Message, error) {
	if err := c.SendRequest(req); err != nil {
		return nil, err
	}
	resp, err := c.ReceiveResponse(responses)
	if err != nil {
		return nil, err
	}
	if resp.MethodID() != req.MethodID() {
		return nil, &Error{
			Code: CodeDeserializeError,
			Op:   "call " + responses.FullName(req.MethodID()),
			Err:  fmt.Errorf("got response variant %s", responses.FullName(resp.MethodID())),
		}
	}
	return resp, nil
}

// Call is Channel.Call with the response variant asserted to Resp.
func Call[Resp Message](ch *Channel, responses *Union, req Message) (Resp, error) {
	var zero Resp
	msg, err := ch.Call(req, responses)
	if err != nil {
		return zero, err
	}
	resp, ok := msg.(Resp)
	if !ok {
		return zero, &Error{
			Code: CodeDeserializeError,
			Op:   "call " + responses.FullName(req.MethodID()),
			Err:  fmt.Errorf("unexpected response type %T", msg),
		}
	}
	return resp, nil
}

// SendRequest writes one request frame carrying req.
func (c *Channel) SendRequest(req Message) error {
	payload, err := EncodeMessage(c.codec, req)
	if err != nil {
		return err
	}
	pkt := NewRequestPacket(req.MethodID(), payload)
	c.logger.Debug("send request", "method_id", pkt.MethodID, "payload_len", len(payload))
	return c.writeFrame("send request", pkt.Serialize())
}

// ReceiveRequest reads and decodes one request frame. It returns io.EOF
// unchanged when the peer closed its end between requests.
func (c *Channel) ReceiveRequest(requests *Union) (Message, error) {
	req, _, err := c.receiveRequest(requests)
	return req, err
}

func (c *Channel) receiveRequest(requests *Union) (Message, int, error) {
	pkt, err := ReadRequestPacket(c.reader)
	if err != nil {
		if err == io.EOF {
			return nil, 0, io.EOF
		}
		return nil, 0, fmt.Errorf("receive request: %w", err)
	}
	c.logger.Debug("receive request", "method_id", pkt.MethodID, "payload_len", len(pkt.Payload))

	req, err := requests.Decode(c.codec, pkt.Payload)
	if err != nil {
		return nil, 0, err
	}
	// Method id 0 in the header marks an untagged frame.
	if pkt.MethodID != 0 && pkt.MethodID != req.MethodID() {
		return nil, 0, &Error{
			Code: CodeDeserializeError,
			Op:   "receive request",
			Err:  fmt.Errorf("header method id %d does not match union tag %d", pkt.MethodID, req.MethodID()),
		}
	}
	return req, len(pkt.Payload), nil
}

// SendResponse writes one successful response frame carrying resp.
func (c *Channel) SendResponse(resp Message) error {
	_, err := c.sendResponse(resp)
	return err
}

func (c *Channel) sendResponse(resp Message) (int, error) {
	payload, err := EncodeMessage(c.codec, resp)
	if err != nil {
		return 0, err
	}
	c.logger.Debug("send response", "method_id", resp.MethodID(), "payload_len", len(payload))
	return len(payload), c.writeFrame("send response", NewResponsePacket(CodeOk, payload).Serialize())
}

// SendErrorCode writes one response frame carrying code and no payload.
func (c *Channel) SendErrorCode(code ErrorCode) error {
	c.logger.Debug("send error code", "code", uint64(code))
	return c.writeFrame("send error code", NewResponsePacket(code, nil).Serialize())
}

// ReceiveResponse reads one response frame. A nonzero error code is
// returned as a *ProtocolError without looking at the payload.
func (c *Channel) ReceiveResponse(responses *Union) (Message, error) {
	pkt, err := ReadResponsePacket(c.reader)
	if err != nil {
		if err == io.EOF {
			return nil, &Error{Code: CodeUnexpectedEOF, Op: "receive response", Err: io.EOF}
		}
		return nil, fmt.Errorf("receive response: %w", err)
	}
	c.logger.Debug("receive response", "error_code", uint64(pkt.ErrorCode), "payload_len", len(pkt.Payload))
	if pkt.ErrorCode != CodeOk {
		return nil, &ProtocolError{Code: pkt.ErrorCode}
	}
	return responses.Decode(c.codec, pkt.Payload)
}

// writeFrame writes frame in full and flushes it to the transport.
func (c *Channel) writeFrame(op string, frame []byte) error {
	if err := WriteAll(c.writer, frame); err != nil {
		return ioError(op, err)
	}
	if err := c.writer.Flush(); err != nil {
		return ioError(op, err)
	}
	return nil
}

// Close closes the underlying reader and writer when they are io.Closers.
func (c *Channel) Close() error {
	var errs []error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
