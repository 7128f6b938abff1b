// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package scriptipc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Serve dispatches decoded requests to an implementation. The generated
// Serve<Service> types implement it.
type Serve interface {
	// Requests returns the union incoming payloads are decoded with.
	Requests() *Union
	// Serve handles one request and returns the matching response variant.
	// A returned error ends the serve loop.
	Serve(ctx context.Context, req Message) (Message, error)
}

// Execute serves requests until the peer closes the session or a fault
// occurs. On a fault it reports the fault's code to the peer with an empty
// payload and returns the fault; the channel must not be reused. It returns
// io.EOF when the peer closed its end between requests.
//
// ctx is handed to the handler and dispatch hooks. It does not interrupt a
// blocked read; close the transport for that.
func (c *Channel) Execute(ctx context.Context, s Serve) error {
	for {
		err := c.serveOne(ctx, s)
		if err == nil {
			continue
		}
		if err == io.EOF {
			c.logger.Debug("peer closed channel")
			return io.EOF
		}
		code := CodeOf(err)
		if sendErr := c.SendErrorCode(code); sendErr != nil {
			c.logger.Debug("failed to report error code", "code", uint64(code), "err", sendErr)
		}
		// Only log unexpected errors (not a peer that went away)
		if !isTransportClosed(err) {
			c.logger.Error("serve loop error", "err", err, "code", uint64(code))
		}
		return err
	}
}

// serveOne handles one complete request-response cycle.
func (c *Channel) serveOne(ctx context.Context, s Serve) error {
	requests := s.Requests()
	req, size, err := c.receiveRequest(requests)
	if err != nil {
		return err
	}

	info := DispatchInfo{
		Service:  requests.Service(),
		Method:   requests.Name(req.MethodID()),
		MethodID: req.MethodID(),
		ServerID: c.serverID,
	}
	stats := &CallStatistics{}
	stats.RecordInput(size)

	var hookToken HookToken
	var hookActive bool
	if c.dispatchHook != nil {
		func() {
			defer func() {
				if rv := recover(); rv != nil {
					c.logger.Error("dispatch hook start panic", "err", rv)
				}
			}()
			var hookCtx context.Context
			hookCtx, hookToken = c.dispatchHook.OnDispatchStart(ctx, info)
			if hookCtx != nil {
				ctx = hookCtx
			}
			hookActive = true
		}()
	}

	resp, err := c.invoke(ctx, s, req)
	if err == nil {
		var n int
		n, err = c.sendResponse(resp)
		stats.RecordOutput(n)
	}
	stats.ErrorCode = CodeOf(err)

	// Hook end (panic-safe)
	if hookActive {
		func() {
			defer func() {
				if rv := recover(); rv != nil {
					c.logger.Error("dispatch hook end panic", "err", rv)
				}
			}()
			c.dispatchHook.OnDispatchEnd(ctx, hookToken, info, stats, err)
		}()
	}
	return err
}

// invoke runs the handler, turning a panic into a CodeUnknownError fault.
func (c *Channel) invoke(ctx context.Context, s Serve, req Message) (resp Message, err error) {
	defer func() {
		if rv := recover(); rv != nil {
			resp = nil
			err = &Error{Code: CodeUnknownError, Op: "serve " + s.Requests().FullName(req.MethodID()), Err: fmt.Errorf("handler panic: %v", rv)}
		}
	}()
	resp, err = s.Serve(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, &Error{Code: CodeSerializeError, Op: "serve " + s.Requests().FullName(req.MethodID()), Err: errors.New("handler returned no response")}
	}
	if resp.MethodID() != req.MethodID() {
		return nil, &Error{
			Code: CodeSerializeError,
			Op:   "serve " + s.Requests().FullName(req.MethodID()),
			Err:  fmt.Errorf("handler returned response variant %d", resp.MethodID()),
		}
	}
	return resp, nil
}

// RunServer serves s on the first two inherited descriptors of host. configure
// is applied to the channel before serving. A peer closing the session
// between requests is a clean shutdown and returns nil.
func RunServer(ctx context.Context, host Host, s Serve, configure ...func(*Channel)) error {
	ch, err := OpenInherited(host)
	if err != nil {
		return err
	}
	defer ch.Close()
	for _, f := range configure {
		f(ch)
	}
	if err := ch.Execute(ctx, s); err != io.EOF {
		return err
	}
	return nil
}

// isTransportClosed returns true for errors that indicate the peer went away.
func isTransportClosed(err error) bool {
	if errors.Is(err, ErrOtherEndClosed) || errors.Is(err, io.ErrClosedPipe) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "connection reset")
}
