// Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

// Package scriptipc implements a synchronous request/response RPC protocol
// for programs that can only talk to each other through a pair of
// unidirectional byte pipes.
//
// # Wire format
//
// Every frame is three unsigned VLQ integers followed by the payload:
//
//	+--------------+----------------------------+--------------+-----------+
//	| VLQ(version) | VLQ(method_id|error_code)  | VLQ(length)  | payload   |
//	+--------------+----------------------------+--------------+-----------+
//
// The version is always [ProtocolVersion]. Requests carry the method id of
// the request variant; responses carry an [ErrorCode]. A response with a
// nonzero code has an empty payload. Payloads are a VLQ union tag followed
// by the body encoded with the channel's [Codec] ([JSONCodec] by default).
//
// # Contracts
//
// A service is declared once as a Go interface annotated with
// //scriptipc:service. The ipcgen tool turns it into request and response
// unions, a dispatcher wrapping an implementation of the interface, and a
// typed client stub. Because the dispatcher takes the interface, a method
// added to the contract but missing from the implementation is a compile
// error. At startup the generated code checks the unions against the
// [Contract] description with [Contract.MustValidate].
//
// # Transports
//
// A [Channel] drives any io.Reader/io.Writer pair. Two transports are
// provided:
//
//   - ospipe: real file descriptors and spawned processes. The child finds
//     its ends of the two pipes at fds 3 and 4.
//   - native: an in-process simulation. Guest programs run on their own
//     goroutine against an emulated [Host] that forwards fd 2 and fd 3 to
//     zero-capacity rendezvous pipes and charges a fixed cycle cost per
//     syscall.
//
// Both transports hand a guest a [Host]; [RunServer] serves a contract on
// the host's inherited fds, so the same guest code runs unchanged under
// either transport.
//
// # Failure model
//
// Every fault is terminal. A client call fails with a local [*Error] or,
// when the peer answered with a nonzero code, a [*ProtocolError]. A server
// reports the failure code to its peer and [Channel.Execute] returns.
// Application-level failures travel inside the response body as a
// [Result] and leave the frame's error code at zero.
package scriptipc
