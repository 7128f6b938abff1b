// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package scriptipc

import (
	"fmt"
	"sort"
)

// Message is one variant of a request or response union. MethodID is the
// union tag; tag 0 is reserved for untagged frames.
type Message interface {
	MethodID() uint64
}

type variant struct {
	name   string
	decode func(Codec, []byte) (Message, error)
}

// Union maps union tags to variant decoders for one service.
type Union struct {
	service  string
	variants map[uint64]*variant
}

// NewUnion returns an empty union for service.
func NewUnion(service string) *Union {
	return &Union{service: service, variants: make(map[uint64]*variant)}
}

// Register adds variant M to u under the wire name name. M must be a
// non-pointer type whose MethodID method has a value receiver. Registering
// tag 0 or a tag twice panics.
func Register[M Message](u *Union, name string) {
	var zero M
	id := zero.MethodID()
	if id == 0 {
		panic(fmt.Sprintf("scriptipc: registering %s.%s: method id 0 is reserved", u.service, name))
	}
	if prev, ok := u.variants[id]; ok {
		panic(fmt.Sprintf("scriptipc: registering %s.%s: method id %d already used by %q", u.service, name, id, prev.name))
	}
	u.variants[id] = &variant{
		name: name,
		decode: func(c Codec, body []byte) (Message, error) {
			var m M
			if err := c.Decode(body, &m); err != nil {
				return nil, err
			}
			return m, nil
		},
	}
}

// Service returns the service name of u.
func (u *Union) Service() string {
	return u.service
}

// Len returns the number of registered variants.
func (u *Union) Len() int {
	return len(u.variants)
}

// Name returns the wire name registered for id, or "" if there is none.
func (u *Union) Name(id uint64) string {
	if v, ok := u.variants[id]; ok {
		return v.name
	}
	return ""
}

// FullName returns "Service.method" for id.
func (u *Union) FullName(id uint64) string {
	if v, ok := u.variants[id]; ok {
		return u.service + "." + v.name
	}
	return fmt.Sprintf("%s.#%d", u.service, id)
}

// IDs returns the registered tags in ascending order.
func (u *Union) IDs() []uint64 {
	ids := make([]uint64, 0, len(u.variants))
	for id := range u.variants {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Decode decodes a tagged payload produced by EncodeMessage.
func (u *Union) Decode(c Codec, payload []byte) (Message, error) {
	id, n, err := DecodeVlq(payload)
	if err != nil {
		return nil, &Error{Code: CodeDeserializeError, Op: "decode " + u.service + " tag", Err: err}
	}
	v, ok := u.variants[id]
	if !ok {
		return nil, &Error{Code: CodeDeserializeError, Op: "decode " + u.service, Err: fmt.Errorf("unknown variant %d", id)}
	}
	m, err := v.decode(c, payload[n:])
	if err != nil {
		return nil, &Error{Code: CodeDeserializeError, Op: "decode " + u.FullName(id), Err: err}
	}
	return m, nil
}

// EncodeMessage encodes m as its VLQ tag followed by the codec body.
func EncodeMessage(c Codec, m Message) ([]byte, error) {
	if m == nil {
		return nil, &Error{Code: CodeSerializeError, Op: "encode", Err: fmt.Errorf("nil message")}
	}
	body, err := c.Encode(m)
	if err != nil {
		return nil, &Error{Code: CodeSerializeError, Op: fmt.Sprintf("encode %T", m), Err: err}
	}
	out := AppendVlq(make([]byte, 0, MaxVlqLen+len(body)), m.MethodID())
	return append(out, body...), nil
}

// UnknownRequest is returned by generated dispatchers for a request variant
// they do not handle.
func UnknownRequest(req Message) error {
	return &Error{Code: CodeDeserializeError, Op: "dispatch", Err: fmt.Errorf("unhandled request variant %T", req)}
}
