// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package benchmark

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Query-farm/script-ipc/scriptipc"
	"github.com/Query-farm/script-ipc/scriptipc/native"
)

// ProgramName is the name Program is registered under with the native
// runtime.
const ProgramName = "bench"

// Fixture implements Bench.
type Fixture struct{}

func (Fixture) Noop() {}

func (Fixture) Add(a, b float64) float64 {
	return a + b
}

func (Fixture) Greet(name string) string {
	return "Hello, " + name + "!"
}

// RoundtripTypes renders its arguments in a canonical form, with mapping
// keys and tags sorted, so clients can check what arrived.
func (Fixture) RoundtripTypes(color string, mapping map[string]int64, tags []int64) string {
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var mappingParts []string
	for _, k := range keys {
		mappingParts = append(mappingParts, fmt.Sprintf("'%s': %d", k, mapping[k]))
	}
	mappingStr := "{" + strings.Join(mappingParts, ", ") + "}"

	sortedTags := make([]int64, len(tags))
	copy(sortedTags, tags)
	sort.Slice(sortedTags, func(i, j int) bool { return sortedTags[i] < sortedTags[j] })

	var tagParts []string
	for _, t := range sortedTags {
		tagParts = append(tagParts, fmt.Sprintf("%d", t))
	}
	tagsStr := "[" + strings.Join(tagParts, ", ") + "]"

	return fmt.Sprintf("%s:%s:%s", color, mappingStr, tagsStr)
}

// Program serves Bench on the inherited descriptors of host. An optional
// first argument names the body codec.
func Program(ctx context.Context, host scriptipc.Host, args []string) error {
	codec, err := programCodec(args)
	if err != nil {
		return err
	}
	return scriptipc.RunServer(ctx, host, NewBenchServer(Fixture{}), func(ch *scriptipc.Channel) {
		ch.SetCodec(codec)
	})
}

func programCodec(args []string) (scriptipc.Codec, error) {
	if len(args) == 0 {
		return scriptipc.JSONCodec{}, nil
	}
	return scriptipc.CodecByName(args[0])
}

func init() {
	native.Register(ProgramName, Program)
}
