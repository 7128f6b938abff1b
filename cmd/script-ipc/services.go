// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Query-farm/script-ipc/benchmark"
	"github.com/Query-farm/script-ipc/scriptipc"
	"github.com/Query-farm/script-ipc/services/crypto"
	"github.com/Query-farm/script-ipc/services/unittests"
	"github.com/Query-farm/script-ipc/services/world"
)

// serviceEntry is a service the CLI can serve or describe.
type serviceEntry struct {
	contract *scriptipc.Contract
	newServe func() scriptipc.Serve
}

var services = map[string]serviceEntry{
	world.ProgramName: {
		contract: &world.WorldContract,
		newServe: func() scriptipc.Serve { return world.NewWorldServer(world.Greeter{}) },
	},
	crypto.ProgramName: {
		contract: &crypto.CryptoContract,
		newServe: func() scriptipc.Serve { return crypto.NewCryptoServer(crypto.NewArena()) },
	},
	unittests.ProgramName: {
		contract: &unittests.UnitTestsContract,
		newServe: func() scriptipc.Serve { return unittests.NewUnitTestsServer(unittests.Checker{}) },
	},
	benchmark.ProgramName: {
		contract: &benchmark.BenchContract,
		newServe: func() scriptipc.Serve { return benchmark.NewBenchServer(benchmark.Fixture{}) },
	},
}

func serviceNames() []string {
	names := make([]string, 0, len(services))
	for name := range services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupService(name string) (serviceEntry, error) {
	entry, ok := services[name]
	if !ok {
		return serviceEntry{}, fmt.Errorf("unknown service %q (have %s)", name, strings.Join(serviceNames(), ", "))
	}
	return entry, nil
}
