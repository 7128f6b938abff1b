// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"strings"
	"testing"
)

const testContract = `package demo

import (
	"math/big"

	"github.com/Query-farm/script-ipc/scriptipc"
)

// Notes is not a service.
type Notes interface {
	Ignored()
}

// Demo is a small service.
//
//scriptipc:service
type Demo interface {
	Ping()
	Add(a, b int32) int64
	GetID(bigValue *big.Int) scriptipc.Result[string, uint8]
}
`

func TestParseContract(t *testing.T) {
	cf, err := parseContract("contract.go", testContract)
	if err != nil {
		t.Fatalf("parseContract failed: %v", err)
	}
	if cf.Package != "demo" || cf.Source != "contract.go" {
		t.Errorf("got package %q source %q", cf.Package, cf.Source)
	}
	if len(cf.StdImports) != 1 || cf.StdImports[0] != `"math/big"` {
		t.Errorf("StdImports = %v, want [\"math/big\"]", cf.StdImports)
	}
	if len(cf.Imports) != 0 {
		t.Errorf("Imports = %v, want none", cf.Imports)
	}
	if len(cf.Services) != 1 {
		t.Fatalf("got %d services, want 1", len(cf.Services))
	}

	svc := cf.Services[0]
	if svc.Name != "Demo" || len(svc.Methods) != 3 {
		t.Fatalf("got service %s with %d methods", svc.Name, len(svc.Methods))
	}
	add := svc.Methods[1]
	if add.WireName != "add" || add.Result != "int64" || len(add.Params) != 2 {
		t.Errorf("Add parsed as %+v", add)
	}
	if add.Params[1].Field != "B" || add.Params[1].Type != "int32" {
		t.Errorf("Add param b parsed as %+v", add.Params[1])
	}
	get := svc.Methods[2]
	if get.WireName != "get_id" {
		t.Errorf("GetID wire name = %q", get.WireName)
	}
	if get.Params[0].JSON != "big_value" || get.Params[0].Type != "*big.Int" {
		t.Errorf("GetID param parsed as %+v", get.Params[0])
	}
	if get.Result != "scriptipc.Result[string, uint8]" {
		t.Errorf("GetID result = %q", get.Result)
	}
}

func TestParseContractRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unmarked", "type Demo interface{ Ping() }", "no interface marked"},
		{"unnamed param", "//scriptipc:service\ntype Demo interface{ Ping(int) }", "must be named"},
		{"two results", "//scriptipc:service\ntype Demo interface{ Ping() (int, error) }", "at most one result"},
		{"embedded", "//scriptipc:service\ntype Demo interface{ fmt.Stringer }", "embedded"},
		{"duplicate wire name", "//scriptipc:service\ntype Demo interface{ GetID(); GetId() }", "used twice"},
		{"empty", "//scriptipc:service\ntype Demo interface{}", "no methods"},
		{"method Close", "//scriptipc:service\ntype Demo interface{ Close() bool }", "contract.go:4:22: Demo.Close: method name is reserved"},
		{"method Channel", "//scriptipc:service\ntype Demo interface{ Channel() }", "method name is reserved"},
		{"param c", "//scriptipc:service\ntype Demo interface{ Get(c string) string }", "contract.go:4:26: Demo.Get: parameter name \"c\" is reserved"},
		{"param err", "//scriptipc:service\ntype Demo interface{ Put(key string, err string) bool }", `parameter name "err" is reserved`},
		{"param resp", "//scriptipc:service\ntype Demo interface{ Put(resp []byte) }", `parameter name "resp" is reserved`},
		{"param zero", "//scriptipc:service\ntype Demo interface{ Put(zero int32) }", `parameter name "zero" is reserved`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseContract("contract.go", "package demo\n\n"+tt.body+"\n")
			if err == nil {
				t.Fatalf("parseContract accepted %q", tt.body)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	cf, err := parseContract("contract.go", testContract)
	if err != nil {
		t.Fatalf("parseContract failed: %v", err)
	}
	out, err := generate(cf, "contract_ipc.go")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	src := string(out)

	for _, want := range []string{
		"// Code generated by ipcgen from contract.go. DO NOT EDIT.",
		"package demo",
		`"math/big"`,
		"DemoPingID  uint64 = 1",
		"DemoAddID   uint64 = 2",
		"DemoGetIDID uint64 = 3",
		"type DemoPingRequest struct{}",
		"type DemoPingResponse struct{}",
		"B int32 `json:\"b\"`",
		"BigValue *big.Int `json:\"big_value\"`",
		"Ret scriptipc.Result[string, uint8] `json:\"ret\"`",
		`scriptipc.Register[DemoGetIDRequest](DemoRequests, "get_id")`,
		"DemoContract.MustValidate(DemoRequests, DemoResponses)",
		"func NewDemoServer(impl Demo) *DemoServer",
		"return DemoAddResponse{Ret: s.impl.Add(req.A, req.B)}, nil",
		"func (c *DemoClient) Ping() error",
		"func (c *DemoClient) Add(a int32, b int32) (int64, error)",
		"DemoAddRequest{A: a, B: b}",
		"return nil, scriptipc.UnknownRequest(req)",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("generated code lacks %q", want)
		}
	}
	if strings.Contains(src, "Notes") {
		t.Errorf("generated code covers the unmarked Notes interface")
	}
}

func TestGenerateDropsUnusedImports(t *testing.T) {
	src := `package demo

import (
	"time"

	"github.com/Query-farm/script-ipc/scriptipc"
)

var _ = time.Second

//scriptipc:service
type Demo interface {
	Ping() scriptipc.Result[struct{}, uint8]
}
`
	cf, err := parseContract("contract.go", src)
	if err != nil {
		t.Fatalf("parseContract failed: %v", err)
	}
	out, err := generate(cf, "contract_ipc.go")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if strings.Contains(string(out), `"time"`) {
		t.Errorf("unused contract import kept:\n%s", out)
	}
}

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello", "hello"},
		{"HasherNew", "hasher_new"},
		{"GetID", "get_id"},
		{"IDForName", "id_for_name"},
		{"TestVec", "test_vec"},
		{"arg10", "arg10"},
		{"Sha256Sum", "sha256_sum"},
		{"hashType", "hash_type"},
	}
	for _, tt := range tests {
		if got := snakeCase(tt.in); got != tt.want {
			t.Errorf("snakeCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOutputName(t *testing.T) {
	if got := outputName("services/world/contract.go"); got != "services/world/contract_ipc.go" {
		t.Errorf("outputName = %q", got)
	}
}
