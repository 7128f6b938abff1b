// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

// Command ipcgen generates scriptipc bindings from service contracts.
//
// A contract is a Go interface marked with a //scriptipc:service comment:
//
//	//go:generate go run github.com/Query-farm/script-ipc/cmd/ipcgen -source contract.go
//
//	//scriptipc:service
//	type World interface {
//		Hello(name string) scriptipc.Result[string, uint64]
//	}
//
// For every such interface ipcgen writes method id constants, request and
// response variants registered in two scriptipc.Unions, a Contract, a
// WorldServer dispatcher and a WorldClient stub into contract_ipc.go.
// Methods take named parameters and return at most one value. Method ids
// follow declaration order starting at 1, so appending methods keeps
// existing ids stable.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "ipcgen"
	app.Usage = "generate scriptipc client and server bindings from a service contract"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "source, s",
			Usage:  "Go file declaring the service interfaces",
			EnvVar: "GOFILE",
		},
		cli.StringFlag{
			Name:  "output, o",
			Usage: "output file (default <source>_ipc.go)",
		},
	}
	app.Action = run
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ipcgen: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	source := c.String("source")
	if source == "" {
		return fmt.Errorf("no -source given and $GOFILE is not set")
	}
	output := c.String("output")
	if output == "" {
		output = outputName(source)
	}

	cf, err := parseContract(source, nil)
	if err != nil {
		return err
	}
	out, err := generate(cf, output)
	if err != nil {
		return err
	}
	return os.WriteFile(output, out, 0o644)
}

func outputName(source string) string {
	dir, base := filepath.Split(source)
	return filepath.Join(dir, strings.TrimSuffix(base, ".go")+"_ipc.go")
}
