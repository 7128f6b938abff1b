// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

// Command script-ipc serves, calls, simulates and describes scriptipc
// services.
//
//	script-ipc serve --service world        # inside a spawned process, on fds 3 and 4
//	script-ipc call-demo --service crypto   # spawn a serve child and call it
//	script-ipc simulate --instances 8       # concurrent native guests
//	script-ipc describe --format arrow      # contract as an Arrow IPC stream
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Query-farm/script-ipc/scriptipc"
	"github.com/Query-farm/script-ipc/scriptipc/native"
	"github.com/Query-farm/script-ipc/scriptipc/ospipe"
	scriptotel "github.com/Query-farm/script-ipc/scriptipc/otel"
	"github.com/Query-farm/script-ipc/services/crypto"
	"github.com/Query-farm/script-ipc/services/world"
	"github.com/google/uuid"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"
)

func main() {
	app := cli.NewApp()
	app.Name = "script-ipc"
	app.Usage = "serve and call scriptipc services over inherited pipes"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "log-level",
			Value:  string(scriptipc.LogWarn),
			Usage:  "ERROR, WARN, INFO or DEBUG",
			EnvVar: "SCRIPT_IPC_LOG_LEVEL",
		},
		cli.StringFlag{
			Name:   "codec",
			Value:  "json",
			Usage:  "body codec, json or json+zstd; both ends must agree",
			EnvVar: "SCRIPT_IPC_CODEC",
		},
		cli.BoolFlag{
			Name:  "trace",
			Usage: "export spans and request metrics to stderr",
		},
	}
	app.Before = func(c *cli.Context) error {
		level, err := scriptipc.ParseLogLevel(c.GlobalString("log-level"))
		if err != nil {
			return err
		}
		slog.SetDefault(scriptipc.NewLogger(os.Stderr, level))
		return nil
	}
	app.Commands = []cli.Command{
		cli.Command{
			Name:  "serve",
			Usage: "Serve a service on inherited descriptors 3 (requests) and 4 (responses)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "service, s",
					Value: world.ProgramName,
					Usage: "service to serve: " + strings.Join(serviceNames(), ", "),
				},
			},
			Action: serveCommand,
		},
		cli.Command{
			Name:  "call-demo",
			Usage: "Spawn this binary as a server and call it",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "service, s",
					Value: world.ProgramName,
					Usage: "world or crypto",
				},
				cli.StringFlag{
					Name:  "data, d",
					Value: "hello world",
					Usage: "name to greet or data to hash",
				},
			},
			Action: callDemoCommand,
		},
		cli.Command{
			Name:  "simulate",
			Usage: "Run World guests on emulated machines and call them concurrently",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "instances, n",
					Value: 2,
					Usage: "number of guests",
				},
				cli.IntFlag{
					Name:  "calls",
					Value: 100,
					Usage: "Hello calls per guest",
				},
				cli.Uint64Flag{
					Name:  "cycle-limit",
					Usage: "abort a guest after this many cycles, 0 for no limit",
				},
			},
			Action: simulateCommand,
		},
		cli.Command{
			Name:  "describe",
			Usage: "Print a service contract",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "service, s",
					Value: world.ProgramName,
					Usage: "service to describe: " + strings.Join(serviceNames(), ", "),
				},
				cli.StringFlag{
					Name:  "format, f",
					Value: "text",
					Usage: "text or arrow",
				},
			},
			Action: describeCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, Red("script-ipc ▶ "+err.Error()))
		os.Exit(1)
	}
}

func channelCodec(c *cli.Context) (scriptipc.Codec, error) {
	return scriptipc.CodecByName(c.GlobalString("codec"))
}

func serveCommand(c *cli.Context) (err error) {
	entry, err := lookupService(c.String("service"))
	if err != nil {
		return err
	}
	codec, err := channelCodec(c)
	if err != nil {
		return err
	}

	// Ignore SIGPIPE so a write to a pipe whose reader exited returns EPIPE,
	// which the serve loop reports as a closed peer.
	signal.Ignore(syscall.SIGPIPE)

	ctx := context.Background()
	if c.GlobalBool("trace") {
		shutdown, err := setupTelemetry(os.Stderr)
		if err != nil {
			return err
		}
		defer func() { err = errors.Join(err, shutdown(ctx)) }()
	}

	host := ospipe.NewHost()
	if _, err := host.InheritedFds(); err != nil {
		fmt.Fprintln(os.Stderr, Yellow("script-ipc ▶ serve talks over inherited descriptors 3 and 4 "+
			"and should be launched by a client (see call-demo)."))
		return err
	}
	return scriptipc.RunServer(ctx, host, entry.newServe(), func(ch *scriptipc.Channel) {
		ch.SetCodec(codec)
		ch.SetServerID(uuid.NewString())
		if c.GlobalBool("trace") {
			scriptotel.InstrumentChannel(ch, scriptotel.DefaultConfig())
		}
	})
}

func callDemoCommand(c *cli.Context) error {
	service := c.String("service")
	if _, err := lookupService(service); err != nil {
		return err
	}
	codec, err := channelCodec(c)
	if err != nil {
		return err
	}
	exe, err := os.Executable()
	if err != nil {
		return err
	}

	ctx := context.Background()
	proc, err := ospipe.Spawn(ctx, exe,
		"--codec", codec.Name(),
		"--log-level", c.GlobalString("log-level"),
		"serve", "--service", service)
	if err != nil {
		return err
	}
	ch := proc.Channel()
	ch.SetCodec(codec)
	fmt.Fprintln(os.Stderr, Cyan(fmt.Sprintf("script-ipc ▶ spawned %s server, pid %d", service, proc.Pid())))

	switch service {
	case world.ProgramName:
		err = worldDemo(world.NewWorldClientChannel(ch), c.String("data"))
	case crypto.ProgramName:
		err = cryptoDemo(crypto.NewCryptoClientChannel(ch), []byte(c.String("data")))
	default:
		err = fmt.Errorf("call-demo does not know how to call %s", service)
	}

	closeErr := proc.Close()
	return errors.Join(err, closeErr, proc.Wait())
}

func worldDemo(client *world.WorldClient, name string) error {
	for _, arg := range []string{name, "error"} {
		ret, err := client.Hello(arg)
		if err != nil {
			return err
		}
		if v, ok := ret.Get(); ok {
			fmt.Println(Green("hello(" + arg + ") ▶ " + v))
		} else {
			code, _ := ret.Failure()
			fmt.Println(Yellow(fmt.Sprintf("hello(%s) ▶ application error %d", arg, code)))
		}
	}
	return nil
}

func cryptoDemo(client *crypto.CryptoClient, data []byte) error {
	for _, typ := range []crypto.HasherType{crypto.CkbBlake2b, crypto.Blake2b, crypto.Sha256, crypto.Ripemd160} {
		digest, err := hashOnce(client, typ, data)
		if err != nil {
			return err
		}
		fmt.Printf("%-12s %s\n", typ, Green(hex.EncodeToString(digest)))
	}
	return nil
}

func hashOnce(client *crypto.CryptoClient, typ crypto.HasherType, data []byte) ([]byte, error) {
	ret, err := client.HasherNew(typ)
	if err != nil {
		return nil, err
	}
	handle, ok := ret.Get()
	if !ok {
		e, _ := ret.Failure()
		return nil, e
	}
	upd, err := client.HasherUpdate(handle, data)
	if err != nil {
		return nil, err
	}
	if e, failed := upd.Failure(); failed {
		return nil, e
	}
	fin, err := client.HasherFinalize(handle)
	if err != nil {
		return nil, err
	}
	digest, ok := fin.Get()
	if !ok {
		e, _ := fin.Failure()
		return nil, e
	}
	return digest, nil
}

func simulateCommand(c *cli.Context) error {
	instances := c.Int("instances")
	calls := c.Int("calls")
	if instances < 1 {
		return fmt.Errorf("--instances must be at least 1")
	}

	type result struct {
		machine string
		cycles  uint64
	}
	results := make([]result, instances)

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < instances; i++ {
		g.Go(func() error {
			m := native.NewMachine()
			m.SetCycleLimit(c.Uint64("cycle-limit"))
			proc, err := m.Start(ctx, world.Program)
			if err != nil {
				return err
			}
			client := world.NewWorldClientChannel(proc.Channel())
			want := fmt.Sprintf("hello, guest-%d", i)
			for n := 0; n < calls; n++ {
				ret, err := client.Hello(fmt.Sprintf("guest-%d", i))
				if err != nil {
					client.Close()
					proc.Wait()
					return fmt.Errorf("instance %d call %d: %w", i, n, err)
				}
				if got, _ := ret.Get(); got != want {
					client.Close()
					proc.Wait()
					return fmt.Errorf("instance %d call %d: got %q, want %q", i, n, got, want)
				}
			}
			client.Close()
			cycles, err := proc.Wait()
			if err != nil {
				return fmt.Errorf("instance %d: %w", i, err)
			}
			results[i] = result{machine: m.ID(), cycles: cycles}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, r := range results {
		fmt.Printf("instance %d  machine %s  %s\n", i, r.machine, Green(fmt.Sprintf("%d cycles", r.cycles)))
	}
	return nil
}

func describeCommand(c *cli.Context) error {
	entry, err := lookupService(c.String("service"))
	if err != nil {
		return err
	}
	switch c.String("format") {
	case "arrow":
		return entry.contract.WriteDescribe(os.Stdout)
	case "text":
		fmt.Println(Cyan(entry.contract.Name))
		for _, m := range entry.contract.Methods {
			params := make([]string, len(m.Params))
			for i, p := range m.Params {
				params[i] = p.Name + " " + p.Type
			}
			line := fmt.Sprintf("  %3d  %s(%s)", m.ID, m.Name, strings.Join(params, ", "))
			if m.Result != "" {
				line += " " + Yellow(m.Result)
			}
			fmt.Println(line)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", c.String("format"))
	}
}
