// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"
)

var funcs = template.FuncMap{
	"inc":   func(i int) int { return i + 1 },
	"quote": strconv.Quote,
	"params": func(m method) string {
		parts := make([]string, len(m.Params))
		for i, p := range m.Params {
			parts[i] = p.Name + " " + p.Type
		}
		return strings.Join(parts, ", ")
	},
	"callArgs": func(m method) string {
		parts := make([]string, len(m.Params))
		for i, p := range m.Params {
			parts[i] = "req." + p.Field
		}
		return strings.Join(parts, ", ")
	},
	"fieldInits": func(m method) string {
		parts := make([]string, len(m.Params))
		for i, p := range m.Params {
			parts[i] = p.Field + ": " + p.Name
		}
		return strings.Join(parts, ", ")
	},
	"paramSpecs": func(m method) string {
		parts := make([]string, len(m.Params))
		for i, p := range m.Params {
			parts[i] = fmt.Sprintf("{Name: %q, Type: %q}", p.JSON, p.Type)
		}
		return "[]scriptipc.ParamSpec{" + strings.Join(parts, ", ") + "}"
	},
}

var fileTemplate = template.Must(template.New("ipc").Funcs(funcs).Parse(`// Code generated by ipcgen from {{.Source}}. DO NOT EDIT.

package {{.Package}}

import (
	"context"
	"io"
{{range .StdImports}}	{{.}}
{{end}}
	"github.com/Query-farm/script-ipc/scriptipc"
{{range .Imports}}	{{.}}
{{end}})
{{range .Services}}{{template "service" .}}{{end}}`))

var _ = template.Must(fileTemplate.New("service").Parse(`{{$s := .Name}}
// Method ids of the {{$s}} service.
const (
{{range $i, $m := .Methods}}	{{$s}}{{$m.Name}}ID uint64 = {{inc $i}}
{{end}})

// {{$s}}Request is a request variant of the {{$s}} service.
type {{$s}}Request interface {
	scriptipc.Message
	is{{$s}}Request()
}

// {{$s}}Response is a response variant of the {{$s}} service.
type {{$s}}Response interface {
	scriptipc.Message
	is{{$s}}Response()
}
{{range .Methods}}
// {{$s}}{{.Name}}Request carries the arguments of {{$s}}.{{.Name}}.
{{if .Params}}type {{$s}}{{.Name}}Request struct {
{{range .Params}}	{{.Field}} {{.Type}} ` + "`" + `json:"{{.JSON}}"` + "`" + `
{{end}}}{{else}}type {{$s}}{{.Name}}Request struct{}{{end}}

func ({{$s}}{{.Name}}Request) MethodID() uint64 { return {{$s}}{{.Name}}ID }
func ({{$s}}{{.Name}}Request) is{{$s}}Request() {}

// {{$s}}{{.Name}}Response carries the return value of {{$s}}.{{.Name}}.
{{if .Result}}type {{$s}}{{.Name}}Response struct {
	Ret {{.Result}} ` + "`" + `json:"ret"` + "`" + `
}{{else}}type {{$s}}{{.Name}}Response struct{}{{end}}

func ({{$s}}{{.Name}}Response) MethodID() uint64 { return {{$s}}{{.Name}}ID }
func ({{$s}}{{.Name}}Response) is{{$s}}Response() {}
{{end}}
var (
	{{$s}}Requests  = scriptipc.NewUnion({{quote $s}})
	{{$s}}Responses = scriptipc.NewUnion({{quote $s}})
)

// {{$s}}Contract describes the {{$s}} service.
var {{$s}}Contract = scriptipc.Contract{
	Name: {{quote $s}},
	Methods: []scriptipc.MethodSpec{
{{range .Methods}}		{Name: {{quote .WireName}}, ID: {{$s}}{{.Name}}ID{{if .Params}}, Params: {{paramSpecs .}}{{end}}{{if .Result}}, Result: {{quote .Result}}{{end}}},
{{end}}	},
}

func init() {
{{range .Methods}}	scriptipc.Register[{{$s}}{{.Name}}Request]({{$s}}Requests, {{quote .WireName}})
{{end}}{{range .Methods}}	scriptipc.Register[{{$s}}{{.Name}}Response]({{$s}}Responses, {{quote .WireName}})
{{end}}	{{$s}}Contract.MustValidate({{$s}}Requests, {{$s}}Responses)
}

// {{$s}}Server dispatches {{$s}} requests to an implementation.
type {{$s}}Server struct {
	impl {{$s}}
}

var _ scriptipc.Serve = (*{{$s}}Server)(nil)

// New{{$s}}Server returns a server that serves impl.
func New{{$s}}Server(impl {{$s}}) *{{$s}}Server {
	return &{{$s}}Server{impl: impl}
}

func (s *{{$s}}Server) Requests() *scriptipc.Union {
	return {{$s}}Requests
}

func (s *{{$s}}Server) Serve(_ context.Context, req scriptipc.Message) (scriptipc.Message, error) {
	switch req := req.(type) {
{{range .Methods}}	case {{$s}}{{.Name}}Request:
{{if .Result}}		return {{$s}}{{.Name}}Response{Ret: s.impl.{{.Name}}({{callArgs .}})}, nil
{{else}}		s.impl.{{.Name}}({{callArgs .}})
		return {{$s}}{{.Name}}Response{}, nil
{{end}}{{end}}	default:
		return nil, scriptipc.UnknownRequest(req)
	}
}

// {{$s}}Client calls a {{$s}} service over a Channel.
type {{$s}}Client struct {
	ch *scriptipc.Channel
}

// New{{$s}}Client returns a client that writes requests to w and reads
// responses from r.
func New{{$s}}Client(r io.Reader, w io.Writer) *{{$s}}Client {
	return &{{$s}}Client{ch: scriptipc.NewChannel(r, w)}
}

// New{{$s}}ClientChannel returns a client that calls over ch.
func New{{$s}}ClientChannel(ch *scriptipc.Channel) *{{$s}}Client {
	return &{{$s}}Client{ch: ch}
}

// Channel returns the Channel c calls over.
func (c *{{$s}}Client) Channel() *scriptipc.Channel {
	return c.ch
}

// Close closes the underlying Channel.
func (c *{{$s}}Client) Close() error {
	return c.ch.Close()
}
{{range .Methods}}
// {{.Name}} calls {{$s}}.{{.WireName}}.
{{if .Result}}func (c *{{$s}}Client) {{.Name}}({{params .}}) ({{.Result}}, error) {
	resp, err := scriptipc.Call[{{$s}}{{.Name}}Response](c.ch, {{$s}}Responses, {{$s}}{{.Name}}Request{ {{- fieldInits .}}})
	if err != nil {
		var zero {{.Result}}
		return zero, err
	}
	return resp.Ret, nil
}
{{else}}func (c *{{$s}}Client) {{.Name}}({{params .}}) error {
	_, err := scriptipc.Call[{{$s}}{{.Name}}Response](c.ch, {{$s}}Responses, {{$s}}{{.Name}}Request{ {{- fieldInits .}}})
	return err
}
{{end}}{{end}}`))

// generate renders the bindings for cf, drops contract imports the bindings
// do not use and formats the result.
func generate(cf *contractFile, outName string) ([]byte, error) {
	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, cf); err != nil {
		return nil, fmt.Errorf("render %s: %w", outName, err)
	}
	out, err := imports.Process(outName, buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, fmt.Errorf("format %s: %w\n%s", outName, err, buf.Bytes())
	}
	return out, nil
}
